// Package main is the entry point for the API server.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/jwwharrell/the-gauntlet/internal/api"
	"github.com/jwwharrell/the-gauntlet/internal/auth"
	"github.com/jwwharrell/the-gauntlet/internal/catalog"
	"github.com/jwwharrell/the-gauntlet/internal/config"
	"github.com/jwwharrell/the-gauntlet/internal/gauntlet"
	"github.com/jwwharrell/the-gauntlet/internal/health"
	"github.com/jwwharrell/the-gauntlet/internal/middleware"
	"github.com/jwwharrell/the-gauntlet/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to optional YAML config file")
	help := flag.Bool("help", false, "display help message")
	flag.Parse()

	if *help {
		fmt.Println("The Gauntlet API Server")
		fmt.Println()
		fmt.Println("Usage: api [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	cfg, errs := config.Load(*configPath)
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, "config error:", err)
		}
		os.Exit(1)
	}

	logger := middleware.NewLogger(cfg.Env)
	slog.SetDefault(logger)
	logger.Info("configuration loaded", "config", cfg.LogSummary())

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Redis is optional. Without it search results are fetched from the
	// catalog on every request.
	var redisClient *redis.Client
	var redisChecker health.Checker
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()
		redisChecker = health.NewRedisChecker(redisClient)
	}

	engine := gauntlet.NewEngine(store.NewPostgres(db, cfg.CollectionName, logger), logger)

	catalogBase := cfg.CatalogBaseURL
	if catalogBase == "" {
		catalogBase = catalog.DefaultBaseURL
	}
	var searcher catalog.Searcher = catalog.New(catalogBase, catalog.WithLimit(cfg.CatalogSearchLimit))
	searcher = catalog.NewCachedSearcher(searcher, redisClient, time.Duration(cfg.SearchCacheTTLSecs)*time.Second, logger)

	metrics := middleware.NewMetrics()
	registry := prometheus.NewRegistry()
	if err := metrics.Register(registry); err != nil {
		logger.Error("failed to register metrics", "error", err)
		os.Exit(1)
	}

	limitStore := middleware.NewInMemoryRateLimitStore()

	router := api.NewRouter(api.RouterConfig{
		Engine:         engine,
		Searcher:       searcher,
		Tokens:         auth.NewService(cfg.JWTSecret),
		Passphrase:     cfg.Passphrase,
		Metrics:        metrics,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		DBChecker:      health.NewDBChecker(db),
		RedisChecker:   redisChecker,
		LimitStore:     limitStore,
		SearchLimit:    middleware.PerMinute(cfg.SearchRateLimit),
		AuthLimit:      middleware.PerMinute(cfg.AuthRateLimit),
	})

	// Apply middleware: RequestID -> Logging -> HTTPMetrics -> global rate limit
	var handler http.Handler = router
	handler = middleware.RateLimiter(limitStore, middleware.PerMinute(cfg.GlobalRateLimit), middleware.IPKeyFunc())(handler)
	handler = middleware.HTTPMetrics(metrics)(handler)
	handler = middleware.RequestID(middleware.Logging(logger)(handler))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
