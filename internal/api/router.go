package api

import (
	"net/http"
	"sync"

	"github.com/jwwharrell/the-gauntlet/internal/auth"
	"github.com/jwwharrell/the-gauntlet/internal/catalog"
	"github.com/jwwharrell/the-gauntlet/internal/gauntlet"
	"github.com/jwwharrell/the-gauntlet/internal/health"
	"github.com/jwwharrell/the-gauntlet/internal/middleware"
)

// RouterConfig wires the handler dependencies.
type RouterConfig struct {
	Engine     *gauntlet.Engine
	Searcher   catalog.Searcher
	Tokens     *auth.Service
	Passphrase string

	Metrics        *middleware.Metrics
	MetricsHandler http.Handler

	DBChecker    health.Checker
	RedisChecker health.Checker

	// Rate limiting. LimitStore may be nil to disable rate limiting
	// (tests).
	LimitStore  middleware.RateLimitStore
	SearchLimit middleware.RateLimitConfig
	AuthLimit   middleware.RateLimitConfig
}

// NewRouter builds the route table. All ranking routes sit behind bearer
// auth, and every engine call is serialized through one mutex because the
// engine assumes a single writer.
func NewRouter(cfg RouterConfig) http.Handler {
	var engineMu sync.Mutex

	albums := NewAlbumHandlers(cfg.Engine, &engineMu)
	battles := NewBattleHandlers(cfg.Engine, &engineMu, cfg.Metrics)
	searches := NewSearchHandlers(cfg.Searcher)
	auths := NewAuthHandlers(cfg.Tokens, cfg.Passphrase)
	healths := NewHealthHandlers(HealthHandlersConfig{
		DBChecker:    cfg.DBChecker,
		RedisChecker: cfg.RedisChecker,
	})

	requireAuth := middleware.Auth(cfg.Tokens)

	limit := func(config middleware.RateLimitConfig, next http.Handler) http.Handler {
		if cfg.LimitStore == nil {
			return next
		}
		return middleware.RateLimiter(cfg.LimitStore, config, middleware.IPKeyFunc())(next)
	}

	mux := http.NewServeMux()

	mux.Handle("POST /auth/token", limit(cfg.AuthLimit, http.HandlerFunc(auths.Token)))

	mux.Handle("GET /albums", requireAuth(http.HandlerFunc(albums.List)))
	mux.Handle("POST /albums", requireAuth(http.HandlerFunc(albums.Create)))
	mux.Handle("DELETE /albums/{id}", requireAuth(http.HandlerFunc(albums.Delete)))
	mux.Handle("POST /albums/reorder", requireAuth(http.HandlerFunc(albums.Reorder)))

	mux.Handle("POST /battles", requireAuth(http.HandlerFunc(battles.Record)))
	mux.Handle("GET /battles/next", requireAuth(http.HandlerFunc(battles.Next)))
	mux.Handle("GET /battles/pairs", requireAuth(http.HandlerFunc(battles.Pairs)))

	mux.Handle("GET /search", limit(cfg.SearchLimit, requireAuth(http.HandlerFunc(searches.Search))))

	mux.HandleFunc("GET /health", healths.Health)
	mux.HandleFunc("GET /ready", healths.Ready)
	if cfg.MetricsHandler != nil {
		mux.Handle("GET /metrics", cfg.MetricsHandler)
	}

	return mux
}
