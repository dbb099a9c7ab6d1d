// Package config provides configuration loading and validation for the API
// server. It uses koanf to merge environment variables with optional file
// overrides; environment variables take precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration values for the API server.
type Config struct {
	// Server settings
	Port int    `koanf:"port"`
	Env  string `koanf:"env"`

	// Database
	DatabaseURL string `koanf:"database_url"`

	// Authentication
	JWTSecret  string `koanf:"jwt_secret"`
	Passphrase string `koanf:"passphrase"`

	// Ranking collection
	CollectionName string `koanf:"collection_name"`

	// Catalog (iTunes Search API)
	CatalogBaseURL     string `koanf:"catalog_base_url"`
	CatalogSearchLimit int    `koanf:"catalog_search_limit"`

	// Redis search cache (optional; empty addr disables caching)
	RedisAddr          string `koanf:"redis_addr"`
	SearchCacheTTLSecs int    `koanf:"search_cache_ttl_secs"`

	// Rate limits (requests per minute)
	GlobalRateLimit int `koanf:"global_rate_limit"`
	SearchRateLimit int `koanf:"search_rate_limit"`
	AuthRateLimit   int `koanf:"auth_rate_limit"`
}

// Configuration validation errors.
var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is required")
	ErrMissingPassphrase  = errors.New("GAUNTLET_PASSPHRASE is required")
	ErrInvalidPort        = errors.New("PORT must be a valid integer")
)

// Default values for non-secret configuration.
const (
	DefaultPort               = 8080
	DefaultEnv                = "development"
	DefaultCollectionName     = "gauntlet"
	DefaultCatalogSearchLimit = 25
	DefaultSearchCacheTTLSecs = 900
	DefaultGlobalRateLimit    = 120
	DefaultSearchRateLimit    = 30
	DefaultAuthRateLimit      = 10
)

// Load reads configuration from environment variables and an optional
// YAML config file. Returns the loaded config and a slice of validation
// errors (empty if valid). If a config file path is provided and the file
// cannot be loaded, an error is returned.
func Load(configFilePath string) (*Config, []error) {
	k := koanf.New(".")
	var loadErrs []error

	if configFilePath != "" {
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return nil, []error{fmt.Errorf("failed to load config file %s: %w", configFilePath, err)}
		}
	}

	port, portErr := getEnvIntOrDefault("PORT", k.Int("port"), DefaultPort)
	if portErr != nil {
		loadErrs = append(loadErrs, portErr)
	}

	searchLimit, err := getEnvIntOrDefault("CATALOG_SEARCH_LIMIT", k.Int("catalog_search_limit"), DefaultCatalogSearchLimit)
	if err != nil {
		loadErrs = append(loadErrs, err)
	}
	cacheTTL, err := getEnvIntOrDefault("SEARCH_CACHE_TTL_SECS", k.Int("search_cache_ttl_secs"), DefaultSearchCacheTTLSecs)
	if err != nil {
		loadErrs = append(loadErrs, err)
	}
	globalLimit, err := getEnvIntOrDefault("GLOBAL_RATE_LIMIT", k.Int("global_rate_limit"), DefaultGlobalRateLimit)
	if err != nil {
		loadErrs = append(loadErrs, err)
	}
	searchRate, err := getEnvIntOrDefault("SEARCH_RATE_LIMIT", k.Int("search_rate_limit"), DefaultSearchRateLimit)
	if err != nil {
		loadErrs = append(loadErrs, err)
	}
	authRate, err := getEnvIntOrDefault("AUTH_RATE_LIMIT", k.Int("auth_rate_limit"), DefaultAuthRateLimit)
	if err != nil {
		loadErrs = append(loadErrs, err)
	}

	cfg := &Config{
		Port:               port,
		Env:                getEnvOrDefault("GAUNTLET_ENV", k.String("env"), DefaultEnv),
		DatabaseURL:        getEnvOrKoanf("DATABASE_URL", k, "database_url"),
		JWTSecret:          getEnvOrKoanf("JWT_SECRET", k, "jwt_secret"),
		Passphrase:         getEnvOrKoanf("GAUNTLET_PASSPHRASE", k, "passphrase"),
		CollectionName:     getEnvOrDefault("GAUNTLET_COLLECTION", k.String("collection_name"), DefaultCollectionName),
		CatalogBaseURL:     getEnvOrKoanf("CATALOG_BASE_URL", k, "catalog_base_url"),
		RedisAddr:          getEnvOrKoanf("REDIS_ADDR", k, "redis_addr"),
		CatalogSearchLimit: searchLimit,
		SearchCacheTTLSecs: cacheTTL,
		GlobalRateLimit:    globalLimit,
		SearchRateLimit:    searchRate,
		AuthRateLimit:      authRate,
	}

	errs := cfg.Validate()
	errs = append(loadErrs, errs...)

	return cfg, errs
}

// getEnvOrKoanf returns the environment variable value if set, otherwise
// the koanf value.
func getEnvOrKoanf(envKey string, k *koanf.Koanf, koanfKey string) string {
	if val := os.Getenv(envKey); val != "" {
		return val
	}
	return k.String(koanfKey)
}

// getEnvOrDefault returns the environment variable value if set, otherwise
// the koanf value, or default.
func getEnvOrDefault(envKey string, koanfVal string, defaultVal string) string {
	if val := os.Getenv(envKey); val != "" {
		return val
	}
	if koanfVal != "" {
		return koanfVal
	}
	return defaultVal
}

// getEnvIntOrDefault returns the environment variable as int if set,
// otherwise the koanf value, or default. Returns an error if the
// environment variable is set but cannot be parsed as an integer.
func getEnvIntOrDefault(envKey string, koanfVal int, defaultVal int) (int, error) {
	if val := os.Getenv(envKey); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return 0, fmt.Errorf("%s must be a valid integer: %w", envKey, ErrInvalidPort)
		}
		return i, nil
	}
	if koanfVal != 0 {
		return koanfVal, nil
	}
	return defaultVal, nil
}

// Validate checks that all required configuration values are present.
// Returns a slice of validation errors (empty if valid).
func (c *Config) Validate() []error {
	var errs []error

	if c.DatabaseURL == "" {
		errs = append(errs, ErrMissingDatabaseURL)
	}
	if c.JWTSecret == "" {
		errs = append(errs, ErrMissingJWTSecret)
	}
	if c.Passphrase == "" {
		errs = append(errs, ErrMissingPassphrase)
	}

	return errs
}

// LogSummary returns a summary of the configuration suitable for logging.
// All secrets are masked to prevent accidental exposure.
func (c *Config) LogSummary() map[string]string {
	return map[string]string{
		"port":                  fmt.Sprintf("%d", c.Port),
		"env":                   c.Env,
		"database_url":          maskDatabaseURL(c.DatabaseURL),
		"jwt_secret":            maskSecret(c.JWTSecret),
		"passphrase":            maskSecret(c.Passphrase),
		"collection_name":       c.CollectionName,
		"catalog_base_url":      c.CatalogBaseURL,
		"catalog_search_limit":  fmt.Sprintf("%d", c.CatalogSearchLimit),
		"redis_addr":            c.RedisAddr,
		"search_cache_ttl_secs": fmt.Sprintf("%d", c.SearchCacheTTLSecs),
		"global_rate_limit":     fmt.Sprintf("%d", c.GlobalRateLimit),
		"search_rate_limit":     fmt.Sprintf("%d", c.SearchRateLimit),
		"auth_rate_limit":       fmt.Sprintf("%d", c.AuthRateLimit),
	}
}

// maskSecret masks a secret value, showing only the first 4 characters
// followed by ****. Secrets shorter than 8 characters are fully masked.
func maskSecret(s string) string {
	if s == "" {
		return "<not set>"
	}
	if len(s) < 8 {
		return "****"
	}
	return s[:4] + "****"
}

// maskDatabaseURL masks the password in a database URL.
func maskDatabaseURL(s string) string {
	if s == "" {
		return "<not set>"
	}

	schemeEnd := strings.Index(s, "://")
	if schemeEnd == -1 {
		return maskSecret(s)
	}

	rest := s[schemeEnd+3:]
	atIndex := strings.Index(rest, "@")
	if atIndex == -1 {
		return s // No credentials in URL
	}

	colonIndex := strings.Index(rest[:atIndex], ":")
	if colonIndex == -1 {
		return s // No password (only username)
	}

	scheme := s[:schemeEnd+3]
	user := rest[:colonIndex]
	hostAndPath := rest[atIndex:]

	return scheme + user + ":****" + hostAndPath
}
