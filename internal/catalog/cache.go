package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL is how long cached search results stay fresh.
const DefaultCacheTTL = 15 * time.Minute

// CachedSearcher wraps a Searcher with a redis result cache keyed by the
// lower-cased search term. Redis failures fail open: the inner searcher
// is always consulted when the cache cannot answer.
type CachedSearcher struct {
	inner  Searcher
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

var _ Searcher = (*CachedSearcher)(nil)

// NewCachedSearcher creates a caching wrapper around inner. A nil redis
// client disables caching and passes every search through.
func NewCachedSearcher(inner Searcher, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedSearcher {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedSearcher{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Search returns cached results when available, otherwise delegates to
// the inner searcher and caches what it returns.
func (c *CachedSearcher) Search(ctx context.Context, term string) ([]SearchResult, error) {
	if c.client == nil {
		return c.inner.Search(ctx, term)
	}

	key := cacheKey(term)
	cached, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var results []SearchResult
		if err := json.Unmarshal(cached, &results); err == nil {
			return results, nil
		}
		c.logger.Debug("discarding undecodable cached search entry", "key", key)
	} else if err != redis.Nil {
		c.logger.Debug("search cache read failed", "key", key, "error", err)
	}

	results, err := c.inner.Search(ctx, term)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(results); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.Debug("search cache write failed", "key", key, "error", err)
		}
	}
	return results, nil
}

func cacheKey(term string) string {
	return "search:" + strings.ToLower(strings.TrimSpace(term))
}
