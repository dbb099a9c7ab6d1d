package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// normalizePath converts paths with dynamic segments to route patterns to
// prevent cardinality explosion in metrics, mapping /albums/123 to
// /albums/{id}.
func normalizePath(path string) string {
	staticRoutes := map[string]bool{
		"/":               true,
		"/albums":         true,
		"/albums/reorder": true,
		"/battles":        true,
		"/battles/next":   true,
		"/battles/pairs":  true,
		"/search":         true,
		"/auth/token":     true,
		"/health":         true,
		"/ready":          true,
		"/metrics":        true,
	}

	if staticRoutes[path] {
		return path
	}

	// /albums/{id} is the only dynamic route.
	if strings.HasPrefix(path, "/albums/") {
		parts := strings.Split(path, "/")
		if len(parts) == 3 && parts[2] != "" {
			return "/albums/{id}"
		}
	}

	// Fallback: return as-is so new routes keep producing metrics.
	return path
}

// HTTPMetrics is a middleware that records request duration and counts.
// Health check endpoints are excluded to avoid noise.
func HTTPMetrics(metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" || r.URL.Path == "/ready" {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()

			rw := newResponseWriter(w, r.Context())

			next.ServeHTTP(rw, r)

			duration := time.Since(start).Seconds()
			path := normalizePath(r.URL.Path)

			metrics.ObserveHTTPRequest(r.Method, path, strconv.Itoa(rw.statusCode), duration)
			if rw.statusCode == http.StatusTooManyRequests {
				metrics.IncRateLimitBlocked(path)
			}
		})
	}
}
