package catalog

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubSearcher struct {
	results []SearchResult
	err     error
	calls   int
}

func (s *stubSearcher) Search(ctx context.Context, term string) ([]SearchResult, error) {
	s.calls++
	return s.results, s.err
}

func TestCachedSearcher_NilClientPassesThrough(t *testing.T) {
	inner := &stubSearcher{results: []SearchResult{{ExternalKey: "1", Title: "Abbey Road"}}}
	cached := NewCachedSearcher(inner, nil, time.Minute, nil)

	results, err := cached.Search(context.Background(), "beatles")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || results[0].Title != "Abbey Road" {
		t.Errorf("unexpected results: %v", results)
	}
	if inner.calls != 1 {
		t.Errorf("expected inner searcher called once, got %d", inner.calls)
	}
}

func TestCachedSearcher_NilClientPropagatesErrors(t *testing.T) {
	inner := &stubSearcher{err: errors.New("catalog down")}
	cached := NewCachedSearcher(inner, nil, time.Minute, nil)

	if _, err := cached.Search(context.Background(), "beatles"); err == nil {
		t.Fatal("expected inner error to propagate")
	}
}

func TestCacheKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Beatles", "search:beatles"},
		{"  The Beatles  ", "search:the beatles"},
		{"OK Computer", "search:ok computer"},
	}
	for _, tt := range tests {
		if got := cacheKey(tt.in); got != tt.want {
			t.Errorf("cacheKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewCachedSearcher_DefaultTTL(t *testing.T) {
	cached := NewCachedSearcher(&stubSearcher{}, nil, 0, nil)
	if cached.ttl != DefaultCacheTTL {
		t.Errorf("expected default ttl %v, got %v", DefaultCacheTTL, cached.ttl)
	}
}
