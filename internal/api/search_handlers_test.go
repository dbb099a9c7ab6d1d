package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jwwharrell/the-gauntlet/internal/catalog"
)

func TestSearch(t *testing.T) {
	searcher := &stubSearcher{results: []catalog.SearchResult{
		{ExternalKey: "401186200", Title: "Abbey Road", Artist: "The Beatles", Year: "1969"},
	}}
	server := newTestServer(t, searcher)

	rec := server.do(t, http.MethodGet, "/search?term=beatles", nil, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeJSON[SearchResponse](t, rec)
	if len(resp.Results) != 1 || resp.Results[0].Title != "Abbey Road" {
		t.Errorf("unexpected results: %v", resp.Results)
	}
}

func TestSearch_MissingTerm(t *testing.T) {
	server := newTestServer(t, nil)

	for _, path := range []string{"/search", "/search?term=", "/search?term=%20"} {
		rec := server.do(t, http.MethodGet, path, nil, true)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, rec.Code)
			continue
		}
		if code := errorCodeOf(t, rec); code != ErrCodeValidation {
			t.Errorf("%s: expected %s, got %s", path, ErrCodeValidation, code)
		}
	}
}

func TestSearch_CatalogFailure(t *testing.T) {
	server := newTestServer(t, &stubSearcher{err: errors.New("catalog down")})

	rec := server.do(t, http.MethodGet, "/search?term=beatles", nil, true)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if code := errorCodeOf(t, rec); code != ErrCodeSearchFailed {
		t.Errorf("expected %s, got %s", ErrCodeSearchFailed, code)
	}
}

func TestSearch_NilResults(t *testing.T) {
	server := newTestServer(t, &stubSearcher{})

	rec := server.do(t, http.MethodGet, "/search?term=obscure", nil, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeJSON[SearchResponse](t, rec)
	if resp.Results == nil {
		t.Error("expected empty result list, got null")
	}
}
