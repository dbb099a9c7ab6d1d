package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jwwharrell/the-gauntlet/internal/auth"
	"github.com/jwwharrell/the-gauntlet/internal/catalog"
	"github.com/jwwharrell/the-gauntlet/internal/gauntlet"
	"github.com/jwwharrell/the-gauntlet/internal/store"
)

const testPassphrase = "open-sesame"

// stubSearcher is a canned catalog for handler tests.
type stubSearcher struct {
	results []catalog.SearchResult
	err     error
}

func (s *stubSearcher) Search(ctx context.Context, term string) ([]catalog.SearchResult, error) {
	return s.results, s.err
}

type testServer struct {
	handler http.Handler
	token   string
}

// newTestServer builds a router over a fresh in-memory store with a valid
// bearer token ready to use. Rate limiting is disabled.
func newTestServer(t *testing.T, searcher catalog.Searcher) *testServer {
	t.Helper()

	tokens := auth.NewService("test-secret")
	token, err := tokens.GenerateToken("owner")
	if err != nil {
		t.Fatal(err)
	}

	if searcher == nil {
		searcher = &stubSearcher{}
	}

	handler := NewRouter(RouterConfig{
		Engine:     gauntlet.NewEngine(store.NewMemory(), nil),
		Searcher:   searcher,
		Tokens:     tokens,
		Passphrase: testPassphrase,
	})

	return &testServer{handler: handler, token: token}
}

// do issues a request against the router. A nil body sends no payload;
// authed controls whether the test token is attached.
func (s *testServer) do(t *testing.T, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if authed {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func errorCodeOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeJSON[ErrorResponse](t, rec).Error.Code
}

// addAlbum creates an album through the API and returns it.
func (s *testServer) addAlbum(t *testing.T, key, title string) gauntlet.Album {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/albums", AddAlbumRequest{ExternalKey: key, Title: title, Artist: "artist"}, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("failed to add album %q: %d %s", title, rec.Code, rec.Body.String())
	}
	return decodeJSON[gauntlet.Album](t, rec)
}

func TestRouter_RankingRoutesRequireAuth(t *testing.T) {
	server := newTestServer(t, nil)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/albums"},
		{http.MethodPost, "/albums"},
		{http.MethodDelete, "/albums/some-id"},
		{http.MethodPost, "/albums/reorder"},
		{http.MethodPost, "/battles"},
		{http.MethodGet, "/battles/next"},
		{http.MethodGet, "/battles/pairs"},
		{http.MethodGet, "/search?term=x"},
	}
	for _, route := range routes {
		rec := server.do(t, route.method, route.path, nil, false)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401 without token, got %d", route.method, route.path, rec.Code)
		}
	}
}

func TestRouter_HealthIsPublic(t *testing.T) {
	server := newTestServer(t, nil)

	rec := server.do(t, http.MethodGet, "/health", nil, false)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for /health without token, got %d", rec.Code)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	server := newTestServer(t, nil)

	rec := server.do(t, http.MethodGet, "/nope", nil, true)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown route, got %d", rec.Code)
	}
}
