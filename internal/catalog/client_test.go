package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Search(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("expected /search, got %s", r.URL.Path)
		}
		gotQuery = map[string]string{
			"term":   r.URL.Query().Get("term"),
			"media":  r.URL.Query().Get("media"),
			"entity": r.URL.Query().Get("entity"),
			"limit":  r.URL.Query().Get("limit"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"resultCount": 3,
			"results": [
				{
					"collectionId": 401186200,
					"collectionName": "Abbey Road (Remastered)",
					"artistName": "The Beatles",
					"releaseDate": "1969-09-26T07:00:00Z",
					"artworkUrl100": "https://example.com/abbey.jpg"
				},
				{
					"collectionId": 0,
					"collectionName": "Broken Entry",
					"artistName": "Nobody"
				},
				{
					"collectionId": 1440833098,
					"collectionName": "Revolver",
					"artistName": "The Beatles",
					"releaseDate": "not-a-date"
				}
			]
		}`))
	}))
	defer server.Close()

	client := New(server.URL, WithLimit(10))
	results, err := client.Search(context.Background(), "beatles")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if gotQuery["term"] != "beatles" || gotQuery["media"] != "music" || gotQuery["entity"] != "album" || gotQuery["limit"] != "10" {
		t.Errorf("unexpected query parameters: %v", gotQuery)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results (entries without a collection id are dropped), got %d", len(results))
	}

	first := results[0]
	if first.ExternalKey != "401186200" {
		t.Errorf("expected external key 401186200, got %s", first.ExternalKey)
	}
	if first.Title != "Abbey Road (Remastered)" || first.Artist != "The Beatles" {
		t.Errorf("unexpected title/artist: %s / %s", first.Title, first.Artist)
	}
	if first.Year != "1969" {
		t.Errorf("expected year 1969, got %q", first.Year)
	}
	if first.ArtworkURL != "https://example.com/abbey.jpg" {
		t.Errorf("unexpected artwork url: %s", first.ArtworkURL)
	}

	if results[1].Year != "" {
		t.Errorf("expected empty year for unparseable release date, got %q", results[1].Year)
	}
}

func TestClient_SearchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := New(server.URL)
	if _, err := client.Search(context.Background(), "beatles"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestClient_SearchBadPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := New(server.URL)
	if _, err := client.Search(context.Background(), "beatles"); err == nil {
		t.Fatal("expected error for undecodable response")
	}
}

func TestReleaseYear(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1969-09-26T07:00:00Z", "1969"},
		{"2024", "2024"},
		{"abc", ""},
		{"", ""},
		{"196", ""},
	}
	for _, tt := range tests {
		if got := releaseYear(tt.in); got != tt.want {
			t.Errorf("releaseYear(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNew_Defaults(t *testing.T) {
	client := New("")
	if client.baseURL != DefaultBaseURL {
		t.Errorf("expected default base url, got %s", client.baseURL)
	}
	if client.limit != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, client.limit)
	}

	client = New("https://example.com/")
	if client.baseURL != "https://example.com" {
		t.Errorf("expected trailing slash trimmed, got %s", client.baseURL)
	}
}
