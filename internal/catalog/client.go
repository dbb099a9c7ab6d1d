// Package catalog provides the external music catalog collaborator: album
// search against the iTunes Search API, with an optional redis-backed
// result cache. The ranking engine never calls the catalog itself; it only
// consumes results the handlers have already fetched.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the public iTunes Search API endpoint.
const DefaultBaseURL = "https://itunes.apple.com"

// DefaultLimit is the default maximum number of search results.
const DefaultLimit = 25

// SearchResult is one album from the catalog, carrying exactly the fields
// the engine needs to add it to the gauntlet.
type SearchResult struct {
	ExternalKey string `json:"external_key"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Year        string `json:"year,omitempty"`
	ArtworkURL  string `json:"artwork_url,omitempty"`
}

// Searcher is the catalog search operation consumed by the API handlers.
type Searcher interface {
	Search(ctx context.Context, term string) ([]SearchResult, error)
}

// itunesResult models a single entry of the iTunes search response.
type itunesResult struct {
	CollectionID   int64  `json:"collectionId"`
	CollectionName string `json:"collectionName"`
	ArtistName     string `json:"artistName"`
	ReleaseDate    string `json:"releaseDate"`
	ArtworkURL100  string `json:"artworkUrl100"`
}

// itunesResponse models the iTunes search response envelope.
type itunesResponse struct {
	ResultCount int            `json:"resultCount"`
	Results     []itunesResult `json:"results"`
}

// Client queries the iTunes Search API for albums.
type Client struct {
	baseURL    string
	limit      int
	httpClient *http.Client
}

var _ Searcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLimit overrides the maximum number of results per search.
func WithLimit(limit int) Option {
	return func(c *Client) {
		if limit > 0 {
			c.limit = limit
		}
	}
}

// New creates a catalog client. An empty baseURL falls back to the public
// iTunes endpoint.
func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		limit:      DefaultLimit,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Search looks up albums matching the term. Results keep the catalog's
// relevance order.
func (c *Client) Search(ctx context.Context, term string) ([]SearchResult, error) {
	query := url.Values{}
	query.Set("term", term)
	query.Set("media", "music")
	query.Set("entity", "album")
	query.Set("limit", strconv.Itoa(c.limit))

	endpoint := c.baseURL + "/search?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog search failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog search returned status %d", resp.StatusCode)
	}

	var decoded itunesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	results := make([]SearchResult, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		if r.CollectionID == 0 {
			continue
		}
		results = append(results, SearchResult{
			ExternalKey: strconv.FormatInt(r.CollectionID, 10),
			Title:       r.CollectionName,
			Artist:      r.ArtistName,
			Year:        releaseYear(r.ReleaseDate),
			ArtworkURL:  r.ArtworkURL100,
		})
	}
	return results, nil
}

// releaseYear extracts the year from an iTunes release date, which is
// RFC 3339 shaped (e.g. "1969-09-26T07:00:00Z").
func releaseYear(releaseDate string) string {
	if len(releaseDate) < 4 {
		return ""
	}
	year := releaseDate[:4]
	if _, err := strconv.Atoi(year); err != nil {
		return ""
	}
	return year
}
