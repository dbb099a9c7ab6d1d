package api

import (
	"net/http"

	"github.com/jwwharrell/the-gauntlet/internal/catalog"
	"github.com/jwwharrell/the-gauntlet/internal/validate"
)

// SearchResponse wraps catalog search results.
type SearchResponse struct {
	Results []catalog.SearchResult `json:"results"`
}

// SearchHandlers holds dependencies for catalog search handlers.
type SearchHandlers struct {
	searcher catalog.Searcher
}

// NewSearchHandlers creates a new SearchHandlers instance.
func NewSearchHandlers(searcher catalog.Searcher) *SearchHandlers {
	return &SearchHandlers{searcher: searcher}
}

// Search handles GET /search?term= - looks up albums in the external
// catalog. Results are candidates for POST /albums.
func (h *SearchHandlers) Search(w http.ResponseWriter, r *http.Request) {
	term, err := validate.String(r.URL.Query().Get("term"), validate.StringConstraints{MaxLength: 256, TrimSpace: true})
	if err != nil {
		WriteError(w, r.Context(), http.StatusBadRequest, ErrCodeValidation, "term query parameter is required and must be at most 256 characters")
		return
	}

	results, err := h.searcher.Search(r.Context(), term)
	if err != nil {
		WriteError(w, r.Context(), http.StatusBadGateway, ErrCodeSearchFailed, "catalog search failed")
		return
	}
	if results == nil {
		results = []catalog.SearchResult{}
	}

	WriteJSON(w, http.StatusOK, SearchResponse{Results: results})
}
