package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/jwwharrell/the-gauntlet/internal/gauntlet"
	"github.com/jwwharrell/the-gauntlet/internal/validate"
)

// AddAlbumRequest represents the request body for adding an album. The
// fields come from a catalog search result.
type AddAlbumRequest struct {
	ExternalKey string `json:"external_key"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Year        string `json:"year,omitempty"`
	ArtworkURL  string `json:"artwork_url,omitempty"`
}

// ReorderRequest represents the request body for a manual reorder: move
// one album to the position currently held by another.
type ReorderRequest struct {
	MovedID  string `json:"moved_id"`
	TargetID string `json:"target_id"`
}

// AlbumsResponse wraps a full collection response.
type AlbumsResponse struct {
	Albums []gauntlet.Album `json:"albums"`
}

// AlbumHandlers holds dependencies for album HTTP handlers. The mutex is
// shared with the battle handlers: the engine assumes a single writer, so
// every engine call is serialized through it.
type AlbumHandlers struct {
	engine *gauntlet.Engine
	mu     *sync.Mutex
}

// NewAlbumHandlers creates a new AlbumHandlers instance.
func NewAlbumHandlers(engine *gauntlet.Engine, mu *sync.Mutex) *AlbumHandlers {
	return &AlbumHandlers{engine: engine, mu: mu}
}

// List handles GET /albums - returns the normalized collection in rank
// order.
func (h *AlbumHandlers) List(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	albums, err := h.engine.List(r.Context())
	h.mu.Unlock()
	if err != nil {
		WriteEngineError(w, r.Context(), err)
		return
	}
	WriteJSON(w, http.StatusOK, AlbumsResponse{Albums: albums})
}

// Create handles POST /albums - adds a catalog search result to the
// gauntlet.
func (h *AlbumHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req AddAlbumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r.Context(), http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON in request body")
		return
	}

	externalKey, err := validate.String(req.ExternalKey, validate.StringConstraints{MaxLength: 64, TrimSpace: true})
	if err != nil {
		WriteError(w, r.Context(), http.StatusBadRequest, ErrCodeValidation, "external_key is required and must be at most 64 characters")
		return
	}
	title, err := validate.String(req.Title, validate.StringConstraints{MaxLength: 512, TrimSpace: true})
	if err != nil {
		WriteError(w, r.Context(), http.StatusBadRequest, ErrCodeValidation, "title is required and must be at most 512 characters")
		return
	}

	h.mu.Lock()
	album, err := h.engine.Add(r.Context(), gauntlet.AlbumInput{
		ExternalKey: externalKey,
		Title:       title,
		Artist:      req.Artist,
		Year:        req.Year,
		ArtworkURL:  req.ArtworkURL,
	})
	h.mu.Unlock()
	if err != nil {
		WriteEngineError(w, r.Context(), err)
		return
	}

	WriteJSON(w, http.StatusCreated, album)
}

// Delete handles DELETE /albums/{id} - removes an album and compacts the
// remaining ranks.
func (h *AlbumHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, r.Context(), http.StatusBadRequest, ErrCodeValidation, "album id is required")
		return
	}

	h.mu.Lock()
	err := h.engine.Remove(r.Context(), id)
	h.mu.Unlock()
	if err != nil {
		WriteEngineError(w, r.Context(), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reorder handles POST /albums/reorder - moves an album to the target
// album's position and returns the refreshed collection.
func (h *AlbumHandlers) Reorder(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r.Context(), http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON in request body")
		return
	}

	if strings.TrimSpace(req.MovedID) == "" || strings.TrimSpace(req.TargetID) == "" {
		WriteError(w, r.Context(), http.StatusBadRequest, ErrCodeValidation, "moved_id and target_id are required")
		return
	}

	h.mu.Lock()
	albums, err := h.engine.Reorder(r.Context(), req.MovedID, req.TargetID)
	h.mu.Unlock()
	if err != nil {
		WriteEngineError(w, r.Context(), err)
		return
	}

	WriteJSON(w, http.StatusOK, AlbumsResponse{Albums: albums})
}
