package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/jwwharrell/the-gauntlet/internal/gauntlet"
	"github.com/jwwharrell/the-gauntlet/internal/middleware"
)

// RecordBattleRequest represents the request body for recording a battle.
// An absent or empty winner_id is the draw sentinel.
type RecordBattleRequest struct {
	AlbumAID string `json:"album_a_id"`
	AlbumBID string `json:"album_b_id"`
	WinnerID string `json:"winner_id,omitempty"`
}

// PairsResponse wraps the unplayed pair listing.
type PairsResponse struct {
	Pairs []gauntlet.Pair `json:"pairs"`
}

// BattleHandlers holds dependencies for battle HTTP handlers. Shares the
// engine serialization mutex with the album handlers.
type BattleHandlers struct {
	engine  *gauntlet.Engine
	mu      *sync.Mutex
	metrics *middleware.Metrics
}

// NewBattleHandlers creates a new BattleHandlers instance. metrics may be
// nil.
func NewBattleHandlers(engine *gauntlet.Engine, mu *sync.Mutex, metrics *middleware.Metrics) *BattleHandlers {
	return &BattleHandlers{engine: engine, mu: mu, metrics: metrics}
}

// Record handles POST /battles - records a pairwise outcome, re-scores,
// and re-ranks the collection.
func (h *BattleHandlers) Record(w http.ResponseWriter, r *http.Request) {
	var req RecordBattleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r.Context(), http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON in request body")
		return
	}

	if strings.TrimSpace(req.AlbumAID) == "" || strings.TrimSpace(req.AlbumBID) == "" {
		WriteError(w, r.Context(), http.StatusBadRequest, ErrCodeValidation, "album_a_id and album_b_id are required")
		return
	}

	h.mu.Lock()
	result, err := h.engine.RecordBattle(r.Context(), req.AlbumAID, req.AlbumBID, req.WinnerID)
	h.mu.Unlock()
	if err != nil {
		WriteEngineError(w, r.Context(), err)
		return
	}

	if h.metrics != nil {
		outcome := "win"
		if result.Draw {
			outcome = "draw"
		}
		h.metrics.IncBattles(outcome)
	}

	WriteJSON(w, http.StatusOK, result)
}

// Next handles GET /battles/next - returns the first unplayed pair, or
// 404 once the round robin is complete.
func (h *BattleHandlers) Next(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	pair, err := h.engine.NextBattle(r.Context())
	h.mu.Unlock()
	if err != nil {
		WriteEngineError(w, r.Context(), err)
		return
	}
	WriteJSON(w, http.StatusOK, pair)
}

// Pairs handles GET /battles/pairs - lists every remaining unplayed pair
// in battle order.
func (h *BattleHandlers) Pairs(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	pairs, err := h.engine.ListUnplayedPairs(r.Context())
	h.mu.Unlock()
	if err != nil {
		WriteEngineError(w, r.Context(), err)
		return
	}
	WriteJSON(w, http.StatusOK, PairsResponse{Pairs: pairs})
}
