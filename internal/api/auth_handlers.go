package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/jwwharrell/the-gauntlet/internal/auth"
)

// TokenRequest represents the request body for exchanging the passphrase
// for an API token.
type TokenRequest struct {
	Passphrase string `json:"passphrase"`
}

// TokenResponse carries a freshly issued API token.
type TokenResponse struct {
	Token string `json:"token"`
}

// tokenSubject identifies the single owner of the gauntlet in issued
// tokens.
const tokenSubject = "owner"

// AuthHandlers holds dependencies for authentication handlers.
type AuthHandlers struct {
	tokens     *auth.Service
	passphrase string
}

// NewAuthHandlers creates a new AuthHandlers instance.
func NewAuthHandlers(tokens *auth.Service, passphrase string) *AuthHandlers {
	return &AuthHandlers{tokens: tokens, passphrase: passphrase}
}

// Token handles POST /auth/token - exchanges the configured passphrase
// for a bearer token.
func (h *AuthHandlers) Token(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r.Context(), http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON in request body")
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Passphrase), []byte(h.passphrase)) != 1 {
		WriteError(w, r.Context(), http.StatusUnauthorized, ErrCodeAuthFailed, "invalid passphrase")
		return
	}

	token, err := h.tokens.GenerateToken(tokenSubject)
	if err != nil {
		WriteError(w, r.Context(), http.StatusInternalServerError, ErrCodeInternal, "failed to issue token")
		return
	}

	WriteJSON(w, http.StatusOK, TokenResponse{Token: token})
}
