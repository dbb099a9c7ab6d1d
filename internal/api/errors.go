// Package api provides the HTTP handlers for the gauntlet API, including
// standardized error handling.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jwwharrell/the-gauntlet/internal/gauntlet"
	"github.com/jwwharrell/the-gauntlet/internal/middleware"
)

// Common error codes used throughout the API.
const (
	// ErrCodeValidation indicates input validation failure.
	ErrCodeValidation = "validation_error"

	// ErrCodeAuthFailed indicates authentication failure.
	ErrCodeAuthFailed = "auth_failed"

	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound = "not_found"

	// ErrCodeBadRequest indicates a malformed request.
	ErrCodeBadRequest = "bad_request"

	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "internal_error"

	// ErrCodeAlbumNotFound indicates a referenced album id is absent.
	ErrCodeAlbumNotFound = "album_not_found"

	// ErrCodeDuplicateAlbum indicates the external key is already ranked.
	ErrCodeDuplicateAlbum = "duplicate_album"

	// ErrCodeAlreadyBattled indicates the pair has a recorded battle.
	ErrCodeAlreadyBattled = "already_battled"

	// ErrCodeInvalidWinner indicates the winner id is not one of the
	// battling albums and not the draw sentinel.
	ErrCodeInvalidWinner = "invalid_winner"

	// ErrCodeNoPairsRemaining indicates the round robin is complete.
	ErrCodeNoPairsRemaining = "no_pairs_remaining"

	// ErrCodePersistence indicates the collection could not be saved.
	ErrCodePersistence = "persistence_error"

	// ErrCodeSearchFailed indicates the catalog search failed.
	ErrCodeSearchFailed = "search_failed"
)

// ErrorResponse represents the standard error response format.
// All API errors return JSON in this structure:
// {"error": {"code": "...", "message": "..."}}
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the error code and human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError writes a standardized JSON error response with the given
// status. The error code is propagated back to the logging middleware
// through the response writer.
func WriteError(w http.ResponseWriter, ctx context.Context, status int, code, message string) {
	ctx = middleware.SetErrorCode(ctx, code)
	middleware.UpdateResponseContext(w, ctx)

	errResp := ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}

	data, err := json.Marshal(errResp)
	if err != nil {
		slog.ErrorContext(ctx, "failed to marshal error response", "error", err)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.ErrorContext(ctx, "failed to write error response", "error", err)
	}
}

// WriteEngineError maps a ranking engine error to its HTTP status and
// error code and writes the standard error body.
func WriteEngineError(w http.ResponseWriter, ctx context.Context, err error) {
	switch {
	case errors.Is(err, gauntlet.ErrAlbumNotFound):
		WriteError(w, ctx, http.StatusNotFound, ErrCodeAlbumNotFound, err.Error())
	case errors.Is(err, gauntlet.ErrDuplicateAlbum):
		WriteError(w, ctx, http.StatusConflict, ErrCodeDuplicateAlbum, err.Error())
	case errors.Is(err, gauntlet.ErrAlreadyBattled):
		WriteError(w, ctx, http.StatusConflict, ErrCodeAlreadyBattled, err.Error())
	case errors.Is(err, gauntlet.ErrInvalidWinner):
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeInvalidWinner, err.Error())
	case errors.Is(err, gauntlet.ErrNoPairsRemaining):
		WriteError(w, ctx, http.StatusNotFound, ErrCodeNoPairsRemaining, err.Error())
	case errors.Is(err, gauntlet.ErrPersistence):
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodePersistence, "failed to persist the collection")
	default:
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
	}
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}
