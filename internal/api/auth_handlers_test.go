package api

import (
	"net/http"
	"testing"
)

func TestAuthToken_Issue(t *testing.T) {
	server := newTestServer(t, nil)

	rec := server.do(t, http.MethodPost, "/auth/token", TokenRequest{Passphrase: testPassphrase}, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeJSON[TokenResponse](t, rec)
	if resp.Token == "" {
		t.Fatal("expected a token")
	}

	// The issued token is accepted by the protected routes.
	req := server.do(t, http.MethodGet, "/albums", nil, false)
	if req.Code != http.StatusUnauthorized {
		t.Fatalf("sanity check failed: expected 401 without token, got %d", req.Code)
	}
	server.token = resp.Token
	req = server.do(t, http.MethodGet, "/albums", nil, true)
	if req.Code != http.StatusOK {
		t.Errorf("expected issued token accepted, got %d", req.Code)
	}
}

func TestAuthToken_WrongPassphrase(t *testing.T) {
	server := newTestServer(t, nil)

	rec := server.do(t, http.MethodPost, "/auth/token", TokenRequest{Passphrase: "wrong"}, false)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if code := errorCodeOf(t, rec); code != ErrCodeAuthFailed {
		t.Errorf("expected %s, got %s", ErrCodeAuthFailed, code)
	}
}

func TestAuthToken_BadJSON(t *testing.T) {
	server := newTestServer(t, nil)

	rec := server.do(t, http.MethodPost, "/auth/token", "not an object", false)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if code := errorCodeOf(t, rec); code != ErrCodeBadRequest {
		t.Errorf("expected %s, got %s", ErrCodeBadRequest, code)
	}
}
