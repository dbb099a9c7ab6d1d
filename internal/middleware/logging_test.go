package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func captureLog(t *testing.T, handler http.Handler, req *http.Request) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	rec := httptest.NewRecorder()
	Logging(logger)(handler).ServeHTTP(rec, req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode log entry %q: %v", buf.String(), err)
	}
	return entry
}

func TestLogging_Fields(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("ok"))
	})

	entry := captureLog(t, handler, httptest.NewRequest(http.MethodPost, "/albums", nil))

	if entry["method"] != "POST" || entry["path"] != "/albums" {
		t.Errorf("unexpected method/path: %v", entry)
	}
	if entry["status"] != float64(http.StatusCreated) {
		t.Errorf("expected status 201, got %v", entry["status"])
	}
	if entry["size"] != float64(2) {
		t.Errorf("expected size 2, got %v", entry["size"])
	}
	if entry["level"] != "INFO" {
		t.Errorf("expected INFO level, got %v", entry["level"])
	}
}

func TestLogging_ErrorCodeAndLevel(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		UpdateResponseContext(w, SetErrorCode(r.Context(), "album_not_found"))
		w.WriteHeader(http.StatusNotFound)
	})

	entry := captureLog(t, handler, httptest.NewRequest(http.MethodGet, "/albums/123", nil))

	if entry["level"] != "WARN" {
		t.Errorf("expected WARN level for 404, got %v", entry["level"])
	}
	if entry["error_code"] != "album_not_found" {
		t.Errorf("expected error_code album_not_found, got %v", entry["error_code"])
	}
}

func TestLogging_ServerErrorLevel(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	entry := captureLog(t, handler, httptest.NewRequest(http.MethodGet, "/albums", nil))

	if entry["level"] != "ERROR" {
		t.Errorf("expected ERROR level for 500, got %v", entry["level"])
	}
}

func TestLogging_UserFromUpdatedContext(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		UpdateResponseContext(w, SetUser(r.Context(), "owner"))
	})

	entry := captureLog(t, handler, httptest.NewRequest(http.MethodGet, "/albums", nil))

	if entry["user"] != "owner" {
		t.Errorf("expected user owner, got %v", entry["user"])
	}
}

func TestUpdateResponseContext_WalksNestedWriters(t *testing.T) {
	rec := httptest.NewRecorder()
	outer := newResponseWriter(rec, nil)
	inner := newResponseWriter(outer, nil)

	ctx := SetErrorCode(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "rate_limit_exceeded")
	UpdateResponseContext(inner, ctx)

	if GetErrorCode(outer.ctx) != "rate_limit_exceeded" {
		t.Error("expected the outer writer to see the updated context")
	}
	if GetErrorCode(inner.ctx) != "rate_limit_exceeded" {
		t.Error("expected the inner writer to see the updated context")
	}
}

func TestResponseWriter_FirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec, nil)

	rw.WriteHeader(http.StatusNotFound)
	rw.WriteHeader(http.StatusOK)

	if rw.statusCode != http.StatusNotFound {
		t.Errorf("expected first status to stick, got %d", rw.statusCode)
	}
}
