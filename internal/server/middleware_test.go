package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORSMiddleware_StampsHeaders(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	wrapped := CORSMiddleware(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/proxy", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
	want := "authorization, x-client-info, apikey, content-type"
	if got := rec.Header().Get("Access-Control-Allow-Headers"); got != want {
		t.Errorf("Allow-Headers = %q, want %q", got, want)
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, handler status should pass through", rec.Code)
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	// The inner handler must never run for OPTIONS.
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler invoked for preflight request")
	})

	wrapped := CORSMiddleware(handler)

	req := httptest.NewRequest(http.MethodOptions, "/api/turn", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("preflight status = %d, want 200", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if string(body) != "ok" {
		t.Errorf("preflight body = %q, want ok", body)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(RequestIDKey).(string)
	})

	wrapped := RequestIDMiddleware(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if seen == "" {
		t.Error("request ID missing from context")
	}
	if rec.Header().Get("X-Request-ID") != seen {
		t.Errorf("X-Request-ID header = %q, want %q", rec.Header().Get("X-Request-ID"), seen)
	}
}

func TestWrap_ChainOrder(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	wrapped := Wrap(handler, logger)

	// OPTIONS short-circuits before the handler.
	req := httptest.NewRequest(http.MethodOptions, "/api/proxy", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("preflight status = %d, want 200", rec.Code)
	}

	// Non-OPTIONS reaches the handler with CORS headers and a request ID.
	req = httptest.NewRequest(http.MethodPost, "/api/proxy", nil)
	rec = httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("CORS headers missing on wrapped handler response")
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("request ID missing on wrapped handler response")
	}
}
