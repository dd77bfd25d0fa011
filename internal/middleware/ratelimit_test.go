package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimitAuth_DisabledPassesThrough(t *testing.T) {
	t.Parallel()

	// Disabled limiter must not touch the cache at all.
	mw := RateLimitAuth(RateLimitConfig{AuthEnabled: false})

	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)

	if !called {
		t.Error("next handler should run when rate limiting is disabled")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestWriteRateLimitError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeRateLimitError(rec, 7*time.Second)

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	want := `{"error":{"code":"RATE_LIMITED","message":"Rate limit exceeded. Retry after 7 seconds."}}`
	if rec.Body.String() != want {
		t.Errorf("body = %q, want %q", rec.Body.String(), want)
	}
}

func TestGetClientIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		xff        string
		xRealIP    string
		remoteAddr string
		want       string
	}{
		{"remote addr only", "", "", "203.0.113.1:54321", "203.0.113.1:54321"},
		{"x-real-ip", "", "203.0.113.2", "10.0.0.1:1234", "203.0.113.2"},
		{"x-forwarded-for single", "203.0.113.3", "", "10.0.0.1:1234", "203.0.113.3"},
		{"x-forwarded-for chain", "203.0.113.4,10.0.0.2,10.0.0.3", "", "10.0.0.1:1234", "203.0.113.4"},
		{"x-forwarded-for wins over x-real-ip", "203.0.113.5", "203.0.113.6", "10.0.0.1:1234", "203.0.113.5"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xRealIP != "" {
				req.Header.Set("X-Real-IP", tt.xRealIP)
			}

			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}
