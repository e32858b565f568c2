package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	apiKey := "secret-key"
	handler := AuthMiddleware(apiKey, nil, NewSuspiciousActivityDetector())(okHandler())

	tests := []struct {
		name        string
		providedKey string
		path        string
		wantStatus  int
	}{
		{"valid key", apiKey, "/api/v1/recipes/search", http.StatusOK},
		{"wrong key", "wrong-key", "/api/v1/recipes/search", http.StatusUnauthorized},
		{"no key", "", "/api/v1/recipes/search", http.StatusUnauthorized},
		{"liveness is public", "", "/healthz", http.StatusOK},
		{"metrics are public", "", "/metrics", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.providedKey != "" {
				req.Header.Set(HeaderAPIKey, tt.providedKey)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAuthMiddlewareRecordsFailedAttempts(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	handler := AuthMiddleware("secret-key", nil, detector)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recipes/", nil)
	req.RemoteAddr = "203.0.113.7:4567"
	req.Header.Set(HeaderAPIKey, "wrong-key")

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	detector.mu.Lock()
	count := detector.failedAuthByIP["203.0.113.7"]
	detector.mu.Unlock()
	assert.Equal(t, 3, count)
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	handler := SecurityHeadersMiddleware()(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "SAMEORIGIN", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "1; mode=block", rec.Header().Get("X-XSS-Protection"))
	assert.Equal(t, "strict-origin-when-cross-origin", rec.Header().Get("Referrer-Policy"))
}

func TestSecurityLoggingMiddlewareRateLimits(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	handler := SecurityLoggingMiddleware(nil, detector)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes/", nil)
	req.RemoteAddr = "192.168.1.100:1234"

	// The per-IP budget is 1000 requests per window
	for i := 0; i < 1000; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d inside the budget", i)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	detector.mu.Lock()
	count := detector.requestCountByIP["192.168.1.100"]
	detector.mu.Unlock()
	assert.Equal(t, 1001, count)
}

func TestLoggingMiddlewareRedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	// Headers are only logged at debug level
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	handler := loggingMiddleware(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes/", nil)
	req.Header.Set(HeaderAPIKey, "secret-key-123")
	req.Header.Set(HeaderAuthorization, "Bearer mytoken")
	req.Header.Set("User-Agent", "ChefVoiceClient")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	out := buf.String()
	require.Contains(t, out, "Request headers")
	assert.NotContains(t, out, "secret-key-123", "credential values must never reach the log")
	assert.NotContains(t, out, "Bearer mytoken")
	assert.Contains(t, out, "ChefVoiceClient", "ordinary headers stay visible")
}
