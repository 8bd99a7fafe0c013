package middlewarectx_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/nulltracker-premium/internal/http/middlewarectx"
	"github.com/magabrotheeeer/nulltracker-premium/internal/lib/jwt"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	maker := jwt.NewJWTMaker("secret", time.Hour)
	adminToken, err := maker.GenerateToken("admin", jwt.RoleAdmin)
	require.NoError(t, err)
	otherToken, err := maker.GenerateToken("bot", "viewer")
	require.NoError(t, err)
	foreignToken, err := jwt.NewJWTMaker("other-secret", time.Hour).GenerateToken("admin", jwt.RoleAdmin)
	require.NoError(t, err)

	tests := []struct {
		name           string
		authHeader     string
		wantStatusCode int
		wantCalled     bool
	}{
		{name: "missing Authorization header", wantStatusCode: http.StatusUnauthorized},
		{name: "invalid Authorization header prefix", authHeader: "Basic sometoken", wantStatusCode: http.StatusUnauthorized},
		{name: "garbage token", authHeader: "Bearer token", wantStatusCode: http.StatusUnauthorized},
		{name: "token signed with another key", authHeader: "Bearer " + foreignToken, wantStatusCode: http.StatusUnauthorized},
		{name: "wrong role", authHeader: "Bearer " + otherToken, wantStatusCode: http.StatusForbidden},
		{name: "valid token", authHeader: "Bearer " + adminToken, wantStatusCode: http.StatusOK, wantCalled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				assert.Equal(t, "admin", r.Context().Value(middlewarectx.Subject))
				assert.Equal(t, jwt.RoleAdmin, r.Context().Value(middlewarectx.Role))
				w.WriteHeader(http.StatusOK)
			})
			h := middlewarectx.JWTMiddleware(maker, jwt.RoleAdmin, newNoopLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatusCode, rr.Code)
			assert.Equal(t, tt.wantCalled, called)
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := middlewarectx.RateLimitMiddleware(0.001, 2, newNoopLogger())(next)

	codes := make([]int, 0, 3)
	for range 3 {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/carts", nil))
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
