package health

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type checkerFunc func(ctx context.Context) map[string]error

func (f checkerFunc) Check(ctx context.Context) map[string]error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	t.Run("healthy", func(t *testing.T) {
		h := New(logger, checkerFunc(func(context.Context) map[string]error {
			return map[string]error{"redis": nil, "postgres": nil}
		}))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"OK","data":{"postgres":"ok","redis":"ok"}}`, w.Body.String())
	})

	t.Run("degraded", func(t *testing.T) {
		h := New(logger, checkerFunc(func(context.Context) map[string]error {
			return map[string]error{"redis": errors.New("refused"), "postgres": nil}
		}))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"redis":"unavailable"`)
		assert.NotContains(t, w.Body.String(), "refused")
	})
}
