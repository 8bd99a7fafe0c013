package cart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/nulltracker-premium/internal/checkout"
	"github.com/magabrotheeeer/nulltracker-premium/internal/pricing"
)

func TestRenderError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name         string
		err          error
		wantStatus   int
		wantContains string
	}{
		{
			name:         "validation",
			err:          &pricing.ValidationError{Field: "user_id", Message: "User ID is required."},
			wantStatus:   http.StatusUnprocessableEntity,
			wantContains: `"field":"user_id"`,
		},
		{
			name:         "not found",
			err:          fmt.Errorf("checkout.Service.Summary: %w", checkout.ErrCartNotFound),
			wantStatus:   http.StatusNotFound,
			wantContains: `"error":"cart not found"`,
		},
		{
			name:         "unknown tier",
			err:          fmt.Errorf("pricing.Cart.SelectTier: %w: %q", pricing.ErrUnknownTier, "gold"),
			wantStatus:   http.StatusBadRequest,
			wantContains: `"error":"unknown tier"`,
		},
		{
			name:         "order mismatch",
			err:          fmt.Errorf("op: %w", checkout.ErrOrderMismatch),
			wantStatus:   http.StatusConflict,
			wantContains: "order does not belong to cart",
		},
		{
			name:         "cart changed during order creation",
			err:          fmt.Errorf("op: %w", checkout.ErrCartChanged),
			wantStatus:   http.StatusConflict,
			wantContains: "cart changed while the order was being created",
		},
		{
			name:         "provider",
			err:          fmt.Errorf("op: %w: %w", checkout.ErrProvider, errors.New("timeout")),
			wantStatus:   http.StatusBadGateway,
			wantContains: checkout.PaymentFailed.Message,
		},
		{
			name:         "unexpected",
			err:          errors.New("redis down"),
			wantStatus:   http.StatusInternalServerError,
			wantContains: `"error":"could not do it"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			RenderError(w, r, logger, tt.err, "could not do it")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantContains)
			assert.NotContains(t, w.Body.String(), "redis down")
		})
	}
}

func TestID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/carts/abc", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(IDParam, " abc ")
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

	assert.Equal(t, "abc", ID(r))
}
