package read

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/nulltracker-premium/internal/checkout"
	"github.com/magabrotheeeer/nulltracker-premium/internal/pricing"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Summary(ctx context.Context, id string) (pricing.Summary, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(pricing.Summary), args.Error(1)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "summary",
			id:   "cart-1",
			setupMock: func(m *MockService) {
				m.On("Summary", mock.Anything, "cart-1").
					Return(pricing.Summary{Variant: "update", Billing: "Monthly"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"billing":"Monthly"`,
		},
		{
			name: "expired cart",
			id:   "cart-2",
			setupMock: func(m *MockService) {
				m.On("Summary", mock.Anything, "cart-2").
					Return(pricing.Summary{}, fmt.Errorf("op: %w", checkout.ErrCartNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"cart not found"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/carts/"+tt.id, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
