package billing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/nulltracker-premium/internal/pricing"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) SetYearlyBilling(ctx context.Context, id string, yearly bool) (pricing.Summary, error) {
	args := m.Called(ctx, id, yearly)
	return args.Get(0).(pricing.Summary), args.Error(1)
}

func TestBillingHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "yearly on",
			body: `{"yearly":true}`,
			setupMock: func(m *MockService) {
				m.On("SetYearlyBilling", mock.Anything, "cart-1", true).
					Return(pricing.Summary{Yearly: true, Billing: "Yearly"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"yearly":true`,
		},
		{
			name: "yearly off",
			body: `{"yearly":false}`,
			setupMock: func(m *MockService) {
				m.On("SetYearlyBilling", mock.Anything, "cart-1", false).
					Return(pricing.Summary{Billing: "Monthly"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"billing":"Monthly"`,
		},
		{
			name:           "missing field",
			body:           `{}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name: "variant without yearly billing",
			body: `{"yearly":true}`,
			setupMock: func(m *MockService) {
				m.On("SetYearlyBilling", mock.Anything, "cart-1", true).
					Return(pricing.Summary{}, fmt.Errorf("op: %w", pricing.ErrYearlyNotSupported))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `yearly billing is not supported by this variant`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPut, "/api/v1/carts/cart-1/billing", strings.NewReader(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "cart-1")
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
