package create

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/nulltracker-premium/internal/pricing"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) NewCart(ctx context.Context, variant string) (string, pricing.Summary, error) {
	args := m.Called(ctx, variant)
	return args.String(0), args.Get(1).(pricing.Summary), args.Error(2)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "classic variant",
			body: `{"variant":"classic"}`,
			setupMock: func(m *MockService) {
				m.On("NewCart", mock.Anything, "classic").
					Return("cart-1", pricing.Summary{Variant: "classic", Product: "Hinata Premium"}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"cart_id":"cart-1"`,
		},
		{
			name: "empty body defaults to complete",
			body: ``,
			setupMock: func(m *MockService) {
				m.On("NewCart", mock.Anything, pricing.VariantComplete).
					Return("cart-2", pricing.Summary{Variant: pricing.VariantComplete}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"variant":"complete"`,
		},
		{
			name:           "invalid JSON",
			body:           `{"variant":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "variant too long",
			body:           `{"variant":"` + strings.Repeat("x", 40) + `"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Variant must be at most 32 characters long`,
		},
		{
			name: "unknown variant",
			body: `{"variant":"legacy"}`,
			setupMock: func(m *MockService) {
				m.On("NewCart", mock.Anything, "legacy").
					Return("", pricing.Summary{}, fmt.Errorf("op: %w", pricing.ErrUnknownVariant))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"unknown checkout variant"`,
		},
		{
			name: "storage error",
			body: `{"variant":"modern"}`,
			setupMock: func(m *MockService) {
				m.On("NewCart", mock.Anything, "modern").
					Return("", pricing.Summary{}, errors.New("redis down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not create cart"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/carts", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
