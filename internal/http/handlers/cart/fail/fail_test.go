package fail

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

	"github.com/magabrotheeeer/nulltracker-premium/internal/checkout"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Fail(ctx context.Context, id, reason string) (checkout.Notification, error) {
	args := m.Called(ctx, id, reason)
	return args.Get(0).(checkout.Notification), args.Error(1)
}

func TestFailHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	newRequest := func(id, body string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/carts/"+id+"/fail", strings.NewReader(body))
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	tests := []struct {
		name       string
		id         string
		body       string
		mockSetup  func(*MockService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "with reason",
			id:   "cart-1",
			body: `{"reason":"INSTRUMENT_DECLINED"}`,
			mockSetup: func(m *MockService) {
				m.On("Fail", mock.Anything, "cart-1", "INSTRUMENT_DECLINED").Return(checkout.PaymentFailed, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   checkout.PaymentFailed.Message,
		},
		{
			name: "empty body",
			id:   "cart-1",
			body: "",
			mockSetup: func(m *MockService) {
				m.On("Fail", mock.Anything, "cart-1", "").Return(checkout.PaymentFailed, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"type":"error"`,
		},
		{
			name:       "reason too long",
			id:         "cart-1",
			body:       `{"reason":"` + strings.Repeat("x", 501) + `"}`,
			mockSetup:  func(*MockService) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "field Reason must be at most 500",
		},
		{
			name: "unknown cart",
			id:   "cart-9",
			body: `{}`,
			mockSetup: func(m *MockService) {
				m.On("Fail", mock.Anything, "cart-9", "").
					Return(checkout.Notification{}, fmt.Errorf("op: %w", checkout.ErrCartNotFound))
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.mockSetup(svc)

			w := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(w, newRequest(tt.id, tt.body))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
			svc.AssertExpectations(t)
		})
	}
}
