package cancel

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
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Cancel(ctx context.Context, id string) (checkout.Notification, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(checkout.Notification), args.Error(1)
}

func TestCancelHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	newRequest := func(id string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/carts/"+id+"/cancel", nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	t.Run("cancelled", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Cancel", mock.Anything, "cart-1").Return(checkout.PaymentCancelled, nil)

		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, newRequest("cart-1"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), checkout.PaymentCancelled.Message)
	})

	t.Run("unknown cart", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Cancel", mock.Anything, "cart-9").
			Return(checkout.Notification{}, fmt.Errorf("op: %w", checkout.ErrCartNotFound))

		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, newRequest("cart-9"))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
