// Package cancel реализует HTTP-обработчик отмены оплаты покупателем.
package cancel

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/nulltracker-premium/internal/checkout"
	"github.com/magabrotheeeer/nulltracker-premium/internal/http/handlers/cart"
	"github.com/magabrotheeeer/nulltracker-premium/internal/http/response"
)

// Handler фиксирует отмену оплаты.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс отмены.
type Service interface {
	Cancel(ctx context.Context, id string) (checkout.Notification, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отменить оплату
// @Description Возвращает уведомление об отмене. Корзина сохраняется.
// @Tags Cart
// @Produce  json
// @Param id path string true "ID корзины"
// @Success 200 {object} response.Response "Уведомление"
// @Failure 404 {object} response.ErrorResponse "Корзина не найдена"
// @Router /carts/{id}/cancel [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.cancel"
	id := cart.ID(r)
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("cart_id", id),
	)

	n, err := h.service.Cancel(r.Context(), id)
	if err != nil {
		cart.RenderError(w, r, log, err, "could not cancel payment")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"notification": n,
	}))
}
