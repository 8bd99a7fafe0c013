// Package read реализует HTTP-обработчик получения сводки корзины по ID.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/nulltracker-premium/internal/http/handlers/cart"
	"github.com/magabrotheeeer/nulltracker-premium/internal/http/response"
	"github.com/magabrotheeeer/nulltracker-premium/internal/pricing"
)

// Handler обрабатывает запросы на получение сводки корзины.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс чтения корзины.
type Service interface {
	Summary(ctx context.Context, id string) (pricing.Summary, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить корзину
// @Description Возвращает выбранные услуги, период оплаты, промокод и итоговые суммы.
// @Tags Cart
// @Produce  json
// @Param id path string true "ID корзины"
// @Success 200 {object} response.Response "Сводка корзины"
// @Failure 404 {object} response.ErrorResponse "Корзина не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /carts/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.read"
	id := cart.ID(r)
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("cart_id", id),
	)

	summary, err := h.service.Summary(r.Context(), id)
	if err != nil {
		cart.RenderError(w, r, log, err, "could not read cart")
		return
	}

	log.Debug("cart summary read")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"summary": summary,
	}))
}
