// Package billing реализует HTTP-обработчик переключения периода оплаты.
package billing

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/nulltracker-premium/internal/http/handlers/cart"
	"github.com/magabrotheeeer/nulltracker-premium/internal/http/response"
	"github.com/magabrotheeeer/nulltracker-premium/internal/lib/sl"
	"github.com/magabrotheeeer/nulltracker-premium/internal/pricing"
)

// Request - тело запроса. Поле обязательно: отсутствие значения не трактуется как false.
type Request struct {
	Yearly *bool `json:"yearly"`
}

// Handler управляет периодом оплаты.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс переключения периода оплаты.
type Service interface {
	SetYearlyBilling(ctx context.Context, id string, yearly bool) (pricing.Summary, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Переключить годовую оплату
// @Description Годовая оплата: месячная сумма x 12 со скидкой 20%. Доступна не во всех вариантах страницы.
// @Tags Cart
// @Accept  json
// @Produce  json
// @Param id path string true "ID корзины"
// @Param request body Request true "Период оплаты"
// @Success 200 {object} response.Response "Сводка корзины"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или вариант без годовой оплаты"
// @Failure 404 {object} response.ErrorResponse "Корзина не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /carts/{id}/billing [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.billing"
	id := cart.ID(r)
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("cart_id", id),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Yearly == nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	summary, err := h.service.SetYearlyBilling(r.Context(), id, *req.Yearly)
	if err != nil {
		cart.RenderError(w, r, log, err, "could not update cart")
		return
	}

	log.Info("billing period changed", slog.Bool("yearly", *req.Yearly))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"summary": summary,
	}))
}
