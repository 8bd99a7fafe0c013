// Package promo реализует HTTP-обработчик применения промокода.
//
// Неверный код не считается ошибкой запроса: ответ 200 содержит applied=false
// и сообщение для показа под полем ввода.
package promo

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

// Request - тело запроса.
type Request struct {
	Code string `json:"code" example:"SAVE20"`
}

// Handler применяет промокоды.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс применения промокода.
type Service interface {
	ApplyPromoCode(ctx context.Context, id, code string) (pricing.PromoResult, pricing.Summary, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Применить промокод
// @Description Код сравнивается без учета регистра. Неверный код снимает ранее примененную скидку.
// @Tags Cart
// @Accept  json
// @Produce  json
// @Param id path string true "ID корзины"
// @Param request body Request true "Промокод"
// @Success 200 {object} response.Response "applied, message и сводка корзины"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Корзина не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /carts/{id}/promo [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.promo"
	id := cart.ID(r)
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("cart_id", id),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	res, summary, err := h.service.ApplyPromoCode(r.Context(), id, req.Code)
	if err != nil {
		cart.RenderError(w, r, log, err, "could not apply promo code")
		return
	}

	log.Info("promo code processed", slog.String("status", string(res.Status)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"applied": res.Applied(),
		"status":  res.Status,
		"message": res.Message,
		"summary": summary,
	}))
}
