// Package tier реализует HTTP-обработчик выбора тарифа услуги в корзине.
//
// Пустой tier соответствует пункту "Select Plan" и убирает услугу из корзины.
package tier

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/nulltracker-premium/internal/http/handlers/cart"
	"github.com/magabrotheeeer/nulltracker-premium/internal/http/response"
	"github.com/magabrotheeeer/nulltracker-premium/internal/lib/sl"
	"github.com/magabrotheeeer/nulltracker-premium/internal/pricing"
)

// ServiceParam - имя параметра маршрута с идентификатором услуги.
const ServiceParam = "service"

// Request - тело запроса выбора тарифа.
type Request struct {
	Tier string `json:"tier" example:"pro"`
}

// Handler управляет выбором тарифов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс выбора тарифа.
type Service interface {
	SelectTier(ctx context.Context, id, serviceID, tierID string) (pricing.Summary, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Выбрать тариф услуги
// @Description Выбирает тариф (basic, pro, enterprise) для услуги. Пустой tier убирает услугу. Созданный ранее заказ сбрасывается.
// @Tags Cart
// @Accept  json
// @Produce  json
// @Param id path string true "ID корзины"
// @Param service path string true "ID услуги"
// @Param request body Request true "Тариф"
// @Success 200 {object} response.Response "Сводка корзины"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, услуга или тариф"
// @Failure 404 {object} response.ErrorResponse "Корзина не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /carts/{id}/services/{service} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.tier"
	id := cart.ID(r)
	serviceID := strings.TrimSpace(chi.URLParam(r, ServiceParam))
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("cart_id", id),
		slog.String("service", serviceID),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	summary, err := h.service.SelectTier(r.Context(), id, serviceID, strings.TrimSpace(req.Tier))
	if err != nil {
		cart.RenderError(w, r, log, err, "could not update cart")
		return
	}

	log.Info("tier selected", slog.String("tier", req.Tier))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"summary": summary,
	}))
}
