// Package fail реализует HTTP-обработчик ошибки окна оплаты.
package fail

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/nulltracker-premium/internal/checkout"
	"github.com/magabrotheeeer/nulltracker-premium/internal/http/handlers/cart"
	"github.com/magabrotheeeer/nulltracker-premium/internal/http/response"
	"github.com/magabrotheeeer/nulltracker-premium/internal/lib/sl"
)

// Request - необязательная причина ошибки от окна оплаты.
type Request struct {
	Reason string `json:"reason" validate:"max=500" example:"INSTRUMENT_DECLINED"`
}

// Handler фиксирует ошибку оплаты.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс фиксации ошибки.
type Service interface {
	Fail(ctx context.Context, id, reason string) (checkout.Notification, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Ошибка оплаты
// @Description Окно оплаты сообщает об ошибке. Возвращает уведомление, повтор не выполняется.
// @Tags Cart
// @Accept  json
// @Produce  json
// @Param id path string true "ID корзины"
// @Param request body Request false "Причина"
// @Success 200 {object} response.Response "Уведомление"
// @Failure 404 {object} response.ErrorResponse "Корзина не найдена"
// @Router /carts/{id}/fail [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.fail"
	id := cart.ID(r)
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("cart_id", id),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	n, err := h.service.Fail(r.Context(), id, req.Reason)
	if err != nil {
		cart.RenderError(w, r, log, err, "could not record payment error")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"notification": n,
	}))
}
