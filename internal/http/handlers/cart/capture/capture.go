// Package capture реализует HTTP-обработчик подтверждения оплаты.
//
// Handler вызывается после одобрения платежа покупателем, списывает средства
// и возвращает уведомление и сводку для проверки платежа.
package capture

import (
	"context"
	"encoding/json"
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

// Request - тело запроса.
type Request struct {
	OrderID string `json:"order_id" validate:"required" example:"5O190127TN364715T"`
}

// Handler подтверждает оплату.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс списания.
type Service interface {
	Capture(ctx context.Context, id, orderID string) (*checkout.CaptureResult, error)
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
// @Summary Подтвердить оплату
// @Description Списывает средства по заказу корзины. Возвращает уведомление и сводку для проверки платежа.
// @Tags Cart
// @Accept  json
// @Produce  json
// @Param id path string true "ID корзины"
// @Param request body Request true "ID заказа"
// @Success 200 {object} response.Response "notification, verification, text"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Корзина не найдена"
// @Failure 409 {object} response.ErrorResponse "Заказ не создан или принадлежит другой корзине"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "Ошибка платёжной системы"
// @Router /carts/{id}/capture [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.capture"
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

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	res, err := h.service.Capture(r.Context(), id, req.OrderID)
	if err != nil {
		cart.RenderError(w, r, log, err, "could not capture payment")
		return
	}

	log.Info("payment captured", slog.String("order_id", req.OrderID))
	render.JSON(w, r, response.StatusOKWithData(res))
}
