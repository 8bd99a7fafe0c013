// Package order реализует HTTP-обработчик создания заказа на пожертвование.
package order

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/nulltracker-premium/internal/donation"
	"github.com/magabrotheeeer/nulltracker-premium/internal/http/response"
	"github.com/magabrotheeeer/nulltracker-premium/internal/lib/sl"
)

// Request - сумма пожертвования в долларах.
type Request struct {
	Amount decimal.Decimal `json:"amount" swaggertype:"string" example:"25.00"`
}

// Handler создает заказы на пожертвование.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс создания заказа.
type Service interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal) (*donation.Order, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Создать заказ на пожертвование
// @Description Создает заказ в PayPal на выбранную или введенную сумму.
// @Tags Donations
// @Accept  json
// @Produce  json
// @Param request body Request true "Сумма"
// @Success 201 {object} response.Response "order_id и отправленный запрос"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Сумма должна быть больше нуля"
// @Failure 502 {object} response.ErrorResponse "Ошибка платёжной системы"
// @Router /donations/orders [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.donation.order"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	order, err := h.service.CreateOrder(r.Context(), req.Amount)
	switch {
	case errors.Is(err, donation.ErrInvalidAmount):
		log.Info("invalid donation amount", slog.String("amount", req.Amount.String()))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.FieldError("amount", "Please enter a valid donation amount."))
		return
	case errors.Is(err, donation.ErrProvider):
		log.Error("payment provider failed", sl.Err(err))
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, response.Error(donation.Failed))
		return
	case err != nil:
		log.Error("failed to create donation order", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create donation order"))
		return
	}

	log.Info("donation order created", slog.String("order_id", order.OrderID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(order))
}
