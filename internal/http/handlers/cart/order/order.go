// Package order реализует HTTP-обработчик создания заказа по корзине.
//
// Перед обращением к платёжной системе корзина проверяется: выбрана хотя бы одна
// услуга, заданы User ID и Guild ID (если вариант их требует), сумма больше нуля.
// Ошибка проверки возвращается со статусом 422 и именем поля.
package order

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/nulltracker-premium/internal/checkout"
	"github.com/magabrotheeeer/nulltracker-premium/internal/http/handlers/cart"
	"github.com/magabrotheeeer/nulltracker-premium/internal/http/response"
	"github.com/magabrotheeeer/nulltracker-premium/internal/lib/sl"
	"github.com/magabrotheeeer/nulltracker-premium/internal/pricing"
)

// Request - идентификаторы Discord, к которым привязывается покупка.
type Request struct {
	UserID  string `json:"user_id" example:"123456789012345678"`
	GuildID string `json:"guild_id" example:"876543210987654321"`
}

// Handler создает заказы.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс создания заказа.
type Service interface {
	CreateOrder(ctx context.Context, id string, identity pricing.Identity) (*checkout.OrderResult, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Создать заказ
// @Description Проверяет корзину и создает заказ в PayPal. Возвращает ID заказа и отправленный запрос.
// @Tags Cart
// @Accept  json
// @Produce  json
// @Param id path string true "ID корзины"
// @Param request body Request false "User ID и Guild ID"
// @Success 201 {object} response.Response "order_id, approve_url, request, totals"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Корзина не найдена"
// @Failure 409 {object} response.ErrorResponse "Корзина изменилась во время создания заказа"
// @Failure 422 {object} response.ErrorResponse "Корзина не прошла проверку"
// @Failure 502 {object} response.ErrorResponse "Ошибка платёжной системы"
// @Router /carts/{id}/orders [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.order"
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

	res, err := h.service.CreateOrder(r.Context(), id, pricing.Identity{UserID: req.UserID, GuildID: req.GuildID})
	if err != nil {
		cart.RenderError(w, r, log, err, "could not create order")
		return
	}

	log.Info("order created", slog.String("order_id", res.OrderID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(res))
}
