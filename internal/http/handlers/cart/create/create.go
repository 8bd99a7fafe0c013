// Package create реализует HTTP-обработчик создания сессии корзины.
//
// Handler принимает вариант страницы оплаты, создаёт пустую корзину и возвращает
// её идентификатор вместе со сводкой для первой отрисовки.
package create

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

	"github.com/magabrotheeeer/nulltracker-premium/internal/http/handlers/cart"
	"github.com/magabrotheeeer/nulltracker-premium/internal/http/response"
	"github.com/magabrotheeeer/nulltracker-premium/internal/lib/sl"
	"github.com/magabrotheeeer/nulltracker-premium/internal/pricing"
)

// Request - тело запроса на создание корзины. Пустой вариант означает complete.
type Request struct {
	Variant string `json:"variant" validate:"omitempty,max=32"`
}

// Handler управляет HTTP-запросами на создание корзины.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс создания корзины.
type Service interface {
	NewCart(ctx context.Context, variant string) (string, pricing.Summary, error)
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
// @Summary Создать корзину
// @Description Создает сессию корзины для выбранного варианта страницы оплаты (classic, modern, update, complete).
// @Tags Cart
// @Accept  json
// @Produce  json
// @Param request body Request false "Вариант страницы"
// @Success 201 {object} response.Response "cart_id и сводка корзины"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или неизвестный вариант"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /carts [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if req.Variant == "" {
		req.Variant = pricing.VariantComplete
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id, summary, err := h.service.NewCart(r.Context(), req.Variant)
	if err != nil {
		cart.RenderError(w, r, log, err, "could not create cart")
		return
	}

	log.Info("cart created", slog.String("cart_id", id), slog.String("variant", summary.Variant))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"cart_id": id,
		"summary": summary,
	}))
}
