// Package capture реализует HTTP-обработчик подтверждения пожертвования.
//
// После списания донор добавляется в начало списка. Имя показывается,
// только если донор разрешил публикацию.
package capture

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/nulltracker-premium/internal/donation"
	"github.com/magabrotheeeer/nulltracker-premium/internal/donor"
	"github.com/magabrotheeeer/nulltracker-premium/internal/http/response"
	"github.com/magabrotheeeer/nulltracker-premium/internal/lib/sl"
)

// Request - ID заказа и данные формы донора.
type Request struct {
	OrderID string `json:"order_id" validate:"required"`
	donation.DonorInput
}

// Handler подтверждает пожертвования.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс списания пожертвования.
type Service interface {
	Capture(ctx context.Context, orderID string, in donation.DonorInput) (*donor.Record, error)
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
// @Summary Подтвердить пожертвование
// @Description Списывает средства и добавляет донора в список.
// @Tags Donations
// @Accept  json
// @Produce  json
// @Param request body Request true "ID заказа и данные донора"
// @Success 200 {object} response.Response "Запись донора"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "Ошибка платёжной системы"
// @Router /donations/capture [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.donation.capture"
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

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	rec, err := h.service.Capture(r.Context(), req.OrderID, req.DonorInput)
	switch {
	case errors.Is(err, donation.ErrProvider):
		log.Error("payment provider failed", sl.Err(err))
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, response.Error(donation.Failed))
		return
	case err != nil:
		log.Error("failed to capture donation", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not capture donation"))
		return
	}

	log.Info("donation captured", slog.String("order_id", req.OrderID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "Thank you for your donation, " + rec.DonorName + "!",
		"donor": donor.PublicEntry{
			Rank:    1,
			Name:    rec.DonorName,
			Message: rec.DonorMessage,
			Date:    rec.Date,
			Amount:  rec.Amount,
		},
	}))
}
