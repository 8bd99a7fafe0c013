// Package login реализует HTTP-обработчик входа администратора.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/nulltracker-premium/internal/http/response"
	"github.com/magabrotheeeer/nulltracker-premium/internal/lib/sl"
	"github.com/magabrotheeeer/nulltracker-premium/internal/services/admin"
)

// Request - тело запроса входа.
type Request struct {
	Password string `json:"password" validate:"required"`
}

// Handler выполняет вход администратора.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс входа.
type Service interface {
	Login(ctx context.Context, password string) (string, error)
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
// @Summary Вход администратора
// @Description Проверяет пароль и возвращает JWT для выгрузки списка доноров.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body Request true "Пароль"
// @Success 200 {object} response.Response "token"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверный пароль"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 503 {object} response.ErrorResponse "Вход отключен"
// @Router /admin/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.login"
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

	token, err := h.service.Login(r.Context(), req.Password)
	switch {
	case errors.Is(err, admin.ErrInvalidCredentials):
		log.Warn("invalid admin password")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid credentials"))
		return
	case errors.Is(err, admin.ErrDisabled):
		log.Warn("admin login is disabled")
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("admin access is not configured"))
		return
	case err != nil:
		log.Error("failed to login", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("admin logged in")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"token": token,
	}))
}
