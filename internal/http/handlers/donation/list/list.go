// Package list реализует HTTP-обработчик списка доноров.
package list

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/nulltracker-premium/internal/donor"
	"github.com/magabrotheeeer/nulltracker-premium/internal/http/response"
)

// Handler отдает список доноров.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс чтения списка.
type Service interface {
	List() []donor.PublicEntry
	Supporters() int
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список доноров
// @Description Новые пожертвования первыми. Скрытые доноры показываются как Anonymous.
// @Tags Donations
// @Produce  json
// @Success 200 {object} response.Response "donors и supporters"
// @Router /donations [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"supporters": h.service.Supporters(),
		"donors":     h.service.List(),
	}))
}
