// Package export реализует HTTP-обработчик выгрузки списка доноров в JSON-файл.
package export

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/nulltracker-premium/internal/donor"
	"github.com/magabrotheeeer/nulltracker-premium/internal/http/response"
	"github.com/magabrotheeeer/nulltracker-premium/internal/lib/sl"
)

// Handler отдает выгрузку.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс выгрузки.
type Service interface {
	Export() (*donor.Export, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Выгрузить список доноров
// @Description Возвращает файл nulltracker_donors_<дата>.json с датой выгрузки, числом доноров, общей суммой и записями.
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} donor.Export "Файл выгрузки"
// @Failure 401 {object} response.ErrorResponse "Нет или неверный токен"
// @Failure 404 {object} response.ErrorResponse "Список доноров пуст"
// @Router /admin/donors/export [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.export"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	exp, err := h.service.Export()
	switch {
	case errors.Is(err, donor.ErrNoDonors):
		log.Info("no donors to export")
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(donor.NoDonorsMessage))
		return
	case err != nil:
		log.Error("failed to export donors", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not export donors"))
		return
	}

	log.Info("donors exported", slog.Int("total_donors", exp.TotalDonors))
	w.Header().Set("Content-Disposition", `attachment; filename="`+exp.FileName()+`"`)
	render.JSON(w, r, exp)
}
