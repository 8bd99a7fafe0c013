// Package health реализует HTTP-обработчик проверки состояния зависимостей.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/nulltracker-premium/internal/http/response"
	"github.com/magabrotheeeer/nulltracker-premium/internal/lib/sl"
)

// Checker опрашивает зависимости.
type Checker interface {
	Check(ctx context.Context) map[string]error
}

// Handler отдает состояние сервиса.
type Handler struct {
	log     *slog.Logger
	checker Checker
}

// New создает новый Handler.
func New(log *slog.Logger, checker Checker) *Handler {
	return &Handler{
		log:     log,
		checker: checker,
	}
}

// ServeHTTP godoc
// @Summary Состояние сервиса
// @Description 200, если все зависимости доступны, иначе 503 со статусом каждой.
// @Tags Health
// @Produce  json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.ErrorResponse
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	results := h.checker.Check(r.Context())
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	deps := make(map[string]string, len(results))
	healthy := true
	for _, name := range names {
		if err := results[name]; err != nil {
			healthy = false
			deps[name] = "unavailable"
			h.log.Warn("dependency is unavailable", sl.Op(op), slog.String("dependency", name), sl.Err(err))
			continue
		}
		deps[name] = "ok"
	}

	if !healthy {
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.ErrorWithData("service unavailable", deps))
		return
	}
	render.JSON(w, r, response.StatusOKWithData(deps))
}
