// Package catalog реализует HTTP-обработчик справочника услуг и вариантов страницы оплаты.
package catalog

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/nulltracker-premium/internal/http/response"
	"github.com/magabrotheeeer/nulltracker-premium/internal/pricing"
)

// Handler отдает каталог.
type Handler struct {
	log     *slog.Logger
	catalog *pricing.Catalog
}

// New создает новый Handler.
func New(log *slog.Logger, catalog *pricing.Catalog) *Handler {
	return &Handler{
		log:     log,
		catalog: catalog,
	}
}

// ServeHTTP godoc
// @Summary Каталог услуг
// @Description Возвращает услуги с тарифами и ценами за месяц, а также варианты страницы оплаты с их возможностями.
// @Tags Catalog
// @Produce  json
// @Success 200 {object} response.Response "services и variants"
// @Router /catalog [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"services": h.catalog.Services(),
		"variants": pricing.Variants(),
	}))
}
