// Package cart содержит общие для обработчиков корзины функции: разбор
// идентификатора из URL и преобразование ошибок контроллера в HTTP-ответы.
// Сами обработчики лежат во вложенных пакетах.
package cart

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/nulltracker-premium/internal/checkout"
	"github.com/magabrotheeeer/nulltracker-premium/internal/http/response"
	"github.com/magabrotheeeer/nulltracker-premium/internal/lib/sl"
	"github.com/magabrotheeeer/nulltracker-premium/internal/pricing"
)

// IDParam - имя параметра маршрута с идентификатором корзины.
const IDParam = "id"

// ID возвращает идентификатор корзины из URL.
func ID(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, IDParam))
}

// RenderError пишет ответ для ошибки контроллера. fallback - сообщение для непредвиденных ошибок.
func RenderError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error, fallback string) {
	var verr *pricing.ValidationError
	switch {
	case errors.As(err, &verr):
		log.Info("cart validation failed", slog.String("field", verr.Field), slog.String("message", verr.Message))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.FieldError(verr.Field, verr.Message))
	case errors.Is(err, checkout.ErrCartNotFound):
		log.Warn("cart not found", sl.Err(err))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(checkout.ErrCartNotFound.Error()))
	case errors.Is(err, pricing.ErrUnknownVariant),
		errors.Is(err, pricing.ErrUnknownService),
		errors.Is(err, pricing.ErrUnknownTier),
		errors.Is(err, pricing.ErrYearlyNotSupported):
		log.Warn("invalid cart request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(sentinelMessage(err)))
	case errors.Is(err, checkout.ErrNoOrder),
		errors.Is(err, checkout.ErrOrderMismatch),
		errors.Is(err, checkout.ErrCartChanged):
		log.Warn("order conflict", sl.Err(err))
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error(sentinelMessage(err)))
	case errors.Is(err, checkout.ErrProvider):
		log.Error("payment provider failed", sl.Err(err))
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, response.ErrorWithData(fallback, checkout.PaymentFailed))
	default:
		log.Error(fallback, sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(fallback))
	}
}

var sentinels = []error{
	pricing.ErrUnknownVariant,
	pricing.ErrUnknownService,
	pricing.ErrUnknownTier,
	pricing.ErrYearlyNotSupported,
	checkout.ErrNoOrder,
	checkout.ErrOrderMismatch,
	checkout.ErrCartChanged,
}

// sentinelMessage возвращает текст известной ошибки без контекста вызова.
func sentinelMessage(err error) string {
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return err.Error()
}
