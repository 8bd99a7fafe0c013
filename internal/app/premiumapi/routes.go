// Package premiumapi собирает HTTP API страницы оплаты премиум-услуг и пожертвований.
package premiumapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/nulltracker-premium/internal/checkout"
	"github.com/magabrotheeeer/nulltracker-premium/internal/config"
	"github.com/magabrotheeeer/nulltracker-premium/internal/donation"
	"github.com/magabrotheeeer/nulltracker-premium/internal/http/handlers/admin/export"
	"github.com/magabrotheeeer/nulltracker-premium/internal/http/handlers/admin/login"
	"github.com/magabrotheeeer/nulltracker-premium/internal/http/handlers/cart"
	"github.com/magabrotheeeer/nulltracker-premium/internal/http/handlers/cart/billing"
	"github.com/magabrotheeeer/nulltracker-premium/internal/http/handlers/cart/cancel"
	cartcapture "github.com/magabrotheeeer/nulltracker-premium/internal/http/handlers/cart/capture"
	"github.com/magabrotheeeer/nulltracker-premium/internal/http/handlers/cart/create"
	"github.com/magabrotheeeer/nulltracker-premium/internal/http/handlers/cart/fail"
	cartorder "github.com/magabrotheeeer/nulltracker-premium/internal/http/handlers/cart/order"
	"github.com/magabrotheeeer/nulltracker-premium/internal/http/handlers/cart/promo"
	"github.com/magabrotheeeer/nulltracker-premium/internal/http/handlers/cart/read"
	"github.com/magabrotheeeer/nulltracker-premium/internal/http/handlers/cart/tier"
	"github.com/magabrotheeeer/nulltracker-premium/internal/http/handlers/catalog"
	donationcapture "github.com/magabrotheeeer/nulltracker-premium/internal/http/handlers/donation/capture"
	"github.com/magabrotheeeer/nulltracker-premium/internal/http/handlers/donation/list"
	donationorder "github.com/magabrotheeeer/nulltracker-premium/internal/http/handlers/donation/order"
	"github.com/magabrotheeeer/nulltracker-premium/internal/http/handlers/health"
	"github.com/magabrotheeeer/nulltracker-premium/internal/http/handlers/payment/save"
	"github.com/magabrotheeeer/nulltracker-premium/internal/http/middlewarectx"
	"github.com/magabrotheeeer/nulltracker-premium/internal/lib/jwt"
	"github.com/magabrotheeeer/nulltracker-premium/internal/services/admin"

	// Описание API для swagger UI.
	_ "github.com/magabrotheeeer/nulltracker-premium/docs"
)

// Deps - зависимости обработчиков.
type Deps struct {
	Checkout  *checkout.Service
	Donations *donation.Service
	Admin     *admin.Service
	Tokens    middlewarectx.TokenParser
	Health    health.Checker
	Metrics   http.Handler
	Limits    config.Checkout
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, d Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	limit := middlewarectx.RateLimitMiddleware(d.Limits.RateLimitRPS, d.Limits.RateLimitBurst, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", catalog.New(logger, d.Checkout.Catalog()).ServeHTTP)
		r.Get("/donations", list.New(logger, d.Donations).ServeHTTP)

		r.Route("/carts", func(r chi.Router) {
			r.With(limit).Post("/", create.New(logger, d.Checkout).ServeHTTP)
			r.Route("/{"+cart.IDParam+"}", func(r chi.Router) {
				r.Get("/", read.New(logger, d.Checkout).ServeHTTP)

				// Изменения корзины и обращения к платёжной системе
				r.Group(func(r chi.Router) {
					r.Use(limit)
					r.Put("/services/{"+tier.ServiceParam+"}", tier.New(logger, d.Checkout).ServeHTTP)
					r.Put("/billing", billing.New(logger, d.Checkout).ServeHTTP)
					r.Post("/promo", promo.New(logger, d.Checkout).ServeHTTP)
					r.Post("/orders", cartorder.New(logger, d.Checkout).ServeHTTP)
					r.Post("/capture", cartcapture.New(logger, d.Checkout).ServeHTTP)
					r.Post("/cancel", cancel.New(logger, d.Checkout).ServeHTTP)
					r.Post("/fail", fail.New(logger, d.Checkout).ServeHTTP)
				})
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(limit)
			r.Post("/payments", save.New(logger, d.Checkout).ServeHTTP)
			r.Post("/donations/orders", donationorder.New(logger, d.Donations).ServeHTTP)
			r.Post("/donations/capture", donationcapture.New(logger, d.Donations).ServeHTTP)
			r.Post("/admin/login", login.New(logger, d.Admin).ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(d.Tokens, jwt.RoleAdmin, logger))
			r.Get("/admin/donors/export", export.New(logger, d.Donations).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, d.Health).ServeHTTP)
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics)
	}
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
