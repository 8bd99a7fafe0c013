package premiumapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/streadway/amqp"
	"google.golang.org/grpc"

	"github.com/magabrotheeeer/nulltracker-premium/internal/cache"
	"github.com/magabrotheeeer/nulltracker-premium/internal/checkout"
	"github.com/magabrotheeeer/nulltracker-premium/internal/config"
	"github.com/magabrotheeeer/nulltracker-premium/internal/donation"
	"github.com/magabrotheeeer/nulltracker-premium/internal/donor"
	"github.com/magabrotheeeer/nulltracker-premium/internal/grpc/server"
	"github.com/magabrotheeeer/nulltracker-premium/internal/lib/jwt"
	"github.com/magabrotheeeer/nulltracker-premium/internal/lib/sl"
	"github.com/magabrotheeeer/nulltracker-premium/internal/metrics"
	"github.com/magabrotheeeer/nulltracker-premium/internal/migrations"
	"github.com/magabrotheeeer/nulltracker-premium/internal/paypal"
	"github.com/magabrotheeeer/nulltracker-premium/internal/pricing"
	"github.com/magabrotheeeer/nulltracker-premium/internal/rabbitmq"
	"github.com/magabrotheeeer/nulltracker-premium/internal/services/admin"
	"github.com/magabrotheeeer/nulltracker-premium/internal/storage/repository"
)

const (
	shutdownTimeout     = 15 * time.Second
	healthCheckInterval = 10 * time.Second
)

// App - HTTP API и gRPC health-сервер.
type App struct {
	server       *http.Server
	grpcServer   *grpc.Server
	grpcListener net.Listener
	health       *server.HealthServer
	logger       *slog.Logger
	db           *repository.Storage
	cache        *cache.Cache
	amqpConn     *amqp.Connection
	amqpCh       *amqp.Channel
}

// New подключает зависимости и собирает приложение. Пустая строка подключения
// к базе отключает сохранение платежей, пустой адрес RabbitMQ отключает события.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "premiumapi.New"
	a := &App{logger: logger}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a.cache = cacheRedis
	checks := map[string]server.Pinger{"redis": cacheRedis}

	var (
		payments  checkout.PaymentRepository
		donations donation.Repository
	)
	if cfg.StorageConnectionString != "" {
		db, err := repository.New(ctx, cfg.StorageConnectionString)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		a.db = db
		if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
			a.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		payments, donations = db, db
		checks["postgres"] = db
	} else {
		logger.Warn("storage connection string is empty, payments will not be persisted")
	}

	var events checkout.EventPublisher
	if cfg.RabbitMQURL != "" {
		conn, err := rabbitmq.Connect(ctx, cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		a.amqpConn = conn
		ch, err := rabbitmq.SetupChannel(conn, cfg.RabbitMQExchange, rabbitmq.GetReceiptQueues())
		if err != nil {
			a.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		a.amqpCh = ch
		events = rabbitmq.NewPublisher(ch, cfg.RabbitMQExchange)
	} else {
		logger.Warn("rabbitmq url is empty, receipts will not be sent")
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	widget := paypal.NewClient(cfg.PayPalClientID, cfg.PayPalSecret, cfg.PayPalAPIURL, cfg.PayPalTimeout)

	leaderboard := donor.NewLeaderboard(cacheRedis, logger)
	if err := leaderboard.Load(ctx); err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	checkoutService := checkout.New(logger, pricing.DefaultCatalog(), pricing.DefaultPromoCodes(),
		checkout.NewRedisCartStore(cacheRedis, cfg.CartTTL), widget, payments, events, m)
	donationService := donation.New(logger, widget, leaderboard, donations, events, m)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	adminService := admin.New(cfg.AdminPasswordHash, jwtMaker)

	a.health = server.NewHealthServer(checks, healthCheckInterval, logger)
	a.grpcServer = grpc.NewServer()
	a.health.Register(a.grpcServer)
	lis, err := net.Listen("tcp", cfg.AddressGRPC)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a.grpcListener = lis

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Deps{
		Checkout:  checkoutService,
		Donations: donationService,
		Admin:     adminService,
		Tokens:    jwtMaker,
		Health:    a.health,
		Metrics:   promhttp.Handler(),
		Limits:    cfg.Checkout,
	})

	a.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return a, nil
}

// Run запускает HTTP и gRPC серверы и останавливает их при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	go func() {
		a.logger.Info("gRPC health service listening on", slog.String("address", a.grpcListener.Addr().String()))
		errCh <- a.grpcServer.Serve(a.grpcListener)
	}()

	healthCtx, stopHealth := context.WithCancel(ctx)
	defer stopHealth()
	go a.health.Run(healthCtx)

	var runErr error
	select {
	case runErr = <-errCh:
	case <-ctx.Done():
	}

	timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.logger.Info("shutting down HTTP server gracefully")
	if err := a.server.Shutdown(timeoutCtx); err != nil && runErr == nil {
		runErr = err
	}
	a.grpcServer.GracefulStop()
	a.close()
	return runErr
}

func (a *App) close() {
	if a.amqpCh != nil {
		if err := a.amqpCh.Close(); err != nil {
			a.logger.Error("failed to close channel", sl.Err(err))
		}
	}
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Error("failed to close connection", sl.Err(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("failed to close database", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("failed to close redis", sl.Err(err))
		}
	}
}
