// Package notifier собирает фоновый сервис, который отправляет письма
// по событиям об оплате и пожертвованиях из RabbitMQ.
package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/nulltracker-premium/internal/config"
	"github.com/magabrotheeeer/nulltracker-premium/internal/lib/sl"
	"github.com/magabrotheeeer/nulltracker-premium/internal/lib/smtp"
	"github.com/magabrotheeeer/nulltracker-premium/internal/rabbitmq"
	notifierservice "github.com/magabrotheeeer/nulltracker-premium/internal/services/notifier"
)

// App - потребитель очередей квитанций.
type App struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	notifier *notifierservice.Service
	logger   *slog.Logger
}

// New подключается к RabbitMQ и объявляет очереди квитанций.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "notifier.New"
	conn, err := rabbitmq.Connect(ctx, cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ch, err := rabbitmq.SetupChannel(conn, cfg.RabbitMQExchange, rabbitmq.GetReceiptQueues())
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	transport := smtp.NewTransport(cfg.SMTP, logger)

	return &App{
		conn:     conn,
		ch:       ch,
		notifier: notifierservice.New(logger, transport),
		logger:   logger,
	}, nil
}

// Run запускает потребителей и блокируется до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	const op = "notifier.Run"
	defer a.close()

	consumers := []struct {
		queue   string
		handler rabbitmq.Handler
	}{
		{rabbitmq.QueuePaymentsCaptured, a.notifier.SendPaymentReceipt},
		{rabbitmq.QueueDonationsCaptured, a.notifier.SendDonationThanks},
	}
	for _, c := range consumers {
		if err := rabbitmq.ConsumerMessage(ctx, a.ch, c.queue, c.handler, a.logger); err != nil {
			a.logger.Error("failed to start consumer", slog.String("queue", c.queue), sl.Err(err))
			return fmt.Errorf("%s: %w", op, err)
		}
		a.logger.Info("consumer started", slog.String("queue", c.queue))
	}

	<-ctx.Done()
	a.logger.Info("notifier shutting down gracefully")
	return nil
}

func (a *App) close() {
	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
}
