package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/nulltracker-premium/internal/lib/sl"
)

const maxInFlight = 10

// Handler обрабатывает тело сообщения. Ошибка возвращает сообщение в очередь.
type Handler func(ctx context.Context, body []byte) error

// ConsumerMessage создает потребителя сообщений из очереди queueName.
// Одновременно обрабатывается не больше maxInFlight сообщений.
func ConsumerMessage(ctx context.Context, ch *amqp.Channel, queueName string, handler Handler, log *slog.Logger) error {
	const op = "rabbitmq.ConsumerMessage"
	delivery, err := ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log = log.With(sl.Op(op), slog.String("queue", queueName))
	sem := make(chan struct{}, maxInFlight)
	go func() {
		for {
			select {
			case d, ok := <-delivery:
				if !ok {
					return
				}
				sem <- struct{}{}
				go func(d amqp.Delivery) {
					defer func() { <-sem }()
					if err := handler(ctx, d.Body); err != nil {
						log.Warn("handler failed, requeueing", sl.Err(err))
						if nackErr := d.Nack(false, !d.Redelivered); nackErr != nil {
							log.Error("failed to nack message", sl.Err(nackErr))
						}
						return
					}
					if ackErr := d.Ack(false); ackErr != nil {
						log.Error("failed to ack message", sl.Err(ackErr))
					}
				}(d)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}
