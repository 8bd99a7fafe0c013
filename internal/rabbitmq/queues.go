package rabbitmq

const (
	// RoutingKeyPaymentCaptured - успешное списание по премиум-заказу.
	RoutingKeyPaymentCaptured = "payment.captured"
	// RoutingKeyDonationCaptured - успешное пожертвование.
	RoutingKeyDonationCaptured = "donation.captured"

	QueuePaymentsCaptured  = "payments.captured"
	QueueDonationsCaptured = "donations.captured"
)

// QueueConfig связывает очередь с ключом маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetReceiptQueues возвращает очереди, из которых отправляются квитанции.
func GetReceiptQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: QueuePaymentsCaptured, RoutingKey: RoutingKeyPaymentCaptured},
		{QueueName: QueueDonationsCaptured, RoutingKey: RoutingKeyDonationCaptured},
	}
}
