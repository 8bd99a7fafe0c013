package checkout

// NotificationType - вид всплывающего уведомления на странице.
type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
	NotificationInfo    NotificationType = "info"
)

// Notification - сообщение для пользователя о результате обращения к платёжной системе.
type Notification struct {
	Type    NotificationType `json:"type"`
	Message string           `json:"message"`
}

var (
	// PaymentFailed показывается при ошибке платёжной системы. Повтор не выполняется.
	PaymentFailed = Notification{
		Type:    NotificationError,
		Message: "Payment failed. Please try again or contact support.",
	}
	// PaymentCancelled показывается, если покупатель закрыл окно оплаты.
	PaymentCancelled = Notification{
		Type:    NotificationInfo,
		Message: "Your payment was cancelled. No charges were made to your account.",
	}
	// PaymentSucceeded показывается вместе со сводкой для проверки.
	PaymentSucceeded = Notification{
		Type:    NotificationSuccess,
		Message: "Payment successful! You will receive a confirmation email shortly.",
	}
)
