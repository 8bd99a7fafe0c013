// Package models содержит доменные структуры, которые сохраняются в базе
// и передаются между HTTP-слоем, сервисами и брокером сообщений.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment - оплаченный премиум-заказ.
type Payment struct {
	ID         int64           `json:"id"`
	OrderID    string          `json:"order_id"`
	UserID     string          `json:"user_id"`
	GuildID    string          `json:"guild_id"`
	Services   []string        `json:"services"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Billing    string          `json:"billing"`
	PromoCode  string          `json:"promo_code,omitempty"`
	PayerID    string          `json:"payer_id"`
	PayerEmail string          `json:"payer_email"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

// SavePaymentRequest - тело POST /api/v1/payments, которое страница отправляет после оплаты.
type SavePaymentRequest struct {
	UserID   string   `json:"userId" validate:"required"`
	GuildID  string   `json:"guildId" validate:"required"`
	Services []string `json:"services" validate:"required,min=1,dive,required"`
	OrderID  string   `json:"orderId" validate:"required"`
}
