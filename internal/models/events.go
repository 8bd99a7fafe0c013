package models

import "time"

// PaymentCapturedEvent публикуется после успешного списания по премиум-заказу.
type PaymentCapturedEvent struct {
	OrderID    string    `json:"order_id"`
	PayerEmail string    `json:"payer_email"`
	Amount     string    `json:"amount"`
	Currency   string    `json:"currency"`
	Billing    string    `json:"billing"`
	Discount   string    `json:"discount,omitempty"`
	Services   []string  `json:"services"`
	UserID     string    `json:"user_id,omitempty"`
	GuildID    string    `json:"guild_id,omitempty"`
	CapturedAt time.Time `json:"captured_at"`
}

// DonationCapturedEvent публикуется после успешного пожертвования.
type DonationCapturedEvent struct {
	OrderID    string    `json:"order_id"`
	PayerEmail string    `json:"payer_email"`
	DonorName  string    `json:"donor_name"`
	Amount     string    `json:"amount"`
	Currency   string    `json:"currency"`
	CapturedAt time.Time `json:"captured_at"`
}
