package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Donation - строка таблицы donations.
type Donation struct {
	ID           int64           `json:"id"`
	OrderID      string          `json:"order_id"`
	PayerID      string          `json:"payer_id"`
	PayerEmail   string          `json:"payer_email"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	DonorName    string          `json:"donor_name"`
	DonorMessage string          `json:"donor_message,omitempty"`
	ShowPublicly bool            `json:"show_publicly"`
	CreatedAt    time.Time       `json:"created_at"`
}
