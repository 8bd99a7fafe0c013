// Package paypal - клиент REST API PayPal Orders v2 и типы заказа.
// Ответы платёжной системы считаются внешними данными: отсутствующие поля
// не приводят к ошибке, а заменяются значениями по умолчанию.
package paypal

import (
	"github.com/shopspring/decimal"
)

const (
	CurrencyUSD   = "USD"
	IntentCapture = "CAPTURE"
	// NotAvailable подставляется вместо отсутствующих полей ответа.
	NotAvailable = "N/A"

	StatusCompleted = "COMPLETED"
)

// Amount - денежная сумма в формате PayPal: строка с двумя знаками после точки.
type Amount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

// PurchaseUnit - позиция заказа.
type PurchaseUnit struct {
	Amount      Amount `json:"amount"`
	Description string `json:"description,omitempty"`
	CustomID    string `json:"custom_id,omitempty"`
}

// OrderRequest - тело запроса на создание заказа.
type OrderRequest struct {
	Intent        string         `json:"intent"`
	PurchaseUnits []PurchaseUnit `json:"purchase_units"`
}

// Link - HATEOAS-ссылка из ответа, например approve.
type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method,omitempty"`
}

// Order - ответ на создание заказа.
type Order struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  []Link `json:"links,omitempty"`
}

// ApproveURL возвращает ссылку, по которой покупатель подтверждает оплату.
func (o *Order) ApproveURL() string {
	for _, l := range o.Links {
		if l.Rel == "approve" || l.Rel == "payer-action" {
			return l.Href
		}
	}
	return ""
}

// Payer - плательщик.
type Payer struct {
	PayerID      string `json:"payer_id"`
	EmailAddress string `json:"email_address"`
}

// Capture - отдельное списание внутри позиции.
type Capture struct {
	ID     string  `json:"id"`
	Status string  `json:"status"`
	Amount *Amount `json:"amount,omitempty"`
}

// CapturedUnit - позиция заказа в ответе на списание.
type CapturedUnit struct {
	Amount   *Amount `json:"amount,omitempty"`
	CustomID string  `json:"custom_id,omitempty"`
	Payments struct {
		Captures []Capture `json:"captures"`
	} `json:"payments"`
}

// CaptureResult - ответ на списание по заказу.
type CaptureResult struct {
	ID            string         `json:"id"`
	Status        string         `json:"status"`
	Payer         *Payer         `json:"payer,omitempty"`
	PurchaseUnits []CapturedUnit `json:"purchase_units"`
}

// PaymentID возвращает идентификатор заказа или "N/A".
func (r *CaptureResult) PaymentID() string {
	if r == nil || r.ID == "" {
		return NotAvailable
	}
	return r.ID
}

// PayerID возвращает идентификатор плательщика или "N/A".
func (r *CaptureResult) PayerID() string {
	if r == nil || r.Payer == nil || r.Payer.PayerID == "" {
		return NotAvailable
	}
	return r.Payer.PayerID
}

// PayerEmail возвращает адрес плательщика или "N/A".
func (r *CaptureResult) PayerEmail() string {
	if r == nil || r.Payer == nil || r.Payer.EmailAddress == "" {
		return NotAvailable
	}
	return r.Payer.EmailAddress
}

func (r *CaptureResult) amount() *Amount {
	if r == nil || len(r.PurchaseUnits) == 0 {
		return nil
	}
	u := r.PurchaseUnits[0]
	if u.Amount != nil {
		return u.Amount
	}
	if len(u.Payments.Captures) > 0 {
		return u.Payments.Captures[0].Amount
	}
	return nil
}

// AmountValue возвращает списанную сумму первой позиции или "0.00".
func (r *CaptureResult) AmountValue() string {
	if a := r.amount(); a != nil && a.Value != "" {
		return a.Value
	}
	return "0.00"
}

// CurrencyCode возвращает валюту первой позиции или "USD".
func (r *CaptureResult) CurrencyCode() string {
	if a := r.amount(); a != nil && a.CurrencyCode != "" {
		return a.CurrencyCode
	}
	return CurrencyUSD
}

// AmountDecimal разбирает AmountValue. Некорректное значение даёт ноль.
func (r *CaptureResult) AmountDecimal() decimal.Decimal {
	d, err := decimal.NewFromString(r.AmountValue())
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatAmount форматирует сумму с фиксированными двумя знаками после точки.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
