package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DiscountKind - тип скидки промокода.
type DiscountKind string

const (
	// DiscountPercent - доля от суммы (0.10 = 10%).
	DiscountPercent DiscountKind = "percent"
	// DiscountFixed - фиксированная сумма в валюте заказа.
	DiscountFixed DiscountKind = "fixed"
)

// PromoCode - правило скидки, привязанное к коду.
type PromoCode struct {
	Code  string          `json:"code"`
	Kind  DiscountKind    `json:"kind"`
	Value decimal.Decimal `json:"value"`
}

// Discount считает скидку от base. Скидка никогда не превышает base,
// поэтому итог после неё не бывает отрицательным.
func (p PromoCode) Discount(base decimal.Decimal) decimal.Decimal {
	var d decimal.Decimal
	switch p.Kind {
	case DiscountPercent:
		d = base.Mul(p.Value)
	case DiscountFixed:
		d = p.Value
	default:
		return decimal.Zero
	}
	if d.GreaterThan(base) {
		d = base
	}
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// PromoTable - статическая таблица промокодов, ключ - нормализованный код.
type PromoTable map[string]PromoCode

// DefaultPromoCodes возвращает промокоды, действующие на странице оплаты.
func DefaultPromoCodes() PromoTable {
	return PromoTable{
		"SAVE10":     {Code: "SAVE10", Kind: DiscountPercent, Value: decimal.RequireFromString("0.10")},
		"5OFF":       {Code: "5OFF", Kind: DiscountFixed, Value: decimal.NewFromInt(5)},
		"HINATA2024": {Code: "HINATA2024", Kind: DiscountPercent, Value: decimal.RequireFromString("0.25")},
	}
}

// NormalizeCode приводит пользовательский ввод к виду ключа таблицы.
func NormalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Lookup ищет промокод по сырому вводу пользователя.
func (t PromoTable) Lookup(raw string) (PromoCode, bool) {
	p, ok := t[NormalizeCode(raw)]
	return p, ok
}

// PromoStatus - результат применения промокода.
type PromoStatus string

const (
	PromoApplied     PromoStatus = "applied"
	PromoInvalid     PromoStatus = "invalid"
	PromoUnsupported PromoStatus = "unsupported"
)

// PromoResult отдаётся интерфейсу вместо ошибки: неверный код - обычная ситуация ввода.
type PromoResult struct {
	Status  PromoStatus `json:"status"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message"`
}

// Applied сообщает, действует ли теперь скидка.
func (r PromoResult) Applied() bool {
	return r.Status == PromoApplied
}
