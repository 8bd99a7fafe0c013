package pricing

import (
	"fmt"
	"maps"
)

// CartState - сериализуемое состояние корзины для хранения сессии.
// Цены не сохраняются: при восстановлении они берутся из каталога.
type CartState struct {
	Variant    string            `json:"variant"`
	Selections map[string]string `json:"selections"`
	Yearly     bool              `json:"yearly"`
	PromoCode  string            `json:"promo_code,omitempty"`
}

// State снимает состояние корзины.
func (c *Cart) State() CartState {
	st := CartState{
		Variant:    c.variant.Name,
		Selections: make(map[string]string, len(c.selected)),
		Yearly:     c.yearly,
	}
	for id, s := range c.selected {
		st.Selections[id] = s.TierID
	}
	if c.promo != nil {
		st.PromoCode = c.promo.Code
	}
	return st
}

// Equal сравнивает два состояния корзины.
func (s CartState) Equal(o CartState) bool {
	return s.Variant == o.Variant &&
		s.Yearly == o.Yearly &&
		s.PromoCode == o.PromoCode &&
		maps.Equal(s.Selections, o.Selections)
}

// RestoreCart восстанавливает корзину из состояния. Промокод, которого больше
// нет в таблице, молча отбрасывается.
func RestoreCart(catalog *Catalog, promos PromoTable, st CartState) (*Cart, error) {
	const op = "pricing.RestoreCart"

	v, ok := LookupVariant(st.Variant)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ErrUnknownVariant, st.Variant)
	}
	c := NewCart(catalog, promos, v)
	for serviceID, tierID := range st.Selections {
		if err := c.SelectTier(serviceID, tierID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	if err := c.SetYearlyBilling(st.Yearly); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if st.PromoCode != "" && v.SupportsPromoCodes {
		if p, ok := promos.Lookup(st.PromoCode); ok {
			c.promo = &p
		}
	}
	return c, nil
}

// Summary - представление корзины для страницы оплаты.
type Summary struct {
	Variant     string            `json:"variant"`
	Product     string            `json:"product"`
	Services    []SelectedService `json:"services"`
	Yearly      bool              `json:"yearly"`
	Billing     string            `json:"billing"`
	PromoCode   string            `json:"promo_code,omitempty"`
	Totals      Totals            `json:"totals"`
	Description string            `json:"description"`
}

// Summary собирает сводку для повторной отрисовки страницы.
func (c *Cart) Summary() Summary {
	s := Summary{
		Variant:     c.variant.Name,
		Product:     c.variant.ProductName,
		Services:    c.Selected(),
		Yearly:      c.yearly,
		Billing:     c.BillingLabel(),
		Totals:      c.ComputeTotals(),
		Description: c.OrderDescription(),
	}
	if c.promo != nil {
		s.PromoCode = c.promo.Code
	}
	return s
}
