package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/nulltracker-premium/internal/paypal"
)

var (
	monthsPerYear  = decimal.NewFromInt(12)
	yearlyMultiple = decimal.RequireFromString("0.8")
)

// SelectedService - выбранная позиция корзины. Для одной услуги в корзине
// может быть не больше одной позиции.
type SelectedService struct {
	ServiceID       string          `json:"service_id"`
	TierID          string          `json:"tier_id"`
	DisplayName     string          `json:"name"`
	TierDisplayName string          `json:"tier"`
	MonthlyPrice    decimal.Decimal `json:"monthly_price"`
}

// Totals - результат расчёта корзины.
// BaseTotal - сумма до промокода (для годовой оплаты уже со скидкой 20%).
type Totals struct {
	SubtotalMonthly decimal.Decimal `json:"subtotal_monthly"`
	BaseTotal       decimal.Decimal `json:"base_total"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
}

// Identity - идентификаторы пользователя и сервера Discord, к которым привязывается заказ.
type Identity struct {
	UserID  string `json:"user_id"`
	GuildID string `json:"guild_id"`
}

func (i Identity) trimmed() Identity {
	return Identity{UserID: strings.TrimSpace(i.UserID), GuildID: strings.TrimSpace(i.GuildID)}
}

// Cart хранит выбранные тарифы, период оплаты и промокод.
// Cart не потокобезопасна: владелец (сессия корзины) использует её из одного запроса.
type Cart struct {
	catalog  *Catalog
	promos   PromoTable
	variant  Variant
	selected map[string]SelectedService
	yearly   bool
	promo    *PromoCode
}

// NewCart создаёт пустую корзину для варианта страницы.
func NewCart(catalog *Catalog, promos PromoTable, variant Variant) *Cart {
	return &Cart{
		catalog:  catalog,
		promos:   promos,
		variant:  variant,
		selected: make(map[string]SelectedService),
	}
}

// Variant возвращает вариант страницы, для которого создана корзина.
func (c *Cart) Variant() Variant {
	return c.variant
}

// SelectTier добавляет, заменяет или (для NoTier) убирает позицию услуги.
func (c *Cart) SelectTier(serviceID, tierID string) error {
	const op = "pricing.Cart.SelectTier"

	svc, ok := c.catalog.Service(serviceID)
	if !ok {
		return fmt.Errorf("%s: %w: %q", op, ErrUnknownService, serviceID)
	}
	if tierID == NoTier {
		delete(c.selected, serviceID)
		return nil
	}
	tier, ok := svc.Tier(tierID)
	if !ok {
		return fmt.Errorf("%s: %w: %q for %q", op, ErrUnknownTier, tierID, serviceID)
	}
	c.selected[serviceID] = SelectedService{
		ServiceID:       svc.ID,
		TierID:          tier.ID,
		DisplayName:     svc.DisplayName,
		TierDisplayName: tier.DisplayName,
		MonthlyPrice:    tier.MonthlyPrice,
	}
	return nil
}

// SetYearlyBilling переключает период оплаты. Выключить годовую оплату можно всегда.
func (c *Cart) SetYearlyBilling(yearly bool) error {
	if yearly && !c.variant.SupportsYearlyBilling {
		return ErrYearlyNotSupported
	}
	c.yearly = yearly
	return nil
}

// IsYearly сообщает, выбрана ли годовая оплата.
func (c *Cart) IsYearly() bool {
	return c.yearly
}

// ApplyPromoCode применяет промокод. Неизвестный код сбрасывает действующую скидку.
func (c *Cart) ApplyPromoCode(raw string) PromoResult {
	code := NormalizeCode(raw)
	if !c.variant.SupportsPromoCodes {
		c.promo = nil
		return PromoResult{Status: PromoUnsupported, Code: code, Message: "Promo codes are not available for this plan."}
	}
	p, ok := c.promos.Lookup(code)
	if !ok {
		c.promo = nil
		return PromoResult{Status: PromoInvalid, Code: code, Message: "Invalid promo code."}
	}
	c.promo = &p
	return PromoResult{Status: PromoApplied, Code: p.Code, Message: "Promo code applied!"}
}

// AppliedPromo возвращает действующий промокод.
func (c *Cart) AppliedPromo() (PromoCode, bool) {
	if c.promo == nil {
		return PromoCode{}, false
	}
	return *c.promo, true
}

// Len возвращает количество выбранных услуг.
func (c *Cart) Len() int {
	return len(c.selected)
}

// Selected возвращает позиции корзины в порядке каталога.
func (c *Cart) Selected() []SelectedService {
	out := make([]SelectedService, 0, len(c.selected))
	for _, svc := range c.catalog.Services() {
		if s, ok := c.selected[svc.ID]; ok {
			out = append(out, s)
		}
	}
	return out
}

// ComputeTotals считает суммы по текущему состоянию.
// Годовая скидка применяется первой, промокод - к уже пересчитанной базе.
func (c *Cart) ComputeTotals() Totals {
	subtotal := decimal.Zero
	for _, s := range c.selected {
		subtotal = subtotal.Add(s.MonthlyPrice)
	}

	base := subtotal
	if c.yearly {
		base = subtotal.Mul(monthsPerYear).Mul(yearlyMultiple)
	}

	discount := decimal.Zero
	if c.promo != nil {
		discount = c.promo.Discount(base)
	}

	grand := base.Sub(discount)
	if grand.IsNegative() {
		grand = decimal.Zero
	}

	return Totals{
		SubtotalMonthly: subtotal,
		BaseTotal:       base,
		DiscountAmount:  discount,
		GrandTotal:      grand,
	}
}

// BillingLabel - "Yearly" или "Monthly".
func (c *Cart) BillingLabel() string {
	if c.yearly {
		return "Yearly"
	}
	return "Monthly"
}

// OrderDescription формирует описание позиции заказа для платёжной системы.
func (c *Cart) OrderDescription() string {
	items := make([]string, 0, len(c.selected))
	for _, s := range c.Selected() {
		items = append(items, fmt.Sprintf("%s (%s)", s.DisplayName, s.TierDisplayName))
	}
	desc := fmt.Sprintf("%s - %s: %s", c.variant.ProductName, c.BillingLabel(), strings.Join(items, ", "))
	if c.promo != nil {
		desc += " (Promo applied)"
	}
	return desc
}

// Validate проверяет обязательные поля перед созданием заказа.
// Возвращает *ValidationError с текстом для пользователя.
func (c *Cart) Validate(id Identity) error {
	if len(c.selected) == 0 {
		return &ValidationError{Field: "services", Message: "Please select a service plan."}
	}
	if c.variant.RequiresUserGuildIDs {
		id = id.trimmed()
		if id.UserID == "" {
			return &ValidationError{Field: "user_id", Message: "User ID is required."}
		}
		if id.GuildID == "" {
			return &ValidationError{Field: "guild_id", Message: "Guild ID is required."}
		}
	}
	if !c.ComputeTotals().GrandTotal.IsPositive() {
		return &ValidationError{Field: "total", Message: "Order total must be greater than zero."}
	}
	return nil
}

// ToOrderRequest собирает запрос на создание заказа в платёжной системе.
func (c *Cart) ToOrderRequest(total decimal.Decimal, id Identity) paypal.OrderRequest {
	unit := paypal.PurchaseUnit{
		Amount: paypal.Amount{
			CurrencyCode: paypal.CurrencyUSD,
			Value:        paypal.FormatAmount(total),
		},
		Description: c.OrderDescription(),
	}
	if c.variant.RequiresUserGuildIDs {
		id = id.trimmed()
		unit.CustomID = fmt.Sprintf("USER:%s|GUILD:%s", id.UserID, id.GuildID)
	}
	return paypal.OrderRequest{
		Intent:        paypal.IntentCapture,
		PurchaseUnits: []paypal.PurchaseUnit{unit},
	}
}
