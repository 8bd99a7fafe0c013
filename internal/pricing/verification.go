package pricing

import (
	"fmt"
	"strings"
	"time"

	"github.com/magabrotheeeer/nulltracker-premium/internal/paypal"
)

// Verification - данные, которые пользователь сохраняет после успешной оплаты
// и передаёт в поддержку для активации услуг.
type Verification struct {
	PaymentID  string    `json:"payment_id"`
	PayerID    string    `json:"payer_id"`
	PayerEmail string    `json:"payer_email"`
	Amount     string    `json:"amount"`
	Currency   string    `json:"currency"`
	Billing    string    `json:"billing"`
	Discount   string    `json:"discount,omitempty"`
	PromoCode  string    `json:"promo_code,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	GuildID    string    `json:"guild_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	Services   []string  `json:"services"`
}

// NewVerification собирает сводку по результату списания.
// Отсутствующие поля ответа платёжной системы заменяются на "N/A".
func NewVerification(c *Cart, res *paypal.CaptureResult, id Identity, now time.Time) Verification {
	v := Verification{
		PaymentID:  res.PaymentID(),
		PayerID:    res.PayerID(),
		PayerEmail: res.PayerEmail(),
		Amount:     res.AmountValue(),
		Currency:   res.CurrencyCode(),
		Billing:    "Monthly",
		Timestamp:  now.UTC(),
	}
	if c.yearly {
		v.Billing = "Yearly (20% discount applied)"
	}
	if p, ok := c.AppliedPromo(); ok {
		v.PromoCode = p.Code
		v.Discount = "-$" + paypal.FormatAmount(c.ComputeTotals().DiscountAmount)
	}
	if c.variant.RequiresUserGuildIDs {
		id = id.trimmed()
		v.UserID = id.UserID
		v.GuildID = id.GuildID
	}
	for _, s := range c.Selected() {
		v.Services = append(v.Services,
			fmt.Sprintf("%s (%s) - $%s/mo", s.DisplayName, s.TierDisplayName, paypal.FormatAmount(s.MonthlyPrice)))
	}
	return v
}

// Text возвращает блок "Copy All" для буфера обмена.
func (v Verification) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Payment ID: %s\n", v.PaymentID)
	fmt.Fprintf(&b, "Payer ID: %s\n", v.PayerID)
	fmt.Fprintf(&b, "Payer Email: %s\n", v.PayerEmail)
	fmt.Fprintf(&b, "Amount Paid: %s %s\n", v.Amount, v.Currency)
	fmt.Fprintf(&b, "Billing: %s\n", v.Billing)
	if v.Discount != "" {
		fmt.Fprintf(&b, "Discount: %s (%s)\n", v.Discount, v.PromoCode)
	}
	fmt.Fprintf(&b, "Timestamp: %s\n", v.Timestamp.Format(time.RFC3339))
	if v.UserID != "" || v.GuildID != "" {
		fmt.Fprintf(&b, "User ID: %s\n", v.UserID)
		fmt.Fprintf(&b, "Guild ID: %s\n", v.GuildID)
	}
	b.WriteString("\nServices:\n")
	b.WriteString(strings.Join(v.Services, "\n"))
	return b.String()
}
