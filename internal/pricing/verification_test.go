package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/nulltracker-premium/internal/paypal"
)

func TestNewVerification(t *testing.T) {
	c := newTestCart(t, VariantComplete)
	require.NoError(t, c.SelectTier("anti-nuke", "basic"))
	require.NoError(t, c.SelectTier("url-scanner", "pro"))
	require.NoError(t, c.SetYearlyBilling(true))
	c.ApplyPromoCode("SAVE10")

	res := &paypal.CaptureResult{
		ID:    "ORDER-1",
		Payer: &paypal.Payer{PayerID: "PAYER"},
		PurchaseUnits: []paypal.CapturedUnit{
			{Amount: &paypal.Amount{CurrencyCode: "USD", Value: "86.23"}},
		},
	}
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	v := NewVerification(c, res, Identity{UserID: "42", GuildID: "7"}, now)
	assert.Equal(t, "ORDER-1", v.PaymentID)
	assert.Equal(t, "PAYER", v.PayerID)
	assert.Equal(t, paypal.NotAvailable, v.PayerEmail)
	assert.Equal(t, "86.23", v.Amount)
	assert.Equal(t, "Yearly (20% discount applied)", v.Billing)
	assert.Equal(t, "-$9.58", v.Discount)
	assert.Equal(t, []string{
		"Anti-Nuke Premium (Basic) - $4.99/mo",
		"URL Scanner Premium (Pro) - $4.99/mo",
	}, v.Services)

	text := v.Text()
	assert.Contains(t, text, "Payment ID: ORDER-1\n")
	assert.Contains(t, text, "Payer Email: N/A\n")
	assert.Contains(t, text, "Amount Paid: 86.23 USD\n")
	assert.Contains(t, text, "Timestamp: 2024-03-01T12:00:00Z\n")
	assert.Contains(t, text, "User ID: 42\nGuild ID: 7\n")
	assert.Contains(t, text, "Services:\nAnti-Nuke Premium (Basic) - $4.99/mo\nURL Scanner Premium (Pro) - $4.99/mo")
}

func TestNewVerification_EmptyCapture(t *testing.T) {
	c := newTestCart(t, VariantUpdate)
	require.NoError(t, c.SelectTier("api-limits", "basic"))

	v := NewVerification(c, &paypal.CaptureResult{}, Identity{}, time.Now())
	assert.Equal(t, paypal.NotAvailable, v.PaymentID)
	assert.Equal(t, "0.00", v.Amount)
	assert.Equal(t, "USD", v.Currency)
	assert.Equal(t, "Monthly", v.Billing)
	assert.Empty(t, v.Discount)
	assert.NotContains(t, v.Text(), "User ID")
}
