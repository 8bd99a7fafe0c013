package pricing

// Capabilities - набор возможностей конкретной страницы оплаты.
type Capabilities struct {
	SupportsPromoCodes    bool `json:"supports_promo_codes"`
	SupportsYearlyBilling bool `json:"supports_yearly_billing"`
	RequiresUserGuildIDs  bool `json:"requires_user_guild_ids"`
}

// Variant - именованная конфигурация корзины: название продукта в описании
// заказа и набор возможностей.
type Variant struct {
	Name        string `json:"name"`
	ProductName string `json:"product_name"`
	Capabilities
}

const (
	VariantClassic  = "classic"
	VariantModern   = "modern"
	VariantUpdate   = "update"
	VariantComplete = "complete"
)

var variants = []Variant{
	{
		Name:         VariantClassic,
		ProductName:  "Hinata Premium",
		Capabilities: Capabilities{SupportsPromoCodes: true, RequiresUserGuildIDs: true},
	},
	{
		Name:         VariantModern,
		ProductName:  "Hinata Premium Services",
		Capabilities: Capabilities{RequiresUserGuildIDs: true},
	},
	{
		Name:         VariantUpdate,
		ProductName:  "NullTracker Premium",
		Capabilities: Capabilities{SupportsYearlyBilling: true},
	},
	{
		Name:        VariantComplete,
		ProductName: "NullTracker Premium",
		Capabilities: Capabilities{
			SupportsPromoCodes:    true,
			SupportsYearlyBilling: true,
			RequiresUserGuildIDs:  true,
		},
	},
}

// LookupVariant возвращает вариант по имени.
func LookupVariant(name string) (Variant, bool) {
	for _, v := range variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// Variants возвращает все известные варианты.
func Variants() []Variant {
	out := make([]Variant, len(variants))
	copy(out, variants)
	return out
}
