// Package pricing содержит каталог премиум-услуг, таблицу промокодов и корзину,
// которая детерминированно считает итоговую стоимость заказа по выбранным тарифам,
// периоду оплаты и промокоду.
package pricing

import (
	"github.com/shopspring/decimal"
)

// NoTier - значение "Select Plan": выбор этого тарифа убирает услугу из корзины.
const NoTier = ""

// Tier описывает тарифный уровень услуги с ценой за месяц.
type Tier struct {
	ID           string          `json:"id"`
	DisplayName  string          `json:"name"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
}

// Service - премиум-дополнение к боту, которое подключается выбором одного тарифа.
type Service struct {
	ID          string `json:"id"`
	DisplayName string `json:"name"`
	Tiers       []Tier `json:"tiers"`
}

// Tier ищет тариф услуги по идентификатору.
func (s Service) Tier(id string) (Tier, bool) {
	for _, t := range s.Tiers {
		if t.ID == id {
			return t, true
		}
	}
	return Tier{}, false
}

// Catalog - неизменяемый справочник услуг. Порядок услуг сохраняется
// и используется при выводе корзины.
type Catalog struct {
	services []Service
	index    map[string]int
}

// NewCatalog создаёт каталог из списка услуг. Повторный ID заменяет предыдущую запись.
func NewCatalog(services ...Service) *Catalog {
	c := &Catalog{index: make(map[string]int, len(services))}
	for _, s := range services {
		if i, ok := c.index[s.ID]; ok {
			c.services[i] = s
			continue
		}
		c.index[s.ID] = len(c.services)
		c.services = append(c.services, s)
	}
	return c
}

// Service возвращает услугу по идентификатору.
func (c *Catalog) Service(id string) (Service, bool) {
	i, ok := c.index[id]
	if !ok {
		return Service{}, false
	}
	return c.services[i], true
}

// Services возвращает копию списка услуг в порядке каталога.
func (c *Catalog) Services() []Service {
	out := make([]Service, len(c.services))
	copy(out, c.services)
	return out
}

func tiers(basic, pro, enterprise string) []Tier {
	return []Tier{
		{ID: "basic", DisplayName: "Basic", MonthlyPrice: decimal.RequireFromString(basic)},
		{ID: "pro", DisplayName: "Pro", MonthlyPrice: decimal.RequireFromString(pro)},
		{ID: "enterprise", DisplayName: "Enterprise", MonthlyPrice: decimal.RequireFromString(enterprise)},
	}
}

// DefaultCatalog возвращает каталог премиум-услуг бота.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		Service{ID: "anti-nuke", DisplayName: "Anti-Nuke Premium", Tiers: tiers("4.99", "8.99", "15.99")},
		Service{ID: "url-scanner", DisplayName: "URL Scanner Premium", Tiers: tiers("2.99", "4.99", "9.99")},
		Service{ID: "api-limits", DisplayName: "API Limits Premium", Tiers: tiers("3.99", "7.99", "14.99")},
		Service{ID: "advanced-logging", DisplayName: "Advanced Logging", Tiers: tiers("1.99", "3.99", "6.99")},
		Service{ID: "spam-protection", DisplayName: "Spam Protection Premium", Tiers: tiers("2.49", "4.49", "7.99")},
	)
}
