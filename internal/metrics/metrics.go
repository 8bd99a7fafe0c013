// Package metrics - счётчики Prometheus для оформления заказов и пожертвований.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "premium"

// Metrics группирует счётчики сервиса.
type Metrics struct {
	CartsCreated      *prometheus.CounterVec
	PromoApplications *prometheus.CounterVec
	OrdersCreated     *prometheus.CounterVec
	PaymentsCaptured  *prometheus.CounterVec
	PaymentsFailed    *prometheus.CounterVec
	PaymentsCancelled prometheus.Counter
	Donations         prometheus.Counter
	DonationsAmount   prometheus.Counter
}

// New создаёт счётчики и регистрирует их в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CartsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "carts_created_total",
			Help:      "Cart sessions created, by checkout variant.",
		}, []string{"variant"}),
		PromoApplications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "promo_applications_total",
			Help:      "Promo code attempts, by result.",
		}, []string{"status"}),
		OrdersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Orders created in the payment provider, by checkout variant.",
		}, []string{"variant"}),
		PaymentsCaptured: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_captured_total",
			Help:      "Successfully captured premium payments, by billing period.",
		}, []string{"billing"}),
		PaymentsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_failed_total",
			Help:      "Payment provider errors, by stage.",
		}, []string{"stage"}),
		PaymentsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_cancelled_total",
			Help:      "Payments cancelled by the payer.",
		}),
		Donations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "donations_total",
			Help:      "Captured donations.",
		}),
		DonationsAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "donations_amount_usd_total",
			Help:      "Sum of captured donations in USD.",
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.CartsCreated,
			m.PromoApplications,
			m.OrdersCreated,
			m.PaymentsCaptured,
			m.PaymentsFailed,
			m.PaymentsCancelled,
			m.Donations,
			m.DonationsAmount,
		)
	}
	return m
}

// NewNoop создаёт незарегистрированные счётчики для тестов.
func NewNoop() *Metrics {
	return New(nil)
}
