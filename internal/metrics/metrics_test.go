package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestNew_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.OrdersCreated.WithLabelValues("complete").Inc()
	m.PaymentsCaptured.WithLabelValues("Yearly").Add(2)
	m.Donations.Inc()

	assert.InDelta(t, 1, counterValue(t, m.OrdersCreated.WithLabelValues("complete")), 0)
	assert.InDelta(t, 2, counterValue(t, m.PaymentsCaptured.WithLabelValues("Yearly")), 0)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "premium_orders_created_total")
	assert.Contains(t, names, "premium_donations_total")
}

func TestNew_DoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
