package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Charge actions counted for the performance platform.
const (
	ActionAdded     = "added"
	ActionUpdated   = "updated"
	ActionCancelled = "cancelled"
)

// Metrics holds the charge relay business counters.
type Metrics struct {
	Charges *prometheus.CounterVec
}

// NewMetrics registers the charge counters on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Charges: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "maintain_charges_total",
			Help: "Land charges relayed to the register, by action",
		}, []string{"action"}),
	}
}

// IncCharge counts one successful relay.
func (m *Metrics) IncCharge(action string) {
	if m != nil {
		m.Charges.WithLabelValues(action).Inc()
	}
}
