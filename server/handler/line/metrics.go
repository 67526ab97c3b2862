package line

import (
	"github.com/prometheus/client_golang/prometheus"

	"go.lepak.sg/subway-backend/server/handler/respond"
)

type metrics struct {
	*respond.Metrics
	// Faults counts lines whose stored sections could not be put in order.
	Faults prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &metrics{
		Metrics: respond.NewMetrics(reg, "lines"),
		Faults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "subway",
			Subsystem: "lines",
			Name:      "order_faults",
		}),
	}
	reg.MustRegister(m.Faults)

	return m
}
