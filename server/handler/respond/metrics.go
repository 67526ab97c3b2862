package respond

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Requests prometheus.Counter
	Errors   prometheus.Counter
	Latency  prometheus.Histogram
}

// NewMetrics registers the request counters of one handler with reg. A nil
// reg means the default registry.
func NewMetrics(reg prometheus.Registerer, subsystem string) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		Requests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "subway",
			Subsystem: subsystem,
			Name:      "requests",
		}),
		Errors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "subway",
			Subsystem: subsystem,
			Name:      "errors",
		}),
		Latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "subway",
			Subsystem: subsystem,
			Name:      "latency",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(m.Requests, m.Errors, m.Latency)

	return m
}

// Instrument adapts fn to an http.Handler, counting the request and, when fn
// returns an error, the failure.
func (m *Metrics) Instrument(fn func(w http.ResponseWriter, r *http.Request) error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()
		err := fn(w, r)

		m.Latency.Observe(time.Since(startTime).Seconds())
		m.Requests.Inc()
		if err != nil {
			m.Errors.Inc()
		}
	})
}
