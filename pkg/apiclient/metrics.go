package apiclient

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records request counts and latencies per endpoint.
type Metrics struct {
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
}

// NewMetrics builds the collectors and registers them with reg. Collectors
// that are already registered are reused. A nil reg leaves them
// unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "profileflow_api_requests_total",
			Help: "Profile API requests by endpoint and outcome",
		}, []string{"endpoint", "outcome"}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "profileflow_api_request_duration_seconds",
			Help:    "Profile API request latency by endpoint",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
	}
	if reg == nil {
		return m
	}
	m.Requests = register(reg, m.Requests)
	m.Latency = register(reg, m.Latency)
	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
	}
	return c
}

// Observe records one request.
func (m *Metrics) Observe(endpoint, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(endpoint, outcome).Inc()
	m.Latency.WithLabelValues(endpoint).Observe(d.Seconds())
}
