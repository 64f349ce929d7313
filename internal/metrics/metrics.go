// Package metrics exposes Prometheus instrumentation for the optimizer.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "listing_optimizer"

// Metrics implements optimizer.Recorder on top of Prometheus collectors.
type Metrics struct {
	requests *prometheus.CounterVec
	upstream *prometheus.HistogramVec
	errors   *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Handled requests by HTTP method and response status.",
		}, []string{"method", "status"}),
		upstream: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_duration_seconds",
			Help:      "Duration of chat completion calls.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"model"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Failed requests by error class.",
		}, []string{"class"}),
	}

	reg.MustRegister(m.requests, m.upstream, m.errors)

	return m
}

func (m *Metrics) ObserveRequest(method string, status int) {
	m.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

func (m *Metrics) ObserveUpstream(model string, duration time.Duration) {
	m.upstream.WithLabelValues(model).Observe(duration.Seconds())
}

func (m *Metrics) ObserveError(class string) {
	m.errors.WithLabelValues(class).Inc()
}
