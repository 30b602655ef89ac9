package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var Observer = &Metrics{
	prometheus: NewPrometheusMetrics(),
}

func init() {
	prometheus.MustRegister(
		Observer.prometheus.Evaluations,
		Observer.prometheus.Duration,
		Observer.prometheus.RMS,
	)
}

type Metrics struct {
	prometheus Prometheus
}

// Increment counts an evaluation of the given problem callback.
func (m *Metrics) Increment(labels ...string) {
	m.prometheus.Evaluations.WithLabelValues(labels...).Inc()
}

// Time records the duration of a fit.
func (m *Metrics) Time(start time.Time, labels ...string) {
	m.prometheus.Duration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
}

// Error records the rms error of the latest fit.
func (m *Metrics) Error(rms float64, labels ...string) {
	m.prometheus.RMS.WithLabelValues(labels...).Set(rms)
}
