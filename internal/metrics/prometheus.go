package metrics

import "github.com/prometheus/client_golang/prometheus"

type Prometheus struct {
	Evaluations *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
	RMS         *prometheus.GaugeVec
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "spline",
				Name:      "evaluations",
			}, []string{"problem", "callback"}),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "spline",
				Name:      "fit_seconds",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
			}, []string{"fit"}),
		RMS: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "spline",
				Name:      "rms_error",
			}, []string{"fit"}),
	}
}
