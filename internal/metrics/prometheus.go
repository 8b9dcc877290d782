package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "census"

// Prometheus groups the prometheus collectors of a conversion run.
type Prometheus struct {
	Rows *prometheus.CounterVec
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{Rows: prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_total",
			Help:      "Number of census rows by processing outcome.",
		}, []string{"variant", "outcome"}),
	}
}
