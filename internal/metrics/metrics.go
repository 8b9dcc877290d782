package metrics

import (
	"fmt"

	"github.com/drakos74/free-census/internal/model"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks the row outcomes of a single conversion run.
// Every instance owns its registry, so runs never share counters.
type Metrics struct {
	variant    string
	registry   *prometheus.Registry
	prometheus Prometheus
}

// New creates the metrics for the given variant.
func New(variant string) *Metrics {
	m := &Metrics{
		variant:    variant,
		registry:   prometheus.NewRegistry(),
		prometheus: NewPrometheusMetrics(),
	}
	m.registry.MustRegister(m.prometheus.Rows)
	return m
}

// Increment counts one row for the given outcome.
func (m *Metrics) Increment(outcome model.Outcome) {
	m.prometheus.Rows.WithLabelValues(m.variant, string(outcome)).Inc()
}

// Gatherer exposes the registry of the run.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTo writes the collected metrics in the textfile collector format.
func (m *Metrics) WriteTo(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Gatherer()); err != nil {
		return fmt.Errorf("could not write metrics to '%s': %w", path, err)
	}
	return nil
}
