// Package metrics provides Prometheus metrics collection for actionkit.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds all Prometheus metrics for the action engine.
type Collector struct {
	// Execution metrics
	ExecutionsTotal    *prometheus.CounterVec
	ExecutionDuration  *prometheus.HistogramVec
	ExecutionsInFlight prometheus.Gauge

	// Service metrics
	ServiceErrors *prometheus.CounterVec

	// Render metrics
	RenderErrors *prometheus.CounterVec

	// Config metrics
	ConfigReloads prometheus.Counter
}

// New creates a new metrics collector with all metrics registered on the
// default registerer.
func New() *Collector {
	return &Collector{
		ExecutionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "actionkit",
				Name:      "executions_total",
				Help:      "Total number of action executions",
			},
			[]string{"action", "format", "outcome"},
		),
		ExecutionDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "actionkit",
				Name:      "execution_duration_seconds",
				Help:      "Action execution duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"action", "format"},
		),
		ExecutionsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "actionkit",
				Name:      "executions_in_flight",
				Help:      "Number of actions currently executing",
			},
		),

		ServiceErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "actionkit",
				Name:      "service_errors_total",
				Help:      "Total number of service errors by category",
			},
			[]string{"action", "category"},
		),

		RenderErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "actionkit",
				Name:      "render_errors_total",
				Help:      "Total number of response rendering errors",
			},
			[]string{"action", "format"},
		),

		ConfigReloads: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "actionkit",
				Name:      "config_reloads_total",
				Help:      "Total number of configuration reloads",
			},
		),
	}
}
