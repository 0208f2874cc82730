package domhelper

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures helper metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "domhelper").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Metrics counts operations and shown errors. A nil *Metrics records nothing.
type Metrics struct {
	operations     *prometheus.CounterVec
	errorsShown    prometheus.Counter
	displayMissing prometheus.Counter
}

// NewMetrics registers the helper metrics with config.Registry.
func NewMetrics(config MetricsConfig) *Metrics {
	if config.Namespace == "" {
		config.Namespace = "domhelper"
	}
	if config.Registry == nil {
		config.Registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "operations_total",
			Help:        "Total number of helper operations by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"op", "outcome"}),

		errorsShown: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "errors_shown_total",
			Help:        "Total number of messages written to the error display",
			ConstLabels: config.ConstLabels,
		}),

		displayMissing: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "error_display_missing_total",
			Help:        "Total number of messages dropped because the error display was missing",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) observe(op string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.operations.WithLabelValues(op, outcome).Inc()
}

func (m *Metrics) shown() {
	if m == nil {
		return
	}
	m.errorsShown.Inc()
}

func (m *Metrics) missingDisplay() {
	if m == nil {
		return
	}
	m.displayMissing.Inc()
}
