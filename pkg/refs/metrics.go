package refs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vango").
	Namespace string

	// Subsystem is the metrics subsystem (default: "refs").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus collectors.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vango",
		Subsystem: "refs",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors for reference resolution.
// A nil *Metrics records nothing.
//
// Metrics collected:
//   - vango_refs_registrations_total: instances registered, by mode
//   - vango_refs_unregistrations_total: instances removed, by mode
//   - vango_refs_resolutions_total: reference reads, by mode and origin
//   - vango_refs_active_scopes: page scopes currently holding a registry
type Metrics struct {
	registrations   *prometheus.CounterVec
	unregistrations *prometheus.CounterVec
	resolutions     *prometheus.CounterVec
	activeScopes    prometheus.Gauge
}

// NewMetrics creates and registers the collectors. Create it once per
// registry and share it through WithMetrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "registrations_total",
			Help:        "Total number of component instances registered under a reference group",
			ConstLabels: config.ConstLabels,
		}, []string{"mode"}),

		unregistrations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "unregistrations_total",
			Help:        "Total number of component instances removed from a reference group",
			ConstLabels: config.ConstLabels,
		}, []string{"mode"}),

		resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resolutions_total",
			Help:        "Total number of reference reads by mode and origin",
			ConstLabels: config.ConstLabels,
		}, []string{"mode", "origin"}),

		activeScopes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_scopes",
			Help:        "Number of page scopes currently holding a registry",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) registered(mode Mode) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(mode.String()).Inc()
}

func (m *Metrics) unregistered(mode Mode) {
	if m == nil {
		return
	}
	m.unregistrations.WithLabelValues(mode.String()).Inc()
}

func (m *Metrics) resolved(mode Mode, origin Origin) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(mode.String(), origin.String()).Inc()
}

func (m *Metrics) scopeOpened() {
	if m == nil {
		return
	}
	m.activeScopes.Inc()
}

func (m *Metrics) scopeClosed() {
	if m == nil {
		return
	}
	m.activeScopes.Dec()
}
