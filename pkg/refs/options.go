package refs

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation name used when no tracer is configured.
const tracerName = "github.com/vango-dev/vango-refs/pkg/refs"

// Option configures a Hooks value. Hooks created with a page inherit the
// page's options before their own are applied.
type Option func(*settings)

type settings struct {
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
}

func defaultSettings() settings {
	return settings{
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
	}
}

// WithLogger sets the logger. If nil, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// WithMetrics enables Prometheus metrics. A nil value disables them.
func WithMetrics(m *Metrics) Option {
	return func(s *settings) {
		s.metrics = m
	}
}

// WithTracer sets the tracer used for lifecycle spans.
// Default: the global otel tracer provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *settings) {
		if tracer == nil {
			tracer = otel.Tracer(tracerName)
		}
		s.tracer = tracer
	}
}
