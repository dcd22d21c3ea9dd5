package store

import "go.opentelemetry.io/otel"

// Default tracer name for tide stores.
const defaultTracerName = "tide"

// TracingConfig configures the OpenTelemetry commit tracing enabled by
// WithTracing.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "tide").
	TracerName string
}

// TracingOption configures WithTracing.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithTracing records an OpenTelemetry span per commit, covering the merge
// and all synchronous listener notifications. Span attributes carry the
// store name, the operation (set or set_from), the committed version, and
// the number of listeners notified. A panicking updater marks the span as
// an error before the panic propagates.
//
// The span is created from the globally registered tracer provider; without
// an SDK installed this is the no-op provider, so enabling tracing is
// always safe.
func WithTracing[T any](opts ...TracingOption) Option[T] {
	return func(s *Store[T]) {
		config := TracingConfig{TracerName: defaultTracerName}
		for _, opt := range opts {
			opt(&config)
		}
		s.tracer = otel.Tracer(config.TracerName)
	}
}
