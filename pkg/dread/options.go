package dread

import (
	"log/slog"

	"github.com/randalmurphal/dread/pkg/dread/observability"
	"github.com/randalmurphal/dread/pkg/dread/store"
	"github.com/randalmurphal/dread/pkg/dread/template"
)

// kitConfig holds configuration collected from Options.
type kitConfig struct {
	store         store.Store
	logger        *slog.Logger
	metrics       observability.MetricsRecorder
	spans         observability.SpanManager
	missingAction template.MissingAction
	defaults      template.Bindings
}

func defaultKitConfig() kitConfig {
	return kitConfig{
		metrics:       observability.NoopMetrics{},
		spans:         observability.NoopSpanManager{},
		missingAction: template.MissingKeep,
	}
}

// Option configures a Kit.
type Option func(*kitConfig)

// WithStore sets the template store. The Kit takes ownership and
// closes it on Close. A nil store is ignored.
//
// Default: an in-memory store
func WithStore(s store.Store) Option {
	return func(c *kitConfig) {
		if s != nil {
			c.store = s
		}
	}
}

// WithLogger enables structured logging of binds and store operations.
// Records are emitted at debug level, failures at warn and error.
func WithLogger(logger *slog.Logger) Option {
	return func(c *kitConfig) {
		c.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics.
//
// Recorded metrics:
//   - dread.bind.calls, dread.bind.latency_ms, dread.bind.errors
//   - dread.bind.defaults_applied
//   - dread.store.ops, dread.store.errors
func WithMetrics(enabled bool) Option {
	return func(c *kitConfig) {
		if enabled {
			c.metrics = observability.NewMetricsRecorder()
		} else {
			c.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables OpenTelemetry spans for binds and store operations.
func WithTracing(enabled bool) Option {
	return func(c *kitConfig) {
		if enabled {
			c.spans = observability.NewSpanManager()
		} else {
			c.spans = observability.NoopSpanManager{}
		}
	}
}

// WithMissingAction sets how unbound simple placeholders are handled.
//
// Default: template.MissingKeep
func WithMissingAction(action template.MissingAction) Option {
	return func(c *kitConfig) {
		c.missingAction = action
	}
}

// WithDefaults sets bindings applied before every caller-supplied
// binding. Caller bindings override defaults with the same key.
func WithDefaults(defaults template.Bindings) Option {
	return func(c *kitConfig) {
		c.defaults = defaults
	}
}
