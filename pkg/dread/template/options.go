package template

import (
	"log/slog"

	"github.com/randalmurphal/dread/pkg/dread/observability"
)

// MissingAction specifies how simple placeholders that remain unbound
// after binding are handled. Defaulted placeholders always fall back to
// their default and are never affected.
type MissingAction int

const (
	// MissingKeep leaves unbound {key} placeholders as-is.
	// This is the default behavior.
	MissingKeep MissingAction = iota

	// MissingEmpty replaces unbound {key} placeholders with an empty string.
	MissingEmpty

	// MissingError reports unbound {key} placeholders as an *UnboundError.
	MissingError
)

// String returns the lowercase name of the action.
func (a MissingAction) String() string {
	switch a {
	case MissingKeep:
		return "keep"
	case MissingEmpty:
		return "empty"
	case MissingError:
		return "error"
	default:
		return "unknown"
	}
}

// Option configures a Binder.
type Option func(*Binder)

// WithMissingAction sets how unbound simple placeholders are handled.
//
// Default: MissingKeep
//
// Example:
//
//	b := NewBinder(WithMissingAction(MissingError))
//	_, err := b.Bind(ctx, "{missing}", map[string]any{})
//	// err: "unbound placeholder: missing"
func WithMissingAction(action MissingAction) Option {
	return func(b *Binder) {
		b.missingAction = action
	}
}

// WithLogger sets the logger used for per-call debug records.
// A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Binder) {
		b.logger = observability.EnrichLogger(logger, "binder")
	}
}

// WithMetrics sets the metrics recorder. A nil recorder disables metrics.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(b *Binder) {
		if m == nil {
			m = observability.NoopMetrics{}
		}
		b.metrics = m
	}
}

// WithSpanManager sets the span manager. A nil manager disables tracing.
func WithSpanManager(sm observability.SpanManager) Option {
	return func(b *Binder) {
		if sm == nil {
			sm = observability.NoopSpanManager{}
		}
		b.spans = sm
	}
}
