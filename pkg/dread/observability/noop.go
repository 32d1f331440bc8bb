package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NoopMetrics is a MetricsRecorder that does nothing.
type NoopMetrics struct{}

var _ MetricsRecorder = NoopMetrics{}

// RecordBind does nothing.
func (NoopMetrics) RecordBind(_ context.Context, _ time.Duration, _ int, _ error) {}

// RecordStoreOp does nothing.
func (NoopMetrics) RecordStoreOp(_ context.Context, _ string, _ error) {}

// NoopSpanManager is a SpanManager that does nothing.
type NoopSpanManager struct{}

var _ SpanManager = NoopSpanManager{}

var noopSpan = noop.Span{}

// StartBindSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartBindSpan(ctx context.Context, _, _ int) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// StartStoreSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartStoreSpan(ctx context.Context, _, _ string) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// EndSpanWithError does nothing.
func (NoopSpanManager) EndSpanWithError(_ trace.Span, _ error) {}

// AddSpanEvent does nothing.
func (NoopSpanManager) AddSpanEvent(_ context.Context, _ string, _ ...attribute.KeyValue) {}
