package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "dread"

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartBindSpan starts a span for one bind call.
	StartBindSpan(ctx context.Context, templateLen, bindingCount int) (context.Context, trace.Span)

	// StartStoreSpan starts a span for a template store operation.
	StartStoreSpan(ctx context.Context, op, name string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// Spans are started from the global OTel tracer provider at call time, so
// the provider may be configured before or after this call:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

func (m *otelSpanManager) StartBindSpan(ctx context.Context, templateLen, bindingCount int) (context.Context, trace.Span) {
	return StartBindSpan(ctx, templateLen, bindingCount)
}

func (m *otelSpanManager) StartStoreSpan(ctx context.Context, op, name string) (context.Context, trace.Span) {
	return StartStoreSpan(ctx, op, name)
}

func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	EndSpanWithError(span, err)
}

func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	AddSpanEvent(ctx, name, attrs...)
}

// StartBindSpan starts a span for a bind call using the global tracer.
func StartBindSpan(ctx context.Context, templateLen, bindingCount int) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "dread.bind",
		trace.WithAttributes(
			attribute.Int("template.length", templateLen),
			attribute.Int("bindings.count", bindingCount),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartStoreSpan starts a span for a store operation using the global tracer.
func StartStoreSpan(ctx context.Context, op, name string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "dread.store."+op,
		trace.WithAttributes(
			attribute.String("store.operation", op),
			attribute.String("template.name", name),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
