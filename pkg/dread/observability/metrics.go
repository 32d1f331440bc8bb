package observability

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records dread metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordBind records one bind call with its duration, the number of
	// defaulted placeholders resolved to their literal default, and its error status.
	RecordBind(ctx context.Context, duration time.Duration, defaulted int, err error)

	// RecordStoreOp records a template store operation.
	RecordStoreOp(ctx context.Context, op string, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	bindCalls    metric.Int64Counter
	bindLatency  metric.Float64Histogram
	bindErrors   metric.Int64Counter
	bindDefaults metric.Int64Counter
	storeOps     metric.Int64Counter
	storeErrors  metric.Int64Counter
}

// newOtelMetrics creates the dread instruments on the global meter provider.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("dread")

	bindCalls, err := meter.Int64Counter("dread.bind.calls",
		metric.WithDescription("Number of template bind calls"),
	)
	if err != nil {
		return nil, err
	}

	bindLatency, err := meter.Float64Histogram("dread.bind.latency_ms",
		metric.WithDescription("Template bind latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	bindErrors, err := meter.Int64Counter("dread.bind.errors",
		metric.WithDescription("Number of failed template binds"),
	)
	if err != nil {
		return nil, err
	}

	bindDefaults, err := meter.Int64Counter("dread.bind.defaults_applied",
		metric.WithDescription("Number of defaulted placeholders resolved to their literal default"),
	)
	if err != nil {
		return nil, err
	}

	storeOps, err := meter.Int64Counter("dread.store.ops",
		metric.WithDescription("Number of template store operations"),
	)
	if err != nil {
		return nil, err
	}

	storeErrors, err := meter.Int64Counter("dread.store.errors",
		metric.WithDescription("Number of failed template store operations"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		bindCalls:    bindCalls,
		bindLatency:  bindLatency,
		bindErrors:   bindErrors,
		bindDefaults: bindDefaults,
		storeOps:     storeOps,
		storeErrors:  storeErrors,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := newOtelMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordBind records a bind call.
func (m *otelMetrics) RecordBind(ctx context.Context, duration time.Duration, defaulted int, err error) {
	attrs := metric.WithAttributes(attribute.Bool("success", err == nil))

	m.bindCalls.Add(ctx, 1, attrs)
	m.bindLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	if defaulted > 0 {
		m.bindDefaults.Add(ctx, int64(defaulted))
	}
	if err != nil {
		m.bindErrors.Add(ctx, 1)
	}
}

// RecordStoreOp records a store operation.
func (m *otelMetrics) RecordStoreOp(ctx context.Context, op string, err error) {
	attrs := metric.WithAttributes(attribute.String("operation", op))

	m.storeOps.Add(ctx, 1, attrs)
	if err != nil {
		m.storeErrors.Add(ctx, 1, attrs)
	}
}
