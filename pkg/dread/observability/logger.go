// Package observability provides structured logging, metrics, and
// distributed tracing for dread.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds a component name to a logger.
//
// Example:
//
//	enriched := EnrichLogger(logger, "binder")
//	enriched.Info("bound") // includes component=binder
func EnrichLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("component", component))
}

// LogBindComplete logs a successful template bind.
func LogBindComplete(logger *slog.Logger, bound, defaulted int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("template bound",
		slog.Int("bound", bound),
		slog.Int("defaults_applied", defaulted),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogBindError logs a bind failure.
func LogBindError(logger *slog.Logger, err error) {
	if logger == nil {
		return
	}
	logger.Warn("template bind failed",
		slog.String("error", err.Error()),
	)
}

// LogStoreOp logs a completed template store operation.
func LogStoreOp(logger *slog.Logger, op, name string) {
	if logger == nil {
		return
	}
	logger.Debug("store operation",
		slog.String("operation", op),
		slog.String("template", name),
	)
}

// LogStoreError logs a template store failure.
func LogStoreError(logger *slog.Logger, op, name string, err error) {
	if logger == nil {
		return
	}
	logger.Error("store operation failed",
		slog.String("operation", op),
		slog.String("template", name),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
