package dread_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/randalmurphal/dread/pkg/dread"
	"github.com/randalmurphal/dread/pkg/dread/store"
	"github.com/randalmurphal/dread/pkg/dread/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

const cookieTemplate = `{name}={value}; path={{path="/"}}`

func TestInfo(t *testing.T) {
	info := dread.Info()
	assert.Equal(t, "0.1", info.Version)
	assert.Equal(t, "joyfull-dread", info.Codename)
}

func TestKit_Bind(t *testing.T) {
	kit := dread.New()
	defer kit.Close()
	ctx := context.Background()

	out, err := kit.Bind(ctx, cookieTemplate, map[string]any{"name": "sid", "value": "abc"})
	require.NoError(t, err)
	assert.Equal(t, "sid=abc; path=/", out)

	_, err = kit.Bind(ctx, "", map[string]any{})
	assert.ErrorIs(t, err, template.ErrEmptyTemplate)

	_, err = kit.Bind(ctx, "{a}", "not a mapping")
	assert.ErrorIs(t, err, template.ErrNotMapping)
}

func TestKit_Defaults(t *testing.T) {
	kit := dread.New(dread.WithDefaults(template.Bindings{
		{Key: "path", Value: "/app"},
		{Key: "name", Value: "session"},
	}))
	defer kit.Close()
	ctx := context.Background()

	out, err := kit.Bind(ctx, cookieTemplate, map[string]any{"value": "abc"})
	require.NoError(t, err)
	assert.Equal(t, "session=abc; path=/app", out)

	out, err = kit.Bind(ctx, cookieTemplate, map[string]any{"name": "sid", "value": "abc"})
	require.NoError(t, err)
	assert.Equal(t, "sid=abc; path=/app", out, "caller bindings override defaults")

	_, err = kit.Bind(ctx, cookieTemplate, 42)
	assert.ErrorIs(t, err, template.ErrNotMapping, "defaults do not mask invalid data")
}

func TestKit_MissingAction(t *testing.T) {
	kit := dread.New(dread.WithMissingAction(template.MissingError))
	defer kit.Close()

	out, err := kit.Bind(context.Background(), cookieTemplate, map[string]any{"name": "sid"})
	var unbound *template.UnboundError
	require.ErrorAs(t, err, &unbound)
	assert.Equal(t, []string{"value"}, unbound.Names)
	assert.Equal(t, "sid={value}; path=/", out)
}

func TestKit_NamedTemplates(t *testing.T) {
	kit := dread.New()
	defer kit.Close()
	ctx := context.Background()

	info, err := kit.Save(ctx, "cookie", cookieTemplate)
	require.NoError(t, err)
	assert.Equal(t, "cookie", info.Name)
	assert.Equal(t, 1, info.Revision)

	body, err := kit.Load(ctx, "cookie")
	require.NoError(t, err)
	assert.Equal(t, cookieTemplate, body)

	out, err := kit.Render(ctx, "cookie", template.Bindings{
		{Key: "name", Value: "sid"},
		{Key: "value", Value: "abc"},
		{Key: "path", Value: "/app"},
	})
	require.NoError(t, err)
	assert.Equal(t, "sid=abc; path=/app", out)

	infos, err := kit.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "cookie", infos[0].Name)

	require.NoError(t, kit.Delete(ctx, "cookie"))
	_, err = kit.Render(ctx, "cookie", map[string]any{})
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorContains(t, err, `render "cookie"`)
}

func TestKit_RenderBindError(t *testing.T) {
	kit := dread.New()
	defer kit.Close()
	ctx := context.Background()

	_, err := kit.Save(ctx, "empty", "")
	require.NoError(t, err)

	_, err = kit.Render(ctx, "empty", map[string]any{})
	assert.ErrorIs(t, err, template.ErrEmptyTemplate)
}

func TestKit_WithStore(t *testing.T) {
	s, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)

	kit := dread.New(dread.WithStore(s))
	assert.Same(t, s, kit.Store())

	_, err = kit.Save(context.Background(), "greeting", "Hello {name}")
	require.NoError(t, err)
	out, err := kit.Render(context.Background(), "greeting", map[string]string{"name": "World"})
	require.NoError(t, err)
	assert.Equal(t, "Hello World", out)

	require.NoError(t, kit.Close())
	_, err = s.Load("greeting")
	assert.ErrorIs(t, err, store.ErrStoreClosed, "Close closes the owned store")
}

func TestKit_WithNilStore(t *testing.T) {
	kit := dread.New(dread.WithStore(nil))
	defer kit.Close()
	assert.NotNil(t, kit.Store())
}

func TestKit_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	kit := dread.New(dread.WithLogger(logger))
	defer kit.Close()
	ctx := context.Background()

	_, err := kit.Save(ctx, "cookie", cookieTemplate)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"msg":"store operation"`)
	assert.Contains(t, buf.String(), `"operation":"save"`)
	assert.Contains(t, buf.String(), `"component":"store"`)

	buf.Reset()
	_, err = kit.Load(ctx, "missing")
	require.Error(t, err)
	assert.Contains(t, buf.String(), `"msg":"store operation failed"`)

	buf.Reset()
	_, err = kit.Render(ctx, "cookie", map[string]any{"name": "sid", "value": "abc"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"msg":"template bound"`)
}

func TestKit_Tracing(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	})

	kit := dread.New(dread.WithTracing(true))
	defer kit.Close()
	ctx := context.Background()

	_, err := kit.Save(ctx, "cookie", cookieTemplate)
	require.NoError(t, err)
	_, err = kit.Render(ctx, "cookie", map[string]any{"name": "sid", "value": "abc"})
	require.NoError(t, err)

	var names []string
	for _, span := range exporter.GetSpans() {
		names = append(names, span.Name)
	}
	assert.Equal(t, []string{"dread.store.save", "dread.store.load", "dread.bind"}, names)
}

func TestKit_TracingDisabled(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	})

	kit := dread.New(dread.WithTracing(false))
	defer kit.Close()

	_, err := kit.Bind(context.Background(), "{a}", map[string]any{"a": 1})
	require.NoError(t, err)
	assert.Empty(t, exporter.GetSpans())
}

func TestKit_Metrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	original := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)
	t.Cleanup(func() {
		otel.SetMeterProvider(original)
		_ = provider.Shutdown(context.Background())
	})

	kit := dread.New(dread.WithMetrics(true))
	defer kit.Close()
	ctx := context.Background()

	_, err := kit.Save(ctx, "cookie", cookieTemplate)
	require.NoError(t, err)
	_, err = kit.Render(ctx, "cookie", map[string]any{"name": "sid", "value": "abc"})
	require.NoError(t, err)
	_, err = kit.Load(ctx, "missing")
	require.Error(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	totals := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					totals[m.Name] += dp.Value
				}
			}
		}
	}
	assert.Equal(t, int64(3), totals["dread.store.ops"])
	assert.Equal(t, int64(1), totals["dread.store.errors"])
	assert.Equal(t, int64(1), totals["dread.bind.calls"])
	assert.Equal(t, int64(1), totals["dread.bind.defaults_applied"])
}

func TestKit_StoreErrorsWrapSentinels(t *testing.T) {
	kit := dread.New()
	require.NoError(t, kit.Close())

	_, err := kit.Save(context.Background(), "x", "y")
	assert.True(t, errors.Is(err, store.ErrStoreClosed))
}
