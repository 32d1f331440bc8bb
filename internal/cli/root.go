// Package cli implements the dread command-line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/randalmurphal/dread/pkg/dread"
	"github.com/randalmurphal/dread/pkg/dread/config"
	"github.com/randalmurphal/dread/pkg/dread/store"
)

// app carries the persistent flags and the resources one command run opens.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	storePath  string
	trace      bool
	jsonOutput bool

	kit        *dread.Kit
	tracer     *sdktrace.TracerProvider
	prevTracer trace.TracerProvider
}

// NewRootCommand builds the dread command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "dread",
		Short: "dread binds values into string templates",
		Long: `dread fills {key} and {{key="default"}} placeholders in templates.

Bindings come from YAML/JSON files, dotenv files, and --set flags.
Named templates can be kept in a SQLite store and rendered later.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "settings file (YAML or JSON)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&a.logFormat, "log-format", "", "log format: text or json")
	pf.StringVar(&a.storePath, "store", "", "SQLite template store path (default: in-memory)")
	pf.BoolVar(&a.trace, "trace", false, "write OpenTelemetry spans to stderr")
	pf.BoolVar(&a.jsonOutput, "json", false, "output results in JSON format")

	root.AddCommand(
		newBindCmd(a),
		newInspectCmd(a),
		newRenderCmd(a),
		newStoreCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// open resolves settings and builds the Kit for this run.
// Options in extra apply after those derived from settings.
func (a *app) open(cmd *cobra.Command, extra ...dread.Option) (*dread.Kit, error) {
	settings, err := config.LoadSettings(a.configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		settings.LogLevel = a.logLevel
	}
	if flags.Changed("log-format") {
		settings.LogFormat = a.logFormat
	}
	if flags.Changed("store") {
		settings.StorePath = a.storePath
	}
	if flags.Changed("trace") {
		settings.Tracing = a.trace
	}

	logger, err := config.NewLogger(cmd.ErrOrStderr(), settings.LogLevel, settings.LogFormat)
	if err != nil {
		return nil, err
	}

	var s store.Store
	if settings.StorePath == "" {
		s = store.NewMemoryStore()
	} else {
		s, err = store.NewSQLiteStore(settings.StorePath)
		if err != nil {
			return nil, err
		}
	}

	if settings.Tracing {
		exporter, err := stdouttrace.New(
			stdouttrace.WithWriter(cmd.ErrOrStderr()),
			stdouttrace.WithPrettyPrint(),
		)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("create trace exporter: %w", err)
		}
		a.tracer = sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
		a.prevTracer = otel.GetTracerProvider()
		otel.SetTracerProvider(a.tracer)
	}

	opts := []dread.Option{
		dread.WithStore(s),
		dread.WithLogger(logger),
		dread.WithMetrics(settings.Metrics),
		dread.WithTracing(settings.Tracing),
		dread.WithMissingAction(settings.MissingAction()),
		dread.WithDefaults(settings.Defaults),
	}
	a.kit = dread.New(append(opts, extra...)...)

	logger.Debug("settings resolved",
		slog.String("store", settings.StorePath),
		slog.Bool("strict", settings.Strict),
		slog.Bool("tracing", settings.Tracing),
		slog.Int("defaults", len(settings.Defaults)))
	return a.kit, nil
}

// close releases what open acquired.
func (a *app) close(ctx context.Context) error {
	var err error
	if a.kit != nil {
		err = a.kit.Close()
		a.kit = nil
	}
	if a.tracer != nil {
		if shutdownErr := a.tracer.Shutdown(ctx); shutdownErr != nil && err == nil {
			err = shutdownErr
		}
		otel.SetTracerProvider(a.prevTracer)
		a.tracer = nil
	}
	return err
}
