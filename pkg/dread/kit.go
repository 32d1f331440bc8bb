package dread

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/randalmurphal/dread/pkg/dread/observability"
	"github.com/randalmurphal/dread/pkg/dread/store"
	"github.com/randalmurphal/dread/pkg/dread/template"
)

// Store operation names used in logs, metrics, and spans.
const (
	opSave   = "save"
	opLoad   = "load"
	opList   = "list"
	opDelete = "delete"
)

// Kit binds templates and manages named templates.
//
// Construct once with New and pass it by reference.
// Kit is safe for concurrent use.
type Kit struct {
	binder   *template.Binder
	store    store.Store
	logger   *slog.Logger
	metrics  observability.MetricsRecorder
	spans    observability.SpanManager
	defaults template.Bindings
}

// New creates a Kit with the given options.
func New(opts ...Option) *Kit {
	cfg := defaultKitConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.store == nil {
		cfg.store = store.NewMemoryStore()
	}

	return &Kit{
		binder: template.NewBinder(
			template.WithMissingAction(cfg.missingAction),
			template.WithLogger(cfg.logger),
			template.WithMetrics(cfg.metrics),
			template.WithSpanManager(cfg.spans),
		),
		store:    cfg.store,
		logger:   observability.EnrichLogger(cfg.logger, "store"),
		metrics:  cfg.metrics,
		spans:    cfg.spans,
		defaults: cfg.defaults,
	}
}

// Bind binds data into tmpl after layering data over the Kit defaults.
// See template.Binder.Bind for the accepted data types and errors.
func (k *Kit) Bind(ctx context.Context, tmpl string, data any) (string, error) {
	if len(k.defaults) > 0 {
		if b, err := template.AsBindings(data); err == nil {
			data = k.defaults.With(b)
		}
	}
	return k.binder.Bind(ctx, tmpl, data)
}

// Render loads the named template and binds data into it.
func (k *Kit) Render(ctx context.Context, name string, data any) (string, error) {
	body, err := k.Load(ctx, name)
	if err != nil {
		return "", fmt.Errorf("render %q: %w", name, err)
	}
	out, err := k.Bind(ctx, body, data)
	if err != nil {
		return out, fmt.Errorf("render %q: %w", name, err)
	}
	return out, nil
}

// Save stores body under name.
func (k *Kit) Save(ctx context.Context, name, body string) (store.Info, error) {
	var info store.Info
	err := k.storeOp(ctx, opSave, name, func() error {
		var err error
		info, err = k.store.Save(name, body)
		return err
	})
	return info, err
}

// Load returns the body of the named template.
func (k *Kit) Load(ctx context.Context, name string) (string, error) {
	var body string
	err := k.storeOp(ctx, opLoad, name, func() error {
		var err error
		body, err = k.store.Load(name)
		return err
	})
	return body, err
}

// List returns metadata for all stored templates, ordered by name.
func (k *Kit) List(ctx context.Context) ([]store.Info, error) {
	var infos []store.Info
	err := k.storeOp(ctx, opList, "", func() error {
		var err error
		infos, err = k.store.List()
		return err
	})
	return infos, err
}

// Delete removes the named template. Deleting a missing template is not an error.
func (k *Kit) Delete(ctx context.Context, name string) error {
	return k.storeOp(ctx, opDelete, name, func() error {
		return k.store.Delete(name)
	})
}

// Store returns the underlying template store.
func (k *Kit) Store() store.Store {
	return k.store
}

// Binder returns the configured binder.
func (k *Kit) Binder() *template.Binder {
	return k.binder
}

// Close closes the template store.
func (k *Kit) Close() error {
	return k.store.Close()
}

// storeOp runs fn inside a store span and records its outcome.
func (k *Kit) storeOp(ctx context.Context, op, name string, fn func() error) error {
	ctx, span := k.spans.StartStoreSpan(ctx, op, name)
	err := fn()
	k.metrics.RecordStoreOp(ctx, op, err)
	k.spans.EndSpanWithError(span, err)

	if err != nil {
		observability.LogStoreError(k.logger, op, name, err)
	} else {
		observability.LogStoreOp(k.logger, op, name)
	}
	return err
}
