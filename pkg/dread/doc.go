/*
Package dread binds values into string templates.

# Overview

A template carries two kinds of placeholders:

  - {key} is replaced by the bound value for key, and left as-is otherwise.
  - {{key="default"}} is replaced by the bound value for key, or by its
    embedded default when key is not bound.

The binding mechanism itself lives in the template subpackage. This
package provides Kit, a namespace object that pairs a configured Binder
with a store of named templates and the logging, metrics, and tracing
that go with them.

# Basic Usage

	kit := dread.New()
	defer kit.Close()

	out, err := kit.Bind(ctx, `{name}={value}; path={{path="/"}}`,
	    map[string]any{"name": "sid", "value": "abc"})
	// out: "sid=abc; path=/"

# Named Templates

	_, err := kit.Save(ctx, "cookie", `{name}={value}; path={{path="/"}}`)
	out, err := kit.Render(ctx, "cookie", template.Bindings{
	    {Key: "name", Value: "sid"},
	    {Key: "value", Value: "abc"},
	})

Use WithStore to persist templates in SQLite:

	s, err := store.NewSQLiteStore("templates.db")
	kit := dread.New(dread.WithStore(s))

# Observability

	kit := dread.New(
	    dread.WithLogger(logger),
	    dread.WithMetrics(true),
	    dread.WithTracing(true),
	)

Metrics and spans go to the global OpenTelemetry providers.
*/
package dread
