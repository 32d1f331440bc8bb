/*
Package template binds values into placeholder strings.

# Overview

template resolves two placeholder forms against a set of bindings:

  - {key} - simple placeholder, replaced when key is bound
  - {{key="default"}} - defaulted placeholder, replaced by the bound value
    for key, or by its literal default when key is not bound

It is designed for building small strings such as cookie values, header
lines, request bodies, and window feature lists.

# Basic Usage

	result, ok := template.Bind("Hello {name}", map[string]any{"name": "World"})
	// result: "Hello World", ok: true

Defaulted placeholders fall back to their embedded default:

	result, _ := template.Bind(`a={a}; path={{path="/"}}`, map[string]any{"a": "v"})
	// result: "a=v; path=/"

	result, _ = template.Bind(`a={a}; path={{path="/"}}`, map[string]any{"a": "v", "path": "/x"})
	// result: "a=v; path=/x"

Bind reports false for an empty template or for bindings that are not a
mapping (a Bindings list or any map keyed by string).

# Binding Order

Each binding replaces only the first {key} occurrence and the first
{{key=...}} occurrence, in binding order. Use Bindings to control the
order explicitly; maps are bound in ascending key order.

	b := template.Bindings{
	    {Key: "name", Value: "session"},
	    {Key: "value", Value: 42},
	}

Only after every binding has been applied are the remaining defaulted
placeholders replaced by their defaults.

# Binder

Binder adds error reporting, strictness, and observability on top of the
plain Bind function:

	b := template.NewBinder(
	    template.WithMissingAction(template.MissingError),
	    template.WithLogger(logger),
	)
	out, err := b.Bind(ctx, "{greeting} {name}", map[string]any{"greeting": "Hi"})
	// err: "unbound placeholder: name"

# Thread Safety

Bind and Binder are safe for concurrent use. Neither mutates its inputs.
*/
package template
