/*
Package config loads dread settings and bindings documents.

# Settings

Settings are layered: built-in defaults, then an optional YAML or JSON
file, then environment variables.

	settings, err := config.LoadSettings("dread.yaml")

A settings file looks like:

	log_level: debug
	log_format: json
	store: ./templates.db
	strict: true
	tracing: false
	metrics: false
	defaults:
	  path: /
	  domain: example.com

DREAD_LOG_LEVEL and DREAD_STORE override the file.

# Bindings Documents

LoadBindings reads a flat YAML or JSON mapping and keeps document order,
so the resulting Bindings bind in the order the author wrote them:

	b, err := config.LoadBindings("cookie.yaml")

LoadEnvBindings reads a dotenv file; its keys are bound in ascending order.

# Typed Access

Config wraps a map[string]any and returns defaults for missing or
mistyped keys:

	cfg := config.New(map[string]any{"strict": true})
	strict := cfg.Bool("strict", false) // true
*/
package config
