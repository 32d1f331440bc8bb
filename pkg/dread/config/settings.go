package config

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/randalmurphal/dread/pkg/dread/params"
	"github.com/randalmurphal/dread/pkg/dread/template"
)

// Environment variables that override settings files.
const (
	EnvLogLevel = "DREAD_LOG_LEVEL"
	EnvStore    = "DREAD_STORE"
)

// Settings holds the resolved runtime settings.
type Settings struct {
	LogLevel  string
	LogFormat string
	// StorePath is the SQLite database path; empty selects an in-memory store.
	StorePath string
	Strict    bool
	Tracing   bool
	Metrics   bool
	// Defaults are bound before any caller-supplied bindings.
	Defaults template.Bindings
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	s, _ := settingsFrom(New(defaultSettingsMap()))
	return s
}

func defaultSettingsMap() map[string]any {
	return map[string]any{
		"log_level":  "info",
		"log_format": "text",
		"store":      "",
		"strict":     false,
		"tracing":    false,
		"metrics":    false,
		"defaults":   map[string]any{},
	}
}

// LoadSettings layers defaults, the file at path (skipped when empty),
// and environment overrides.
func LoadSettings(path string) (Settings, error) {
	merged := defaultSettingsMap()

	if path != "" {
		cfg, err := FromFile(path)
		if err != nil {
			return Settings{}, err
		}
		merged = params.Extend(merged, cfg.Raw())
	}

	env := map[string]any{}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		env["log_level"] = v
	}
	if v, ok := os.LookupEnv(EnvStore); ok {
		env["store"] = v
	}
	merged = params.Extend(merged, env)

	s, err := settingsFrom(New(merged))
	if err != nil && path != "" {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, err
}

func settingsFrom(cfg Config) (Settings, error) {
	defaults, err := defaultBindings(cfg.Map("defaults"))
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		LogLevel:  cfg.String("log_level", "info"),
		LogFormat: cfg.String("log_format", "text"),
		StorePath: cfg.String("store", ""),
		Strict:    cfg.Bool("strict", false),
		Tracing:   cfg.Bool("tracing", false),
		Metrics:   cfg.Bool("metrics", false),
		Defaults:  defaults,
	}, nil
}

// defaultBindings converts the defaults mapping, rejecting nested values
// the same way bindings documents do.
func defaultBindings(m map[string]any) (template.Bindings, error) {
	for _, k := range slices.Sorted(maps.Keys(m)) {
		switch m[k].(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf("defaults %q: %w", k, ErrNestedBinding)
		}
	}
	return template.FromMap(m), nil
}

// MissingAction maps Strict onto the binder's handling of unbound placeholders.
func (s Settings) MissingAction() template.MissingAction {
	if s.Strict {
		return template.MissingError
	}
	return template.MissingKeep
}
