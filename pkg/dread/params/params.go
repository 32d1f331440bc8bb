// Package params parses typed key=value declarations and merges nested
// parameter maps.
//
// Declarations follow the same literal rules as placeholder defaults:
//
//	params.Parse("a=1", `b="foo"`, "c=true")
//	// map[string]any{"a": 1, "b": "foo", "c": true}
package params

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/randalmurphal/dread/pkg/dread/template"
)

// DeclError describes a declaration that could not be parsed.
type DeclError struct {
	Decl   string
	Reason string
}

// Error implements the error interface.
func (e *DeclError) Error() string {
	return fmt.Sprintf("invalid declaration %q: %s", e.Decl, e.Reason)
}

// Parse parses declarations of the form key=value into a map.
// Later declarations of the same key win.
func Parse(decls ...string) (map[string]any, error) {
	out := make(map[string]any, len(decls))
	for _, d := range decls {
		key, value, err := parseDecl(d)
		if err != nil {
			return nil, err
		}
		out[key] = value
	}
	return out, nil
}

// ParseBindings parses declarations like Parse but keeps declaration order.
// A repeated key replaces the earlier value in place.
func ParseBindings(decls ...string) (template.Bindings, error) {
	var b template.Bindings
	for _, d := range decls {
		key, value, err := parseDecl(d)
		if err != nil {
			return nil, err
		}
		b = b.With(template.Bindings{{Key: key, Value: value}})
	}
	return b, nil
}

func parseDecl(decl string) (string, any, error) {
	key, raw, ok := strings.Cut(decl, "=")
	if !ok {
		return "", nil, &DeclError{Decl: decl, Reason: "missing '='"}
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", nil, &DeclError{Decl: decl, Reason: "empty key"}
	}
	value, err := ParseValue(raw)
	if err != nil {
		return "", nil, &DeclError{Decl: decl, Reason: err.Error()}
	}
	return key, value, nil
}

// ParseValue types a single literal:
//   - true, True, false, False: bool
//   - anything containing a double quote: string with all quotes removed
//   - otherwise a base-10 integer, or a float64 when it has a fraction
func ParseValue(raw string) (any, error) {
	switch raw {
	case "true", "True":
		return true, nil
	case "false", "False":
		return false, nil
	}
	if strings.Contains(raw, `"`) {
		return strings.ReplaceAll(raw, `"`, ""), nil
	}
	if i, err := strconv.Atoi(raw); err == nil {
		return i, nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f, nil
	}
	return nil, fmt.Errorf("unquoted value %q is not a number or boolean", raw)
}
