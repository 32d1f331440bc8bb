package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/dread/pkg/dread/template"
)

// Errors returned for malformed bindings documents.
var (
	// ErrBindingsNotMapping indicates a document whose top level is not a mapping.
	ErrBindingsNotMapping = errors.New("bindings document must be a mapping")

	// ErrNestedBinding indicates a binding whose value is not a scalar.
	ErrNestedBinding = errors.New("bindings must be scalars")
)

// LoadBindings reads a YAML or JSON bindings document from path.
func LoadBindings(path string) (template.Bindings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bindings file: %w", err)
	}
	b, err := ParseBindings(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// ParseBindings parses a flat YAML or JSON mapping into Bindings in
// document order. A repeated key replaces the earlier value in place.
// An empty document yields no bindings.
func ParseBindings(data []byte) (template.Bindings, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse bindings: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return template.Bindings{}, nil
		}
		root = root.Content[0]
	}
	if root.Kind == 0 {
		return template.Bindings{}, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, ErrBindingsNotMapping
	}

	b := make(template.Bindings, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("binding %q: %w", key.Value, ErrNestedBinding)
		}
		var v any
		if err := value.Decode(&v); err != nil {
			return nil, fmt.Errorf("binding %q: %w", key.Value, err)
		}
		b = b.With(template.Bindings{{Key: key.Value, Value: v}})
	}
	return b, nil
}

// LoadEnvBindings reads a dotenv file into Bindings sorted by key.
// All values are strings.
func LoadEnvBindings(path string) (template.Bindings, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read env file: %w", err)
	}
	return template.FromMap(env), nil
}
