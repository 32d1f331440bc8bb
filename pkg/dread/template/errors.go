package template

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for invalid Bind input.
var (
	// ErrEmptyTemplate indicates an empty template string.
	ErrEmptyTemplate = errors.New("empty template")

	// ErrNotMapping indicates bindings that are not mapping-typed.
	ErrNotMapping = errors.New("bindings must be a mapping")
)

// UnboundError is returned when MissingError is set and one or more
// simple placeholders remain unbound.
type UnboundError struct {
	// Names lists the unbound placeholder names in template order.
	Names []string
}

// Error implements the error interface.
func (e *UnboundError) Error() string {
	if len(e.Names) == 1 {
		return fmt.Sprintf("unbound placeholder: %s", e.Names[0])
	}
	return fmt.Sprintf("unbound placeholders: %s", strings.Join(e.Names, ", "))
}
