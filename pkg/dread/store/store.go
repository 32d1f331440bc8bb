// Package store persists named templates.
package store

import (
	"errors"
	"time"
)

// Store persists named templates.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores body under name, overwriting any previous body.
	// The template keeps its ID across overwrites and its Revision
	// increments by one.
	Save(name, body string) (Info, error)

	// Load retrieves a template body.
	// Returns ErrNotFound if the template doesn't exist.
	Load(name string) (string, error)

	// Stat returns metadata without loading the body.
	// Returns ErrNotFound if the template doesn't exist.
	Stat(name string) (Info, error)

	// List returns metadata for all templates, ordered by name.
	// Returns empty slice (not error) if the store is empty.
	List() ([]Info, error)

	// Delete removes a template.
	// Returns nil if the template doesn't exist.
	Delete(name string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info provides metadata without loading the template body.
type Info struct {
	ID       string
	Name     string
	Revision int
	Updated  time.Time
	Size     int64
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates a template doesn't exist.
	ErrNotFound = errors.New("template not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("template store closed")

	// ErrInvalidName indicates an empty template name.
	ErrInvalidName = errors.New("template name must not be empty")
)
