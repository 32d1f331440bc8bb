package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists templates to SQLite.
// It is suitable for single-process use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite template store.
// The path should be a file path (e.g., "./templates.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A :memory: database exists per connection.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS templates (
			name TEXT PRIMARY KEY,
			id TEXT NOT NULL,
			revision INTEGER NOT NULL,
			updated TEXT NOT NULL,
			body TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(name, body string) (Info, error) {
	if name == "" {
		return Info{}, ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Info{}, ErrStoreClosed
	}

	updated := time.Now().UTC()
	_, err := s.db.Exec(`
		INSERT INTO templates (name, id, revision, updated, body)
		VALUES (?, ?, 1, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			revision = revision + 1,
			updated = excluded.updated,
			body = excluded.body
	`, name, uuid.NewString(), updated.Format(time.RFC3339Nano), body)
	if err != nil {
		return Info{}, fmt.Errorf("save template: %w", err)
	}

	return s.stat(name)
}

// Load implements Store.
func (s *SQLiteStore) Load(name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", ErrStoreClosed
	}

	var body string
	err := s.db.QueryRow(`SELECT body FROM templates WHERE name = ?`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load template: %w", err)
	}
	return body, nil
}

// Stat implements Store.
func (s *SQLiteStore) Stat(name string) (Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Info{}, ErrStoreClosed
	}
	return s.stat(name)
}

// stat reads metadata; callers hold the lock.
func (s *SQLiteStore) stat(name string) (Info, error) {
	info := Info{Name: name}
	var updated string
	err := s.db.QueryRow(`
		SELECT id, revision, updated, LENGTH(CAST(body AS BLOB))
		FROM templates WHERE name = ?
	`, name).Scan(&info.ID, &info.Revision, &updated, &info.Size)
	if errors.Is(err, sql.ErrNoRows) {
		return Info{}, ErrNotFound
	}
	if err != nil {
		return Info{}, fmt.Errorf("stat template: %w", err)
	}
	info.Updated, _ = time.Parse(time.RFC3339Nano, updated)
	return info, nil
}

// List implements Store.
func (s *SQLiteStore) List() ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT name, id, revision, updated, LENGTH(CAST(body AS BLOB))
		FROM templates
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	infos := []Info{}
	for rows.Next() {
		var info Info
		var updated string
		if err := rows.Scan(&info.Name, &info.ID, &info.Revision, &updated, &info.Size); err != nil {
			return nil, fmt.Errorf("scan template info: %w", err)
		}
		info.Updated, _ = time.Parse(time.RFC3339Nano, updated)
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate templates: %w", err)
	}
	return infos, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.Exec(`DELETE FROM templates WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}
