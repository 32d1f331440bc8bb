package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory template store.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]storedTemplate
	closed bool
}

type storedTemplate struct {
	id       string
	body     string
	revision int
	updated  time.Time
}

func (s storedTemplate) info(name string) Info {
	return Info{
		ID:       s.id,
		Name:     name,
		Revision: s.revision,
		Updated:  s.updated,
		Size:     int64(len(s.body)),
	}
}

// NewMemoryStore creates a new in-memory template store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]storedTemplate),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(name, body string) (Info, error) {
	if name == "" {
		return Info{}, ErrInvalidName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Info{}, ErrStoreClosed
	}

	st, ok := m.data[name]
	if !ok {
		st.id = uuid.NewString()
	}
	st.body = body
	st.revision++
	st.updated = time.Now().UTC()
	m.data[name] = st

	return st.info(name), nil
}

// Load implements Store.
func (m *MemoryStore) Load(name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", ErrStoreClosed
	}

	st, ok := m.data[name]
	if !ok {
		return "", ErrNotFound
	}
	return st.body, nil
}

// Stat implements Store.
func (m *MemoryStore) Stat(name string) (Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Info{}, ErrStoreClosed
	}

	st, ok := m.data[name]
	if !ok {
		return Info{}, ErrNotFound
	}
	return st.info(name), nil
}

// List implements Store.
func (m *MemoryStore) List() ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	infos := make([]Info, 0, len(m.data))
	for name, st := range m.data {
		infos = append(infos, st.info(name))
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data, name)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	return nil
}

// Len returns the number of stored templates.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
