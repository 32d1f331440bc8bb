package store_test

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/randalmurphal/dread/pkg/dread/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeFactory creates a store instance for testing.
type storeFactory func(t *testing.T) store.Store

// storeContractTest runs contract tests against any Store implementation.
func storeContractTest(t *testing.T, name string, factory storeFactory) {
	t.Run(name+"/Save_and_Load", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		body := `{name}={value}; path={{path="/"}}`
		info, err := s.Save("cookie", body)
		require.NoError(t, err)
		assert.Equal(t, "cookie", info.Name)
		assert.Equal(t, 1, info.Revision)
		assert.Equal(t, int64(len(body)), info.Size)
		assert.False(t, info.Updated.IsZero())
		_, err = uuid.Parse(info.ID)
		assert.NoError(t, err, "ID should be a UUID")

		loaded, err := s.Load("cookie")
		require.NoError(t, err)
		assert.Equal(t, body, loaded)
	})

	t.Run(name+"/Load_NotFound", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		_, err := s.Load("nonexistent")
		assert.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.Stat("nonexistent")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run(name+"/Save_EmptyName", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		_, err := s.Save("", "body")
		assert.ErrorIs(t, err, store.ErrInvalidName)
	})

	t.Run(name+"/Save_Overwrite", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		first, err := s.Save("greeting", "Hello {name}")
		require.NoError(t, err)
		second, err := s.Save("greeting", "Hi {name}")
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID, "ID survives overwrite")
		assert.Equal(t, 2, second.Revision)

		loaded, err := s.Load("greeting")
		require.NoError(t, err)
		assert.Equal(t, "Hi {name}", loaded)
	})

	t.Run(name+"/Stat", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		saved, err := s.Save("ünïcode", "äöü")
		require.NoError(t, err)

		info, err := s.Stat("ünïcode")
		require.NoError(t, err)
		assert.Equal(t, saved.ID, info.ID)
		assert.Equal(t, int64(len("äöü")), info.Size, "size is in bytes")
	})

	t.Run(name+"/List_Empty", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		infos, err := s.List()
		require.NoError(t, err)
		assert.Empty(t, infos)
	})

	t.Run(name+"/List_OrderedByName", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		for _, n := range []string{"charlie", "alpha", "bravo"} {
			_, err := s.Save(n, n)
			require.NoError(t, err)
		}

		infos, err := s.List()
		require.NoError(t, err)
		require.Len(t, infos, 3)
		assert.Equal(t, "alpha", infos[0].Name)
		assert.Equal(t, "bravo", infos[1].Name)
		assert.Equal(t, "charlie", infos[2].Name)
	})

	t.Run(name+"/Delete", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		_, err := s.Save("gone", "x")
		require.NoError(t, err)
		require.NoError(t, s.Delete("gone"))

		_, err = s.Load("gone")
		assert.ErrorIs(t, err, store.ErrNotFound)

		assert.NoError(t, s.Delete("gone"), "deleting a missing template is not an error")
	})

	t.Run(name+"/Closed", func(t *testing.T) {
		s := factory(t)
		require.NoError(t, s.Close())
		assert.NoError(t, s.Close(), "close is idempotent")

		_, err := s.Save("a", "b")
		assert.ErrorIs(t, err, store.ErrStoreClosed)
		_, err = s.Load("a")
		assert.ErrorIs(t, err, store.ErrStoreClosed)
		_, err = s.Stat("a")
		assert.ErrorIs(t, err, store.ErrStoreClosed)
		_, err = s.List()
		assert.ErrorIs(t, err, store.ErrStoreClosed)
		assert.ErrorIs(t, s.Delete("a"), store.ErrStoreClosed)
	})

	t.Run(name+"/Concurrent", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		const workers = 20
		var wg sync.WaitGroup
		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go func(id int) {
				defer wg.Done()
				n := fmt.Sprintf("tmpl-%d", id%5)
				_, _ = s.Save(n, "{x}")
				_, _ = s.Load(n)
				_, _ = s.List()
			}(i)
		}
		wg.Wait()

		infos, err := s.List()
		require.NoError(t, err)
		assert.Len(t, infos, 5)
	})
}

func TestMemoryStore(t *testing.T) {
	storeContractTest(t, "MemoryStore", func(t *testing.T) store.Store {
		return store.NewMemoryStore()
	})
}

func TestSQLiteStore(t *testing.T) {
	storeContractTest(t, "SQLiteStore", func(t *testing.T) store.Store {
		s, err := store.NewSQLiteStore(":memory:")
		require.NoError(t, err)
		return s
	})
}

func TestMemoryStore_Len(t *testing.T) {
	s := store.NewMemoryStore()
	_, err := s.Save("a", "1")
	require.NoError(t, err)
	_, err = s.Save("a", "2")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
}

func TestSQLiteStore_Persistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "templates.db")

	s1, err := store.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	saved, err := s1.Save("cookie", `{name}={value}`)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := store.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer s2.Close()

	body, err := s2.Load("cookie")
	require.NoError(t, err)
	assert.Equal(t, `{name}={value}`, body)

	info, err := s2.Stat("cookie")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, info.ID)
}

func TestSQLiteStore_InvalidPath(t *testing.T) {
	_, err := store.NewSQLiteStore("/nonexistent/path/db.sqlite")
	assert.Error(t, err)
}
