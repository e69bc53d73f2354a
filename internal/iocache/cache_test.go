package iocache

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/huangsam/paleoreel/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetGlobals allows each test to run InitCaching again.
func resetGlobals(t *testing.T) {
	t.Helper()
	initOnce = sync.Once{}
	closeOnce = sync.Once{}
	Manager = &CacheStoreManager{}
	t.Cleanup(func() {
		CloseCaching()
		initOnce = sync.Once{}
		closeOnce = sync.Once{}
		Manager = &CacheStoreManager{}
	})
}

func TestInitCaching(t *testing.T) {
	t.Run("sqlite file", func(t *testing.T) {
		resetGlobals(t)
		dbPath := filepath.Join(t.TempDir(), "cache.db")

		require.NoError(t, InitCaching(schema.SQLiteBackend, dbPath))
		assert.NotNil(t, Manager.GetTableStore())

		CloseCaching()
		assert.FileExists(t, dbPath)
	})

	t.Run("idempotent setup", func(t *testing.T) {
		resetGlobals(t)
		dbPath := filepath.Join(t.TempDir(), "cache.db")

		assert.NoError(t, InitCaching(schema.SQLiteBackend, dbPath))
		first := Manager.GetTableStore()
		assert.NoError(t, InitCaching(schema.NoneBackend, ""))
		assert.Same(t, first, Manager.GetTableStore())

		CloseCaching()
		CloseCaching()
	})

	t.Run("none backend", func(t *testing.T) {
		resetGlobals(t)

		require.NoError(t, InitCaching(schema.NoneBackend, ""))
		store := Manager.GetTableStore()
		require.NotNil(t, store)

		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.False(t, status.Connected)
	})

	t.Run("empty backend leaves no store", func(t *testing.T) {
		resetGlobals(t)

		require.NoError(t, InitCaching("", ""))
		assert.Nil(t, Manager.GetTableStore())
	})

	t.Run("bad mysql connection", func(t *testing.T) {
		resetGlobals(t)

		err := InitCaching(schema.MySQLBackend, "invalid://connection")
		assert.Error(t, err)
		assert.Nil(t, Manager.GetTableStore())
	})
}

func TestNoneBackendOperations(t *testing.T) {
	store, err := NewCacheStore("test_table", schema.NoneBackend, "")
	require.NoError(t, err)

	_, _, _, err = store.Get("key")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	assert.NoError(t, store.Set("key", []byte("value"), 1, 123))

	_, _, _, err = store.Get("key")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, store.Close())
}

func TestSQLiteBackendOperations(t *testing.T) {
	t.Run("set and get", func(t *testing.T) {
		store, err := NewCacheStore("test_table", schema.SQLiteBackend, ":memory:")
		require.NoError(t, err)
		defer func() { _ = store.Close() }()

		blob := []byte{0x00, 0xff, 0x10, 0x7f}
		require.NoError(t, store.Set("series", blob, 3, 1234567890))

		value, version, ts, err := store.Get("series")
		require.NoError(t, err)
		assert.Equal(t, blob, value)
		assert.Equal(t, 3, version)
		assert.Equal(t, int64(1234567890), ts)
	})

	t.Run("upsert", func(t *testing.T) {
		store, err := NewCacheStore("test_table", schema.SQLiteBackend, ":memory:")
		require.NoError(t, err)
		defer func() { _ = store.Close() }()

		require.NoError(t, store.Set("k", []byte("old"), 1, 1000))
		require.NoError(t, store.Set("k", []byte("new"), 2, 2000))

		value, version, ts, err := store.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "new", string(value))
		assert.Equal(t, 2, version)
		assert.Equal(t, int64(2000), ts)
	})

	t.Run("missing key", func(t *testing.T) {
		store, err := NewCacheStore("test_table", schema.SQLiteBackend, ":memory:")
		require.NoError(t, err)
		defer func() { _ = store.Close() }()

		_, _, _, err = store.Get("missing")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestCacheStoreGetStatus(t *testing.T) {
	t.Run("sqlite with data", func(t *testing.T) {
		store, err := NewCacheStore("status_table", schema.SQLiteBackend, ":memory:")
		require.NoError(t, err)
		defer func() { _ = store.Close() }()

		for key, ts := range map[string]int64{"a": 1000, "b": 2000, "c": 1500} {
			require.NoError(t, store.Set(key, []byte(key), 1, ts))
		}

		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.Equal(t, "sqlite", status.Backend)
		assert.True(t, status.Connected)
		assert.Equal(t, 3, status.TotalEntries)
		assert.Equal(t, time.Unix(2000, 0), status.LastEntryTime)
		assert.Equal(t, time.Unix(1000, 0), status.OldestEntryTime)
		assert.Greater(t, status.TableSizeBytes, int64(0))
	})

	t.Run("sqlite empty", func(t *testing.T) {
		store, err := NewCacheStore("status_table", schema.SQLiteBackend, ":memory:")
		require.NoError(t, err)
		defer func() { _ = store.Close() }()

		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.Equal(t, 0, status.TotalEntries)
		assert.True(t, status.LastEntryTime.IsZero())
		assert.Equal(t, int64(0), status.TableSizeBytes)
	})
}

func TestNewCacheStoreErrors(t *testing.T) {
	tests := []struct {
		name      string
		tableName string
		backend   schema.DatabaseBackend
	}{
		{name: "invalid table name", tableName: "bad-name", backend: schema.SQLiteBackend},
		{name: "empty table name", tableName: "", backend: schema.SQLiteBackend},
		{name: "unsupported backend", tableName: "ok", backend: "oracle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCacheStore(tt.tableName, tt.backend, ":memory:")
			assert.Error(t, err)
		})
	}
}

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		tableName string
		wantErr   bool
	}{
		{"table_cache", false},
		{"_private", false},
		{"cache2", false},
		{"2cache", true},
		{"table cache", true},
		{"cache;DROP TABLE x", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.tableName, func(t *testing.T) {
			err := validateTableName(tt.tableName)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`table_cache`", quoteTableName("table_cache", schema.MySQLBackend))
	assert.Equal(t, `"table_cache"`, quoteTableName("table_cache", schema.PostgreSQLBackend))
	assert.Equal(t, `"table_cache"`, quoteTableName("table_cache", schema.SQLiteBackend))
}

func TestBackendQueries(t *testing.T) {
	tests := []struct {
		backend     schema.DatabaseBackend
		placeholder string
		upsert      string
		blobType    string
	}{
		{schema.SQLiteBackend, "?", "INSERT OR REPLACE", "BLOB"},
		{schema.MySQLBackend, "?", "ON DUPLICATE KEY UPDATE", "LONGBLOB"},
		{schema.PostgreSQLBackend, "$1", "ON CONFLICT (cache_key)", "BYTEA"},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			store := &CacheStoreImpl{tableName: "table_cache", backend: tt.backend}
			assert.Equal(t, tt.placeholder, store.getPlaceholder())
			assert.Contains(t, store.getUpsertQuery(), tt.upsert)
			assert.Contains(t, getCreateTableQuery("table_cache", tt.backend), tt.blobType)
		})
	}
}

func TestClearCache(t *testing.T) {
	t.Run("sqlite removes file", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "clear.db")
		store, err := NewCacheStore(tableCacheTable, schema.SQLiteBackend, dbPath)
		require.NoError(t, err)
		require.NoError(t, store.Set("k", []byte("v"), 1, 1))
		require.NoError(t, store.Close())

		require.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))
		_, err = os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("sqlite missing file", func(t *testing.T) {
		assert.NoError(t, ClearCache(schema.SQLiteBackend, filepath.Join(t.TempDir(), "none.db"), ""))
	})

	t.Run("sqlite empty path", func(t *testing.T) {
		assert.Error(t, ClearCache(schema.SQLiteBackend, "", ""))
	})

	t.Run("none backend", func(t *testing.T) {
		assert.NoError(t, ClearCache(schema.NoneBackend, "", ""))
	})

	t.Run("unsupported backend", func(t *testing.T) {
		assert.Error(t, ClearCache("oracle", "", ""))
	})
}

func TestCacheStoreManagerConcurrency(t *testing.T) {
	resetGlobals(t)
	require.NoError(t, InitCaching(schema.SQLiteBackend, ":memory:"))

	const numGoroutines = 10
	var wg sync.WaitGroup
	for i := range numGoroutines {
		wg.Go(func() {
			store := Manager.GetTableStore()
			if store == nil {
				t.Errorf("goroutine %d: GetTableStore returned nil", i)
				return
			}
			if err := store.Set("shared", []byte("value"), 1, int64(1000+i)); err != nil {
				t.Errorf("goroutine %d: Set failed: %v", i, err)
			}
		})
	}
	wg.Wait()

	status, err := Manager.GetTableStore().GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalEntries)
}

func TestMigrateCache(t *testing.T) {
	t.Run("none backend", func(t *testing.T) {
		err := MigrateCache(&bytes.Buffer{}, schema.NoneBackend, "", -1)
		assert.ErrorContains(t, err, "not supported")
	})

	t.Run("sqlite lifecycle", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "migrate.db")
		var out bytes.Buffer

		require.NoError(t, MigrateCache(&out, schema.SQLiteBackend, dbPath, -1))
		assert.Contains(t, out.String(), "to version 2")

		out.Reset()
		require.NoError(t, MigrateCache(&out, schema.SQLiteBackend, dbPath, -1))
		assert.Contains(t, out.String(), "No migration needed")

		require.NoError(t, MigrateCache(&out, schema.SQLiteBackend, dbPath, 1))
		require.NoError(t, MigrateCache(&out, schema.SQLiteBackend, dbPath, 0))
		require.NoError(t, MigrateCache(&out, schema.SQLiteBackend, dbPath, 2))

		// The migrated schema is usable by the store.
		store, err := NewCacheStore(tableCacheTable, schema.SQLiteBackend, dbPath)
		require.NoError(t, err)
		defer func() { _ = store.Close() }()
		assert.NoError(t, store.Set("k", []byte("v"), 1, 1))
	})

	t.Run("sqlite in memory", func(t *testing.T) {
		assert.NoError(t, MigrateCache(&bytes.Buffer{}, schema.SQLiteBackend, ":memory:", -1))
	})
}
