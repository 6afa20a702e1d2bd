package iocache

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faultline/faultline/schema"
	"github.com/stretchr/testify/assert"
)

func newSQLiteStore(t *testing.T) (string, *CacheStoreImpl) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore(ticketTable, schema.SQLiteBackend, dbPath)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return dbPath, store.(*CacheStoreImpl)
}

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		tableName string
		wantErr   bool
	}{
		{"ticket_cache", false},
		{"_private", false},
		{"cache2", false},
		{"", true},
		{"1cache", true},
		{"cache; DROP TABLE x", true},
		{"cache-name", true},
	}

	for _, tt := range tests {
		err := validateTableName(tt.tableName)
		if tt.wantErr {
			assert.Error(t, err, "validateTableName should error for %q", tt.tableName)
		} else {
			assert.NoError(t, err, "validateTableName should not error for %q", tt.tableName)
		}
	}
}

func TestQuoteTableName(t *testing.T) {
	tests := []struct {
		backend schema.DatabaseBackend
		want    string
	}{
		{schema.SQLiteBackend, `"ticket_cache"`},
		{schema.PostgreSQLBackend, `"ticket_cache"`},
		{schema.MySQLBackend, "`ticket_cache`"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, quoteTableName("ticket_cache", tt.backend), "backend %s", tt.backend)
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	_, store := newSQLiteStore(t)

	now := time.Now().Unix()
	err := store.Set("key-1", []byte("payload"), 1, now)
	assert.NoError(t, err)

	value, version, ts, err := store.Get("key-1")
	assert.NoError(t, err)
	assert.Equal(t, []byte("payload"), value)
	assert.Equal(t, 1, version)
	assert.Equal(t, now, ts)
}

func TestSQLiteStoreOverwrite(t *testing.T) {
	_, store := newSQLiteStore(t)

	assert.NoError(t, store.Set("key-1", []byte("old"), 1, 100))
	assert.NoError(t, store.Set("key-1", []byte("new"), 2, 200))

	value, version, ts, err := store.Get("key-1")
	assert.NoError(t, err)
	assert.Equal(t, []byte("new"), value)
	assert.Equal(t, 2, version)
	assert.Equal(t, int64(200), ts)
}

func TestSQLiteStoreMiss(t *testing.T) {
	_, store := newSQLiteStore(t)

	_, _, _, err := store.Get("missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSQLiteStoreStatus(t *testing.T) {
	_, store := newSQLiteStore(t)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalEntries)

	assert.NoError(t, store.Set("key-1", []byte("a"), 1, 100))
	assert.NoError(t, store.Set("key-2", []byte("b"), 1, 200))

	status, err = store.GetStatus()
	assert.NoError(t, err)
	assert.Equal(t, 2, status.TotalEntries)
	assert.Equal(t, time.Unix(200, 0), status.LastEntryTime)
	assert.Equal(t, time.Unix(100, 0), status.OldestEntryTime)
}

func TestNoneBackendIsNoOp(t *testing.T) {
	store, err := NewCacheStore(ticketTable, schema.NoneBackend, "")
	assert.NoError(t, err)

	assert.NoError(t, store.Set("key", []byte("x"), 1, 1))

	_, _, _, err = store.Get("key")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Close())
}

func TestNewCacheStoreRejectsBadInput(t *testing.T) {
	_, err := NewCacheStore("bad name!", schema.SQLiteBackend, "")
	assert.Error(t, err)

	_, err = NewCacheStore(ticketTable, "oracle", "")
	assert.Error(t, err)
}

func TestClearCacheSQLite(t *testing.T) {
	dbPath, store := newSQLiteStore(t)
	assert.NoError(t, store.Set("key", []byte("x"), 1, 1))
	assert.NoError(t, store.Close())

	assert.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))
	_, err := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))

	// Clearing an already-missing file is not an error
	assert.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))

	// But an empty path is
	assert.Error(t, ClearCache(schema.SQLiteBackend, "", ""))
}

func TestClearCacheNoneBackend(t *testing.T) {
	assert.NoError(t, ClearCache(schema.NoneBackend, "", ""))
}
