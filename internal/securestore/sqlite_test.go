package securestore

import (
	"context"
	"crypto/rand"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*SQLiteStore, *sql.DB) {
	t.Helper()
	ctx := context.Background()

	db, err := OpenDatabase(ctx, "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })

	key := make([]byte, 32)
	_, err = rand.Read(key)
	require.NoError(t, err)

	return NewSQLiteStore(db, key, nil), db
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "passwords.kdbx_protection", `{"biometry":true}`))

	value, found, err := store.Get(ctx, "passwords.kdbx_protection")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, `{"biometry":true}`, value)
}

func TestSQLiteStore_SetIsIdempotentUpsert(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "first"))
	require.NoError(t, store.Set(ctx, "k", "second"))

	value, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "second", value)
}

func TestSQLiteStore_GetAbsent(t *testing.T) {
	store, _ := setupStore(t)

	value, found, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	require.False(t, found)
	require.Empty(t, value)
}

func TestSQLiteStore_DeleteAbsentIsNoop(t *testing.T) {
	store, _ := setupStore(t)
	require.NoError(t, store.Delete(context.Background(), "missing"))
}

func TestSQLiteStore_Delete(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "v"))
	require.NoError(t, store.Delete(ctx, "k"))

	_, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, found)
}

func TestSQLiteStore_ValuesEncryptedAtRest(t *testing.T) {
	store, db := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "visible-secret"))

	var raw []byte
	require.NoError(t, db.QueryRowContext(ctx, `SELECT value FROM items WHERE key = 'k'`).Scan(&raw))
	require.NotContains(t, string(raw), "visible-secret")
}

func TestSQLiteStore_UndecryptableRecordTreatedAsAbsent(t *testing.T) {
	store, db := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "v"))
	_, err := db.ExecContext(ctx, `UPDATE items SET value = X'DEADBEEF' WHERE key = 'k'`)
	require.NoError(t, err)

	_, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, found)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.db")

	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	db, err := OpenDatabase(ctx, path)
	require.NoError(t, err)
	require.NoError(t, NewSQLiteStore(db, key, nil).Set(ctx, "k", "persisted"))
	require.NoError(t, db.Close())

	db, err = OpenDatabase(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	value, found, err := NewSQLiteStore(db, key, nil).Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "persisted", value)
}
