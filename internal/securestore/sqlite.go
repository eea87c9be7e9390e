package securestore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrival/quickvault/internal/cryptox"
	"github.com/dmitrival/quickvault/internal/dbx"
	"github.com/dmitrival/quickvault/internal/logging"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS items (
  key   TEXT PRIMARY KEY,
  nonce BLOB NOT NULL,
  value BLOB NOT NULL
);
`

// OpenDatabase opens (or creates) the store database at path and ensures the
// schema exists. The file sits in the shared application-group directory so
// every process of the app sees the same records.
func OpenDatabase(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("securestore: open %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("securestore: init schema: %w", err)
	}
	return db, nil
}

// SQLiteStore is the durable Store implementation. Values are sealed with
// the per-device key before they touch the database file, mirroring the
// transparent encryption a platform keychain would provide.
type SQLiteStore struct {
	db  dbx.DBTX
	key []byte
	log logging.Logger
}

func NewSQLiteStore(db dbx.DBTX, deviceKey []byte, log logging.Logger) *SQLiteStore {
	if log == nil {
		log = logging.Discard()
	}
	return &SQLiteStore{db: db, key: deviceKey, log: log}
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	ciphertext, nonce, err := cryptox.Seal(value, s.key)
	if err != nil {
		return fmt.Errorf("securestore: seal item[%s]: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO items (key, nonce, value) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET nonce = excluded.nonce, value = excluded.value
	`, key, nonce, ciphertext)
	if err != nil {
		return fmt.Errorf("securestore: set item[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var nonce, ciphertext []byte
	err := s.db.QueryRowContext(ctx, `SELECT nonce, value FROM items WHERE key = ?`, key).
		Scan(&nonce, &ciphertext)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("securestore: get item[%s]: %w", key, err)
	}

	var value string
	if err := cryptox.Open(ciphertext, nonce, s.key, &value); err != nil {
		// An unreadable record forces re-enrollment; it must never crash
		// the unlock path.
		s.log.Warn(ctx, "discarding undecryptable store record", "key", key, "error", err)
		return "", false, nil
	}
	return value, true, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("securestore: delete item[%s]: %w", key, err)
	}
	return nil
}
