// Package securestore persists small secret payloads under opaque string
// keys. It is the project's stand-in for the platform credential store: one
// durable namespace shared by the main app and the autofill extension,
// holding protection policies, cached unlock secrets and recent-item lists
// as opaque UTF-8 (JSON) values.
package securestore

import (
	"context"
	"errors"
)

// ErrAccessDenied reports that the backing store refused the operation, for
// example when the user cancels a protected read. Callers must be able to
// tell this apart from a missing record, which is reported via the found
// flag, not an error.
var ErrAccessDenied = errors.New("secure store: access denied")

// Store is a key/value secret store. Values are opaque UTF-8 strings; the
// store knows nothing about their schema.
type Store interface {
	// Set writes value under key, replacing any existing record. Writing an
	// existing key is an update, never a duplicate-insert error.
	Set(ctx context.Context, key, value string) error

	// Get reads the value for key. A missing record returns ("", false, nil).
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Delete removes the record for key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}
