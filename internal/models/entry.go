// Package models defines the read-only view of decrypted database entries
// the core operates on. The database layer owns these records; nothing here
// mutates them.
package models

// CredentialEntry is a single decrypted password entry supplied by the
// database layer.
type CredentialEntry struct {
	// ID is the entry's identifier inside its database.
	ID string

	// Title is the user-visible entry name.
	Title string

	// Username is the stored account name.
	Username string

	// Password is the stored secret value.
	Password string

	// URL is the service address the credentials belong to (may be empty).
	URL string

	// IconID selects the entry icon in the UI layer.
	IconID int
}

// EntryKey identifies an entry for the recent-items cache.
type EntryKey string

// Key derives the cache key for an entry from its title and username.
// Distinct entries sharing both fields collide; that is accepted, the
// cache is a suggestion aid, not an index.
func (e CredentialEntry) Key() EntryKey {
	return EntryKey(e.Title + e.Username)
}
