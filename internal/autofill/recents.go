package autofill

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrival/quickvault/internal/logging"
	"github.com/dmitrival/quickvault/internal/models"
	"github.com/dmitrival/quickvault/internal/securestore"
)

const recentSuffix = "_recent"

// Recents is the bounded most-recent-first cache of entry keys, persisted
// per database in the secure item store so suggestions survive restarts.
//
// Pushing a key that is already cached is a no-op: the key is not
// duplicated and, notably, not promoted to the front either. That matches
// the shipped behavior and changing it would reshuffle users' suggestion
// order, so it stays until decided otherwise.
type Recents struct {
	store securestore.Store
	cap   int
	log   logging.Logger
}

func NewRecents(store securestore.Store, cap int, log logging.Logger) (*Recents, error) {
	if cap <= 0 {
		return nil, fmt.Errorf("autofill: recents cap must be positive, got %d", cap)
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Recents{store: store, cap: cap, log: log}, nil
}

// Push records key as recently used for dbKey.
func (r *Recents) Push(ctx context.Context, dbKey string, key models.EntryKey) error {
	keys, err := r.load(ctx, dbKey)
	if err != nil {
		return err
	}

	for _, k := range keys {
		if k == key {
			return nil
		}
	}

	keys = append([]models.EntryKey{key}, keys...)
	if len(keys) > r.cap {
		keys = keys[:r.cap]
	}

	return r.save(ctx, dbKey, keys)
}

// Matching returns the entries whose keys are cached, in cache order
// (most-recent-first). Cached keys with no surviving entry are skipped.
// Entries colliding on one key all surface, in input order.
func (r *Recents) Matching(ctx context.Context, dbKey string, entries []models.CredentialEntry) ([]models.CredentialEntry, error) {
	keys, err := r.load(ctx, dbKey)
	if err != nil {
		return nil, err
	}

	var matched []models.CredentialEntry
	for _, k := range keys {
		for _, e := range entries {
			if e.Key() == k {
				matched = append(matched, e)
			}
		}
	}
	return matched, nil
}

// Forget drops the cached list for dbKey, e.g. when the database is deleted.
func (r *Recents) Forget(ctx context.Context, dbKey string) error {
	if err := r.store.Delete(ctx, dbKey+recentSuffix); err != nil {
		return fmt.Errorf("autofill: forget recents: %w", err)
	}
	return nil
}

func (r *Recents) load(ctx context.Context, dbKey string) ([]models.EntryKey, error) {
	raw, found, err := r.store.Get(ctx, dbKey+recentSuffix)
	if err != nil {
		return nil, fmt.Errorf("autofill: read recents: %w", err)
	}
	if !found {
		return nil, nil
	}

	var keys []models.EntryKey
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		r.log.Warn(ctx, "malformed recents list, starting over", "db", dbKey, "error", err)
		return nil, nil
	}
	return keys, nil
}

func (r *Recents) save(ctx context.Context, dbKey string, keys []models.EntryKey) error {
	payload, err := json.Marshal(keys)
	if err != nil {
		return fmt.Errorf("autofill: encode recents: %w", err)
	}
	if err := r.store.Set(ctx, dbKey+recentSuffix, string(payload)); err != nil {
		return fmt.Errorf("autofill: write recents: %w", err)
	}
	return nil
}
