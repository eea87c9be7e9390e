package securestore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemory_RoundTripAndUpsert(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "first"))
	require.NoError(t, store.Set(ctx, "k", "second"))

	value, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "second", value)
	require.Equal(t, 1, store.Len())
}

func TestMemory_AbsentVsDenied(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	// Absence is not an error.
	_, found, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, found)

	// Denial is an error, distinguishable from absence.
	store.Deny("locked")
	_, _, err = store.Get(ctx, "locked")
	require.ErrorIs(t, err, ErrAccessDenied)
	require.ErrorIs(t, store.Set(ctx, "locked", "v"), ErrAccessDenied)
	require.ErrorIs(t, store.Delete(ctx, "locked"), ErrAccessDenied)

	store.Allow("locked")
	require.NoError(t, store.Set(ctx, "locked", "v"))
}

func TestMemory_Delete(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "v"))
	require.NoError(t, store.Delete(ctx, "k"))
	require.NoError(t, store.Delete(ctx, "k"), "absent delete is a no-op")

	_, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, found)
}
