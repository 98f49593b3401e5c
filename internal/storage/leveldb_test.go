package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/dex-wallet/internal/storage"
)

func TestStoreSetGetRemove(t *testing.T) {
	store, err := storage.Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Get("address")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	store.Set("address", "0xabc")
	val, err := store.Get("address")
	require.NoError(t, err)
	assert.Equal(t, "0xabc", val)

	store.Remove("address")
	_, err = store.Get("address")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStoreSynchronizePersists(t *testing.T) {
	dir := t.TempDir()

	store, err := storage.Open(dir)
	require.NoError(t, err)

	store.Set("mnemonic_words", "a b c")
	store.Set("address", "0xabc")
	require.NoError(t, store.Synchronize())
	store.Remove("address")
	require.NoError(t, store.Close())

	reopened, err := storage.Open(dir)
	require.NoError(t, err)
	defer reopened.Close()

	val, err := reopened.Get("mnemonic_words")
	require.NoError(t, err)
	assert.Equal(t, "a b c", val)

	// Close flushes staged deletions.
	_, err = reopened.Get("address")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStoreCloseTwice(t *testing.T) {
	store, err := storage.Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
