package localstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "offline.db"))
	require.NoError(t, err)

	value, err := store.GetItem("ingressos_offline")
	require.NoError(t, err)
	assert.Equal(t, "", value)

	require.NoError(t, store.SetItem("ingressos_offline", `[{"token":"tok-1"}]`))

	value, err = store.GetItem("ingressos_offline")
	require.NoError(t, err)
	assert.Equal(t, `[{"token":"tok-1"}]`, value)

	ok, err := store.HasItem("ingressos_offline")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSQLiteStoreOverwrite(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "offline.db"))
	require.NoError(t, err)

	require.NoError(t, store.SetItem("k", "first"))
	require.NoError(t, store.SetItem("k", "second"))

	value, err := store.GetItem("k")
	require.NoError(t, err)
	assert.Equal(t, "second", value)
}

func TestSQLiteStoreRemove(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "offline.db"))
	require.NoError(t, err)

	require.NoError(t, store.SetItem("k", "v"))
	require.NoError(t, store.RemoveItem("k"))

	ok, err := store.HasItem("k")
	require.NoError(t, err)
	assert.False(t, ok)

	// Removing an absent key is not an error.
	require.NoError(t, store.RemoveItem("missing"))
}
