package credstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "nested", "credentials"))

	tok, err := store.Get()
	require.NoError(t, err)
	assert.Empty(t, tok, "absent slot means unauthenticated")

	require.NoError(t, store.Set("tok-abc"))
	tok, err = store.Get()
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", tok)

	// Set is idempotent and replaces the slot.
	require.NoError(t, store.Set("tok-def"))
	tok, _ = store.Get()
	assert.Equal(t, "tok-def", tok)
}

func TestClearIsIdempotent(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "credentials"))

	require.NoError(t, store.Clear(), "clearing an empty slot is fine")

	require.NoError(t, store.Set("tok"))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	tok, err := store.Get()
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestSurvivesNewInstance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials")
	require.NoError(t, New(path).Set("persisted"))

	tok, err := New(path).Get()
	require.NoError(t, err)
	assert.Equal(t, "persisted", tok)
}
