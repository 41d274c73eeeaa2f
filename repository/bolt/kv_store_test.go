package bolt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/warehouse-console/domain"
)

func TestStoreRoundTripAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.db")
	ctx := context.Background()

	store, err := Open(path, "")
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "token", "abc"))
	require.NoError(t, store.Set(ctx, "user", `{"id":1}`))
	require.NoError(t, store.Close())

	store, err = Open(path, "")
	require.NoError(t, err)
	defer store.Close()

	token, err := store.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	keys, err := store.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"token", "user"}, keys)
}

func TestStoreMissingAndDelete(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "s.db"), "custom")
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	_, err = store.Get(ctx, "token")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "token", "abc"))
	require.NoError(t, store.Delete(ctx, "token"))
	require.NoError(t, store.Delete(ctx, "token"))

	_, err = store.Get(ctx, "token")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestApplyWritesAndDeletesTogether(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.db")
	ctx := context.Background()

	store, err := Open(path, "")
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "user", `{"id":1}`))

	require.NoError(t, store.Apply(ctx, map[string]string{"token": "next"}, []string{"user"}))
	require.NoError(t, store.Close())

	store, err = Open(path, "")
	require.NoError(t, err)
	defer store.Close()

	token, err := store.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "next", token)
	_, err = store.Get(ctx, "user")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestApplyOnClosedStoreWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.db")
	ctx := context.Background()

	store, err := Open(path, "")
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "token", "old"))
	require.NoError(t, store.Close())

	assert.Error(t, store.Apply(ctx, map[string]string{"token": "new", "user": "{}"}, nil))

	store, err = Open(path, "")
	require.NoError(t, err)
	defer store.Close()
	keys, err := store.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"token"}, keys)
}

func TestNilStore(t *testing.T) {
	var store *Store
	_, err := store.Get(context.Background(), "token")
	assert.Error(t, err)
	assert.NoError(t, store.Close())
}
