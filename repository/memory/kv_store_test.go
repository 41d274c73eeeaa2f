package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/warehouse-console/domain"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	store := New()

	_, err := store.Get(ctx, "user")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "user", "{}"))
	v, err := store.Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, "{}", v)

	require.NoError(t, store.Delete(ctx, "user"))
	_, err = store.Get(ctx, "user")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "user", "{}"))
	require.NoError(t, store.Apply(ctx, map[string]string{"token": "abc"}, []string{"user"}))
	v, err = store.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)
	_, err = store.Get(ctx, "user")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}
