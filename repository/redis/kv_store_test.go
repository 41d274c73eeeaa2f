package redis

import (
	"context"
	"os"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/warehouse-console/domain"
	"github.com/fastygo/warehouse-console/pkg/httpcontext"
)

func TestKVStoreAgainstRedis(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	opts, err := redislib.ParseURL(url)
	require.NoError(t, err)
	client := redislib.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("redis unavailable: %v", err)
	}

	store := NewKVStore(client, "wms-test:"+httpcontext.NewRequestID()+":", time.Minute)
	defer store.Close()

	_, err = store.Get(ctx, "token")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "token", "abc"))
	got, err := store.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	require.NoError(t, store.Delete(ctx, "token"))
	_, err = store.Get(ctx, "token")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, store.Apply(ctx, map[string]string{"token": "t2", "user": "{}"}, nil))
	require.NoError(t, store.Apply(ctx, map[string]string{"token": "t3"}, []string{"user"}))
	got, err = store.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "t3", got)
	_, err = store.Get(ctx, "user")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
	require.NoError(t, store.Apply(ctx, nil, []string{"token"}))
}

func TestKeyPrefix(t *testing.T) {
	store := NewKVStore(nil, "", -time.Second).(*kvStore)
	assert.Equal(t, "wms:session:token", store.key("token"))
	assert.Zero(t, store.ttl)
	assert.NoError(t, (&kvStore{}).Close())
}
