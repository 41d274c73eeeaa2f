package redis

import (
	"context"
	"errors"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/warehouse-console/domain"
	"github.com/fastygo/warehouse-console/repository"
)

type kvStore struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
	owned  bool
}

// NewKVStore creates a Redis-backed KVStore. Keys are namespaced with prefix; a zero ttl
// keeps values until they are deleted.
func NewKVStore(client *redislib.Client, prefix string, ttl time.Duration) repository.KVStore {
	if prefix == "" {
		prefix = "wms:session:"
	}
	if ttl < 0 {
		ttl = 0
	}
	return &kvStore{client: client, prefix: prefix, ttl: ttl, owned: true}
}

func (r *kvStore) Get(ctx context.Context, key string) (string, error) {
	result, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return "", domain.ErrKeyNotFound
		}
		return "", err
	}
	return result, nil
}

func (r *kvStore) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.key(key), value, r.ttl).Err()
}

func (r *kvStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// Apply sends the writes and deletions in one MULTI/EXEC block.
func (r *kvStore) Apply(ctx context.Context, set map[string]string, del []string) error {
	if len(set) == 0 && len(del) == 0 {
		return nil
	}
	_, err := r.client.TxPipelined(ctx, func(pipe redislib.Pipeliner) error {
		for key, value := range set {
			pipe.Set(ctx, r.key(key), value, r.ttl)
		}
		if len(del) > 0 {
			keys := make([]string, len(del))
			for i, key := range del {
				keys[i] = r.key(key)
			}
			pipe.Del(ctx, keys...)
		}
		return nil
	})
	return err
}

func (r *kvStore) Close() error {
	if !r.owned || r.client == nil {
		return nil
	}
	return r.client.Close()
}

func (r *kvStore) key(id string) string {
	return r.prefix + id
}
