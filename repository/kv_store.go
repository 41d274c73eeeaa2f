package repository

import "context"

// KVStore is the persistent string store the console keeps its session in. Values survive
// process restarts for the durable backends. Get returns domain.ErrKeyNotFound for
// missing keys.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Apply writes set and removes del as one atomic step: either every change is
	// persisted or none is.
	Apply(ctx context.Context, set map[string]string, del []string) error
	Close() error
}
