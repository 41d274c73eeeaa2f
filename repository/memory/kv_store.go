package memory

import (
	"context"
	"sync"

	"github.com/fastygo/warehouse-console/domain"
	"github.com/fastygo/warehouse-console/repository"
)

// Store is a process-local KVStore; nothing survives a restart.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ repository.KVStore = (*Store)(nil)

func New() *Store {
	return &Store{values: make(map[string]string)}
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return v, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	return nil
}

func (s *Store) Apply(_ context.Context, set map[string]string, del []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, value := range set {
		s.values[key] = value
	}
	for _, key := range del {
		delete(s.values, key)
	}
	return nil
}

func (s *Store) Close() error { return nil }
