package bolt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/fastygo/warehouse-console/domain"
	"github.com/fastygo/warehouse-console/repository"
)

// Store keeps key/value pairs in a single bucket of a BoltDB file.
type Store struct {
	db     *bbolt.DB
	bucket []byte
}

var _ repository.KVStore = (*Store)(nil)

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path, bucket string) (*Store, error) {
	if bucket == "" {
		bucket = "session"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket %q: %w", bucket, err)
	}

	return &Store{db: db, bucket: []byte(bucket)}, nil
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	if s == nil || s.db == nil {
		return "", bbolt.ErrDatabaseNotOpen
	}
	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(s.bucket).Get([]byte(key)); v != nil {
			value = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if value == nil {
		return "", domain.ErrKeyNotFound
	}
	return string(value), nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	if s == nil || s.db == nil {
		return bbolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), []byte(value))
	})
}

func (s *Store) Delete(_ context.Context, key string) error {
	if s == nil || s.db == nil {
		return bbolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(key))
	})
}

// Apply runs every write and delete inside one Bolt transaction.
func (s *Store) Apply(_ context.Context, set map[string]string, del []string) error {
	if s == nil || s.db == nil {
		return bbolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket)
		for key, value := range set {
			if err := b.Put([]byte(key), []byte(value)); err != nil {
				return fmt.Errorf("put %q: %w", key, err)
			}
		}
		for _, key := range del {
			if err := b.Delete([]byte(key)); err != nil {
				return fmt.Errorf("delete %q: %w", key, err)
			}
		}
		return nil
	})
}

// Keys lists the stored keys in byte order.
func (s *Store) Keys() ([]string, error) {
	if s == nil || s.db == nil {
		return nil, bbolt.ErrDatabaseNotOpen
	}
	var keys []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Stats exposes Bolt statistics for the status command.
func (s *Store) Stats() bbolt.Stats {
	if s == nil || s.db == nil {
		return bbolt.Stats{}
	}
	return s.db.Stats()
}
