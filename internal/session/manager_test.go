package session

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/warehouse-console/domain"
	"github.com/fastygo/warehouse-console/repository/bolt"
	"github.com/fastygo/warehouse-console/repository/memory"
)

func TestEstablishPersistsAndRestores(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	store, err := bolt.Open(path, "")
	require.NoError(t, err)
	mgr := NewManager(store, nil)
	require.NoError(t, mgr.Establish(ctx, "tok", domain.User{ID: 1, Username: "admin", IsSuperuser: true}))
	assert.True(t, mgr.LoggedIn())
	assert.True(t, mgr.IsAdmin())
	require.NoError(t, store.Close())

	store, err = bolt.Open(path, "")
	require.NoError(t, err)
	defer store.Close()

	restored := NewManager(store, nil)
	sess, err := restored.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", sess.Token)
	profile, err := sess.Profile()
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "admin", profile.Username)
	assert.Equal(t, "tok", restored.Token())
}

func TestRestoreEmptyStore(t *testing.T) {
	mgr := NewManager(memory.New(), nil)
	sess, err := mgr.Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, sess.LoggedIn())
	assert.Empty(t, sess.User)
}

func TestEstablishRequiresToken(t *testing.T) {
	mgr := NewManager(memory.New(), nil)
	err := mgr.Establish(context.Background(), "", nil)
	assert.ErrorIs(t, err, domain.ErrMissingToken)
}

func TestSetUserKeepsToken(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	mgr := NewManager(store, nil)
	require.NoError(t, mgr.Establish(ctx, "tok", nil))

	require.NoError(t, mgr.SetUser(ctx, json.RawMessage(`{"id":2,"username":"keeper"}`)))
	assert.Equal(t, "tok", mgr.Token())

	stored, err := store.Get(ctx, KeyUser)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":2,"username":"keeper"}`, stored)

	assert.ErrorIs(t, mgr.SetUser(ctx, json.RawMessage(`{broken`)), domain.ErrInvalidPayload)
}

func TestInvalidateClearsAndNotifies(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	mgr := NewManager(store, nil)
	require.NoError(t, mgr.Establish(ctx, "tok", map[string]interface{}{"id": 1}))

	var reasons []string
	mgr.OnInvalidated(func(reason string) { reasons = append(reasons, reason) })
	mgr.OnInvalidated(nil)

	require.NoError(t, mgr.Invalidate(ctx, "unauthorized"))
	assert.Equal(t, []string{"unauthorized"}, reasons)
	assert.False(t, mgr.LoggedIn())
	assert.Empty(t, mgr.Current().User)

	_, err := store.Get(ctx, KeyToken)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
	_, err = store.Get(ctx, KeyUser)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestClearDoesNotNotify(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(memory.New(), nil)
	require.NoError(t, mgr.Establish(ctx, "tok", nil))

	called := false
	mgr.OnInvalidated(func(string) { called = true })
	require.NoError(t, mgr.Clear(ctx))
	assert.False(t, called)
	assert.False(t, mgr.LoggedIn())
}

// flakyStore refuses any write batch that touches one of the keys in failOn.
type flakyStore struct {
	*memory.Store
	mu     sync.Mutex
	failOn map[string]bool
}

func newFlakyStore() *flakyStore {
	return &flakyStore{Store: memory.New(), failOn: map[string]bool{}}
}

func (s *flakyStore) fail(keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		s.failOn[k] = true
	}
}

func (s *flakyStore) Apply(ctx context.Context, set map[string]string, del []string) error {
	s.mu.Lock()
	touched := false
	for k := range set {
		touched = touched || s.failOn[k]
	}
	for _, k := range del {
		touched = touched || s.failOn[k]
	}
	s.mu.Unlock()
	if touched {
		return errors.New("disk full")
	}
	return s.Store.Apply(ctx, set, del)
}

func TestInvalidateNotifiesEvenWhenStoreFails(t *testing.T) {
	ctx := context.Background()
	store := newFlakyStore()
	mgr := NewManager(store, nil)
	require.NoError(t, mgr.Establish(ctx, "tok", json.RawMessage(`{"id":1}`)))

	store.fail(KeyToken)
	notified := false
	mgr.OnInvalidated(func(string) { notified = true })
	err := mgr.Invalidate(ctx, "unauthorized")
	assert.Error(t, err)
	assert.True(t, notified)
	assert.False(t, mgr.LoggedIn())
}

func TestFailedEstablishKeepsPreviousSessionEverywhere(t *testing.T) {
	ctx := context.Background()
	store := newFlakyStore()
	mgr := NewManager(store, nil)
	require.NoError(t, mgr.Establish(ctx, "admin-token",
		domain.User{ID: 1, Username: "admin", IsSuperuser: true}))

	store.fail(KeyUser)
	err := mgr.Establish(ctx, "clerk-token", domain.User{ID: 2, Username: "clerk"})
	require.Error(t, err)

	assert.Equal(t, "admin-token", mgr.Token())
	assert.True(t, mgr.IsAdmin())

	restarted := NewManager(store, nil)
	sess, err := restarted.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin-token", sess.Token)
	assert.True(t, sess.IsAdmin())
	profile, err := sess.Profile()
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "admin", profile.Username)
}

func TestFailedSetUserKeepsPreviousProfileEverywhere(t *testing.T) {
	ctx := context.Background()
	store := newFlakyStore()
	mgr := NewManager(store, nil)
	require.NoError(t, mgr.Establish(ctx, "tok", json.RawMessage(`{"id":1,"username":"before"}`)))

	store.fail(KeyUser)
	require.Error(t, mgr.SetUser(ctx, json.RawMessage(`{"id":1,"username":"after"}`)))
	assert.JSONEq(t, `{"id":1,"username":"before"}`, string(mgr.Current().User))

	stored, err := store.Get(ctx, KeyUser)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"username":"before"}`, stored)
}

func TestEstablishWithoutProfileDropsStaleUser(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	mgr := NewManager(store, nil)
	require.NoError(t, mgr.Establish(ctx, "first", json.RawMessage(`{"id":1}`)))
	require.NoError(t, mgr.Establish(ctx, "second", nil))

	_, err := store.Get(ctx, KeyUser)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
	token, err := store.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "second", token)
}

// blockingStore holds every write until release is closed.
type blockingStore struct {
	*memory.Store
	entered chan struct{}
	release chan struct{}
}

func (s *blockingStore) Apply(ctx context.Context, set map[string]string, del []string) error {
	s.entered <- struct{}{}
	<-s.release
	return s.Store.Apply(ctx, set, del)
}

func TestTokenReadsDoNotWaitForTeardownPersistence(t *testing.T) {
	ctx := context.Background()
	base := memory.New()
	mgr := NewManager(base, nil)
	require.NoError(t, mgr.Establish(ctx, "tok", nil))

	store := &blockingStore{Store: base, entered: make(chan struct{}, 1), release: make(chan struct{})}
	mgr.store = store

	done := make(chan error, 1)
	go func() { done <- mgr.Invalidate(ctx, "unauthorized") }()
	<-store.entered

	read := make(chan string, 1)
	go func() { read <- mgr.Token() }()
	select {
	case tok := <-read:
		assert.Empty(t, tok)
	case <-time.After(2 * time.Second):
		t.Fatal("Token() blocked behind store write")
	}

	close(store.release)
	require.NoError(t, <-done)
}
