package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/warehouse-console/domain"
	"github.com/fastygo/warehouse-console/repository"
)

// Persistence keys.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

const persistTimeout = 5 * time.Second

// InvalidatedFunc observes session teardown caused by an unauthorized response.
type InvalidatedFunc func(reason string)

// Manager owns the single active session. Reads are served from memory; login and profile
// updates reach memory only after the store accepted them as one atomic write.
type Manager struct {
	store  repository.KVStore
	logger *zap.Logger

	// writeMu serializes mutations so store I/O stays outside mu.
	writeMu sync.Mutex
	mu      sync.RWMutex
	current domain.Session

	obsMu     sync.RWMutex
	observers []InvalidatedFunc
}

func NewManager(store repository.KVStore, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, logger: logger}
}

// Restore loads a previously persisted session. Missing keys are not an error.
func (m *Manager) Restore(ctx context.Context) (domain.Session, error) {
	var restored domain.Session

	token, err := m.store.Get(ctx, KeyToken)
	switch {
	case err == nil:
		restored.Token = token
	case !errors.Is(err, domain.ErrKeyNotFound):
		return domain.Session{}, fmt.Errorf("restore token: %w", err)
	}

	user, err := m.store.Get(ctx, KeyUser)
	switch {
	case err == nil:
		if json.Valid([]byte(user)) {
			restored.User = json.RawMessage(user)
		} else {
			m.logger.Warn("discarding corrupt cached profile")
		}
	case !errors.Is(err, domain.ErrKeyNotFound):
		return domain.Session{}, fmt.Errorf("restore user: %w", err)
	}

	m.mu.Lock()
	m.current = restored
	m.mu.Unlock()
	return restored, nil
}

// Current returns a snapshot of the session.
func (m *Manager) Current() domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Token is read fresh on every request attempt.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Token
}

func (m *Manager) LoggedIn() bool {
	return m.Token() != ""
}

func (m *Manager) IsAdmin() bool {
	return m.Current().IsAdmin()
}

// Establish replaces the whole session in one step. A nil user clears the cached profile.
// On a store failure neither memory nor the store changes.
func (m *Manager) Establish(ctx context.Context, token string, user interface{}) error {
	if token == "" {
		return domain.ErrMissingToken
	}
	raw, err := encodeUser(user)
	if err != nil {
		return err
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	set := map[string]string{KeyToken: token}
	var del []string
	if len(raw) == 0 {
		del = append(del, KeyUser)
	} else {
		set[KeyUser] = string(raw)
	}
	if err := m.persist(ctx, set, del); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	m.mu.Lock()
	m.current = domain.Session{Token: token, User: raw}
	m.mu.Unlock()
	return nil
}

// SetUser replaces the cached profile while keeping the token.
func (m *Manager) SetUser(ctx context.Context, user interface{}) error {
	raw, err := encodeUser(user)
	if err != nil {
		return err
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	var set map[string]string
	var del []string
	if len(raw) == 0 {
		del = []string{KeyUser}
	} else {
		set = map[string]string{KeyUser: string(raw)}
	}
	if err := m.persist(ctx, set, del); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}

	m.mu.Lock()
	m.current.User = raw
	m.mu.Unlock()
	return nil
}

// Clear removes both keys. Used by an explicit logout; observers are not notified.
func (m *Manager) Clear(ctx context.Context) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	return m.clear(ctx)
}

// Invalidate tears the session down after the backend rejected it and notifies observers.
// Memory is cleared before the store is touched, and observers run even when persistence
// fails so the operator is still sent to sign in.
func (m *Manager) Invalidate(ctx context.Context, reason string) error {
	m.writeMu.Lock()
	had := m.LoggedIn()
	err := m.clear(context.WithoutCancel(ctx))
	m.writeMu.Unlock()

	m.logger.Info("session invalidated", zap.String("reason", reason), zap.Bool("had_token", had))
	if err != nil {
		m.logger.Error("session teardown not persisted", zap.Error(err))
	}

	m.obsMu.RLock()
	observers := append([]InvalidatedFunc(nil), m.observers...)
	m.obsMu.RUnlock()
	for _, fn := range observers {
		fn(reason)
	}
	return err
}

// OnInvalidated registers an observer for Invalidate.
func (m *Manager) OnInvalidated(fn InvalidatedFunc) {
	if fn == nil {
		return
	}
	m.obsMu.Lock()
	m.observers = append(m.observers, fn)
	m.obsMu.Unlock()
}

// clear drops the in-memory session first; requests see no token from here on.
// Callers hold writeMu.
func (m *Manager) clear(ctx context.Context) error {
	m.mu.Lock()
	m.current = domain.Session{}
	m.mu.Unlock()

	if err := m.persist(ctx, nil, []string{KeyToken, KeyUser}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (m *Manager) persist(ctx context.Context, set map[string]string, del []string) error {
	ctx, cancel := context.WithTimeout(ctx, persistTimeout)
	defer cancel()
	return m.store.Apply(ctx, set, del)
}

func encodeUser(user interface{}) (json.RawMessage, error) {
	switch v := user.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		if len(v) == 0 || string(v) == "null" {
			return nil, nil
		}
		if !json.Valid(v) {
			return nil, domain.ErrInvalidPayload
		}
		return append(json.RawMessage(nil), v...), nil
	case []byte:
		return encodeUser(json.RawMessage(v))
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, domain.WrapError(domain.ErrCodeInvalid, "encode profile", err)
		}
		if string(raw) == "null" {
			return nil, nil
		}
		return raw, nil
	}
}
