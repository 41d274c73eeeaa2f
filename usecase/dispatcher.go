package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/fastygo/warehouse-console/domain"
)

// ActionHandler performs a namespaced action such as "inventory/fetch". payload is the
// JSON-encoded argument and may be empty.
type ActionHandler func(ctx context.Context, payload json.RawMessage) (interface{}, error)

// GetterHandler reads container state without touching the backend.
type GetterHandler func(ctx context.Context) (interface{}, error)

type Dispatcher struct {
	actions map[string]ActionHandler
	getters map[string]GetterHandler
	mu      sync.RWMutex
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		actions: make(map[string]ActionHandler),
		getters: make(map[string]GetterHandler),
	}
}

func (d *Dispatcher) RegisterAction(name string, handler ActionHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.actions[name] = handler
}

func (d *Dispatcher) RegisterGetter(name string, handler GetterHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.getters[name] = handler
}

func (d *Dispatcher) Dispatch(ctx context.Context, name string, payload json.RawMessage) (interface{}, error) {
	d.mu.RLock()
	handler, ok := d.actions[name]
	d.mu.RUnlock()
	if !ok {
		return nil, domain.NewError(domain.ErrCodeNotFound, fmt.Sprintf("action %s not registered", name))
	}
	return handler(ctx, payload)
}

func (d *Dispatcher) Get(ctx context.Context, name string) (interface{}, error) {
	d.mu.RLock()
	handler, ok := d.getters[name]
	d.mu.RUnlock()
	if !ok {
		return nil, domain.NewError(domain.ErrCodeNotFound, fmt.Sprintf("getter %s not registered", name))
	}
	return handler(ctx)
}

// Actions lists registered action names in order.
func (d *Dispatcher) Actions() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return sortedKeys(d.actions)
}

func (d *Dispatcher) Getters() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return sortedKeys(d.getters)
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Bind decodes an action payload; an empty payload leaves v untouched.
func Bind(payload json.RawMessage, v interface{}) error {
	if len(payload) == 0 || string(payload) == "null" {
		return nil
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return domain.WrapError(domain.ErrCodeInvalid, "decode action payload", err)
	}
	return nil
}

// Action adapts a typed handler to an ActionHandler.
func Action[P any](fn func(ctx context.Context, payload P) (interface{}, error)) ActionHandler {
	return func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
		var p P
		if err := Bind(raw, &p); err != nil {
			return nil, err
		}
		return fn(ctx, p)
	}
}

// IDPayload is the argument of actions addressing one record.
type IDPayload struct {
	ID int `json:"id"`
}

// UpdatePayload is the argument of update actions.
type UpdatePayload struct {
	ID   int                    `json:"id"`
	Data map[string]interface{} `json:"data"`
}
