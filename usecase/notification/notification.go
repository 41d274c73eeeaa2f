package notification

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/fastygo/warehouse-console/api/rest"
	"github.com/fastygo/warehouse-console/api/transport"
	"github.com/fastygo/warehouse-console/domain"
	"github.com/fastygo/warehouse-console/internal/metrics"
	"github.com/fastygo/warehouse-console/usecase"
)

// State is the cached notification list with its unread badge count.
type State struct {
	Notifications []domain.Notification `json:"notifications"`
	Unread        int                   `json:"unread"`
	Total         int                   `json:"total"`
}

type UseCase struct {
	api    *rest.NotificationAPI
	logger *zap.Logger

	mu     sync.RWMutex
	state  State
	filter transport.NotificationFilter
}

func New(api *rest.NotificationAPI, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		api:    api,
		logger: logger,
		state:  State{Notifications: []domain.Notification{}},
	}
}

// Fetch replaces the cached list; failures reset it to empty. The endpoint answers with its
// own {notifications, unread, total} object, so it is decoded as such instead of going
// through envelope.Normalize.
func (uc *UseCase) Fetch(ctx context.Context, filter transport.NotificationFilter) (State, error) {
	uc.mu.Lock()
	uc.filter = filter
	uc.mu.Unlock()

	list, err := uc.api.List(ctx, filter)
	metrics.RecordListFetch("notifications", err)
	if err != nil {
		uc.replace(State{Notifications: []domain.Notification{}})
		return uc.Snapshot(), err
	}
	next := State{Notifications: list.Notifications, Unread: list.Unread, Total: list.Total}
	uc.replace(next)
	return uc.Snapshot(), nil
}

// Refresh repeats the last fetch.
func (uc *UseCase) Refresh(ctx context.Context) (State, error) {
	uc.mu.RLock()
	filter := uc.filter
	uc.mu.RUnlock()
	return uc.Fetch(ctx, filter)
}

func (uc *UseCase) Snapshot() State {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	out := uc.state
	out.Notifications = append([]domain.Notification{}, uc.state.Notifications...)
	return out
}

func (uc *UseCase) Unread() int {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.state.Unread
}

func (uc *UseCase) MarkRead(ctx context.Context, id int) error {
	if _, err := uc.api.MarkRead(ctx, id); err != nil {
		return err
	}
	uc.resync(ctx)
	return nil
}

func (uc *UseCase) MarkAllRead(ctx context.Context) error {
	if _, err := uc.api.MarkAllRead(ctx); err != nil {
		return err
	}
	uc.resync(ctx)
	return nil
}

func (uc *UseCase) Create(ctx context.Context, req transport.NotificationCreateRequest) error {
	if _, err := uc.api.Create(ctx, req); err != nil {
		return err
	}
	uc.resync(ctx)
	return nil
}

func (uc *UseCase) Delete(ctx context.Context, id int) error {
	if _, err := uc.api.Delete(ctx, id); err != nil {
		return err
	}
	uc.resync(ctx)
	return nil
}

func (uc *UseCase) replace(next State) {
	if next.Notifications == nil {
		next.Notifications = []domain.Notification{}
	}
	uc.mu.Lock()
	uc.state = next
	uc.mu.Unlock()
}

func (uc *UseCase) resync(ctx context.Context) {
	if _, err := uc.Refresh(ctx); err != nil {
		uc.logger.Warn("resynchronize notifications", zap.Error(err))
	}
}

func (uc *UseCase) Register(d *usecase.Dispatcher) {
	d.RegisterAction("notification/fetch", usecase.Action(func(ctx context.Context, f transport.NotificationFilter) (interface{}, error) {
		return uc.Fetch(ctx, f)
	}))
	d.RegisterAction("notification/mark-read", usecase.Action(func(ctx context.Context, p usecase.IDPayload) (interface{}, error) {
		return nil, uc.MarkRead(ctx, p.ID)
	}))
	d.RegisterAction("notification/mark-all-read", usecase.Action(func(ctx context.Context, _ struct{}) (interface{}, error) {
		return nil, uc.MarkAllRead(ctx)
	}))
	d.RegisterAction("notification/create", usecase.Action(func(ctx context.Context, req transport.NotificationCreateRequest) (interface{}, error) {
		return nil, uc.Create(ctx, req)
	}))
	d.RegisterAction("notification/delete", usecase.Action(func(ctx context.Context, p usecase.IDPayload) (interface{}, error) {
		return nil, uc.Delete(ctx, p.ID)
	}))
	d.RegisterGetter("notification/state", func(context.Context) (interface{}, error) {
		return uc.Snapshot(), nil
	})
	d.RegisterGetter("notification/unread", func(context.Context) (interface{}, error) {
		return uc.Unread(), nil
	})
}
