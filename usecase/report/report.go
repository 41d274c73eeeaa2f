package report

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/fastygo/warehouse-console/api/rest"
	"github.com/fastygo/warehouse-console/usecase"
)

// State holds the two dashboards as the backend sent them.
type State struct {
	Leadership json.RawMessage `json:"leadership,omitempty"`
	TimeRange  string          `json:"time_range,omitempty"`
	Operation  json.RawMessage `json:"operation,omitempty"`
}

type UseCase struct {
	api *rest.ReportAPI

	mu    sync.RWMutex
	state State
}

func New(api *rest.ReportAPI) *UseCase {
	return &UseCase{api: api}
}

func (uc *UseCase) Leadership(ctx context.Context, timeRange string) (json.RawMessage, error) {
	data, err := uc.api.Leadership(ctx, timeRange)
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if err != nil {
		uc.state.Leadership = nil
		uc.state.TimeRange = ""
		return nil, err
	}
	uc.state.Leadership = data
	uc.state.TimeRange = timeRange
	return data, nil
}

func (uc *UseCase) Operation(ctx context.Context) (json.RawMessage, error) {
	data, err := uc.api.Operation(ctx)
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if err != nil {
		uc.state.Operation = nil
		return nil, err
	}
	uc.state.Operation = data
	return data, nil
}

func (uc *UseCase) Snapshot() State {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.state
}

type leadershipPayload struct {
	TimeRange string `json:"time_range"`
}

func (uc *UseCase) Register(d *usecase.Dispatcher) {
	d.RegisterAction("report/leadership", usecase.Action(func(ctx context.Context, p leadershipPayload) (interface{}, error) {
		return uc.Leadership(ctx, p.TimeRange)
	}))
	d.RegisterAction("report/operation", usecase.Action(func(ctx context.Context, _ struct{}) (interface{}, error) {
		return uc.Operation(ctx)
	}))
	d.RegisterGetter("report/state", func(context.Context) (interface{}, error) {
		return uc.Snapshot(), nil
	})
}
