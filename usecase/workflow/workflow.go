package workflow

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/fastygo/warehouse-console/api/rest"
	"github.com/fastygo/warehouse-console/api/transport"
	"github.com/fastygo/warehouse-console/domain"
	"github.com/fastygo/warehouse-console/usecase"
)

type UseCase struct {
	api    *rest.WorkflowAPI
	Tasks  *usecase.Collection[domain.WorkflowTask, transport.Filters]
	logger *zap.Logger
}

func New(api *rest.WorkflowAPI, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		api:    api,
		Tasks:  usecase.NewCollection[domain.WorkflowTask]("workflow_tasks", api.TodoTasks, 10),
		logger: logger,
	}
}

func (uc *UseCase) FetchTodo(ctx context.Context, q usecase.Query[transport.Filters]) (domain.Page[domain.WorkflowTask], error) {
	return uc.Tasks.Fetch(ctx, q)
}

func (uc *UseCase) Start(ctx context.Context, req transport.StartWorkflowRequest) (json.RawMessage, error) {
	if req.BusinessKey == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "business key is required")
	}
	resp, err := uc.api.Start(ctx, req)
	if err != nil {
		return nil, err
	}
	usecase.Resync(ctx, uc.logger, uc.Tasks)
	return resp.Data(), nil
}

func (uc *UseCase) Complete(ctx context.Context, taskID string, req transport.CompleteTaskRequest) error {
	if taskID == "" {
		return domain.NewError(domain.ErrCodeInvalid, "task id is required")
	}
	if _, err := uc.api.CompleteTask(ctx, taskID, req); err != nil {
		return err
	}
	usecase.Resync(ctx, uc.logger, uc.Tasks)
	return nil
}

type completePayload struct {
	TaskID string `json:"taskId"`
	transport.CompleteTaskRequest
}

func (uc *UseCase) Register(d *usecase.Dispatcher) {
	d.RegisterAction("workflow/todo", usecase.Action(func(ctx context.Context, q usecase.Query[transport.Filters]) (interface{}, error) {
		return uc.FetchTodo(ctx, q)
	}))
	d.RegisterAction("workflow/start", usecase.Action(func(ctx context.Context, req transport.StartWorkflowRequest) (interface{}, error) {
		return uc.Start(ctx, req)
	}))
	d.RegisterAction("workflow/complete", usecase.Action(func(ctx context.Context, p completePayload) (interface{}, error) {
		return nil, uc.Complete(ctx, p.TaskID, p.CompleteTaskRequest)
	}))
	d.RegisterGetter("workflow/state", func(context.Context) (interface{}, error) {
		return uc.Tasks.Snapshot(), nil
	})
}
