package rest

import (
	"context"
	"net/url"

	"github.com/fastygo/warehouse-console/api/transport"
	"github.com/fastygo/warehouse-console/internal/httpclient"
)

type WorkflowAPI struct {
	client Requester
}

func (a *WorkflowAPI) TodoTasks(ctx context.Context, page, size int, filters transport.Filters) (*httpclient.Response, error) {
	return a.client.Get(ctx, "/workflow/tasks/todo", listQuery(page, size, filters))
}

func (a *WorkflowAPI) Start(ctx context.Context, req transport.StartWorkflowRequest) (*httpclient.Response, error) {
	return a.client.Post(ctx, "/workflow/start", req)
}

func (a *WorkflowAPI) CompleteTask(ctx context.Context, taskID string, req transport.CompleteTaskRequest) (*httpclient.Response, error) {
	return a.client.Post(ctx, "/workflow/task/"+url.PathEscape(taskID)+"/complete", req)
}
