package rest

import (
	"context"

	"github.com/fastygo/warehouse-console/api/transport"
	"github.com/fastygo/warehouse-console/domain"
	"github.com/fastygo/warehouse-console/internal/httpclient"
)

type NotificationAPI struct {
	client Requester
}

// List returns the operator's notifications with the unread count.
func (a *NotificationAPI) List(ctx context.Context, filter transport.NotificationFilter) (*domain.NotificationList, error) {
	resp, err := a.client.Get(ctx, "/notifications", httpclient.Query(filter.Map()))
	if err != nil {
		return nil, err
	}
	var out domain.NotificationList
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	if out.Notifications == nil {
		return nil, domain.NewError(domain.ErrCodeUnrecognized, "notification list missing")
	}
	if out.Total == 0 {
		out.Total = len(out.Notifications)
	}
	return &out, nil
}

func (a *NotificationAPI) MarkRead(ctx context.Context, id int) (*httpclient.Response, error) {
	return a.client.Put(ctx, itemPath("/notifications", id)+"/read", nil)
}

func (a *NotificationAPI) MarkAllRead(ctx context.Context) (*httpclient.Response, error) {
	return a.client.Put(ctx, "/notifications/read-all", nil)
}

func (a *NotificationAPI) Create(ctx context.Context, req transport.NotificationCreateRequest) (*httpclient.Response, error) {
	return a.client.Post(ctx, "/notifications", req)
}

func (a *NotificationAPI) Delete(ctx context.Context, id int) (*httpclient.Response, error) {
	return a.client.Delete(ctx, itemPath("/notifications", id), nil)
}
