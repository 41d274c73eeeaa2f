package rest

import (
	"context"

	"github.com/fastygo/warehouse-console/api/transport"
	"github.com/fastygo/warehouse-console/internal/httpclient"
)

type ConfirmationAPI struct {
	client Requester
}

// List accepts order_no, confirmation_no, status, start_date and end_date filters.
func (a *ConfirmationAPI) List(ctx context.Context, page, size int, filters transport.Filters) (*httpclient.Response, error) {
	return a.client.Get(ctx, "/confirmation/list", listQuery(page, size, filters))
}

func (a *ConfirmationAPI) Generate(ctx context.Context, orderNo string) (*httpclient.Response, error) {
	return a.client.Post(ctx, "/confirmation/generate", transport.GenerateConfirmationRequest{OrderNo: orderNo})
}

func (a *ConfirmationAPI) Print(ctx context.Context, id int) (*httpclient.Response, error) {
	return a.client.Post(ctx, itemPath("/confirmation", id)+"/print", nil)
}

// PDF returns the printable confirmation untouched.
func (a *ConfirmationAPI) PDF(ctx context.Context, id int) (*httpclient.Response, error) {
	return a.client.Download(ctx, itemPath("/confirmation", id)+"/pdf")
}
