package rest

import (
	"context"

	"github.com/fastygo/warehouse-console/api/transport"
	"github.com/fastygo/warehouse-console/domain"
	"github.com/fastygo/warehouse-console/internal/httpclient"
)

type PurchaseAPI struct {
	client Requester
}

func (a *PurchaseAPI) List(ctx context.Context, page, size int, filters transport.PurchaseFilter) (*httpclient.Response, error) {
	return a.client.Get(ctx, "/purchase/list", listQuery(page, size, filters))
}

func (a *PurchaseAPI) Get(ctx context.Context, id int) (*domain.PurchaseOrder, error) {
	return decode[domain.PurchaseOrder](a.client.Get(ctx, itemPath("/purchase", id), nil))
}

// Import uploads a spreadsheet of purchase orders.
func (a *PurchaseAPI) Import(ctx context.Context, form httpclient.Form) (*httpclient.Response, error) {
	return a.client.Upload(ctx, "/purchase/import", form)
}

func (a *PurchaseAPI) Update(ctx context.Context, id int, data interface{}) (*httpclient.Response, error) {
	return a.client.Put(ctx, itemPath("/purchase", id), data)
}

func (a *PurchaseAPI) UserUnits(ctx context.Context) (*transport.UserUnitsResponse, error) {
	resp, err := a.client.Get(ctx, "/purchase/user-units", nil)
	if err != nil {
		return nil, err
	}
	var out transport.UserUnitsResponse
	if err := resp.DecodeBody(&out); err != nil {
		return nil, err
	}
	if out.Total == 0 {
		out.Total = len(out.Data)
	}
	return &out, nil
}
