package rest

import (
	"context"

	"github.com/fastygo/warehouse-console/api/transport"
	"github.com/fastygo/warehouse-console/domain"
	"github.com/fastygo/warehouse-console/internal/httpclient"
)

type InventoryAPI struct {
	client Requester
}

func (a *InventoryAPI) List(ctx context.Context, page, size int, filters transport.InventoryFilter) (*httpclient.Response, error) {
	return a.client.Get(ctx, "/inventory/list", listQuery(page, size, filters))
}

func (a *InventoryAPI) Get(ctx context.Context, id int) (*domain.Inventory, error) {
	return decode[domain.Inventory](a.client.Get(ctx, itemPath("/inventory", id), nil))
}

func (a *InventoryAPI) Create(ctx context.Context, data interface{}) (*httpclient.Response, error) {
	return a.client.Post(ctx, "/inventory", data)
}

func (a *InventoryAPI) Update(ctx context.Context, id int, data interface{}) (*httpclient.Response, error) {
	return a.client.Put(ctx, itemPath("/inventory", id), data)
}

// Transactions lists stock movements; filters are passed as given.
func (a *InventoryAPI) Transactions(ctx context.Context, page, size int, filters transport.Filters) (*httpclient.Response, error) {
	return a.client.Get(ctx, "/inventory/transactions", listQuery(page, size, filters))
}
