package rest

import (
	"context"
	"net/url"

	"github.com/valyala/fasthttp"

	"github.com/fastygo/warehouse-console/api/transport"
	"github.com/fastygo/warehouse-console/domain"
	"github.com/fastygo/warehouse-console/internal/httpclient"
)

type OutboundAPI struct {
	client Requester
}

// List sanitises pagination before sending: page below 1 becomes 1, size below 1 becomes 20.
func (a *OutboundAPI) List(ctx context.Context, page, size int, filters transport.OutboundFilter) (*httpclient.Response, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	return a.client.Get(ctx, "/outbound/list", listQuery(page, size, filters))
}

func (a *OutboundAPI) Get(ctx context.Context, id int) (*domain.OutboundOrder, error) {
	return decode[domain.OutboundOrder](a.client.Get(ctx, itemPath("/outbound", id), nil))
}

func (a *OutboundAPI) Import(ctx context.Context, form httpclient.Form) (*httpclient.Response, error) {
	return a.client.Upload(ctx, "/outbound/import", form)
}

func (a *OutboundAPI) Complete(ctx context.Context, id int) (*httpclient.Response, error) {
	return a.client.Post(ctx, itemPath("/outbound/complete", id), nil)
}

func (a *OutboundAPI) Delete(ctx context.Context, id int, reason string) (*httpclient.Response, error) {
	return a.client.Delete(ctx, itemPath("/outbound", id), url.Values{"reason": {reason}})
}

func (a *OutboundAPI) BatchDelete(ctx context.Context, ids []int, reason string) (*httpclient.Response, error) {
	d, err := jsonBody(fasthttp.MethodPost, "/outbound/batch-delete", transport.BatchDeleteRequest{IDs: ids})
	if err != nil {
		return nil, err
	}
	d.Query = url.Values{"reason": {reason}}
	return a.client.Send(ctx, d)
}

func (a *OutboundAPI) AuditRecords(ctx context.Context, page, size int, filters transport.Filters) (*httpclient.Response, error) {
	return a.client.Get(ctx, "/outbound/audit/records", listQuery(page, size, filters))
}

func (a *OutboundAPI) AuditRecord(ctx context.Context, id int) (*domain.AuditRecord, error) {
	return decode[domain.AuditRecord](a.client.Get(ctx, itemPath("/outbound/audit/records", id), nil))
}
