package outbound

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/fastygo/warehouse-console/api/rest"
	"github.com/fastygo/warehouse-console/api/transport"
	"github.com/fastygo/warehouse-console/domain"
	"github.com/fastygo/warehouse-console/internal/httpclient"
	"github.com/fastygo/warehouse-console/usecase"
)

// DefaultSize matches the page size the outbound list falls back to.
const DefaultSize = 20

type UseCase struct {
	api          *rest.OutboundAPI
	Outbounds    *usecase.Collection[domain.OutboundOrder, transport.OutboundFilter]
	AuditRecords *usecase.Collection[domain.AuditRecord, transport.Filters]
	current      usecase.Current[domain.OutboundOrder]
	currentAudit usecase.Current[domain.AuditRecord]
	logger       *zap.Logger
}

func New(api *rest.OutboundAPI, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		api:          api,
		Outbounds:    usecase.NewCollection[domain.OutboundOrder]("outbound", api.List, DefaultSize),
		AuditRecords: usecase.NewCollection[domain.AuditRecord]("outbound_audit", api.AuditRecords, 10),
		logger:       logger,
	}
}

func (uc *UseCase) Fetch(ctx context.Context, q usecase.Query[transport.OutboundFilter]) (domain.Page[domain.OutboundOrder], error) {
	return uc.Outbounds.Fetch(ctx, q)
}

func (uc *UseCase) Get(ctx context.Context, id int) (*domain.OutboundOrder, error) {
	order, err := uc.api.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.current.Set(order)
	return order, nil
}

func (uc *UseCase) Current() *domain.OutboundOrder {
	return uc.current.Get()
}

func (uc *UseCase) Import(ctx context.Context, form httpclient.Form) (json.RawMessage, error) {
	resp, err := uc.api.Import(ctx, form)
	if err != nil {
		return nil, err
	}
	usecase.Resync(ctx, uc.logger, uc.Outbounds)
	return resp.Data(), nil
}

func (uc *UseCase) Complete(ctx context.Context, id int) error {
	if _, err := uc.api.Complete(ctx, id); err != nil {
		return err
	}
	usecase.Resync(ctx, uc.logger, uc.Outbounds)
	return nil
}

// Delete removes an outbound order; the backend keeps an audit record with the reason.
func (uc *UseCase) Delete(ctx context.Context, id int, reason string) error {
	if _, err := uc.api.Delete(ctx, id, reason); err != nil {
		return err
	}
	if cur := uc.current.Get(); cur != nil && cur.ID == id {
		uc.current.Set(nil)
	}
	usecase.Resync(ctx, uc.logger, uc.Outbounds)
	return nil
}

func (uc *UseCase) BatchDelete(ctx context.Context, ids []int, reason string) error {
	if len(ids) == 0 {
		return domain.NewError(domain.ErrCodeInvalid, "no outbound orders selected")
	}
	if _, err := uc.api.BatchDelete(ctx, ids, reason); err != nil {
		return err
	}
	usecase.Resync(ctx, uc.logger, uc.Outbounds)
	return nil
}

func (uc *UseCase) FetchAuditRecords(ctx context.Context, q usecase.Query[transport.Filters]) (domain.Page[domain.AuditRecord], error) {
	return uc.AuditRecords.Fetch(ctx, q)
}

func (uc *UseCase) AuditRecord(ctx context.Context, id int) (*domain.AuditRecord, error) {
	record, err := uc.api.AuditRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.currentAudit.Set(record)
	return record, nil
}

type deletePayload struct {
	ID     int    `json:"id"`
	IDs    []int  `json:"ids"`
	Reason string `json:"reason"`
}

func (uc *UseCase) Register(d *usecase.Dispatcher) {
	d.RegisterAction("outbound/fetch", usecase.Action(func(ctx context.Context, q usecase.Query[transport.OutboundFilter]) (interface{}, error) {
		return uc.Fetch(ctx, q)
	}))
	d.RegisterAction("outbound/get", usecase.Action(func(ctx context.Context, p usecase.IDPayload) (interface{}, error) {
		return uc.Get(ctx, p.ID)
	}))
	d.RegisterAction("outbound/complete", usecase.Action(func(ctx context.Context, p usecase.IDPayload) (interface{}, error) {
		return nil, uc.Complete(ctx, p.ID)
	}))
	d.RegisterAction("outbound/delete", usecase.Action(func(ctx context.Context, p deletePayload) (interface{}, error) {
		return nil, uc.Delete(ctx, p.ID, p.Reason)
	}))
	d.RegisterAction("outbound/batch-delete", usecase.Action(func(ctx context.Context, p deletePayload) (interface{}, error) {
		return nil, uc.BatchDelete(ctx, p.IDs, p.Reason)
	}))
	d.RegisterAction("outbound/audit", usecase.Action(func(ctx context.Context, q usecase.Query[transport.Filters]) (interface{}, error) {
		return uc.FetchAuditRecords(ctx, q)
	}))
	d.RegisterAction("outbound/audit-record", usecase.Action(func(ctx context.Context, p usecase.IDPayload) (interface{}, error) {
		return uc.AuditRecord(ctx, p.ID)
	}))
	d.RegisterGetter("outbound/state", func(context.Context) (interface{}, error) {
		return uc.Outbounds.Snapshot(), nil
	})
	d.RegisterGetter("outbound/audit-state", func(context.Context) (interface{}, error) {
		return uc.AuditRecords.Snapshot(), nil
	})
	d.RegisterGetter("outbound/current", func(context.Context) (interface{}, error) {
		return uc.Current(), nil
	})
}
