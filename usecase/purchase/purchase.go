package purchase

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

type UseCase struct {
	api     *rest.PurchaseAPI
	Orders  *usecase.Collection[domain.PurchaseOrder, transport.PurchaseFilter]
	current usecase.Current[domain.PurchaseOrder]
	logger  *zap.Logger
}

func New(api *rest.PurchaseAPI, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		api:    api,
		Orders: usecase.NewCollection[domain.PurchaseOrder]("purchase", api.List, 10),
		logger: logger,
	}
}

func (uc *UseCase) Fetch(ctx context.Context, q usecase.Query[transport.PurchaseFilter]) (domain.Page[domain.PurchaseOrder], error) {
	return uc.Orders.Fetch(ctx, q)
}

func (uc *UseCase) Get(ctx context.Context, id int) (*domain.PurchaseOrder, error) {
	order, err := uc.api.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.current.Set(order)
	return order, nil
}

func (uc *UseCase) Current() *domain.PurchaseOrder {
	return uc.current.Get()
}

// Import uploads a purchase order spreadsheet and returns the backend's import summary.
func (uc *UseCase) Import(ctx context.Context, form httpclient.Form) (json.RawMessage, error) {
	resp, err := uc.api.Import(ctx, form)
	if err != nil {
		return nil, err
	}
	usecase.Resync(ctx, uc.logger, uc.Orders)
	return resp.Data(), nil
}

func (uc *UseCase) Update(ctx context.Context, id int, data interface{}) error {
	if _, err := uc.api.Update(ctx, id, data); err != nil {
		return err
	}
	if _, err := uc.Get(ctx, id); err != nil {
		uc.logger.Warn("reload purchase order after update", zap.Int("id", id), zap.Error(err))
	}
	usecase.Resync(ctx, uc.logger, uc.Orders)
	return nil
}

func (uc *UseCase) UserUnits(ctx context.Context) ([]string, error) {
	units, err := uc.api.UserUnits(ctx)
	if err != nil {
		return nil, err
	}
	return units.Data, nil
}

func (uc *UseCase) Register(d *usecase.Dispatcher) {
	d.RegisterAction("purchase/fetch", usecase.Action(func(ctx context.Context, q usecase.Query[transport.PurchaseFilter]) (interface{}, error) {
		return uc.Fetch(ctx, q)
	}))
	d.RegisterAction("purchase/get", usecase.Action(func(ctx context.Context, p usecase.IDPayload) (interface{}, error) {
		return uc.Get(ctx, p.ID)
	}))
	d.RegisterAction("purchase/update", usecase.Action(func(ctx context.Context, p usecase.UpdatePayload) (interface{}, error) {
		return nil, uc.Update(ctx, p.ID, p.Data)
	}))
	d.RegisterAction("purchase/user-units", usecase.Action(func(ctx context.Context, _ struct{}) (interface{}, error) {
		return uc.UserUnits(ctx)
	}))
	d.RegisterGetter("purchase/state", func(context.Context) (interface{}, error) {
		return uc.Orders.Snapshot(), nil
	})
	d.RegisterGetter("purchase/current", func(context.Context) (interface{}, error) {
		return uc.Current(), nil
	})
}
