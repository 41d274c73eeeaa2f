package inventory

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/warehouse-console/api/rest"
	"github.com/fastygo/warehouse-console/api/transport"
	"github.com/fastygo/warehouse-console/domain"
	"github.com/fastygo/warehouse-console/usecase"
)

type UseCase struct {
	api          *rest.InventoryAPI
	Inventories  *usecase.Collection[domain.Inventory, transport.InventoryFilter]
	Transactions *usecase.Collection[domain.InventoryTransaction, transport.Filters]
	current      usecase.Current[domain.Inventory]
	logger       *zap.Logger
}

func New(api *rest.InventoryAPI, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		api:          api,
		Inventories:  usecase.NewCollection[domain.Inventory]("inventory", api.List, 10),
		Transactions: usecase.NewCollection[domain.InventoryTransaction]("inventory_transactions", api.Transactions, 10),
		logger:       logger,
	}
}

func (uc *UseCase) Fetch(ctx context.Context, q usecase.Query[transport.InventoryFilter]) (domain.Page[domain.Inventory], error) {
	return uc.Inventories.Fetch(ctx, q)
}

func (uc *UseCase) FetchTransactions(ctx context.Context, q usecase.Query[transport.Filters]) (domain.Page[domain.InventoryTransaction], error) {
	return uc.Transactions.Fetch(ctx, q)
}

func (uc *UseCase) Get(ctx context.Context, id int) (*domain.Inventory, error) {
	item, err := uc.api.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.current.Set(item)
	return item, nil
}

func (uc *UseCase) Current() *domain.Inventory {
	return uc.current.Get()
}

func (uc *UseCase) Create(ctx context.Context, data interface{}) error {
	if _, err := uc.api.Create(ctx, data); err != nil {
		return err
	}
	usecase.Resync(ctx, uc.logger, uc.Inventories)
	return nil
}

func (uc *UseCase) Update(ctx context.Context, id int, data interface{}) error {
	if _, err := uc.api.Update(ctx, id, data); err != nil {
		return err
	}
	if _, err := uc.Get(ctx, id); err != nil {
		uc.logger.Warn("reload inventory after update", zap.Int("id", id), zap.Error(err))
	}
	usecase.Resync(ctx, uc.logger, uc.Inventories)
	return nil
}

// Register exposes the container as inventory/* actions.
func (uc *UseCase) Register(d *usecase.Dispatcher) {
	d.RegisterAction("inventory/fetch", usecase.Action(func(ctx context.Context, q usecase.Query[transport.InventoryFilter]) (interface{}, error) {
		return uc.Fetch(ctx, q)
	}))
	d.RegisterAction("inventory/transactions", usecase.Action(func(ctx context.Context, q usecase.Query[transport.Filters]) (interface{}, error) {
		return uc.FetchTransactions(ctx, q)
	}))
	d.RegisterAction("inventory/get", usecase.Action(func(ctx context.Context, p usecase.IDPayload) (interface{}, error) {
		return uc.Get(ctx, p.ID)
	}))
	d.RegisterAction("inventory/create", usecase.Action(func(ctx context.Context, data map[string]interface{}) (interface{}, error) {
		return nil, uc.Create(ctx, data)
	}))
	d.RegisterAction("inventory/update", usecase.Action(func(ctx context.Context, p usecase.UpdatePayload) (interface{}, error) {
		return nil, uc.Update(ctx, p.ID, p.Data)
	}))
	d.RegisterGetter("inventory/state", func(context.Context) (interface{}, error) {
		return uc.Inventories.Snapshot(), nil
	})
	d.RegisterGetter("inventory/current", func(context.Context) (interface{}, error) {
		return uc.Current(), nil
	})
}
