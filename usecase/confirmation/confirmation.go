package confirmation

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
	api           *rest.ConfirmationAPI
	Confirmations *usecase.Collection[domain.Confirmation, transport.Filters]
	logger        *zap.Logger
}

func New(api *rest.ConfirmationAPI, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		api:           api,
		Confirmations: usecase.NewCollection[domain.Confirmation]("confirmation", api.List, 10),
		logger:        logger,
	}
}

func (uc *UseCase) Fetch(ctx context.Context, q usecase.Query[transport.Filters]) (domain.Page[domain.Confirmation], error) {
	return uc.Confirmations.Fetch(ctx, q)
}

// Generate creates the confirmation for a purchase order and returns its data.
func (uc *UseCase) Generate(ctx context.Context, orderNo string) (json.RawMessage, error) {
	if orderNo == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "order number is required")
	}
	resp, err := uc.api.Generate(ctx, orderNo)
	if err != nil {
		return nil, err
	}
	usecase.Resync(ctx, uc.logger, uc.Confirmations)
	return resp.Data(), nil
}

func (uc *UseCase) Print(ctx context.Context, id int) error {
	if _, err := uc.api.Print(ctx, id); err != nil {
		return err
	}
	usecase.Resync(ctx, uc.logger, uc.Confirmations)
	return nil
}

// PDF returns the printable document bytes.
func (uc *UseCase) PDF(ctx context.Context, id int) ([]byte, error) {
	resp, err := uc.api.PDF(ctx, id)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (uc *UseCase) Register(d *usecase.Dispatcher) {
	d.RegisterAction("confirmation/fetch", usecase.Action(func(ctx context.Context, q usecase.Query[transport.Filters]) (interface{}, error) {
		return uc.Fetch(ctx, q)
	}))
	d.RegisterAction("confirmation/generate", usecase.Action(func(ctx context.Context, p transport.GenerateConfirmationRequest) (interface{}, error) {
		return uc.Generate(ctx, p.OrderNo)
	}))
	d.RegisterAction("confirmation/print", usecase.Action(func(ctx context.Context, p usecase.IDPayload) (interface{}, error) {
		return nil, uc.Print(ctx, p.ID)
	}))
	d.RegisterGetter("confirmation/state", func(context.Context) (interface{}, error) {
		return uc.Confirmations.Snapshot(), nil
	})
}
