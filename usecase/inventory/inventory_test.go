package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/warehouse-console/api/rest"
	"github.com/fastygo/warehouse-console/api/transport"
	"github.com/fastygo/warehouse-console/domain"
	"github.com/fastygo/warehouse-console/internal/httpclient/httpclienttest"
	"github.com/fastygo/warehouse-console/usecase"
)

const listPath = "/api/v1/inventory/list"

func newUseCase(tr *httpclienttest.Transport) *UseCase {
	return New(rest.New(httpclienttest.Client(tr, nil)).Inventory, nil)
}

func TestFetchFillsState(t *testing.T) {
	tr := httpclienttest.New().On("GET", listPath, httpclienttest.JSON(`{"data":{"records":[{"id":1}],"total":1}}`))
	uc := newUseCase(tr)

	page, err := uc.Fetch(context.Background(), usecase.Query[transport.InventoryFilter]{Page: 1, Size: 10})
	require.NoError(t, err)

	state := uc.Inventories.Snapshot()
	assert.Equal(t, page, state)
	assert.Equal(t, []domain.Inventory{{ID: 1}}, state.Items)
	assert.Equal(t, 1, state.Total)
	assert.Equal(t, 1, state.Page)
	assert.Equal(t, 10, state.Size)
	assert.Equal(t, "page=1&size=10", tr.Last().Query)
}

func TestFetchFailureResetsState(t *testing.T) {
	tr := httpclienttest.New().On("GET", listPath,
		httpclienttest.JSON(`{"data":{"records":[{"id":1},{"id":2}],"total":2}}`),
		httpclienttest.Status(500, "database offline"),
	)
	uc := newUseCase(tr)
	ctx := context.Background()

	_, err := uc.Fetch(ctx, usecase.Query[transport.InventoryFilter]{Page: 1, Size: 10})
	require.NoError(t, err)
	require.Len(t, uc.Inventories.Snapshot().Items, 2)

	_, err = uc.Fetch(ctx, usecase.Query[transport.InventoryFilter]{Page: 2, Size: 10})
	require.Error(t, err)
	state := uc.Inventories.Snapshot()
	assert.Empty(t, state.Items)
	assert.NotNil(t, state.Items)
	assert.Zero(t, state.Total)
	assert.Equal(t, 2, state.Page)
}

func TestFetchUnrecognizedShapeResets(t *testing.T) {
	tr := httpclienttest.New().On("GET", listPath, httpclienttest.JSON(`{"data":{"inventories":[{"id":1}]}}`))
	uc := newUseCase(tr)

	_, err := uc.Fetch(context.Background(), usecase.Query[transport.InventoryFilter]{})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnrecognized))
	assert.Empty(t, uc.Inventories.Snapshot().Items)
}

func TestFetchIsIdempotent(t *testing.T) {
	tr := httpclienttest.New().On("GET", listPath, httpclienttest.JSON(`{"data":{"records":[{"id":1},{"id":2}],"total":7}}`))
	uc := newUseCase(tr)
	q := usecase.Query[transport.InventoryFilter]{Page: 1, Size: 2, Filters: transport.InventoryFilter{Location: "A1"}}

	first, err := uc.Fetch(context.Background(), q)
	require.NoError(t, err)
	second, err := uc.Fetch(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "location=A1&page=1&size=2", tr.Last().Query)
}

func TestCreateRefetchesLastQuery(t *testing.T) {
	tr := httpclienttest.New().
		On("GET", listPath, httpclienttest.JSON(`{"data":{"records":[],"total":0}}`), httpclienttest.JSON(`{"data":{"records":[{"id":9}],"total":1}}`)).
		On("POST", "/api/v1/inventory", httpclienttest.JSON(`{"code":200,"data":{"id":9}}`))
	uc := newUseCase(tr)
	ctx := context.Background()

	_, err := uc.Fetch(ctx, usecase.Query[transport.InventoryFilter]{Page: 3, Size: 5})
	require.NoError(t, err)
	require.NoError(t, uc.Create(ctx, map[string]interface{}{"material_code": "M-9"}))

	assert.Equal(t, 2, tr.Count("GET", listPath))
	assert.Equal(t, "page=3&size=5", tr.Last().Query)
	assert.Equal(t, []domain.Inventory{{ID: 9}}, uc.Inventories.Snapshot().Items)
}

func TestGetSetsCurrent(t *testing.T) {
	tr := httpclienttest.New().On("GET", "/api/v1/inventory/4", httpclienttest.JSON(`{"id":4,"material_code":"M-4","quantity":12}`))
	uc := newUseCase(tr)

	item, err := uc.Get(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "M-4", item.MaterialCode)
	assert.Equal(t, item, uc.Current())
}

func TestDispatchActions(t *testing.T) {
	tr := httpclienttest.New().On("GET", listPath, httpclienttest.JSON(`[{"id":1},{"id":2}]`))
	uc := newUseCase(tr)
	d := usecase.NewDispatcher()
	uc.Register(d)

	out, err := d.Dispatch(context.Background(), "inventory/fetch", []byte(`{"page":1,"size":10,"filters":{"category":"steel"}}`))
	require.NoError(t, err)
	page := out.(domain.Page[domain.Inventory])
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, "category=steel&page=1&size=10", tr.Last().Query)

	state, err := d.Get(context.Background(), "inventory/state")
	require.NoError(t, err)
	assert.Equal(t, page, state)
}
