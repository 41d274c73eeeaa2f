package outbound

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

const listPath = "/api/v1/outbound/list"

func newUseCase(tr *httpclienttest.Transport) *UseCase {
	return New(rest.New(httpclienttest.Client(tr, nil)).Outbound, nil)
}

func TestFetchUsesOutboundDefaults(t *testing.T) {
	tr := httpclienttest.New().On("GET", listPath, httpclienttest.JSON(`{"success":true,"data":{"total":1,"pages":1,"current":1,"records":[{"id":3,"material_voucher":"MV-3","items":[]}]}}`))
	uc := newUseCase(tr)

	page, err := uc.Fetch(context.Background(), usecase.Query[transport.OutboundFilter]{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultSize, page.Size)
	assert.Equal(t, "MV-3", page.Items[0].MaterialVoucher)
	assert.Equal(t, "page=1&size=20", tr.Last().Query)
}

func TestDeleteClearsCurrentAndResyncs(t *testing.T) {
	tr := httpclienttest.New().
		On("GET", "/api/v1/outbound/5", httpclienttest.JSON(`{"id":5,"material_voucher":"MV-5","items":[]}`)).
		On("DELETE", "/api/v1/outbound/5", httpclienttest.JSON(`{"code":200,"message":"deleted"}`)).
		On("GET", listPath, httpclienttest.JSON(`{"data":{"records":[],"total":0}}`))
	uc := newUseCase(tr)
	ctx := context.Background()

	_, err := uc.Get(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, uc.Current())

	require.NoError(t, uc.Delete(ctx, 5, "entered twice"))
	assert.Nil(t, uc.Current())
	assert.Equal(t, 1, tr.Count("GET", listPath))
	assert.Equal(t, "page=1&size=20", tr.Last().Query)
}

func TestBatchDeleteRequiresIDs(t *testing.T) {
	tr := httpclienttest.New()
	uc := newUseCase(tr)

	err := uc.BatchDelete(context.Background(), nil, "cleanup")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	assert.Empty(t, tr.Requests())
}

func TestCompleteFailureLeavesListUntouched(t *testing.T) {
	tr := httpclienttest.New().
		On("GET", listPath, httpclienttest.JSON(`{"data":{"records":[{"id":1}],"total":1}}`)).
		On("POST", "/api/v1/outbound/complete/1", httpclienttest.Status(409, "already completed"))
	uc := newUseCase(tr)
	ctx := context.Background()

	_, err := uc.Fetch(ctx, usecase.Query[transport.OutboundFilter]{Page: 1, Size: 20})
	require.NoError(t, err)

	err = uc.Complete(ctx, 1)
	require.Error(t, err)
	assert.Len(t, uc.Outbounds.Snapshot().Items, 1)
	assert.Equal(t, 1, tr.Count("GET", listPath))
}

func TestAuditRecords(t *testing.T) {
	tr := httpclienttest.New().
		On("GET", "/api/v1/outbound/audit/records", httpclienttest.JSON(`{"data":{"records":[{"id":1,"original_id":5,"delete_reason":"dup"}],"total":1}}`)).
		On("GET", "/api/v1/outbound/audit/records/1", httpclienttest.JSON(`{"data":{"id":1,"original_id":5,"items_count":2}}`))
	uc := newUseCase(tr)
	ctx := context.Background()

	page, err := uc.FetchAuditRecords(ctx, usecase.Query[transport.Filters]{Filters: transport.Filters{"material_voucher": "MV-5"}})
	require.NoError(t, err)
	assert.Equal(t, "dup", page.Items[0].DeleteReason)
	assert.Equal(t, "material_voucher=MV-5&page=1&size=10", tr.Last().Query)

	rec, err := uc.AuditRecord(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.ItemsCount)
}
