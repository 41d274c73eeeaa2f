package rest

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/warehouse-console/api/transport"
	"github.com/fastygo/warehouse-console/domain"
	"github.com/fastygo/warehouse-console/internal/httpclient"
)

type recorded struct {
	method      string
	path        string
	query       string
	contentType string
	body        string
}

// recordingTransport answers every request with one canned JSON body.
type recordingTransport struct {
	mu       sync.Mutex
	status   int
	ctype    string
	body     string
	requests []recorded
}

func (r *recordingTransport) DoTimeout(req *fasthttp.Request, resp *fasthttp.Response, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, recorded{
		method:      string(req.Header.Method()),
		path:        string(req.URI().Path()),
		query:       string(req.URI().QueryString()),
		contentType: string(req.Header.ContentType()),
		body:        string(req.Body()),
	})
	status := r.status
	if status == 0 {
		status = fasthttp.StatusOK
	}
	resp.SetStatusCode(status)
	if r.ctype != "" {
		resp.Header.SetContentType(r.ctype)
	} else {
		resp.Header.SetContentType("application/json")
	}
	resp.SetBodyString(r.body)
	return nil
}

func (r *recordingTransport) last(t *testing.T) recorded {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.requests)
	return r.requests[len(r.requests)-1]
}

func newAPI(body string) (*API, *recordingTransport) {
	tr := &recordingTransport{body: body}
	client := httpclient.New(httpclient.Config{
		BaseURL:     "http://backend/api/v1",
		RetryBudget: 0,
	}, nil, httpclient.WithTransport(tr))
	return New(client), tr
}

func TestLoginSendsFormFields(t *testing.T) {
	api, tr := newAPI(`{"access_token":"jwt","token_type":"bearer"}`)

	out, err := api.Auth.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt", out.AccessToken)

	req := tr.last(t)
	assert.Equal(t, "POST", req.method)
	assert.Equal(t, "/api/v1/login/access-token", req.path)
	assert.True(t, strings.HasPrefix(req.contentType, "multipart/form-data; boundary="))
	assert.Contains(t, req.body, `name="username"`)
	assert.Contains(t, req.body, "admin")
}

func TestLoginWithoutTokenFails(t *testing.T) {
	api, _ := newAPI(`{"token_type":"bearer"}`)
	_, err := api.Auth.Login(context.Background(), "admin", "secret")
	assert.ErrorIs(t, err, domain.ErrMissingToken)
}

func TestPurchaseListOmitsEmptyFilters(t *testing.T) {
	api, tr := newAPI(`{"data":{"records":[],"total":0}}`)

	_, err := api.Purchase.List(context.Background(), 2, 10, transport.PurchaseFilter{SupplierName: "Acme", Status: ""})
	require.NoError(t, err)

	req := tr.last(t)
	assert.Equal(t, "GET", req.method)
	assert.Equal(t, "/api/v1/purchase/list", req.path)
	assert.Equal(t, "page=2&size=10&supplier_name=Acme", req.query)
}

func TestOutboundListSanitisesPagination(t *testing.T) {
	api, tr := newAPI(`{"data":{"records":[],"total":0}}`)

	_, err := api.Outbound.List(context.Background(), 0, -5, transport.OutboundFilter{Department: "D1"})
	require.NoError(t, err)
	assert.Equal(t, "department=D1&page=1&size=20", tr.last(t).query)
}

func TestOutboundDeleteAndBatchDeleteCarryReason(t *testing.T) {
	api, tr := newAPI(`{"code":200,"message":"ok"}`)
	ctx := context.Background()

	_, err := api.Outbound.Delete(ctx, 9, "duplicate")
	require.NoError(t, err)
	req := tr.last(t)
	assert.Equal(t, "DELETE", req.method)
	assert.Equal(t, "/api/v1/outbound/9", req.path)
	assert.Equal(t, "reason=duplicate", req.query)

	_, err = api.Outbound.BatchDelete(ctx, []int{1, 2}, "")
	require.NoError(t, err)
	req = tr.last(t)
	assert.Equal(t, "POST", req.method)
	assert.Equal(t, "/api/v1/outbound/batch-delete", req.path)
	assert.Equal(t, "reason=", req.query)
	assert.JSONEq(t, `{"ids":[1,2]}`, req.body)

	_, err = api.Outbound.Complete(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/outbound/complete/4", tr.last(t).path)
}

func TestGetDecodesRecord(t *testing.T) {
	api, tr := newAPI(`{"code":200,"data":{"id":5,"order_no":"PO-5","total_amount":12.5}}`)

	order, err := api.Purchase.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "PO-5", order.OrderNo)
	assert.Equal(t, 12.5, order.TotalAmount)
	assert.Equal(t, "/api/v1/purchase/5", tr.last(t).path)
}

func TestErrorsPropagateUntouched(t *testing.T) {
	api, tr := newAPI(`{"detail":"Inventory not found"}`)
	tr.status = fasthttp.StatusNotFound

	_, err := api.Inventory.Get(context.Background(), 1)
	dErr, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, domain.ErrCodeHTTPStatus, dErr.Code)
	assert.Equal(t, 404, dErr.Status)
	assert.Equal(t, "Inventory not found", dErr.Message)
}

func TestNotificationListAndActions(t *testing.T) {
	api, tr := newAPI(`{"total":2,"unread":1,"notifications":[{"id":1,"title":"a","is_read":false},{"id":2,"title":"b","is_read":true}]}`)
	ctx := context.Background()
	unread := false

	list, err := api.Notification.List(ctx, transport.NotificationFilter{IsRead: &unread})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Unread)
	assert.Len(t, list.Notifications, 2)
	assert.Equal(t, "is_read=false", tr.last(t).query)

	_, err = api.Notification.MarkRead(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "PUT", tr.last(t).method)
	assert.Equal(t, "/api/v1/notifications/3/read", tr.last(t).path)

	_, err = api.Notification.MarkAllRead(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/notifications/read-all", tr.last(t).path)
}

func TestNotificationListRejectsOtherShapes(t *testing.T) {
	api, _ := newAPI(`{"data":{"records":[]}}`)
	_, err := api.Notification.List(context.Background(), transport.NotificationFilter{})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnrecognized))
}

func TestReportLeadershipDefaultsToMonth(t *testing.T) {
	api, tr := newAPI(`{"code":200,"data":{"orders":10}}`)

	data, err := api.Report.Leadership(context.Background(), "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"orders":10}`, string(data))
	assert.Equal(t, "time_range=MONTH", tr.last(t).query)

	_, err = api.Report.Leadership(context.Background(), "week")
	require.NoError(t, err)
	assert.Equal(t, "time_range=WEEK", tr.last(t).query)
}

func TestWorkflowPaths(t *testing.T) {
	api, tr := newAPI(`{"code":200}`)
	ctx := context.Background()

	_, err := api.Workflow.CompleteTask(ctx, "task-1", transport.CompleteTaskRequest{Approved: true, Comment: "ok"})
	require.NoError(t, err)
	req := tr.last(t)
	assert.Equal(t, "/api/v1/workflow/task/task-1/complete", req.path)
	assert.JSONEq(t, `{"approved":true,"comment":"ok"}`, req.body)

	_, err = api.Workflow.TodoTasks(ctx, 1, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/workflow/tasks/todo", tr.last(t).path)
	assert.Equal(t, "page=1&size=10", tr.last(t).query)
}

func TestConfirmationPDFIsRaw(t *testing.T) {
	api, tr := newAPI("%PDF-1.7")
	tr.ctype = "application/pdf"

	resp, err := api.Confirmation.PDF(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, resp.JSON)
	assert.Equal(t, "%PDF-1.7", string(resp.Body))
	assert.Equal(t, "/api/v1/confirmation/3/pdf", tr.last(t).path)
}

func TestUserUnits(t *testing.T) {
	api, _ := newAPI(`{"data":["north","south"],"total":2,"message":"ok"}`)
	units, err := api.Purchase.UserUnits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"north", "south"}, units.Data)
	assert.Equal(t, 2, units.Total)
}
