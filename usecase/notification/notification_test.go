package notification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/warehouse-console/api/rest"
	"github.com/fastygo/warehouse-console/api/transport"
	"github.com/fastygo/warehouse-console/internal/httpclient/httpclienttest"
)

const listPath = "/api/v1/notifications"

func newUseCase(tr *httpclienttest.Transport) *UseCase {
	return New(rest.New(httpclienttest.Client(tr, nil)).Notification, nil)
}

func TestMarkReadRefetchesInsteadOfPatching(t *testing.T) {
	tr := httpclienttest.New().
		On("GET", listPath,
			httpclienttest.JSON(`{"total":2,"unread":2,"notifications":[{"id":1,"is_read":false},{"id":2,"is_read":false}]}`),
			httpclienttest.JSON(`{"total":2,"unread":1,"notifications":[{"id":1,"is_read":true},{"id":2,"is_read":false}]}`),
		).
		On("PUT", "/api/v1/notifications/1/read", httpclienttest.JSON(`{"code":200}`))
	uc := newUseCase(tr)
	ctx := context.Background()

	state, err := uc.Fetch(ctx, transport.NotificationFilter{Type: "workflow"})
	require.NoError(t, err)
	assert.Equal(t, 2, state.Unread)

	require.NoError(t, uc.MarkRead(ctx, 1))
	assert.Equal(t, 1, uc.Unread())
	assert.True(t, uc.Snapshot().Notifications[0].IsRead)
	assert.Equal(t, 2, tr.Count("GET", listPath))
	assert.Equal(t, "notification_type=workflow", tr.Last().Query)
}

func TestFetchFailureResets(t *testing.T) {
	tr := httpclienttest.New().On("GET", listPath,
		httpclienttest.JSON(`{"total":1,"unread":1,"notifications":[{"id":1}]}`),
		httpclienttest.JSON(`{"unexpected":true}`),
	)
	uc := newUseCase(tr)
	ctx := context.Background()

	_, err := uc.Fetch(ctx, transport.NotificationFilter{})
	require.NoError(t, err)

	state, err := uc.Refresh(ctx)
	require.Error(t, err)
	assert.Empty(t, state.Notifications)
	assert.Zero(t, state.Unread)
	assert.Zero(t, state.Total)
}
