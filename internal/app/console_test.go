package app

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/warehouse-console/domain"
	"github.com/fastygo/warehouse-console/internal/config"
	"github.com/fastygo/warehouse-console/internal/httpclient/httpclienttest"
	"github.com/fastygo/warehouse-console/internal/navigation"
	"github.com/fastygo/warehouse-console/internal/session"
	"github.com/fastygo/warehouse-console/repository/memory"
)

func testConfig() *config.Config {
	return &config.Config{
		API: config.APIConfig{
			BaseURL:     httpclienttest.BaseURL,
			Timeout:     time.Second,
			RetryBudget: 3,
			RetryDelay:  time.Millisecond,
		},
		Session: config.SessionConfig{Backend: "memory"},
		Poller:  config.PollerConfig{NotificationSpec: "@every 30s", DashboardSpec: "@every 5m"},
		Monitor: config.MonitorConfig{Interval: time.Hour, Path: "/health"},
		Context: config.ContextConfig{ShutdownTimeout: time.Second},
	}
}

func newConsole(t *testing.T, tr *httpclienttest.Transport, store *memory.Store) (*Console, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	c, err := New(context.Background(), testConfig(), nil,
		WithTransport(tr), WithStore(store), WithNotices(&out))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close(context.Background()) })
	return c, &out
}

func TestUnauthorizedListTearsDownAndRedirects(t *testing.T) {
	store := memory.New()
	require.NoError(t, store.Set(context.Background(), session.KeyToken, "stale"))
	tr := httpclienttest.New().
		On("GET", "/api/v1/inventory/list", httpclienttest.JSON(`{"code":401,"message":"token expired"}`))
	c, out := newConsole(t, tr, store)

	location, _ := c.Navigator.Location()
	require.Equal(t, navigation.HomePath, location)

	_, err := c.Dispatcher.Dispatch(context.Background(), "inventory/fetch", json.RawMessage(`{"page":1,"size":10}`))
	require.Error(t, err)
	assert.True(t, domain.IsUnauthorized(err))

	assert.False(t, c.Session.LoggedIn())
	_, getErr := store.Get(context.Background(), session.KeyToken)
	assert.ErrorIs(t, getErr, domain.ErrKeyNotFound)

	location, title := c.Navigator.Location()
	assert.Equal(t, navigation.LoginPath, location)
	assert.Equal(t, navigation.AppTitle, title)
	assert.Contains(t, out.String(), "session expired")
	assert.Equal(t, 1, tr.Count("GET", "/api/v1/inventory/list"))
}

func TestPollerRefreshesWhenSignedIn(t *testing.T) {
	store := memory.New()
	tr := httpclienttest.New().
		On("GET", "/api/v1/notifications", httpclienttest.JSON(`{"total":1,"unread":1,"notifications":[{"id":3,"title":"New task"}]}`)).
		On("GET", "/api/v1/reports/dashboard/operation", httpclienttest.JSON(`{"pending_tasks":2}`)).
		On("GET", "/health", httpclienttest.JSON(`{"status":"ok"}`))
	c, _ := newConsole(t, tr, store)

	require.NoError(t, c.Poller.RunAll(context.Background()))
	assert.Zero(t, tr.Count("GET", "/api/v1/notifications"))

	require.NoError(t, c.Session.Establish(context.Background(), "token", nil))
	c.Monitor.Check(context.Background())
	require.NoError(t, c.Poller.RunAll(context.Background()))

	assert.Equal(t, 1, c.Notification.Unread())
	assert.JSONEq(t, `{"pending_tasks":2}`, string(c.Report.Snapshot().Operation))
}

func TestDispatcherCoversEveryContainer(t *testing.T) {
	c, _ := newConsole(t, httpclienttest.New(), memory.New())
	actions := c.Dispatcher.Actions()
	for _, name := range []string{
		"auth/login", "purchase/fetch", "inventory/fetch", "outbound/fetch",
		"confirmation/fetch", "notification/fetch", "report/operation", "workflow/todo", "nav/push",
	} {
		assert.Contains(t, actions, name)
	}
}

func TestNavPushThroughDispatcher(t *testing.T) {
	c, _ := newConsole(t, httpclienttest.New(), memory.New())
	out, err := c.Dispatcher.Dispatch(context.Background(), "nav/push", json.RawMessage(`{"location":"/report"}`))
	require.NoError(t, err)
	d := out.(navigation.Decision)
	assert.Equal(t, navigation.Redirected, d.Outcome)
	assert.Equal(t, navigation.LoginPath, d.Redirect)
}
