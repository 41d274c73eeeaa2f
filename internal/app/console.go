// Package app assembles the console: session store, client core, resource containers,
// navigation and background refresh.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fastygo/warehouse-console/api/rest"
	"github.com/fastygo/warehouse-console/internal/config"
	"github.com/fastygo/warehouse-console/internal/httpclient"
	"github.com/fastygo/warehouse-console/internal/infrastructure/monitor"
	redisInfra "github.com/fastygo/warehouse-console/internal/infrastructure/redis"
	"github.com/fastygo/warehouse-console/internal/navigation"
	"github.com/fastygo/warehouse-console/internal/services"
	"github.com/fastygo/warehouse-console/internal/services/lifecycle"
	"github.com/fastygo/warehouse-console/internal/session"
	"github.com/fastygo/warehouse-console/repository"
	"github.com/fastygo/warehouse-console/repository/bolt"
	"github.com/fastygo/warehouse-console/repository/memory"
	redisRepo "github.com/fastygo/warehouse-console/repository/redis"
	"github.com/fastygo/warehouse-console/usecase"
	"github.com/fastygo/warehouse-console/usecase/auth"
	"github.com/fastygo/warehouse-console/usecase/confirmation"
	"github.com/fastygo/warehouse-console/usecase/inventory"
	"github.com/fastygo/warehouse-console/usecase/notification"
	"github.com/fastygo/warehouse-console/usecase/outbound"
	"github.com/fastygo/warehouse-console/usecase/purchase"
	"github.com/fastygo/warehouse-console/usecase/report"
	"github.com/fastygo/warehouse-console/usecase/workflow"
)

// Console is the running client with every container wired to one session.
type Console struct {
	Config     *config.Config
	Logger     *zap.Logger
	Session    *session.Manager
	Client     *httpclient.Client
	API        *rest.API
	Dispatcher *usecase.Dispatcher
	Navigator  *navigation.Navigator
	Poller     *services.Poller
	Monitor    *monitor.Monitor

	Auth         *auth.UseCase
	Purchase     *purchase.UseCase
	Inventory    *inventory.UseCase
	Outbound     *outbound.UseCase
	Confirmation *confirmation.UseCase
	Notification *notification.UseCase
	Report       *report.UseCase
	Workflow     *workflow.UseCase

	lifecycle *lifecycle.Manager
	redis     *redislib.Client
}

type options struct {
	transport httpclient.Transport
	store     repository.KVStore
	notices   io.Writer
}

type Option func(*options)

// WithTransport replaces the fasthttp client, typically with a scripted backend.
func WithTransport(t httpclient.Transport) Option {
	return func(o *options) { o.transport = t }
}

// WithStore replaces the configured session backend.
func WithStore(s repository.KVStore) Option {
	return func(o *options) { o.store = s }
}

// WithNotices sets where transient error notices are written (stderr by default).
func WithNotices(w io.Writer) Option {
	return func(o *options) { o.notices = w }
}

func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts ...Option) (*Console, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := options{notices: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Console{
		Config:     cfg,
		Logger:     logger,
		Dispatcher: usecase.NewDispatcher(),
		lifecycle:  lifecycle.New(cfg.Context.ShutdownTimeout, logger),
	}

	store := o.store
	if store == nil {
		var err error
		if store, err = c.openStore(ctx); err != nil {
			return nil, err
		}
	}
	c.lifecycle.Register("session_store", func(context.Context) error {
		return store.Close()
	})

	c.Session = session.NewManager(store, logger)
	if _, err := c.Session.Restore(ctx); err != nil {
		logger.Warn("stored session unreadable, starting signed out", zap.Error(err))
	}

	clientOpts := []httpclient.Option{
		httpclient.WithLogger(logger),
		httpclient.WithNotifier(notices(o.notices)),
	}
	if o.transport != nil {
		clientOpts = append(clientOpts, httpclient.WithTransport(o.transport))
	}
	c.Client = httpclient.New(httpclient.Config{
		BaseURL:       cfg.API.BaseURL,
		Timeout:       cfg.API.Timeout,
		UploadTimeout: cfg.API.UploadTimeout,
		RetryBudget:   cfg.API.RetryBudget,
		RetryDelay:    cfg.API.RetryDelay,
		MaxConns:      cfg.API.MaxConns,
		UserAgent:     cfg.API.UserAgent,
	}, c.Session, clientOpts...)
	c.API = rest.New(c.Client)

	c.Auth = auth.New(c.API.Auth, c.Session, logger)
	c.Purchase = purchase.New(c.API.Purchase, logger)
	c.Inventory = inventory.New(c.API.Inventory, logger)
	c.Outbound = outbound.New(c.API.Outbound, logger)
	c.Confirmation = confirmation.New(c.API.Confirmation, logger)
	c.Notification = notification.New(c.API.Notification, logger)
	c.Report = report.New(c.API.Report)
	c.Workflow = workflow.New(c.API.Workflow, logger)

	for _, r := range []interface{ Register(*usecase.Dispatcher) }{
		c.Auth, c.Purchase, c.Inventory, c.Outbound,
		c.Confirmation, c.Notification, c.Report, c.Workflow,
	} {
		r.Register(c.Dispatcher)
	}

	c.Navigator = navigation.NewNavigator(navigation.NewGuard(c.Session), logger)
	c.Session.OnInvalidated(c.Navigator.SessionInvalidated)
	registerNavigation(c.Dispatcher, c.Navigator)
	if c.Session.LoggedIn() {
		c.Navigator.Push(navigation.HomePath)
	}

	if err := c.buildBackground(o.transport); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Console) openStore(ctx context.Context) (repository.KVStore, error) {
	cfg := c.Config.Session
	switch cfg.Backend {
	case "memory":
		return memory.New(), nil
	case "redis":
		client, err := redisInfra.NewClient(ctx, c.Config.Redis)
		if err != nil {
			return nil, fmt.Errorf("session store: %w", err)
		}
		c.redis = client
		return redisRepo.NewKVStore(client, cfg.Prefix, cfg.TTL), nil
	default:
		store, err := bolt.Open(cfg.Path, cfg.Bucket)
		if err != nil {
			return nil, fmt.Errorf("session store: %w", err)
		}
		return store, nil
	}
}

func (c *Console) buildBackground(transport httpclient.Transport) error {
	target, err := monitor.HealthURL(c.Config.API.BaseURL, c.Config.Monitor.Path)
	if err != nil {
		return err
	}
	var prober monitor.Prober
	if transport != nil {
		prober = transport
	}
	c.Monitor = monitor.New(target, prober, c.redis, c.Config.Monitor.Interval, c.Logger)

	c.Poller = services.NewPoller(c.Session, c.Monitor, c.Logger)
	if err := c.Poller.Add(services.Job{
		Name: "notifications",
		Spec: c.Config.Poller.NotificationSpec,
		Run: func(ctx context.Context) error {
			_, err := c.Notification.Refresh(ctx)
			return err
		},
	}); err != nil {
		return err
	}
	return c.Poller.Add(services.Job{
		Name: "operation_dashboard",
		Spec: c.Config.Poller.DashboardSpec,
		Run: func(ctx context.Context) error {
			_, err := c.Report.Operation(ctx)
			return err
		},
	})
}

// StartBackground begins reachability probes and scheduled refreshes.
func (c *Console) StartBackground(ctx context.Context) {
	c.Monitor.Check(ctx)
	c.Monitor.Start()
	c.lifecycle.Register("monitor", func(context.Context) error {
		c.Monitor.Stop()
		return nil
	})
	c.Poller.Start()
	c.lifecycle.Register("poller", func(ctx context.Context) error {
		c.Poller.Stop(ctx)
		return nil
	})
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func (c *Console) SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return c.lifecycle.SignalContext(parent)
}

// Close stops background work and closes the session store.
func (c *Console) Close(ctx context.Context) error {
	return c.lifecycle.Shutdown(ctx)
}

func notices(w io.Writer) httpclient.Notifier {
	return func(_ context.Context, message string) {
		if w != nil {
			fmt.Fprintf(w, "! %s\n", message)
		}
	}
}

type locationPayload struct {
	Location string `json:"location"`
}

func registerNavigation(d *usecase.Dispatcher, nav *navigation.Navigator) {
	d.RegisterAction("nav/push", usecase.Action(func(_ context.Context, p locationPayload) (interface{}, error) {
		return nav.Push(p.Location), nil
	}))
	d.RegisterGetter("nav/location", func(context.Context) (interface{}, error) {
		location, title := nav.Location()
		return map[string]interface{}{
			"location": location,
			"title":    title,
			"params":   nav.Params(),
		}, nil
	})
}
