package monitor

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/warehouse-console/internal/metrics"
)

// Prober issues the health request; *fasthttp.Client satisfies it.
type Prober interface {
	DoTimeout(req *fasthttp.Request, resp *fasthttp.Response, timeout time.Duration) error
}

// Monitor periodically checks that the backend answers its health endpoint.
type Monitor struct {
	target string
	client Prober
	redis  *redislib.Client

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	timeout  time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

// HealthURL joins the origin of baseURL with path, so "http://h:8000/api/v1" and
// "/health" give "http://h:8000/health".
func HealthURL(baseURL, path string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("base url %q has no scheme or host", baseURL)
	}
	return (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: path}).String(), nil
}

func New(target string, client Prober, redis *redislib.Client, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	if client == nil {
		client = &fasthttp.Client{Name: "wmsctl-monitor"}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		target:   target,
		client:   client,
		redis:    redis,
		interval: interval,
		timeout:  3 * time.Second,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// IsOnline reports the last backend probe.
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Backend
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Check probes once and stores the result.
func (m *Monitor) Check(ctx context.Context) Status {
	start := time.Now()
	code, err := m.probe()
	status := Status{
		Backend:    err == nil && code >= 200 && code < 300,
		HTTPStatus: code,
		Latency:    time.Since(start),
		LastCheck:  time.Now(),
	}
	if err != nil {
		status.Error = err.Error()
	}
	if m.redis != nil {
		ok := m.checkRedis(ctx)
		status.Redis = &ok
	}

	m.mu.Lock()
	previous := m.status
	m.status = status
	m.mu.Unlock()

	metrics.SetBackendUp(status.Backend)
	if previous.LastCheck.IsZero() || previous.Backend != status.Backend {
		m.logger.Info("backend reachability changed",
			zap.String("target", m.target),
			zap.Bool("online", status.Backend),
			zap.Int("status", code),
			zap.Error(err),
		)
	}
	return status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check(context.Background())
	for {
		select {
		case <-ticker.C:
			m.Check(context.Background())
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) probe() (int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(m.target)
	req.Header.SetMethod(fasthttp.MethodGet)
	if err := m.client.DoTimeout(req, resp, m.timeout); err != nil {
		return 0, err
	}
	return resp.StatusCode(), nil
}

func (m *Monitor) checkRedis(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.redis.Ping(ctx).Err() == nil
}
