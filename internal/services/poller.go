package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fastygo/warehouse-console/internal/metrics"
)

// ConnectionHealth abstracts the backend monitor.
type ConnectionHealth interface {
	IsOnline() bool
}

// SessionState tells the poller whether there is anyone to poll for.
type SessionState interface {
	LoggedIn() bool
}

// Job is one background refresh, such as the notification badge.
type Job struct {
	Name    string
	Spec    string
	Timeout time.Duration
	Run     func(ctx context.Context) error
}

// Poller refreshes container state on cron schedules while an operator is signed in.
type Poller struct {
	session SessionState
	monitor ConnectionHealth
	logger  *zap.Logger
	cron    *cron.Cron

	mu   sync.Mutex
	jobs []Job
}

func NewPoller(session SessionState, monitor ConnectionHealth, logger *zap.Logger) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		session: session,
		monitor: monitor,
		logger:  logger,
		cron:    cron.New(),
	}
}

// Add schedules job. An empty spec registers the job for RunAll only.
func (p *Poller) Add(job Job) error {
	if job.Run == nil {
		return fmt.Errorf("poller job %s has no run function", job.Name)
	}
	if job.Timeout <= 0 {
		job.Timeout = 30 * time.Second
	}
	if job.Spec != "" {
		if _, err := p.cron.AddFunc(job.Spec, func() {
			_ = p.run(context.Background(), job)
		}); err != nil {
			return fmt.Errorf("schedule %s (%s): %w", job.Name, job.Spec, err)
		}
	}
	p.mu.Lock()
	p.jobs = append(p.jobs, job)
	p.mu.Unlock()
	return nil
}

// Start launches the cron scheduler.
func (p *Poller) Start() {
	if p == nil || p.cron == nil {
		return
	}
	p.cron.Start()
	p.logger.Info("poller started", zap.Int("jobs", len(p.Jobs())))
}

// Stop waits for running jobs or ctx, whichever ends first.
func (p *Poller) Stop(ctx context.Context) {
	if p == nil || p.cron == nil {
		return
	}
	stopCtx := p.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	p.logger.Info("poller stopped")
}

// Jobs lists job names in registration order.
func (p *Poller) Jobs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.jobs))
	for _, j := range p.jobs {
		names = append(names, j.Name)
	}
	return names
}

// RunAll executes every job once, synchronously, and returns the first error.
func (p *Poller) RunAll(ctx context.Context) error {
	p.mu.Lock()
	jobs := append([]Job(nil), p.jobs...)
	p.mu.Unlock()

	var first error
	for _, job := range jobs {
		if err := p.run(ctx, job); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (p *Poller) run(ctx context.Context, job Job) error {
	if p.session != nil && !p.session.LoggedIn() {
		p.logger.Debug("skipping poll (signed out)", zap.String("job", job.Name))
		return nil
	}
	if p.monitor != nil && !p.monitor.IsOnline() {
		p.logger.Debug("skipping poll (backend offline)", zap.String("job", job.Name))
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, job.Timeout)
	defer cancel()

	err := job.Run(ctx)
	metrics.RecordPollerRun(job.Name, err)
	if err != nil {
		p.logger.Warn("poll failed", zap.String("job", job.Name), zap.Error(err))
	}
	return err
}
