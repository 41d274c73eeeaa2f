package httpclient

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/warehouse-console/domain"
	"github.com/fastygo/warehouse-console/internal/metrics"
	appLogger "github.com/fastygo/warehouse-console/pkg/logger"
)

// Retry re-issues the same descriptor after a fixed delay while the failure means no
// response was received and the budget is not spent. Any HTTP status ends the request.
func Retry(logger *zap.Logger) Stage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next Handler) Handler {
		return func(ctx context.Context, d *Descriptor) (*Response, error) {
			for {
				resp, err := next(ctx, d)
				if err == nil {
					return resp, nil
				}
				dErr, ok := domain.AsError(err)
				if !ok || !dErr.Transient() || d.retryCount >= d.retryBudget {
					return nil, err
				}

				if !wait(ctx, d.retryDelay) {
					return nil, err
				}

				d.retryCount++
				metrics.RecordRetry(d.Method)
				appLogger.WithRequestID(ctx, logger).Debug("retrying request",
					zap.String("request", d.String()),
					zap.String("kind", string(dErr.Code)),
					zap.Int("retry", d.retryCount),
					zap.Int("budget", d.retryBudget),
					zap.Duration("delay", d.retryDelay),
				)
			}
		}
	}
}

func wait(ctx context.Context, delay time.Duration) bool {
	if delay <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
