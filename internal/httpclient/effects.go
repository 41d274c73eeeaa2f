package httpclient

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/warehouse-console/domain"
	"github.com/fastygo/warehouse-console/internal/metrics"
	appLogger "github.com/fastygo/warehouse-console/pkg/logger"
)

// Invalidator tears the session down when the backend rejects it.
type Invalidator interface {
	Invalidate(ctx context.Context, reason string) error
}

// Notifier receives the operator-facing message of every surfaced error.
type Notifier func(ctx context.Context, message string)

// SessionEffects is the outermost stage: it sees the final outcome of a logical request,
// reports it once and applies the unauthorized teardown. Requests abandoned by the caller
// are logged but raise no operator notice.
func SessionEffects(session Invalidator, notify Notifier, logger *zap.Logger) Stage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next Handler) Handler {
		return func(ctx context.Context, d *Descriptor) (*Response, error) {
			start := time.Now()
			resp, err := next(ctx, d)
			log := appLogger.WithRequestID(ctx, logger)

			if err == nil {
				metrics.RecordRequest(d.Method, "ok", time.Since(start))
				log.Debug("request completed",
					zap.String("request", d.String()),
					zap.Int("status", resp.Status),
					zap.Int("attempts", d.Attempts()),
					zap.Duration("elapsed", time.Since(start)),
				)
				return resp, nil
			}

			dErr, ok := domain.AsError(err)
			if !ok {
				dErr = domain.WrapError(domain.ErrCodeInternal, "request failed", err)
			}
			metrics.RecordRequest(d.Method, outcome(dErr), time.Since(start))

			log.Warn("request failed",
				zap.String("request", d.String()),
				zap.String("kind", string(dErr.Code)),
				zap.Int("status", dErr.Status),
				zap.Int("app_code", dErr.AppCode),
				zap.Int("attempts", d.Attempts()),
				zap.Error(dErr),
			)

			if dErr.Unauthorized() && session != nil {
				metrics.RecordInvalidation()
				if ierr := session.Invalidate(ctx, "unauthorized"); ierr != nil {
					log.Error("session teardown failed", zap.Error(ierr))
				}
			}
			if notify != nil && ctx.Err() == nil && dErr.Code != domain.ErrCodeCanceled {
				notify(ctx, dErr.UserMessage())
			}
			return nil, dErr
		}
	}
}
