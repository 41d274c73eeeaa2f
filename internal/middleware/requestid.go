package middleware

import (
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/warehouse-console/pkg/httpcontext"
)

// RequestID makes sure the request carries X-Request-ID before it is forwarded, so the
// backend logs the same id the relay does.
func RequestID() Middleware {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			id := httpcontext.RequestIDFrom(ctx)
			ctx.Request.Header.Set(httpcontext.HeaderRequestID, id)
			next(ctx)
			ctx.Response.Header.Set(httpcontext.HeaderRequestID, id)
		}
	}
}

// AccessLog writes one line per request.
func AccessLog(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			start := time.Now()
			next(ctx)
			logger.Info("request",
				zap.String("request_id", string(ctx.Request.Header.Peek(httpcontext.HeaderRequestID))),
				zap.ByteString("method", ctx.Method()),
				zap.ByteString("path", ctx.Path()),
				zap.Int("status", ctx.Response.StatusCode()),
				zap.Duration("took", time.Since(start)),
			)
		}
	}
}
