package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/warehouse-console/pkg/logger"
)

// HeaderRequestID carries the correlation id between console, relay and backend.
const HeaderRequestID = "X-Request-ID"

// Key represents a context value key exported for reuse.
type Key string

const (
	KeyRemoteAddr Key = "remote_addr"
	KeyUserAgent  Key = "user_agent"
)

// NewRequestID returns a fresh correlation id.
func NewRequestID() string {
	return uuid.NewString()
}

// EnsureRequestID returns ctx carrying a request id, generating one when absent.
func EnsureRequestID(ctx context.Context) (context.Context, string) {
	if ctx == nil {
		ctx = context.Background()
	}
	if reqID := appLogger.RequestID(ctx); reqID != "" {
		return ctx, reqID
	}
	reqID := NewRequestID()
	return appLogger.ContextWithRequestID(ctx, reqID), reqID
}

// Adapter converts fasthttp.RequestCtx into a stdlib context with deadlines and metadata.
type Adapter struct {
	timeout time.Duration
}

// NewAdapter constructs a new Adapter using the provided timeout.
func NewAdapter(timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Adapter{timeout: timeout}
}

func (a *Adapter) Timeout() time.Duration {
	return a.timeout
}

// Attach creates a context bounded by the adapter timeout, carrying the inbound request id
// (or a new one) and echoing it on the response.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	stdCtx, cancel := context.WithTimeout(context.Background(), a.timeout)

	reqID := RequestIDFrom(ctx)
	stdCtx = appLogger.ContextWithRequestID(stdCtx, reqID)
	if ctx != nil {
		ctx.Response.Header.Set(HeaderRequestID, reqID)

		if remoteAddr := ctx.RemoteAddr(); remoteAddr != nil {
			stdCtx = context.WithValue(stdCtx, KeyRemoteAddr, remoteAddr.String())
		}
		if ua := string(ctx.Request.Header.UserAgent()); ua != "" {
			stdCtx = context.WithValue(stdCtx, KeyUserAgent, ua)
		}
	}

	return stdCtx, cancel
}

// RequestIDFrom reads the inbound X-Request-ID header, generating an id when missing.
func RequestIDFrom(ctx *fasthttp.RequestCtx) string {
	if ctx == nil {
		return NewRequestID()
	}
	if header := strings.TrimSpace(string(ctx.Request.Header.Peek(HeaderRequestID))); header != "" {
		return header
	}
	return NewRequestID()
}
