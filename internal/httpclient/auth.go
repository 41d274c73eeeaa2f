package httpclient

import (
	"context"

	"github.com/fastygo/warehouse-console/pkg/httpcontext"
)

// TokenSource yields the bearer token for the current attempt; empty means anonymous.
type TokenSource interface {
	Token() string
}

const headerAuthorization = "Authorization"

// Auth decorates every attempt with the session token and the request id. Reading the
// token per attempt means a login completed during a retry wait is picked up.
func Auth(tokens TokenSource) Stage {
	return func(next Handler) Handler {
		return func(ctx context.Context, d *Descriptor) (*Response, error) {
			token := ""
			if tokens != nil {
				token = tokens.Token()
			}
			if token != "" {
				d.SetHeader(headerAuthorization, "Bearer "+token)
			} else {
				d.DelHeader(headerAuthorization)
			}
			if d.RequestID != "" {
				d.SetHeader(httpcontext.HeaderRequestID, d.RequestID)
			}
			return next(ctx, d)
		}
	}
}
