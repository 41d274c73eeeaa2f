package httpclient

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/valyala/fasthttp"

	"github.com/fastygo/warehouse-console/domain"
	"github.com/fastygo/warehouse-console/internal/metrics"
	"github.com/fastygo/warehouse-console/pkg/envelope"
)

// Classify turns transport outcomes into domain errors. It sees every attempt, so it is
// also where attempts are counted.
func Classify() Stage {
	return func(next Handler) Handler {
		return func(ctx context.Context, d *Descriptor) (*Response, error) {
			resp, err := next(ctx, d)
			if err != nil {
				cerr := classifyTransport(err)
				metrics.RecordAttempt(d.Method, outcome(cerr))
				return nil, cerr
			}
			resp, cerr := classifyResponse(d, resp)
			metrics.RecordAttempt(d.Method, outcome(cerr))
			if cerr != nil {
				return nil, cerr
			}
			return resp, nil
		}
	}
}

func classifyTransport(err error) *domain.Error {
	if dErr, ok := domain.AsError(err); ok {
		return dErr
	}
	if errors.Is(err, context.Canceled) {
		return domain.WrapError(domain.ErrCodeCanceled, "request canceled", err)
	}
	if isTimeout(err) {
		return domain.WrapError(domain.ErrCodeTimeout, "request timed out", err)
	}
	return domain.WrapError(domain.ErrCodeNetwork, "no response from server", err)
}

func isTimeout(err error) bool {
	if errors.Is(err, fasthttp.ErrTimeout) ||
		errors.Is(err, fasthttp.ErrDialTimeout) ||
		errors.Is(err, fasthttp.ErrTLSHandshakeTimeout) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func classifyResponse(d *Descriptor, resp *Response) (*Response, *domain.Error) {
	if resp.Status < 200 || resp.Status > 299 {
		return nil, domain.NewStatusError(resp.Status, envelope.Message(resp.Body))
	}
	if d.Raw {
		resp.JSON = false
		return resp, nil
	}
	resp.JSON = isJSON(resp.ContentType, resp.Body)
	if !resp.JSON {
		return resp, nil
	}
	if code, ok := envelope.Code(resp.Body); ok && code != 0 && code != fasthttp.StatusOK {
		return nil, domain.NewApplicationError(code, envelope.Message(resp.Body))
	}
	return resp, nil
}

// isJSON accepts declared JSON, and undeclared or text/plain bodies that parse as JSON.
func isJSON(contentType string, body []byte) bool {
	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "json") {
		return envelope.IsJSON(body)
	}
	if ct == "" || strings.HasPrefix(ct, "text/plain") {
		return envelope.IsJSON(body)
	}
	return false
}

func outcome(err *domain.Error) string {
	if err == nil {
		return "ok"
	}
	return strings.ToLower(string(err.Code))
}
