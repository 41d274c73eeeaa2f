package httpclient

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/warehouse-console/domain"
	"github.com/fastygo/warehouse-console/pkg/httpcontext"
)

// Handler processes one attempt (inner stages) or one logical request (outer stages).
type Handler func(ctx context.Context, d *Descriptor) (*Response, error)

// Stage decorates a Handler.
type Stage func(Handler) Handler

// Transport is the fasthttp client surface the core depends on.
type Transport interface {
	DoTimeout(req *fasthttp.Request, resp *fasthttp.Response, timeout time.Duration) error
}

// Session is what the client needs from the session owner.
type Session interface {
	TokenSource
	Invalidator
}

// Config is the unified client policy.
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	UploadTimeout time.Duration
	RetryBudget   int
	RetryDelay    time.Duration
	MaxConns      int
	UserAgent     string
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.UploadTimeout <= 0 {
		c.UploadTimeout = 60 * time.Second
	}
	if c.RetryBudget < 0 {
		c.RetryBudget = 0
	}
	if c.MaxConns <= 0 {
		c.MaxConns = 64
	}
	return c
}

// Option customises a Client.
type Option func(*Client)

func WithTransport(t Transport) Option {
	return func(c *Client) { c.transport = t }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithNotifier(n Notifier) Option {
	return func(c *Client) { c.notify = n }
}

// Client sends descriptors through SessionEffects(Retry(Auth(Classify(transport)))).
// It is safe for concurrent use; requests do not serialize against each other.
type Client struct {
	cfg       Config
	transport Transport
	session   Session
	logger    *zap.Logger
	notify    Notifier
	handler   Handler
}

// New builds a client. session may be nil for anonymous use.
func New(cfg Config, session Session, opts ...Option) *Client {
	c := &Client{
		cfg:     cfg.withDefaults(),
		session: session,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = &fasthttp.Client{
			Name:            c.cfg.UserAgent,
			MaxConnsPerHost: c.cfg.MaxConns,
			ReadTimeout:     c.cfg.UploadTimeout,
			WriteTimeout:    c.cfg.UploadTimeout,
		}
	}

	var tokens TokenSource
	var invalidator Invalidator
	if session != nil {
		tokens, invalidator = session, session
	}

	c.handler = chain(c.terminal(),
		SessionEffects(invalidator, c.notify, c.logger),
		Retry(c.logger),
		Auth(tokens),
		Classify(),
	)
	return c
}

// chain applies stages so the first listed is the outermost.
func chain(h Handler, stages ...Stage) Handler {
	for i := len(stages) - 1; i >= 0; i-- {
		h = stages[i](h)
	}
	return h
}

func (c *Client) Config() Config {
	return c.cfg
}

// Send executes one logical request. Errors are always *domain.Error.
func (c *Client) Send(ctx context.Context, d *Descriptor) (*Response, error) {
	if d == nil {
		return nil, domain.NewError(domain.ErrCodeInvalid, "nil request descriptor")
	}
	if d.Method == "" {
		d.Method = fasthttp.MethodGet
	}
	ctx, reqID := httpcontext.EnsureRequestID(ctx)
	if d.RequestID == "" {
		d.RequestID = reqID
	}
	if d.Timeout <= 0 {
		d.Timeout = c.cfg.Timeout
		if d.Upload {
			d.Timeout = c.cfg.UploadTimeout
		}
	}
	d.retryBudget = c.cfg.RetryBudget
	d.retryDelay = c.cfg.RetryDelay
	d.retryCount = 0
	return c.handler(ctx, d)
}

func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Send(ctx, &Descriptor{Method: fasthttp.MethodGet, Path: path, Query: query})
}

func (c *Client) Delete(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Send(ctx, &Descriptor{Method: fasthttp.MethodDelete, Path: path, Query: query})
}

func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	d, err := jsonDescriptor(fasthttp.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	return c.Send(ctx, d)
}

func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	d, err := jsonDescriptor(fasthttp.MethodPut, path, body)
	if err != nil {
		return nil, err
	}
	return c.Send(ctx, d)
}

// Upload posts a multipart form with the upload timeout.
func (c *Client) Upload(ctx context.Context, path string, form Form) (*Response, error) {
	body, contentType, err := form.Encode()
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "encode multipart form", err)
	}
	return c.Send(ctx, &Descriptor{
		Method:      fasthttp.MethodPost,
		Path:        path,
		Body:        body,
		ContentType: contentType,
		Upload:      true,
	})
}

// Download fetches a binary payload without envelope inspection.
func (c *Client) Download(ctx context.Context, path string) (*Response, error) {
	return c.Send(ctx, &Descriptor{Method: fasthttp.MethodGet, Path: path, Raw: true})
}

func jsonDescriptor(method, path string, body interface{}) (*Descriptor, error) {
	d := &Descriptor{Method: method, Path: path}
	if body == nil {
		return d, nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "encode request body", err)
	}
	d.Body = payload
	d.ContentType = "application/json"
	return d, nil
}

// terminal performs one attempt on the transport.
func (c *Client) terminal() Handler {
	return func(ctx context.Context, d *Descriptor) (*Response, error) {
		if err := ctx.Err(); err != nil {
			return nil, domain.WrapError(domain.ErrCodeCanceled, "request canceled before it was sent", err)
		}

		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()
		defer fasthttp.ReleaseRequest(req)
		defer fasthttp.ReleaseResponse(resp)

		req.SetRequestURI(d.URL(c.cfg.BaseURL))
		req.Header.SetMethod(d.Method)
		req.Header.Set(fasthttp.HeaderAccept, "application/json, text/plain, */*")
		for key, value := range d.Headers {
			req.Header.Set(key, value)
		}
		if d.ContentType != "" {
			req.Header.SetContentType(d.ContentType)
		}
		if len(d.Body) > 0 {
			req.SetBody(d.Body)
		}

		timeout := d.Timeout
		if deadline, ok := ctx.Deadline(); ok {
			if remaining := time.Until(deadline); remaining < timeout {
				timeout = remaining
			}
		}
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}

		if err := c.transport.DoTimeout(req, resp, timeout); err != nil {
			return nil, err
		}

		return &Response{
			Status:      resp.StatusCode(),
			ContentType: string(resp.Header.ContentType()),
			Body:        append([]byte(nil), resp.Body()...),
		}, nil
	}
}
