package handler

import (
	"errors"
	"net"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/warehouse-console/internal/metrics"
	"github.com/fastygo/warehouse-console/pkg/httpcontext"
)

// Upstream performs the forwarded request; *fasthttp.Client satisfies it.
type Upstream interface {
	DoTimeout(req *fasthttp.Request, resp *fasthttp.Response, timeout time.Duration) error
}

// ProxyConfig describes where relayed requests go.
type ProxyConfig struct {
	// Target is the backend origin, e.g. http://localhost:8000.
	Target string
	// PathPrefix is stripped from the inbound path and replaced with RewritePrefix.
	PathPrefix    string
	RewritePrefix string
	Timeout       time.Duration
}

// ProxyHandler relays /api/* to the backend's /api/v1/* unchanged apart from the path.
type ProxyHandler struct {
	baseHandler
	cfg      ProxyConfig
	upstream Upstream
}

func NewProxyHandler(cfg ProxyConfig, upstream Upstream, adapter *httpcontext.Adapter, logger *zap.Logger) *ProxyHandler {
	cfg.Target = strings.TrimRight(cfg.Target, "/")
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = "/api"
	}
	if cfg.RewritePrefix == "" {
		cfg.RewritePrefix = "/api/v1"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if upstream == nil {
		upstream = &fasthttp.Client{Name: "wms-relay", DisablePathNormalizing: true}
	}
	return &ProxyHandler{
		baseHandler: newBaseHandler(adapter, logger),
		cfg:         cfg,
		upstream:    upstream,
	}
}

// Rewrite maps an inbound path onto the backend path. The query string is kept verbatim.
func (h *ProxyHandler) Rewrite(path string) string {
	rest := strings.TrimPrefix(path, h.cfg.PathPrefix)
	if rest != "" && !strings.HasPrefix(rest, "/") {
		rest = "/" + rest
	}
	return h.cfg.RewritePrefix + rest
}

func (h *ProxyHandler) Forward(ctx *fasthttp.RequestCtx) {
	method := string(ctx.Method())
	done := metrics.TrackRelay(method)
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()
	log := h.log(stdCtx)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	ctx.Request.CopyTo(req)
	target := h.cfg.Target + h.Rewrite(string(ctx.Request.URI().PathOriginal()))
	if qs := ctx.Request.URI().QueryString(); len(qs) > 0 {
		target += "?" + string(qs)
	}
	req.SetRequestURI(target)
	req.Header.SetHostBytes(req.URI().Host())
	req.Header.Del(fasthttp.HeaderConnection)

	if err := h.upstream.DoTimeout(req, resp, h.cfg.Timeout); err != nil {
		status := fasthttp.StatusBadGateway
		if isTimeout(err) {
			status = fasthttp.StatusGatewayTimeout
		}
		log.Warn("upstream request failed",
			zap.String("method", method),
			zap.String("target", target),
			zap.Error(err),
		)
		h.respondError(ctx, status, "upstream unavailable")
		done(status)
		return
	}

	resp.Header.Del(fasthttp.HeaderConnection)
	resp.CopyTo(&ctx.Response)
	log.Debug("relayed",
		zap.String("method", method),
		zap.String("target", target),
		zap.Int("status", resp.StatusCode()),
	)
	done(resp.StatusCode())
}

func isTimeout(err error) bool {
	if errors.Is(err, fasthttp.ErrTimeout) || errors.Is(err, fasthttp.ErrDialTimeout) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
