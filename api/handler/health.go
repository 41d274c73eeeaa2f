package handler

import (
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/warehouse-console/api/transport"
	"github.com/fastygo/warehouse-console/internal/infrastructure/monitor"
	"github.com/fastygo/warehouse-console/pkg/httpcontext"
)

// StatusSource reports upstream reachability; *monitor.Monitor satisfies it.
type StatusSource interface {
	GetStatus() monitor.Status
}

type HealthHandler struct {
	baseHandler
	monitor StatusSource
}

func NewHealthHandler(mon StatusSource, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

// Check reports the relay as healthy only while the backend answers its probe.
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	payload := map[string]interface{}{
		"timestamp": time.Now().UTC(),
	}
	if h.monitor == nil {
		h.respondSuccess(ctx, payload)
		return
	}

	status := h.monitor.GetStatus()
	payload["upstream"] = status
	if status.Backend {
		h.respondSuccess(ctx, payload)
		return
	}
	h.respondJSON(ctx, fasthttp.StatusServiceUnavailable, transport.NewError(fasthttp.StatusServiceUnavailable, "upstream unreachable", payload))
}
