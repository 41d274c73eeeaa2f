package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(clientRetries.WithLabelValues("GET"))
	RecordRetry("GET")
	assert.Equal(t, before+1, testutil.ToFloat64(clientRetries.WithLabelValues("GET")))

	RecordListFetch("inventory", errors.New("boom"))
	assert.GreaterOrEqual(t, testutil.ToFloat64(listFetches.WithLabelValues("inventory", "error")), 1.0)

	SetBackendUp(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(backendUp))
	SetBackendUp(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(backendUp))
}

func TestTrackRelay(t *testing.T) {
	done := TrackRelay("POST")
	assert.Equal(t, 1.0, testutil.ToFloat64(relayInFlight))
	done(fasthttp.StatusNoContent)
	assert.Equal(t, 0.0, testutil.ToFloat64(relayInFlight))
	assert.GreaterOrEqual(t, testutil.ToFloat64(relayRequests.WithLabelValues("POST", "204")), 1.0)
	RecordRequest("POST", "ok", time.Millisecond)
}

func TestHandlerServesRegistry(t *testing.T) {
	RecordAttempt("GET", "ok")

	var ctx fasthttp.RequestCtx
	ctx.Request.SetRequestURI("/metrics")
	Handler()(&ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), "wms_client_attempts_total")
}
