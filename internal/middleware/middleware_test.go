package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/warehouse-console/pkg/httpcontext"
)

func newCtx(method, uri string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	return ctx
}

func TestCORSPreflight(t *testing.T) {
	called := false
	h := CORS(DefaultCORS)(func(*fasthttp.RequestCtx) { called = true })

	ctx := newCtx(fasthttp.MethodOptions, "/api/purchase/list")
	h(ctx)

	assert.False(t, called)
	assert.Equal(t, fasthttp.StatusNoContent, ctx.Response.StatusCode())
	assert.Equal(t, "*", string(ctx.Response.Header.Peek("Access-Control-Allow-Origin")))
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS, PATCH", string(ctx.Response.Header.Peek("Access-Control-Allow-Methods")))
	assert.Equal(t, "Content-Type, Authorization", string(ctx.Response.Header.Peek("Access-Control-Allow-Headers")))
}

func TestCORSOverridesUpstreamHeaders(t *testing.T) {
	h := CORS(DefaultCORS)(func(ctx *fasthttp.RequestCtx) {
		ctx.Response.Header.Set("Access-Control-Allow-Origin", "http://backend.local")
		ctx.SetStatusCode(fasthttp.StatusNotFound)
	})

	ctx := newCtx(fasthttp.MethodGet, "/api/missing")
	h(ctx)

	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
	assert.Equal(t, "*", string(ctx.Response.Header.Peek("Access-Control-Allow-Origin")))
}

func TestRequestIDKeepsInboundValue(t *testing.T) {
	var seen string
	h := Chain(func(ctx *fasthttp.RequestCtx) {
		seen = string(ctx.Request.Header.Peek(httpcontext.HeaderRequestID))
	}, RequestID(), AccessLog(nil))

	ctx := newCtx(fasthttp.MethodGet, "/health")
	ctx.Request.Header.Set(httpcontext.HeaderRequestID, "req-1")
	h(ctx)
	assert.Equal(t, "req-1", seen)
	assert.Equal(t, "req-1", string(ctx.Response.Header.Peek(httpcontext.HeaderRequestID)))

	ctx = newCtx(fasthttp.MethodGet, "/health")
	h(ctx)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, string(ctx.Response.Header.Peek(httpcontext.HeaderRequestID)))
}
