package middleware

import (
	"strings"

	"github.com/valyala/fasthttp"
)

// CORSConfig lists what browsers are told they may send.
type CORSConfig struct {
	AllowOrigin  string
	AllowMethods []string
	AllowHeaders []string
}

// DefaultCORS allows any origin to call the backend through the relay.
var DefaultCORS = CORSConfig{
	AllowOrigin:  "*",
	AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
	AllowHeaders: []string{"Content-Type", "Authorization"},
}

// CORS answers preflight requests with 204 and stamps the allow headers on every
// response, overriding whatever the backend sent.
func CORS(cfg CORSConfig) Middleware {
	methods := strings.Join(cfg.AllowMethods, ", ")
	headers := strings.Join(cfg.AllowHeaders, ", ")
	stamp := func(ctx *fasthttp.RequestCtx) {
		ctx.Response.Header.Set(fasthttp.HeaderAccessControlAllowOrigin, cfg.AllowOrigin)
		ctx.Response.Header.Set(fasthttp.HeaderAccessControlAllowMethods, methods)
		ctx.Response.Header.Set(fasthttp.HeaderAccessControlAllowHeaders, headers)
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			if ctx.IsOptions() {
				ctx.SetStatusCode(fasthttp.StatusNoContent)
				stamp(ctx)
				return
			}
			next(ctx)
			stamp(ctx)
		}
	}
}
