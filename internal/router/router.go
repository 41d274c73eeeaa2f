package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/warehouse-console/api/handler"
	"github.com/fastygo/warehouse-console/internal/middleware"
)

type Handlers struct {
	Proxy   *apiHandler.ProxyHandler
	Health  *apiHandler.HealthHandler
	Metrics fasthttp.RequestHandler
}

// New builds the relay routes. prefix is the inbound API prefix, normally "/api".
func New(handlers Handlers, prefix string) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)
	if handlers.Metrics != nil {
		r.GET("/metrics", handlers.Metrics)
	}

	r.ANY(prefix, handlers.Proxy.Forward)
	r.ANY(prefix+"/{path:*}", handlers.Proxy.Forward)

	return r
}

// Handler wraps the routes with the relay middleware. CORS runs outermost so preflight
// requests never reach the router.
func Handler(r *router.Router, mws ...middleware.Middleware) fasthttp.RequestHandler {
	return middleware.Chain(r.Handler, mws...)
}
