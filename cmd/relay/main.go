package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/warehouse-console/api/handler"
	"github.com/fastygo/warehouse-console/internal/config"
	"github.com/fastygo/warehouse-console/internal/infrastructure/monitor"
	"github.com/fastygo/warehouse-console/internal/metrics"
	"github.com/fastygo/warehouse-console/internal/middleware"
	"github.com/fastygo/warehouse-console/internal/router"
	"github.com/fastygo/warehouse-console/internal/services/lifecycle"
	"github.com/fastygo/warehouse-console/pkg/httpcontext"
	"github.com/fastygo/warehouse-console/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	appCtx, cancel := manager.SignalContext(context.Background())
	defer cancel()

	upstream := &fasthttp.Client{
		Name:                   "wms-relay",
		MaxConnsPerHost:        cfg.API.MaxConns,
		DisablePathNormalizing: true,
	}

	healthURL := cfg.Relay.Upstream + cfg.Monitor.Path
	mon := monitor.New(healthURL, upstream, nil, cfg.Monitor.Interval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Proxy: apiHandler.NewProxyHandler(apiHandler.ProxyConfig{
			Target:        cfg.Relay.Upstream,
			PathPrefix:    cfg.Relay.PathPrefix,
			RewritePrefix: cfg.Relay.RewritePrefix,
			Timeout:       cfg.Relay.WriteTimeout,
		}, upstream, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}
	if cfg.Relay.EnableMetrics {
		handlers.Metrics = metrics.Handler()
	}

	r := router.New(handlers, cfg.Relay.PathPrefix)

	server := &fasthttp.Server{
		Handler: router.Handler(r,
			middleware.CORS(middleware.DefaultCORS),
			middleware.RequestID(),
			middleware.AccessLog(zapLogger),
		),
		ReadTimeout:           cfg.Relay.ReadTimeout,
		WriteTimeout:          cfg.Relay.WriteTimeout,
		IdleTimeout:           cfg.Relay.IdleTimeout,
		Concurrency:           cfg.Relay.MaxConn,
		Name:                  cfg.AppName,
		NoDefaultServerHeader: true,
	}

	go func() {
		zapLogger.Info("relay started",
			zap.String("address", cfg.RelayAddress()),
			zap.String("upstream", cfg.Relay.Upstream),
			zap.String("rewrite", cfg.Relay.PathPrefix+" -> "+cfg.Relay.RewritePrefix),
		)
		if err := server.ListenAndServe(cfg.RelayAddress()); err != nil {
			zapLogger.Fatal("relay crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
