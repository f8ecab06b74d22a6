package http

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/dharshanac/ZeilCardValidatorApi/config"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/infrastructure/http/server"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/infrastructure/metrics"
)

// Module provides HTTP server for fx DI
var Module = fx.Module("http",
	fx.Provide(NewServerFx),
)

// NewServerFx creates HTTP server with lifecycle hooks for fx DI
func NewServerFx(
	lc fx.Lifecycle,
	serviceCfg *config.ServiceConfig,
	httpCfg *config.HTTPConfig,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *server.Server {
	srv := server.NewServer(serviceCfg, httpCfg, m, logger)

	// Register Prometheus metrics endpoint
	srv.RegisterMetrics()

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return srv.Start()
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return srv
}
