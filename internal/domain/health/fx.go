package health

import (
	"go.uber.org/fx"

	"github.com/dharshanac/ZeilCardValidatorApi/internal/domain/health/delivery/http"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/infrastructure/http/server"
)

// Module provides health check components for fx DI
var Module = fx.Module("health",
	fx.Provide(
		http.NewHealthHandler,
		http.NewRouter,
	),
	fx.Invoke(registerRoutes),
)

// registerRoutes registers health HTTP routes on the server
func registerRoutes(srv *server.Server, router *http.Router) {
	router.RegisterRoutes(srv.Router)
}
