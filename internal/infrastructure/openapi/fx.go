package openapi

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/dharshanac/ZeilCardValidatorApi/config"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/infrastructure/http/server"
)

var Module = fx.Module("openapi",
	fx.Provide(NewDocumentFx),
	fx.Invoke(registerRoutes),
)

// NewDocumentFx loads the document at startup so a broken one fails fast
func NewDocumentFx() (*Document, error) {
	return Load(context.Background())
}

// registerRoutes exposes the document in development only
func registerRoutes(srv *server.Server, cfg *config.ServiceConfig, doc *Document, logger zerolog.Logger) {
	if !cfg.IsDevelopment() {
		return
	}

	srv.Router.GET(Path, doc.Handle)
	logger.Info().Str("path", Path).Msg("OpenAPI document exposed")
}
