package http

import (
	"github.com/fasthttp/router"
	"github.com/rs/zerolog"

	"github.com/dharshanac/ZeilCardValidatorApi/pkg/httputil"
)

// Router registers card validation HTTP routes
type Router struct {
	handler *Handler
	logger  zerolog.Logger
}

// NewRouter creates a new card router
func NewRouter(handler *Handler, logger zerolog.Logger) *Router {
	return &Router{
		handler: handler,
		logger:  logger,
	}
}

// RegisterRoutes registers card routes on the router
func (r *Router) RegisterRoutes(rt *router.Router) {
	api := httputil.NewMiddlewareGroup(rt.Group("/api/cardsvalidation")).
		Use(r.handler.RequireJSON)

	api.POST("/validate", r.handler.Validate)
	api.GET("/test", r.handler.Test)

	r.logger.Debug().Msg("Card validation routes registered")
}
