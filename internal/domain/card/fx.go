package card

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/dharshanac/ZeilCardValidatorApi/internal/domain/card/delivery/http"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/domain/card/deps"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/domain/card/luhn"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/domain/card/usecase/business"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/domain/card/validation"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/infrastructure/http/server"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/infrastructure/metrics"
)

// Module provides card validation components for fx DI
var Module = fx.Module("card",
	fx.Provide(
		newCardValidator,
		newRequestValidator,
		newUseCase,
		http.NewHandler,
		http.NewRouter,
	),
	fx.Invoke(registerRoutes),
)

func newCardValidator() deps.CardValidator {
	return luhn.NewService()
}

func newRequestValidator() (deps.RequestValidator, error) {
	return validation.NewRequestValidator()
}

func newUseCase(
	cards deps.CardValidator,
	requests deps.RequestValidator,
	publisher deps.EventPublisher,
	logger zerolog.Logger,
	m *metrics.Metrics,
) deps.CardUseCase {
	return business.NewUseCase(cards, requests, publisher, logger.With().Str("usecase", "card").Logger(), m)
}

// registerRoutes registers card HTTP routes on the server
func registerRoutes(srv *server.Server, router *http.Router) {
	router.RegisterRoutes(srv.Router)
}
