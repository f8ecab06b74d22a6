package app

import (
	"go.uber.org/fx"

	"github.com/dharshanac/ZeilCardValidatorApi/config"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/domain"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/infrastructure"
)

// CreateApp creates the fx application options
func CreateApp() fx.Option {
	return fx.Options(
		fx.Provide(config.Out),
		infrastructure.Module,
		domain.Module,
	)
}
