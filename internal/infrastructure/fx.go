package infrastructure

import (
	"go.uber.org/fx"

	httpfx "github.com/dharshanac/ZeilCardValidatorApi/internal/infrastructure/http"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/infrastructure/kafka"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/infrastructure/logger"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/infrastructure/metrics"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/infrastructure/openapi"
)

// Module aggregates all infrastructure modules
var Module = fx.Module("infrastructure",
	logger.Module,
	metrics.Module,
	kafka.Module,
	httpfx.Module,
	openapi.Module,
)
