package domain

import (
	"go.uber.org/fx"

	"github.com/dharshanac/ZeilCardValidatorApi/internal/domain/card"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/domain/health"
)

// Module aggregates all domain modules
var Module = fx.Module("domain",
	card.Module,
	health.Module,
)
