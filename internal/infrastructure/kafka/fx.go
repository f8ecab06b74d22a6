package kafka

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/dharshanac/ZeilCardValidatorApi/config"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/domain/card/deps"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/infrastructure/metrics"
)

var Module = fx.Module("kafka",
	fx.Provide(NewPublisherFx),
)

func NewPublisherFx(
	lc fx.Lifecycle,
	cfg *config.KafkaConfig,
	m *metrics.Metrics,
	logger zerolog.Logger,
) deps.EventPublisher {
	if !cfg.Enabled {
		logger.Info().Msg("Card validated events disabled")
		return NoopPublisher{}
	}

	producer := NewProducer(cfg, m, logger.With().Str("component", "kafka-producer").Logger())

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return producer.Close()
		},
	})

	return producer
}
