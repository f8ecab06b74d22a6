package business

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/dharshanac/ZeilCardValidatorApi/internal/domain/card/deps"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/domain/card/dto"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/domain/card/entities"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/infrastructure/metrics"
)

// UseCase implements card validation business logic
type UseCase struct {
	cards     deps.CardValidator
	requests  deps.RequestValidator
	publisher deps.EventPublisher
	logger    zerolog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewUseCase creates a new card use case
func NewUseCase(
	cards deps.CardValidator,
	requests deps.RequestValidator,
	publisher deps.EventPublisher,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *UseCase {
	return &UseCase{
		cards:     cards,
		requests:  requests,
		publisher: publisher,
		logger:    logger,
		metrics:   m,
		now:       time.Now,
	}
}

// ValidateCard checks the request, runs the Luhn checksum and returns the
// masked number with the result. Only the masked number is logged or published.
func (u *UseCase) ValidateCard(ctx context.Context, traceID string, req *dto.ValidateCardRequest) (*entities.ValidationResult, error) {
	if err := u.requests.ValidateRequest(req); err != nil {
		u.metrics.RecordRejection("validation")
		u.logger.Debug().Err(err).
			Str("trace_id", traceID).
			Msg("Card validation request rejected")
		return nil, err
	}

	masked := u.cards.Mask(req.CardNumber)

	u.logger.Info().
		Str("trace_id", traceID).
		Str("card_number", masked).
		Msg("Validating card number")

	valid := u.cards.Validate(req.CardNumber)
	u.metrics.RecordValidation(valid)

	event := entities.CardValidatedEvent{
		TraceID:          traceID,
		MaskedCardNumber: masked,
		IsValid:          valid,
		ValidatedAt:      u.now().UTC(),
	}
	if err := u.publisher.PublishCardValidated(ctx, event); err != nil {
		u.logger.Warn().Err(err).
			Str("trace_id", traceID).
			Msg("Failed to publish card validated event")
	}

	u.logger.Info().
		Str("trace_id", traceID).
		Str("card_number", masked).
		Bool("is_valid", valid).
		Msg("Card number validated")

	return &entities.ValidationResult{
		MaskedNumber: masked,
		IsValid:      valid,
	}, nil
}
