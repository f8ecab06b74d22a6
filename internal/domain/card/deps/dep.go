package deps

import (
	"context"

	"github.com/dharshanac/ZeilCardValidatorApi/internal/domain/card/dto"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/domain/card/entities"
)

// CardValidator defines the card number checks
type CardValidator interface {
	// Normalize strips spaces and dashes
	Normalize(raw string) string

	// Validate runs the Luhn checksum over the normalized number
	Validate(raw string) bool

	// Mask hides all but the last four characters
	Mask(raw string) string
}

// RequestValidator checks an incoming request before the checksum runs
type RequestValidator interface {
	ValidateRequest(req *dto.ValidateCardRequest) error
}

// EventPublisher publishes card validation events
type EventPublisher interface {
	PublishCardValidated(ctx context.Context, event entities.CardValidatedEvent) error
	IsHealthy() bool
	Close() error
}

// CardUseCase defines card validation business logic
type CardUseCase interface {
	ValidateCard(ctx context.Context, traceID string, req *dto.ValidateCardRequest) (*entities.ValidationResult, error)
}
