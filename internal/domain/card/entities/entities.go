package entities

import "time"

// ValidationResult is the outcome of checking one card number.
// It never holds the full number.
type ValidationResult struct {
	MaskedNumber string
	IsValid      bool
}

// CardValidatedEvent is published after every completed validation
type CardValidatedEvent struct {
	TraceID          string
	MaskedCardNumber string
	IsValid          bool
	ValidatedAt      time.Time
}
