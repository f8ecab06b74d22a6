package errors

import "errors"

const (
	MsgCardNumberRequired = "Card number is required."
	MsgCardNumberLength   = "Card number must be between 13 and 19 digits."
	MsgCardNumberDigits   = "Card number must contain digits only."
	MsgEmptyBody          = "A non-empty request body is required."
	MsgInvalidBody        = "The request body is not valid JSON."
	MsgUnsupportedMedia   = "Only application/json request bodies are supported."
)

var (
	ErrEmptyBody          = errors.New("request body is empty")
	ErrInvalidBody        = errors.New("request body is not valid JSON")
	ErrPublisherClosed    = errors.New("card event publisher is closed")
	ErrPublisherQueueFull = errors.New("card event queue is full")
)
