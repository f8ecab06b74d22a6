package errors

import (
	"fmt"
	"sort"
	"strings"
)

type baseError struct {
	message string
}

func (e *baseError) Error() string {
	return e.message
}

// ValidationError represents a validation error (HTTP 400).
// Fields holds per-field messages keyed by the wire field name.
type ValidationError struct {
	baseError
	Fields map[string][]string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{baseError: baseError{message: message}}
}

// NewFieldValidationError builds a ValidationError from field messages.
// The error message lists every message in field order.
func NewFieldValidationError(fields map[string][]string) *ValidationError {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	messages := make([]string, 0, len(fields))
	for _, name := range names {
		messages = append(messages, fields[name]...)
	}

	message := "one or more validation errors occurred"
	if len(messages) > 0 {
		message = strings.Join(messages, " ")
	}

	return &ValidationError{
		baseError: baseError{message: message},
		Fields:    fields,
	}
}

// InternalError represents an internal server error (HTTP 500)
type InternalError struct {
	baseError
}

func NewInternalErrorf(format string, args ...interface{}) *InternalError {
	return &InternalError{baseError{message: fmt.Sprintf(format, args...)}}
}

// UnsupportedMediaTypeError represents a request body in an unsupported format (HTTP 415)
type UnsupportedMediaTypeError struct {
	baseError
	ContentType string
}

func NewUnsupportedMediaTypeError(contentType, message string) *UnsupportedMediaTypeError {
	return &UnsupportedMediaTypeError{baseError: baseError{message: message}, ContentType: contentType}
}
