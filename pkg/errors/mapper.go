package errors

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/dharshanac/ZeilCardValidatorApi/pkg/httputil"
)

const unknownErrorMessage = "internal server error"

// Mapper maps domain errors to HTTP status codes and problem payloads
type Mapper struct {
	logger zerolog.Logger
}

// NewMapper creates a new error mapper
func NewMapper(logger zerolog.Logger) *Mapper {
	return &Mapper{logger: logger}
}

// MapErrorToHTTP maps an error to HTTP status code and message.
// Messages of unclassified errors are replaced with a generic one.
func (m *Mapper) MapErrorToHTTP(err error) (int, string) {
	if err == nil {
		return fasthttp.StatusOK, ""
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return fasthttp.StatusBadRequest, validationErr.Error()
	}

	var mediaTypeErr *UnsupportedMediaTypeError
	if errors.As(err, &mediaTypeErr) {
		m.logger.Debug().Str("content_type", mediaTypeErr.ContentType).Msg("unsupported media type")
		return fasthttp.StatusUnsupportedMediaType, mediaTypeErr.Error()
	}

	var internalErr *InternalError
	if errors.As(err, &internalErr) {
		m.logger.Error().Err(err).Msg("internal server error")
		return fasthttp.StatusInternalServerError, internalErr.Error()
	}

	m.logger.Error().Err(err).Msg("unknown error")
	return fasthttp.StatusInternalServerError, unknownErrorMessage
}

// MapErrorToProblem builds the problem payload for err, including
// per-field messages of validation errors
func (m *Mapper) MapErrorToProblem(err error, traceID string) httputil.Problem {
	status, message := m.MapErrorToHTTP(err)

	problem := httputil.NewProblem(status, message, traceID)
	problem.Errors = FieldErrors(err)
	return problem
}

// FieldErrors returns per-field messages carried by err, if any
func FieldErrors(err error) map[string][]string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Fields
	}
	return nil
}
