package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/dharshanac/ZeilCardValidatorApi/internal/domain/card/deps"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/domain/card/dto"
	carderrors "github.com/dharshanac/ZeilCardValidatorApi/internal/domain/card/errors"
	apperrors "github.com/dharshanac/ZeilCardValidatorApi/pkg/errors"
	"github.com/dharshanac/ZeilCardValidatorApi/pkg/httputil"
)

const apiWorkingMessage = "API is working"

// Handler handles card validation HTTP requests
type Handler struct {
	uc     deps.CardUseCase
	mapper *apperrors.Mapper
	logger zerolog.Logger
}

// NewHandler creates a new card handler
func NewHandler(uc deps.CardUseCase, logger zerolog.Logger) *Handler {
	handlerLogger := logger.With().Str("handler", "cards_validation").Logger()

	return &Handler{
		uc:     uc,
		mapper: apperrors.NewMapper(handlerLogger),
		logger: handlerLogger,
	}
}

// Validate handles POST /api/cardsvalidation/validate
func (h *Handler) Validate(ctx *fasthttp.RequestCtx) {
	req, err := decodeRequest(ctx.PostBody())
	if err != nil {
		h.logger.Debug().Err(err).
			Str("trace_id", httputil.TraceID(ctx)).
			Msg("Failed to decode request body")
		h.writeError(ctx, err)
		return
	}

	result, err := h.uc.ValidateCard(ctx, httputil.TraceID(ctx), req)
	if err != nil {
		h.writeError(ctx, err)
		return
	}

	httputil.WriteResponse(ctx, dto.ValidateCardResponse{
		CardNumber: result.MaskedNumber,
		IsValid:    result.IsValid,
	})
}

// Test handles GET /api/cardsvalidation/test
func (h *Handler) Test(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain; charset=utf-8")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBodyString(apiWorkingMessage)
}

func (h *Handler) writeError(ctx *fasthttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, carderrors.ErrEmptyBody):
		err = apperrors.NewFieldValidationError(map[string][]string{"body": {carderrors.MsgEmptyBody}})
	case errors.Is(err, carderrors.ErrInvalidBody):
		err = apperrors.NewFieldValidationError(map[string][]string{"body": {carderrors.MsgInvalidBody}})
	}

	httputil.WriteProblem(ctx, h.mapper.MapErrorToProblem(err, httputil.TraceID(ctx)))
}

// RequireJSON rejects request bodies declared as anything other than JSON.
// Requests without a body or without a Content-Type header pass through.
func (h *Handler) RequireJSON(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		contentType := string(ctx.Request.Header.ContentType())
		if len(ctx.PostBody()) == 0 || contentType == "" || isJSON(contentType) {
			next(ctx)
			return
		}

		h.writeError(ctx, apperrors.NewUnsupportedMediaTypeError(contentType, carderrors.MsgUnsupportedMedia))
	}
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func decodeRequest(body []byte) (*dto.ValidateCardRequest, error) {
	if len(body) == 0 {
		return nil, carderrors.ErrEmptyBody
	}

	var req dto.ValidateCardRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", carderrors.ErrInvalidBody, err)
	}

	return &req, nil
}
