package httputil

import (
	"encoding/json"
	"fmt"

	"github.com/valyala/fasthttp"
)

const (
	ContentTypeJSON    = "application/json"
	ContentTypeProblem = "application/problem+json"
)

// Problem is an RFC 7807 style error body
type Problem struct {
	Type       string              `json:"type"`
	Title      string              `json:"title"`
	Status     int                 `json:"status"`
	Detail     string              `json:"detail,omitempty"`
	TraceID    string              `json:"traceId"`
	Errors     map[string][]string `json:"errors,omitempty"`
	StackTrace string              `json:"stackTrace,omitempty"`
}

// NewProblem creates a problem for the given status code
func NewProblem(status int, detail, traceID string) Problem {
	return Problem{
		Type:    fmt.Sprintf("https://httpstatuses.com/%d", status),
		Title:   fasthttp.StatusMessage(status),
		Status:  status,
		Detail:  detail,
		TraceID: traceID,
	}
}

// WriteResponse writes a successful JSON response
func WriteResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	WriteJSON(ctx, data, fasthttp.StatusOK)
}

// WriteJSON writes data as JSON with custom status
func WriteJSON(ctx *fasthttp.RequestCtx, data interface{}, status int) {
	writeBody(ctx, ContentTypeJSON, data, status)
}

// WriteProblem writes a problem response
func WriteProblem(ctx *fasthttp.RequestCtx, problem Problem) {
	writeBody(ctx, ContentTypeProblem, problem, problem.Status)
}

// writeBody writes JSON response to context
func writeBody(ctx *fasthttp.RequestCtx, contentType string, data interface{}, status int) {
	body, err := json.Marshal(data)
	if err != nil {
		ctx.SetContentType(ContentTypeProblem)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBodyString(`{"type":"https://httpstatuses.com/500","title":"Internal Server Error","status":500,"detail":"failed to marshal response"}`)
		return
	}

	ctx.SetContentType(contentType)
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

// WriteHealthResponse writes a health check response
func WriteHealthResponse(ctx *fasthttp.RequestCtx, data interface{}, healthy bool) {
	status := fasthttp.StatusOK
	if !healthy {
		status = fasthttp.StatusServiceUnavailable
	}
	WriteJSON(ctx, data, status)
}
