package httputil

import (
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

// HeaderRequestID carries the trace id in requests and responses
const HeaderRequestID = "X-Request-ID"

const traceIDKey = "httputil.trace_id"

// maxRequestIDLen bounds client supplied ids so they stay log friendly
const maxRequestIDLen = 128

// RequestID assigns a trace id to every request. A client supplied
// X-Request-ID is reused, otherwise a UUID is generated.
func RequestID() Middleware {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			AssignTraceID(ctx)
			next(ctx)
		}
	}
}

// AssignTraceID gives ctx a trace id, reusing one already assigned or a
// valid client supplied X-Request-ID, and echoes it in the response header
func AssignTraceID(ctx *fasthttp.RequestCtx) string {
	id := TraceID(ctx)
	if id == "" {
		id = string(ctx.Request.Header.Peek(HeaderRequestID))
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		ctx.SetUserValue(traceIDKey, id)
	}

	ctx.Response.Header.Set(HeaderRequestID, id)
	return id
}

// TraceID returns the trace id assigned by RequestID, or an empty string
func TraceID(ctx *fasthttp.RequestCtx) string {
	if id, ok := ctx.UserValue(traceIDKey).(string); ok {
		return id
	}
	return ""
}
