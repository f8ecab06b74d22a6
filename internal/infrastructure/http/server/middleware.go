package server

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/fasthttp/router"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/dharshanac/ZeilCardValidatorApi/internal/infrastructure/metrics"
	"github.com/dharshanac/ZeilCardValidatorApi/pkg/httputil"
)

// Recovery turns panics into 500 problem responses. The panic value and
// stack trace are exposed to the client only when exposeDetails is set.
func Recovery(logger zerolog.Logger, exposeDetails bool) httputil.Middleware {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				stack := string(debug.Stack())
				traceID := httputil.TraceID(ctx)
				logger.Error().
					Interface("panic", r).
					Str("stack", stack).
					Str("trace_id", traceID).
					Msg("Unexpected error")

				ctx.Response.ResetBody()
				problem := httputil.NewProblem(fasthttp.StatusInternalServerError, "an unexpected error occurred", traceID)
				if exposeDetails {
					problem.Detail = fmt.Sprint(r)
					problem.StackTrace = stack
				}
				httputil.WriteProblem(ctx, problem)
			}()

			next(ctx)
		}
	}
}

// AccessLog logs one line per request
func AccessLog(logger zerolog.Logger) httputil.Middleware {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			start := time.Now()

			next(ctx)

			status := ctx.Response.StatusCode()
			event := logger.Info()
			if status >= fasthttp.StatusInternalServerError {
				event = logger.Error()
			} else if status >= fasthttp.StatusBadRequest {
				event = logger.Warn()
			}

			event.
				Str("method", string(ctx.Method())).
				Str("path", string(ctx.Path())).
				Int("status", status).
				Dur("duration", time.Since(start)).
				Str("trace_id", httputil.TraceID(ctx)).
				Str("remote_addr", ctx.RemoteIP().String()).
				Msg("HTTP request")
		}
	}
}

// Metrics records request count and latency labelled by matched route
func Metrics(m *metrics.Metrics) httputil.Middleware {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			start := time.Now()

			next(ctx)

			m.RecordHTTPRequest(
				string(ctx.Method()),
				routePath(ctx),
				ctx.Response.StatusCode(),
				time.Since(start).Seconds(),
			)
		}
	}
}

// routePath returns the registered route pattern so raw paths never become
// label values
func routePath(ctx *fasthttp.RequestCtx) string {
	if path, ok := ctx.UserValue(router.MatchedRoutePathParam).(string); ok && path != "" {
		return path
	}
	return "unmatched"
}
