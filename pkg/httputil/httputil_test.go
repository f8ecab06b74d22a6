package httputil

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/fasthttp/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func newCtx(method, uri string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	return ctx
}

func TestWriteProblem(t *testing.T) {
	ctx := newCtx(fasthttp.MethodPost, "/api/cardsvalidation/validate")

	problem := NewProblem(fasthttp.StatusBadRequest, "invalid request body", "trace-1")
	problem.Errors = map[string][]string{"cardNumber": {"Card number is required."}}
	WriteProblem(ctx, problem)

	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	assert.Equal(t, ContentTypeProblem, string(ctx.Response.Header.ContentType()))

	var got map[string]any
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &got))
	assert.Equal(t, "https://httpstatuses.com/400", got["type"])
	assert.Equal(t, "Bad Request", got["title"])
	assert.EqualValues(t, 400, got["status"])
	assert.Equal(t, "invalid request body", got["detail"])
	assert.Equal(t, "trace-1", got["traceId"])
	assert.Contains(t, got, "errors")
	assert.NotContains(t, got, "stackTrace")
}

func TestWriteJSON_MarshalFailure(t *testing.T) {
	ctx := newCtx(fasthttp.MethodGet, "/")

	WriteJSON(ctx, math.Inf(1), fasthttp.StatusOK)

	assert.Equal(t, fasthttp.StatusInternalServerError, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), "failed to marshal response")
}

func TestWriteHealthResponse(t *testing.T) {
	ctx := newCtx(fasthttp.MethodGet, "/health")
	WriteHealthResponse(ctx, map[string]string{"status": "unhealthy"}, false)
	assert.Equal(t, fasthttp.StatusServiceUnavailable, ctx.Response.StatusCode())

	ctx = newCtx(fasthttp.MethodGet, "/health")
	WriteHealthResponse(ctx, map[string]string{"status": "healthy"}, true)
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID()(func(ctx *fasthttp.RequestCtx) {
		seen = TraceID(ctx)
	})

	t.Run("generates id", func(t *testing.T) {
		ctx := newCtx(fasthttp.MethodGet, "/")
		handler(ctx)

		assert.Len(t, seen, 36)
		assert.Equal(t, seen, string(ctx.Response.Header.Peek(HeaderRequestID)))
	})

	t.Run("reuses client id", func(t *testing.T) {
		ctx := newCtx(fasthttp.MethodGet, "/")
		ctx.Request.Header.Set(HeaderRequestID, "client-trace")
		handler(ctx)

		assert.Equal(t, "client-trace", seen)
		assert.Equal(t, "client-trace", string(ctx.Response.Header.Peek(HeaderRequestID)))
	})

	t.Run("replaces oversized id", func(t *testing.T) {
		ctx := newCtx(fasthttp.MethodGet, "/")
		ctx.Request.Header.Set(HeaderRequestID, strings.Repeat("x", 200))
		handler(ctx)

		assert.Len(t, seen, 36)
	})
}

func TestAssignTraceID(t *testing.T) {
	t.Run("keeps assigned id", func(t *testing.T) {
		ctx := newCtx(fasthttp.MethodGet, "/")
		first := AssignTraceID(ctx)
		ctx.Request.Header.Set(HeaderRequestID, "late-header")

		assert.Equal(t, first, AssignTraceID(ctx))
		assert.Equal(t, first, TraceID(ctx))
		assert.Equal(t, first, string(ctx.Response.Header.Peek(HeaderRequestID)))
	})

	t.Run("echoes header after response reset", func(t *testing.T) {
		ctx := newCtx(fasthttp.MethodGet, "/")
		id := AssignTraceID(ctx)
		ctx.Response.Reset()

		assert.Equal(t, id, AssignTraceID(ctx))
		assert.Equal(t, id, string(ctx.Response.Header.Peek(HeaderRequestID)))
	})
}

func TestTraceID_Missing(t *testing.T) {
	assert.Empty(t, TraceID(newCtx(fasthttp.MethodGet, "/")))
}

func TestChain_Order(t *testing.T) {
	var calls []string
	mw := func(name string) Middleware {
		return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
			return func(ctx *fasthttp.RequestCtx) {
				calls = append(calls, name)
				next(ctx)
			}
		}
	}

	handler := Chain(func(ctx *fasthttp.RequestCtx) {
		calls = append(calls, "handler")
	}, mw("first"), mw("second"))
	handler(newCtx(fasthttp.MethodGet, "/"))

	assert.Equal(t, []string{"first", "second", "handler"}, calls)
}

func TestMiddlewareGroup(t *testing.T) {
	r := router.New()
	var calls []string
	tag := func(name string) Middleware {
		return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
			return func(ctx *fasthttp.RequestCtx) {
				calls = append(calls, name)
				next(ctx)
			}
		}
	}

	api := NewMiddlewareGroup(r.Group("/api")).Use(tag("api"))
	cards := api.Group("/cardsvalidation").Use(tag("cards"))
	cards.POST("/validate", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
	})
	api.GET("/ping", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusNoContent)
	})

	ctx := newCtx(fasthttp.MethodPost, "/api/cardsvalidation/validate")
	r.Handler(ctx)
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, []string{"api", "cards"}, calls)

	calls = nil
	ctx = newCtx(fasthttp.MethodGet, "/api/ping")
	r.Handler(ctx)
	assert.Equal(t, fasthttp.StatusNoContent, ctx.Response.StatusCode())
	assert.Equal(t, []string{"api"}, calls)
}
