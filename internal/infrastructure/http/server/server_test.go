package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/dharshanac/ZeilCardValidatorApi/config"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/infrastructure/metrics"
	"github.com/dharshanac/ZeilCardValidatorApi/pkg/httputil"
)

func newTestServer(t *testing.T, env string) (*Server, *metrics.Metrics) {
	t.Helper()

	m := metrics.NewMetrics(prometheus.NewRegistry())
	srv := NewServer(
		&config.ServiceConfig{Name: "card-validator", Port: "0", Environment: env},
		&config.HTTPConfig{ReadTimeout: time.Second, WriteTimeout: time.Second, IdleTimeout: time.Second, MaxBodySize: 1024},
		m,
		zerolog.Nop(),
	)

	srv.Router.GET("/ok", func(ctx *fasthttp.RequestCtx) {
		httputil.WriteResponse(ctx, map[string]string{"trace": httputil.TraceID(ctx)})
	})
	srv.Router.GET("/panic", func(ctx *fasthttp.RequestCtx) {
		panic("card number formatter exploded")
	})

	return srv, m
}

func serve(srv *Server, method, uri string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	srv.Handler()(ctx)
	return ctx
}

func TestServer_RequestID(t *testing.T) {
	srv, _ := newTestServer(t, config.EnvProduction)

	ctx := serve(srv, fasthttp.MethodGet, "/ok")

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	traceID := string(ctx.Response.Header.Peek(httputil.HeaderRequestID))
	assert.NotEmpty(t, traceID)

	var body map[string]string
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &body))
	assert.Equal(t, traceID, body["trace"])
}

func TestServer_RecoveryProduction(t *testing.T) {
	srv, _ := newTestServer(t, config.EnvProduction)

	ctx := serve(srv, fasthttp.MethodGet, "/panic")

	assert.Equal(t, fasthttp.StatusInternalServerError, ctx.Response.StatusCode())
	assert.Equal(t, httputil.ContentTypeProblem, string(ctx.Response.Header.ContentType()))

	var problem httputil.Problem
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &problem))
	assert.Equal(t, "https://httpstatuses.com/500", problem.Type)
	assert.Equal(t, "Internal Server Error", problem.Title)
	assert.Equal(t, 500, problem.Status)
	assert.Equal(t, "an unexpected error occurred", problem.Detail)
	assert.Equal(t, string(ctx.Response.Header.Peek(httputil.HeaderRequestID)), problem.TraceID)
	assert.Empty(t, problem.StackTrace)
}

func TestServer_RecoveryDevelopment(t *testing.T) {
	srv, _ := newTestServer(t, config.EnvDevelopment)

	ctx := serve(srv, fasthttp.MethodGet, "/panic")

	var problem httputil.Problem
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &problem))
	assert.Equal(t, 500, problem.Status)
	assert.Equal(t, "card number formatter exploded", problem.Detail)
	assert.Contains(t, problem.StackTrace, "goroutine")
}

func TestServer_MetricsUseRoutePattern(t *testing.T) {
	srv, m := newTestServer(t, config.EnvProduction)

	serve(srv, fasthttp.MethodGet, "/ok")
	serve(srv, fasthttp.MethodGet, "/panic")
	serve(srv, fasthttp.MethodGet, "/does-not-exist")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/ok", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/panic", "500")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestServer_MetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, config.EnvProduction)
	srv.RegisterMetrics()

	ctx := serve(srv, fasthttp.MethodGet, "/metrics")

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), "go_goroutines")
}

func TestServer_StartShutdown(t *testing.T) {
	srv, _ := newTestServer(t, config.EnvProduction)

	require.NoError(t, srv.Start())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
}

func TestServer_OversizedBodyCarriesTraceID(t *testing.T) {
	srv, _ := newTestServer(t, config.EnvProduction)
	require.NoError(t, srv.Start())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	port := srv.listener.Addr().(*net.TCPAddr).Port
	req.SetRequestURI(fmt.Sprintf("http://127.0.0.1:%d/ok", port))
	req.SetBodyString(`{"cardNumber":"` + strings.Repeat("4", 2048) + `"}`)

	require.NoError(t, fasthttp.DoTimeout(req, resp, 2*time.Second))

	assert.Equal(t, fasthttp.StatusRequestEntityTooLarge, resp.StatusCode())
	traceID := string(resp.Header.Peek(httputil.HeaderRequestID))
	assert.NotEmpty(t, traceID)

	var problem httputil.Problem
	require.NoError(t, json.Unmarshal(resp.Body(), &problem))
	assert.Equal(t, fasthttp.StatusRequestEntityTooLarge, problem.Status)
	assert.NotEmpty(t, problem.TraceID)
	assert.Equal(t, traceID, problem.TraceID)
}

func TestErrorHandler_KeepsClientRequestID(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set(httputil.HeaderRequestID, "client-trace")

	errorHandler(zerolog.Nop())(ctx, fasthttp.ErrBodyTooLarge)

	assert.Equal(t, fasthttp.StatusRequestEntityTooLarge, ctx.Response.StatusCode())
	assert.Equal(t, "client-trace", string(ctx.Response.Header.Peek(httputil.HeaderRequestID)))

	var problem httputil.Problem
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &problem))
	assert.Equal(t, "client-trace", problem.TraceID)
}
