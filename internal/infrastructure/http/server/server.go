package server

import (
	"context"
	"fmt"
	"net"

	"github.com/fasthttp/router"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/dharshanac/ZeilCardValidatorApi/config"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/infrastructure/metrics"
	"github.com/dharshanac/ZeilCardValidatorApi/pkg/httputil"
)

// Server represents fasthttp server
type Server struct {
	server   *fasthttp.Server
	Router   *router.Router
	addr     string
	listener net.Listener
	logger   zerolog.Logger
}

// NewServer creates a new fasthttp server. Every route registered on Router
// runs behind request id, access log, metrics and recovery middleware.
func NewServer(serviceCfg *config.ServiceConfig, httpCfg *config.HTTPConfig, m *metrics.Metrics, logger zerolog.Logger) *Server {
	r := router.New()
	r.SaveMatchedRoutePath = true
	r.RedirectTrailingSlash = false

	handler := httputil.Chain(r.Handler,
		httputil.RequestID(),
		AccessLog(logger),
		Metrics(m),
		Recovery(logger, serviceCfg.IsDevelopment()),
	)

	srv := &fasthttp.Server{
		Handler:            handler,
		Name:               serviceCfg.Name,
		ReadTimeout:        httpCfg.ReadTimeout,
		WriteTimeout:       httpCfg.WriteTimeout,
		IdleTimeout:        httpCfg.IdleTimeout,
		MaxRequestBodySize: httpCfg.MaxBodySize,
		ErrorHandler:       errorHandler(logger),
	}

	return &Server{
		server: srv,
		Router: r,
		addr:   fmt.Sprintf(":%s", serviceCfg.Port),
		logger: logger.With().Str("component", "http_server").Logger(),
	}
}

// Handler returns the root request handler including middleware
func (s *Server) Handler() fasthttp.RequestHandler {
	return s.server.Handler
}

// RegisterMetrics registers Prometheus metrics endpoint
func (s *Server) RegisterMetrics() {
	// Adapt promhttp.Handler to fasthttp
	prometheusHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	s.Router.GET("/metrics", prometheusHandler)
}

// Start binds the listen address and serves in a separate goroutine
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = ln

	s.logger.Info().
		Str("addr", s.addr).
		Msg("Starting HTTP server")

	go func() {
		if err := s.server.Serve(ln); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server error")
		}
	}()

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down HTTP server")

	if err := s.server.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	// Serve may not have picked up the listener yet
	if s.listener != nil {
		_ = s.listener.Close()
	}

	s.logger.Info().Msg("HTTP server stopped gracefully")
	return nil
}

// errorHandler answers requests fasthttp rejects before routing, such as
// oversized or unparsable bodies. Middleware does not run for them, so the
// trace id is assigned here.
func errorHandler(logger zerolog.Logger) func(ctx *fasthttp.RequestCtx, err error) {
	return func(ctx *fasthttp.RequestCtx, err error) {
		status := fasthttp.StatusBadRequest
		if _, ok := err.(*fasthttp.ErrSmallBuffer); ok {
			status = fasthttp.StatusRequestHeaderFieldsTooLarge
		} else if err == fasthttp.ErrBodyTooLarge {
			status = fasthttp.StatusRequestEntityTooLarge
		}

		traceID := httputil.AssignTraceID(ctx)
		logger.Warn().Err(err).
			Int("status", status).
			Str("trace_id", traceID).
			Msg("Rejected malformed HTTP request")
		httputil.WriteProblem(ctx, httputil.NewProblem(status, "malformed request", traceID))
	}
}
