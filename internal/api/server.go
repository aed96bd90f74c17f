// Package api serves the bfhl HTTP surface.
package api

import (
	"net/http"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bfhl-service/internal/common/config"
	"bfhl-service/internal/common/errors"
	"bfhl-service/internal/common/logger"
	"bfhl-service/internal/common/observability"
	"bfhl-service/internal/operations"
)

// Server holds the handler dependencies. It is safe for concurrent use.
type Server struct {
	email        string
	maxBodyBytes int64
	registry     *operations.Registry
	logger       logger.Logger
	errHandler   *errors.ErrorHandler
	obs          *observability.Observability
	ready        atomic.Bool
}

// NewServer builds a Server. obs may be nil.
func NewServer(cfg *config.Config, registry *operations.Registry, log logger.Logger, obs *observability.Observability) *Server {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	maxBody := cfg.Server.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	return &Server{
		email:        cfg.App.OfficialEmail,
		maxBodyBytes: maxBody,
		registry:     registry,
		logger:       log,
		errHandler:   errors.NewErrorHandler(log),
		obs:          obs,
	}
}

// SetReady flips the /ready probe.
func (s *Server) SetReady(ready bool) {
	s.ready.Store(ready)
}

// Router returns the root handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(withRequestID)
	r.Use(s.withRequestLog)
	r.Use(s.withRecovery)
	r.Use(middleware.StripSlashes)

	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(s.handleMethodNotAllowed)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Post("/bfhl", s.handleBFHL)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// HTTPServer wraps Router in an http.Server using the configured timeouts.
func (s *Server) HTTPServer(cfg config.ServerConfig) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.Router(),
		ReadTimeout:       config.GetDuration(cfg.ReadTimeout),
		ReadHeaderTimeout: config.GetDuration(cfg.ReadTimeout),
		WriteTimeout:      config.GetDuration(cfg.WriteTimeout),
		IdleTimeout:       config.GetDuration(cfg.WriteTimeout),
	}
}
