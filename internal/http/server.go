// Package http provides the local API server, the metrics server and shared middleware.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/demands/internal/config"
	"github.com/allisson/demands/internal/metrics"
	recordHTTP "github.com/allisson/demands/internal/record/http"
)

// ReadyCheck reports whether the store backing the API can serve requests.
type ReadyCheck func(ctx context.Context) error

// Server represents the local API server.
type Server struct {
	server *http.Server
	router *gin.Engine
	ready  ReadyCheck
	logger *slog.Logger
}

// NewServer creates a new API server. A nil ready check always reports ready.
func NewServer(
	host string,
	port int,
	ready ReadyCheck,
	logger *slog.Logger,
) *Server {
	return &Server{
		ready:  ready,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter registers middleware and routes.
func (s *Server) SetupRouter(
	cfg *config.Config,
	recordHandler *recordHTTP.RecordHandler,
	metricsProvider *metrics.Provider,
	metricsNamespace string,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), metricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	records := v1.Group("/records")
	if cfg.RateLimitEnabled {
		records.Use(RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}
	{
		records.GET("", recordHandler.ListHandler)
		records.POST("", recordHandler.CreateHandler)
		records.GET("/:id", recordHandler.GetHandler)
		records.PATCH("/:id", recordHandler.UpdateHandler)
		records.DELETE("/:id", recordHandler.DeleteHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the API server. It blocks until the server stops.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) readinessHandler(c *gin.Context) {
	if s.ready != nil {
		if err := s.ready(c.Request.Context()); err != nil {
			s.logger.Warn("readiness check failed", slog.Any("error", err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":     "not_ready",
				"components": gin.H{"data_file": "error"},
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"data_file": "ok"},
	})
}
