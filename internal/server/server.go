// Package server exposes the fulfillment orchestrator over HTTP to the
// Order Service.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tournevent/fulfillment/internal/fulfillment"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Orchestrator is the fulfillment entry point the server fronts.
type Orchestrator interface {
	Fulfill(ctx context.Context, orderID string) (*fulfillment.FulfillmentReport, error)
	Cancel(ctx context.Context, orderID string) (*fulfillment.CancellationReport, error)
}

// Config holds server configuration.
type Config struct {
	Port int
}

// Server is the HTTP server for the fulfillment service.
type Server struct {
	port   int
	orch   Orchestrator
	logger *otelzap.Logger
	engine *gin.Engine
}

// New creates a new server instance.
func New(cfg Config, orch Orchestrator, logger *otelzap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		port:   cfg.Port,
		orch:   orch,
		logger: logger,
		engine: engine,
	}

	engine.GET("/healthz", s.handleHealth)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api/v1")
	api.POST("/orders/:order_id/fulfillment", s.handleFulfill)
	api.POST("/orders/:order_id/cancellation", s.handleCancel)

	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the HTTP server and blocks until context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
