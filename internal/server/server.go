// Package server assembles the gin engine and owns the HTTP listener
// lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gramshield/dashboard/internal/config"
	"github.com/gramshield/dashboard/internal/handlers"
	"github.com/gramshield/dashboard/internal/metrics"
)

// Server wraps the HTTP listener.
type Server struct {
	http *http.Server
	log  *zap.Logger
}

// New builds the router and the listener from the configuration.
func New(cfg *config.Config, h *handlers.Handler, m *metrics.Metrics, log *zap.Logger) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(RequestLogger(log), gin.Recovery())
	if m != nil {
		router.Use(m.GinMiddleware())
	}
	h.RegisterRoutes(router)

	return &Server{
		http: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
			IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		},
		log: log,
	}
}

// Start blocks serving requests until the listener is closed.
func (s *Server) Start() error {
	s.log.Info("HTTP server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down HTTP server")
	return s.http.Shutdown(ctx)
}

// RequestLogger logs each request with method, path, status and latency.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
