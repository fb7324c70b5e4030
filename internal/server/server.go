// Package server exposes the layout calculator as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/piwi3910/LoadCalc/internal/engine"
	"github.com/piwi3910/LoadCalc/internal/model"
)

const shutdownTimeout = 5 * time.Second

// Server holds the router and the state shared by all handlers. Handlers
// never mutate it, so requests are independent of each other.
type Server struct {
	calc    *engine.Calculator
	presets model.PresetStore
	logger  *log.Logger
	router  *gin.Engine
}

// New builds a server using cfg for colors and presets for the preset list
// and container comparison.
func New(cfg model.AppConfig, presets model.PresetStore, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		calc:    engine.New(cfg.ColorAssigner()),
		presets: presets,
		logger:  logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/presets", s.handlePresets)
	api.GET("/patterns", s.handlePatterns)
	api.POST("/containers/compare", s.handleCompareContainers)

	layout := api.Group("/layout")
	layout.POST("", s.handleLayout)
	layout.POST("/orientations", s.handleOrientations)
	layout.POST("/scene", s.handleScene)
	layout.POST("/pdf", s.handlePDF)
	layout.POST("/xlsx", s.handleXLSX)
	layout.POST("/chart", s.handleChart)

	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("listening", "addr", addr)

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	}
}

// requestLogger logs one line per request at info level, or at warn level
// for client and server errors.
func requestLogger(l *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", time.Since(start).Round(time.Microsecond),
		}
		if status >= http.StatusBadRequest {
			l.Warn("request", fields...)
			return
		}
		l.Info("request", fields...)
	}
}
