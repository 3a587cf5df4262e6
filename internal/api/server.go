package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/taxberg/internal/calculation"
	"github.com/rgehrsitz/taxberg/internal/config"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Server is the tax calculation HTTP API
type Server struct {
	cfg    config.ServerConfig
	engine *calculation.CalculationEngine
	parser *config.InputParser
	logger *zap.Logger
	router *gin.Engine
}

// NewServer wires the routes. A nil engine selects rules by tax year and a
// nil logger discards logs.
func NewServer(cfg config.ServerConfig, engine *calculation.CalculationEngine, logger *zap.Logger) *Server {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.AllowedOrigin == "" {
		cfg.AllowedOrigin = "*"
	}

	s := &Server{
		cfg:    cfg,
		engine: engine,
		parser: config.NewInputParser(),
		logger: logger,
		router: gin.New(),
	}

	s.router.Use(gin.Recovery(), RequestID(), AccessLog(logger), CORS(cfg.AllowedOrigin))
	s.router.GET("/healthz", s.Health)

	api := s.router.Group("/api")
	{
		api.POST("/calculate-tax", s.CalculateTax)
	}

	return s
}

// Handler returns the router for use with httptest or a custom server
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully, letting in-flight requests finish
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("server started", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	<-errCh
	s.logger.Info("server stopped")
	return nil
}
