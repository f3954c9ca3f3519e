package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/DjordjeVuckovic/word-importer/internal/apperr"
	mw "github.com/DjordjeVuckovic/word-importer/pkg/middleware"
	pkgserver "github.com/DjordjeVuckovic/word-importer/pkg/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const (
	GracefulShutdownTimeout = 10 * time.Second
)

// Server exposes the state of a running import over HTTP.
type Server struct {
	Echo *echo.Echo

	cfg    *Config
	health pkgserver.HealthChecker
}

func New(cfg *Config, health pkgserver.HealthChecker) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.DisableHTTP2 = !cfg.UseHttp2

	if health == nil {
		health = pkgserver.NewOkHealthChecker()
	}

	return &Server{
		Echo:   e,
		cfg:    cfg,
		health: health,
	}
}

func (s *Server) SetupMiddlewares() *Server {
	s.Echo.Use(mw.Logger(mw.WithSkipPaths("/health")))
	s.Echo.Use(middleware.Recover())
	return s
}

func (s *Server) SetupErrorHandler() *Server {
	s.Echo.HTTPErrorHandler = apperr.GlobalErrorHandler()
	return s
}

func (s *Server) SetupHealthChecks() *Server {
	s.Echo.GET("/health", s.healthHandler)
	return s
}

// SetupOpenApi serves the registered swagger document under path, e.g. "/swagger/*".
func (s *Server) SetupOpenApi(path string) *Server {
	s.Echo.GET(path, echoSwagger.WrapHandler)
	return s
}

// healthHandler godoc
// @Summary Sink health
// @Description Reports whether the configured sink is reachable
// @Tags status
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (s *Server) healthHandler(c echo.Context) error {
	if !s.health.Healthy(c.Request().Context()) {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// Listen binds the configured address so the actual port is known before
// Serve is called.
func (s *Server) Listen() (net.Addr, error) {
	l, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return nil, err
	}
	s.Echo.Listener = l
	return l.Addr(), nil
}

// Start serves until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	if s.Echo.Listener == nil {
		if _, err := s.Listen(); err != nil {
			return err
		}
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Status server listening", "addr", s.Echo.Listener.Addr().String())
		if err := s.Echo.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()

	if err := s.Echo.Shutdown(shutdownCtx); err != nil {
		slog.Error("Status server shutdown failed", "error", err)
		return err
	}
	slog.Info("Status server stopped")
	return nil
}
