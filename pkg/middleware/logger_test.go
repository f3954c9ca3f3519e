package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func newEcho(opts ...LoggerOpts) *echo.Echo {
	e := echo.New()
	e.Use(Logger(opts...))
	e.GET("/progress", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/health", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/broken", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusInternalServerError, "boom")
	})
	return e
}

func TestLogger_Levels(t *testing.T) {
	logs := captureLogs(t)
	e := newEcho()

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/progress", nil))
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/broken", nil))

	out := logs.String()
	assert.Contains(t, out, "level=DEBUG msg=REQUEST method=GET uri=/progress status=200")
	assert.Contains(t, out, "level=ERROR msg=REQUEST_ERROR method=GET uri=/broken status=500")
}

func TestLogger_SkipPaths(t *testing.T) {
	logs := captureLogs(t)
	e := newEcho(WithSkipPaths("/health"))

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Empty(t, logs.String())

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/progress", nil))
	assert.Contains(t, logs.String(), "uri=/progress")
}
