package middleware

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type LoggerOpts func(*middleware.RequestLoggerConfig)

// WithSkipPaths keeps the given route paths out of the log, e.g. health probes.
func WithSkipPaths(paths ...string) LoggerOpts {
	return func(cfg *middleware.RequestLoggerConfig) {
		cfg.Skipper = func(c echo.Context) bool {
			for _, p := range paths {
				if c.Path() == p {
					return true
				}
			}
			return false
		}
	}
}

// Logger logs every request through slog. Successful requests are logged at
// debug level so polling /progress does not flood the import output.
func Logger(opts ...LoggerOpts) echo.MiddlewareFunc {
	cfg := middleware.RequestLoggerConfig{
		LogStatus:     true,
		LogLatency:    true,
		LogMethod:     true,
		LogURI:        true,
		LogError:      true,
		HandleError:   true,
		LogValuesFunc: logRequest,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return middleware.RequestLoggerWithConfig(cfg)
}

func logRequest(c echo.Context, v middleware.RequestLoggerValues) error {
	attrs := []slog.Attr{
		slog.String("method", v.Method),
		slog.String("uri", v.URI),
		slog.Int("status", v.Status),
		slog.Duration("latency", v.Latency),
	}

	level := slog.LevelDebug
	msg := "REQUEST"
	switch {
	case v.Error != nil || v.Status >= http.StatusInternalServerError:
		level = slog.LevelError
		msg = "REQUEST_ERROR"
	case v.Status >= http.StatusBadRequest:
		level = slog.LevelWarn
	}
	if v.Error != nil {
		attrs = append(attrs, slog.String("err", v.Error.Error()))
	}

	slog.LogAttrs(c.Request().Context(), level, msg, attrs...)
	return nil
}
