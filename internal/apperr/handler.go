package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

type errorBody struct {
	Error string `json:"error"`
	Title string `json:"title,omitempty"`
}

// GlobalErrorHandler renders errors of the status server as JSON.
func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := describe(err)
		if status >= http.StatusInternalServerError {
			slog.Error("Request failed", "uri", c.Request().RequestURI, "status", status, "error", err)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}

func describe(err error) (int, errorBody) {
	var ce *ConfigurationError
	if errors.As(err, &ce) {
		return http.StatusServiceUnavailable, errorBody{Error: ce.Message, Title: "configuration error"}
	}

	var se *SourceUnavailableError
	if errors.As(err, &se) {
		return http.StatusServiceUnavailable, errorBody{Error: se.Error(), Title: "source unavailable"}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorBody{Error: fmt.Sprintf("%v", he.Message)}
	}

	return http.StatusInternalServerError, errorBody{Error: "internal server error"}
}
