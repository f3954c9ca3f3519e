package router

import (
	"net/http"

	"github.com/DjordjeVuckovic/word-importer/internal/report"
	"github.com/labstack/echo/v4"
)

type StatusRouter struct {
	e       *echo.Echo
	tracker *report.StatusTracker
}

func NewStatusRouter(e *echo.Echo, tracker *report.StatusTracker) *StatusRouter {
	return &StatusRouter{
		e:       e,
		tracker: tracker,
	}
}

func (r *StatusRouter) Bind() {
	r.e.GET("/progress", r.progressHandler)
}

// progressHandler godoc
// @Summary Import progress
// @Description Returns the latest progress snapshot of the running import
// @Tags status
// @Produce json
// @Success 200 {object} report.Status
// @Router /progress [get]
func (r *StatusRouter) progressHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, r.tracker.Snapshot())
}
