package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medcamp/mcms/internal/handler"
)

// registerSystemRoutes registers endpoints that are not part of the business
// API: the service banner and the health check.
func registerSystemRoutes(e *echo.Echo, h *handler.Handlers) {
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "medical camp management system",
			"status":  "running",
		})
	})

	e.GET("/status", handler.Handle(h.Health.Handler, h.Health.Status, http.StatusOK))
}
