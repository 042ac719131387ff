package router

import (
	"github.com/labstack/echo/v4"

	"piauitickets/internal/adapter/api/handler"
)

// SetupDevRouter exposes the dev token endpoint outside production
// environments only.
func SetupDevRouter(e *echo.Echo, h *handler.DevTokenHandler, environment string) {
	if environment == "production" {
		return
	}

	e.POST("/v1/dev/token", h.GenerateToken)
}
