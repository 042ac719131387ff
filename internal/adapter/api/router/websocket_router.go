package router

import (
	"github.com/labstack/echo/v4"

	"piauitickets/internal/adapter/api/handler"
)

func SetupWebSocketRouter(e *echo.Echo, h *handler.WebSocketHandler) {
	e.GET("/v1/ws/progression", h.HandleConnection)
}
