package router

import (
	"github.com/labstack/echo/v4"

	"piauitickets/internal/adapter/api/handler"
	"piauitickets/internal/adapter/api/middleware"
)

func SetupOfflineRouter(e *echo.Echo, h *handler.OfflineHandler, authMiddleware *middleware.AuthMiddleware) {
	g := e.Group("/v1/offline")
	g.Use(authMiddleware.Authenticate)

	g.POST("/download", h.Download)
	g.GET("/tickets", h.ListTickets)
	g.GET("/available", h.CheckAvailability)
}
