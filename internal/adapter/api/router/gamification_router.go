package router

import (
	"github.com/labstack/echo/v4"

	"piauitickets/internal/adapter/api/handler"
	"piauitickets/internal/adapter/api/middleware"
)

func SetupGamificationRouter(e *echo.Echo, h *handler.GamificationHandler, authMiddleware *middleware.AuthMiddleware) {
	g := e.Group("/v1/gamification")
	g.Use(authMiddleware.Authenticate)

	g.GET("/me", h.GetMe)
	g.GET("/me/stats", h.GetStats)
	g.POST("/vibes", h.SubmitVibe)
	g.POST("/events/:eventId/participation", h.RegisterParticipation)
	g.GET("/badges", h.ListBadges)
	g.GET("/badges/:badgeId/progress", h.GetBadgeProgress)
	g.GET("/leaderboard", h.GetLeaderboard)
}
