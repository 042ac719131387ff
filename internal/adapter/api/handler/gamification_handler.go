package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"piauitickets/internal/usecase"
	"piauitickets/pkg/errors"
	"piauitickets/pkg/response"
)

type GamificationHandler struct {
	gamificationUseCase *usecase.GamificationUseCase
}

func NewGamificationHandler(gamificationUseCase *usecase.GamificationUseCase) *GamificationHandler {
	return &GamificationHandler{
		gamificationUseCase: gamificationUseCase,
	}
}

type submitVibeRequest struct {
	EventID string `json:"eventId" validate:"required"`
	Nota    int    `json:"nota" validate:"required,min=1,max=5"`
}

func (h *GamificationHandler) GetMe(c echo.Context) error {
	userID := c.Get("uid").(string)

	data := h.gamificationUseCase.LoadUserGameData(c.Request().Context(), userID)

	return response.Success(c, data)
}

func (h *GamificationHandler) SubmitVibe(c echo.Context) error {
	userID := c.Get("uid").(string)

	var req submitVibeRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request format", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	ctx := c.Request().Context()
	data := h.gamificationUseCase.LoadUserGameData(ctx, userID)

	result, err := h.gamificationUseCase.RegisterVibeEvaluated(ctx, userID, data, req.EventID, req.Nota)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

func (h *GamificationHandler) RegisterParticipation(c echo.Context) error {
	userID := c.Get("uid").(string)
	eventID := c.Param("eventId")

	if eventID == "" {
		return response.Error(c, errors.BadRequest("Event ID is required", nil))
	}

	ctx := c.Request().Context()
	data := h.gamificationUseCase.LoadUserGameData(ctx, userID)

	result, err := h.gamificationUseCase.RegisterEventParticipation(ctx, userID, data, eventID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

func (h *GamificationHandler) GetStats(c echo.Context) error {
	userID := c.Get("uid").(string)

	data := h.gamificationUseCase.LoadUserGameData(c.Request().Context(), userID)

	return response.Success(c, h.gamificationUseCase.GetUserStats(data))
}

func (h *GamificationHandler) ListBadges(c echo.Context) error {
	userID := c.Get("uid").(string)

	data := h.gamificationUseCase.LoadUserGameData(c.Request().Context(), userID)

	return response.Success(c, h.gamificationUseCase.ListBadges(data))
}

func (h *GamificationHandler) GetBadgeProgress(c echo.Context) error {
	userID := c.Get("uid").(string)
	badgeID := c.Param("badgeId")

	data := h.gamificationUseCase.LoadUserGameData(c.Request().Context(), userID)

	progress, ok := h.gamificationUseCase.GetBadgeProgress(badgeID, data)
	if !ok {
		return response.Error(c, errors.NotFound("badge", nil))
	}

	return response.Success(c, progress)
}

func (h *GamificationHandler) GetLeaderboard(c echo.Context) error {
	limit := 10
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	leaderboard, err := h.gamificationUseCase.GetLeaderboard(c.Request().Context(), limit)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"leaderboard": leaderboard,
		"limit":       limit,
		"count":       len(leaderboard),
	})
}
