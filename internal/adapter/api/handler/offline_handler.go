package handler

import (
	"github.com/labstack/echo/v4"

	"piauitickets/internal/usecase"
	"piauitickets/pkg/errors"
	"piauitickets/pkg/response"
)

type OfflineHandler struct {
	offlineUseCase *usecase.OfflineUseCase
}

func NewOfflineHandler(offlineUseCase *usecase.OfflineUseCase) *OfflineHandler {
	return &OfflineHandler{
		offlineUseCase: offlineUseCase,
	}
}

type downloadRequest struct {
	EventIDs []string `json:"eventIds" validate:"required,min=1"`
}

// Download gates on the free-space precondition before the cache write
// is attempted. A failed download leaves the previous cache intact.
func (h *OfflineHandler) Download(c echo.Context) error {
	userID := c.Get("uid").(string)

	var req downloadRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request format", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.offlineUseCase.CheckStorageSpace(); err != nil {
		return response.Error(c, err)
	}

	summary, err := h.offlineUseCase.Download(c.Request().Context(), userID, req.EventIDs, nil)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, summary)
}

// ListTickets serves the offline viewer. It reads from the local
// snapshot only and never consults the remote store.
func (h *OfflineHandler) ListTickets(c echo.Context) error {
	tickets := h.offlineUseCase.LoadOfflineTickets()

	if c.QueryParam("grouped") == "true" {
		return response.Success(c, usecase.GroupOfflineTickets(tickets))
	}

	return response.Success(c, tickets)
}

func (h *OfflineHandler) CheckAvailability(c echo.Context) error {
	return response.Success(c, map[string]bool{
		"available": h.offlineUseCase.HasOfflineTickets(),
	})
}
