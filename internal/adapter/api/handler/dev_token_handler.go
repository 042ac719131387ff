package handler

import (
	"github.com/labstack/echo/v4"

	"piauitickets/internal/infrastructure/firebase"
	"piauitickets/pkg/errors"
	"piauitickets/pkg/response"
)

// DevTokenHandler mints Firebase custom tokens for local testing. Only
// routed in development.
type DevTokenHandler struct {
	authClient *firebase.FirebaseAuthClient
}

func NewDevTokenHandler(authClient *firebase.FirebaseAuthClient) *DevTokenHandler {
	return &DevTokenHandler{
		authClient: authClient,
	}
}

type devTokenRequest struct {
	UID string `json:"uid" validate:"required"`
}

func (h *DevTokenHandler) GenerateToken(c echo.Context) error {
	var req devTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request format", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	token, err := h.authClient.GenerateToken(c.Request().Context(), req.UID)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to generate token", err))
	}

	return response.Success(c, map[string]string{
		"uid":   req.UID,
		"token": token,
	})
}
