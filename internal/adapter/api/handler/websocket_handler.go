package handler

import (
	"net/http"

	gorilla "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"piauitickets/internal/infrastructure/firebase"
	"piauitickets/internal/infrastructure/websocket"
	"piauitickets/pkg/logger"
)

type WebSocketHandler struct {
	manager    *websocket.Manager
	authClient *firebase.FirebaseAuthClient
	upgrader   gorilla.Upgrader
}

func NewWebSocketHandler(manager *websocket.Manager, authClient *firebase.FirebaseAuthClient) *WebSocketHandler {
	return &WebSocketHandler{
		manager:    manager,
		authClient: authClient,
		upgrader: gorilla.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// HandleConnection authenticates via the token query parameter (the
// browser WebSocket API cannot set an Authorization header) and starts
// the read/write pumps for the progression push channel.
func (h *WebSocketHandler) HandleConnection(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Token is required")
	}

	uid, err := h.authClient.VerifyToken(c.Request().Context(), token)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Error("Failed to upgrade websocket connection for %s: %v", uid, err)
		return err
	}

	client := &websocket.Client{
		UserID: uid,
		Conn:   conn,
		Send:   make(chan []byte, 16),
	}

	h.manager.Register <- client

	go client.WritePump()
	go client.ReadPump(h.manager)

	return nil
}
