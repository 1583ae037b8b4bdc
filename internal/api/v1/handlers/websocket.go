package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/willyyyaj/medical-system/internal/app/notify"
	"github.com/willyyyaj/medical-system/internal/app/repository"
)

// WebSocketHandler upgrades notification connections
type WebSocketHandler struct {
	hub   *notify.Hub
	users repository.UserRepository
}

// NewWebSocketHandler creates a new websocket handler
func NewWebSocketHandler(hub *notify.Hub, users repository.UserRepository) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, users: users}
}

// Connect handles GET /ws/:user_id
// Unknown users get a policy-violation close (1008) after the upgrade, the
// same way the frontend has always seen it.
func (h *WebSocketHandler) Connect(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.Status(400)
		return
	}

	conn, err := h.hub.Upgrade(c.Writer, c.Request)
	if err != nil {
		return
	}

	if _, err := h.users.GetUserByID(c.Request.Context(), userID); err != nil {
		msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "unknown user")
		conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		conn.Close()
		return
	}

	h.hub.Register(userID, conn)
	h.hub.Serve(userID, conn)
}
