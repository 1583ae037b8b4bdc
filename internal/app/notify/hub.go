// Package notify pushes real-time events to connected users over WebSocket.
package notify

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Event names pushed to patients.
const (
	EventNewSummary      = "new_summary"
	EventNewPrescription = "new_prescription"
)

// Message is the JSON envelope sent over the socket.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"data,omitempty"`
}

// client serializes writes to one connection. gorilla/websocket allows only
// a single concurrent writer, and both the read loop's pong reply and
// SendToUser write to the same socket.
type client struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func (c *client) write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteMessage(messageType, data)
}

// Hub tracks one active connection per user id. A new connection for the
// same user replaces the old one.
type Hub struct {
	mu          sync.RWMutex
	connections map[int]*client
	upgrader    websocket.Upgrader
}

// NewHub creates an empty Hub. The upgrader accepts any origin; CORS policy
// is enforced at the HTTP layer.
func NewHub() *Hub {
	return &Hub{
		connections: make(map[int]*client),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Upgrade upgrades the HTTP request to a WebSocket connection.
func (h *Hub) Upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return h.upgrader.Upgrade(w, r, nil)
}

// Register binds the connection to the user id, closing any previous one.
func (h *Hub) Register(userID int, conn *websocket.Conn) {
	h.mu.Lock()
	if old, ok := h.connections[userID]; ok {
		old.ws.Close()
	}
	h.connections[userID] = &client{ws: conn}
	h.mu.Unlock()

	slog.Info("websocket connected", "user_id", userID)
}

// Unregister removes the connection if it is still the active one.
func (h *Hub) Unregister(userID int, conn *websocket.Conn) {
	h.mu.Lock()
	if current, ok := h.connections[userID]; ok && current.ws == conn {
		delete(h.connections, userID)
	}
	h.mu.Unlock()

	slog.Info("websocket disconnected", "user_id", userID)
}

// SendToUser pushes a JSON message to the user's connection. Messages to
// offline users are silently dropped.
func (h *Hub) SendToUser(userID int, msg Message) {
	h.mu.RLock()
	c, ok := h.connections[userID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to marshal notification", "error", err)
		return
	}

	if err := c.write(websocket.TextMessage, data); err != nil {
		slog.Warn("failed to deliver notification", "user_id", userID, "error", err)
	}
}

// Serve runs the read loop for a registered connection, answering ping
// messages until the peer disconnects. Pong replies go through the same
// write lock as SendToUser.
func (h *Hub) Serve(userID int, conn *websocket.Conn) {
	h.mu.RLock()
	c, ok := h.connections[userID]
	h.mu.RUnlock()
	if !ok || c.ws != conn {
		conn.Close()
		return
	}

	defer func() {
		h.Unregister(userID, conn)
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if string(data) == `{"type":"ping"}` {
			if err := c.write(websocket.TextMessage, []byte(`{"type":"pong"}`)); err != nil {
				return
			}
		}
	}
}
