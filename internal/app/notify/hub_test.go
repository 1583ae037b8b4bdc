package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialHub spins up a test server that registers every connection under
// userID and serves its read loop.
func dialHub(t *testing.T, hub *Hub, userID int) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := hub.Upgrade(w, r)
		if err != nil {
			return
		}
		hub.Register(userID, conn)
		go hub.Serve(userID, conn)
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestSendToUser_DeliversEnvelope(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub, 42)

	// Give the server handler a moment to register the connection.
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return hub.connections[42] != nil
	}, time.Second, 10*time.Millisecond)

	hub.SendToUser(42, Message{
		Type:    EventNewSummary,
		Payload: map[string]string{"doctor_name": "陳醫師"},
	})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "new_summary", got["type"])
	payload, ok := got["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "陳醫師", payload["doctor_name"])
}

func TestSendToUser_OfflineUserIsDropped(t *testing.T) {
	hub := NewHub()

	// Must not panic or block.
	hub.SendToUser(12345, Message{Type: EventNewPrescription})
}

func TestServe_AnswersPing(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub, 7)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"ping"}`)))

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"pong"}`, string(data))
}

func TestSendToUser_ConcurrentWithPongReplies(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub, 21)

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return hub.connections[21] != nil
	}, time.Second, 10*time.Millisecond)

	// Notifications race the read loop's pong replies onto the same socket;
	// both must go through the per-connection write lock.
	const rounds = 200

	sends := make(chan struct{})
	go func() {
		defer close(sends)
		for i := 0; i < rounds; i++ {
			hub.SendToUser(21, Message{Type: EventNewSummary})
		}
	}()
	go func() {
		for i := 0; i < rounds; i++ {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"ping"}`)); err != nil {
				return
			}
		}
	}()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for received := 0; received < rounds*2; received++ {
		_, _, err := conn.ReadMessage()
		require.NoError(t, err)
	}
	<-sends
}

func TestMessage_OmitsEmptyPayload(t *testing.T) {
	data, err := json.Marshal(Message{Type: EventNewPrescription})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"new_prescription"}`, string(data))
}

func TestRegister_ReplacesExistingConnection(t *testing.T) {
	hub := NewHub()
	first := dialHub(t, hub, 9)
	second := dialHub(t, hub, 9)

	// The replaced connection is closed server-side; the read fails once the
	// close frame arrives.
	first.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := first.ReadMessage()
	assert.Error(t, err)

	hub.SendToUser(9, Message{Type: EventNewSummary})

	second.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := second.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), "new_summary")
}
