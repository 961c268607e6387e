package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhanushKumar2007/multiplayer-drawing-game/internal/config"
	"github.com/DhanushKumar2007/multiplayer-drawing-game/internal/game"
	"github.com/DhanushKumar2007/multiplayer-drawing-game/internal/words"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	hub := game.NewHub(cfg, game.NewRegistry(cfg), game.NewSessionStore(), words.NewProvider(words.DefaultBank))

	srv := httptest.NewServer(New(cfg, hub))
	t.Cleanup(srv.Close)
	return srv
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestForbiddenOrigin(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/ws", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://evil.example")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestWebSocketRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	readEnvelope := func() (string, map[string]any) {
		t.Helper()
		var env struct {
			Event string         `json:"event"`
			Data  map[string]any `json:"data"`
		}
		require.NoError(t, conn.ReadJSON(&env))
		return env.Event, env.Data
	}

	event, data := readEnvelope()
	require.Equal(t, game.EventConnected, event)
	sid, _ := data["sid"].(string)
	require.NotEmpty(t, sid)

	err = conn.WriteJSON(map[string]any{
		"event": game.EventCreateRoom,
		"data":  map[string]any{"username": "alice"},
	})
	require.NoError(t, err)

	event, data = readEnvelope()
	require.Equal(t, game.EventRoomCreated, event)
	code, _ := data["room_code"].(string)
	assert.Len(t, code, 6)

	room, ok := data["room"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, sid, room["host_id"])
	assert.Equal(t, float64(1), room["player_count"])
}

func TestSendQueueDropsWhenFull(t *testing.T) {
	c := &Client{send: make(chan []byte, 1)}

	require.NoError(t, c.Send("ping", nil))
	assert.ErrorIs(t, c.Send("ping", nil), errSlowConsumer)
}

func TestSendEnvelopeShape(t *testing.T) {
	c := &Client{send: make(chan []byte, 1)}
	require.NoError(t, c.Send(game.EventChatMessage, game.ChatMessagePayload{Username: "alice", Message: "hi"}))

	raw := <-c.send
	var env struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, game.EventChatMessage, env.Event)
	assert.JSONEq(t, `{"username":"alice","message":"hi","is_system":false}`, string(env.Data))
}
