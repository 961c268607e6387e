package server

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/DhanushKumar2007/multiplayer-drawing-game/internal/game"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

var errSlowConsumer = errors.New("slow-consumer")

type inEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type outEnvelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Client wraps one websocket connection. The read pump feeds the hub; the
// write pump drains the send queue and keeps the connection pinged.
type Client struct {
	id      string
	hub     *game.Hub
	conn    *websocket.Conn
	send    chan []byte
	done    chan struct{}
	limiter *rate.Limiter
}

func newClient(hub *game.Hub, conn *websocket.Conn) *Client {
	return &Client{
		id:   uuid.NewString(),
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
		done: make(chan struct{}),
		// Covers chat/guess spam; drawing traffic bypasses the limiter.
		limiter: rate.NewLimiter(5, 10),
	}
}

func (c *Client) ID() string { return c.id }

// Send implements game.Sender. A full queue drops the message rather than
// blocking a room handler on one slow connection.
func (c *Client) Send(event string, data any) error {
	payload, err := json.Marshal(outEnvelope{Event: event, Data: data})
	if err != nil {
		return err
	}
	select {
	case c.send <- payload:
		return nil
	default:
		return errSlowConsumer
	}
}

type createRoomRequest struct {
	Username string `json:"username"`
}

type joinRoomRequest struct {
	RoomCode string `json:"room_code"`
	Username string `json:"username"`
}

type roomScopedRequest struct {
	RoomCode string `json:"room_code"`
}

type guessRequest struct {
	RoomCode string `json:"room_code"`
	Guess    string `json:"guess"`
}

type chatRequest struct {
	RoomCode string `json:"room_code"`
	Message  string `json:"message"`
}

type reactionRequest struct {
	RoomCode string  `json:"room_code"`
	Emoji    string  `json:"emoji"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

func (c *Client) readPump() {
	defer func() {
		close(c.done)
		c.hub.HandleDisconnect(c.id)
		c.conn.Close()
		log.Info().Str("conn", c.id).Msg("client disconnected")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var env inEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			continue
		}
		c.dispatch(env)
	}
}

func (c *Client) dispatch(env inEnvelope) {
	switch env.Event {
	case game.EventDraw:
		var req roomScopedRequest
		if json.Unmarshal(env.Data, &req) != nil {
			return
		}
		c.hub.HandleDraw(c.id, req.RoomCode, env.Data)
		return
	case game.EventClearCanvas:
		var req roomScopedRequest
		if json.Unmarshal(env.Data, &req) != nil {
			return
		}
		c.hub.HandleClearCanvas(c.id, req.RoomCode)
		return
	}

	if !c.limiter.Allow() {
		return
	}

	switch env.Event {
	case game.EventCreateRoom:
		var req createRoomRequest
		if json.Unmarshal(env.Data, &req) != nil {
			return
		}
		c.hub.HandleCreateRoom(c.id, req.Username, c)

	case game.EventJoinRoom:
		var req joinRoomRequest
		if json.Unmarshal(env.Data, &req) != nil {
			return
		}
		c.hub.HandleJoinRoom(c.id, req.RoomCode, req.Username, c)

	case game.EventStartGame:
		var req roomScopedRequest
		if json.Unmarshal(env.Data, &req) != nil {
			return
		}
		c.hub.HandleStartGame(c.id, req.RoomCode, c)

	case game.EventGuess:
		var req guessRequest
		if json.Unmarshal(env.Data, &req) != nil {
			return
		}
		c.hub.HandleGuess(c.id, req.RoomCode, req.Guess)

	case game.EventChatMessage:
		var req chatRequest
		if json.Unmarshal(env.Data, &req) != nil {
			return
		}
		c.hub.HandleChat(c.id, req.RoomCode, req.Message)

	case game.EventReaction:
		req := reactionRequest{X: 50, Y: 50}
		if json.Unmarshal(env.Data, &req) != nil {
			return
		}
		c.hub.HandleReaction(c.id, req.RoomCode, req.Emoji, req.X, req.Y)

	case game.EventGetGameState:
		var req roomScopedRequest
		if json.Unmarshal(env.Data, &req) != nil {
			return
		}
		c.hub.HandleGameState(c.id, req.RoomCode, c)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
