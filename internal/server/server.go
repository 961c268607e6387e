package server

import (
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/DhanushKumar2007/multiplayer-drawing-game/internal/config"
	"github.com/DhanushKumar2007/multiplayer-drawing-game/internal/game"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are filtered by the middleware before the upgrade.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// New builds the gin engine: health check, origin filtering, CORS, and the
// websocket endpoint.
func New(cfg *config.Config, hub *game.Hub) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(ctx *gin.Context) { ctx.String(http.StatusOK, "healthy") })

	r.Use(func(ctx *gin.Context) {
		origin := ctx.Request.Header.Get("Origin")
		if origin == "" || slices.Contains(cfg.AllowedOrigins, origin) {
			ctx.Next()
			return
		}
		ctx.String(http.StatusForbidden, "forbidden origin")
		ctx.Abort()
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
	}))

	r.GET("/ws", wsHandler(hub))

	return r
}

func wsHandler(hub *game.Hub) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
		if err != nil {
			log.Error().Err(err).Str("ip", ctx.ClientIP()).Msg("websocket upgrade failed")
			return
		}

		client := newClient(hub, conn)
		log.Info().Str("conn", client.id).Str("ip", ctx.ClientIP()).Msg("client connected")

		go client.writePump()
		go client.readPump()

		client.Send(game.EventConnected, gin.H{"sid": client.id})
	}
}
