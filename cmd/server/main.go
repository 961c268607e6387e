package main

import (
	"github.com/rs/zerolog/log"

	"github.com/DhanushKumar2007/multiplayer-drawing-game/internal/config"
	"github.com/DhanushKumar2007/multiplayer-drawing-game/internal/game"
	"github.com/DhanushKumar2007/multiplayer-drawing-game/internal/logger"
	"github.com/DhanushKumar2007/multiplayer-drawing-game/internal/server"
	"github.com/DhanushKumar2007/multiplayer-drawing-game/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load configuration")
	}
	logger.Setup(cfg.LogLevel)

	provider := words.NewProvider(words.DefaultBank)
	registry := game.NewRegistry(cfg)
	sessions := game.NewSessionStore()
	hub := game.NewHub(cfg, registry, sessions, provider)

	r := server.New(cfg, hub)

	log.Info().Str("addr", cfg.Addr).Msg("server listening")
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
