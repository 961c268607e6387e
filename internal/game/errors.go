package game

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid-input")
	ErrRoomNotFound      = errors.New("room-not-found")
	ErrGameInProgress    = errors.New("game-in-progress")
	ErrRoomFull          = errors.New("room-full")
	ErrDuplicateUsername = errors.New("duplicate-username")
	ErrNotHost           = errors.New("not-host")
	ErrNotEnoughPlayers  = errors.New("not-enough-players")
)
