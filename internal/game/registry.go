package game

import (
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/DhanushKumar2007/multiplayer-drawing-game/internal/config"
)

// Registry owns the live rooms. It is constructed at process start and
// passed to the hub; nothing here is package-level state, so tests get
// isolated instances.
//
// Lock order is registry before room, never the reverse.
type Registry struct {
	cfg *config.Config

	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRegistry(cfg *config.Config) *Registry {
	return &Registry{
		cfg:   cfg,
		rooms: make(map[string]*Room),
	}
}

// CreateRoom generates a fresh code and registers a room with the host as
// its sole member.
func (reg *Registry) CreateRoom(hostID, hostUsername string, conn Sender) (*Room, error) {
	if hostID == "" || hostUsername == "" {
		return nil, ErrInvalidInput
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	code := reg.generateCodeLocked()
	room := newRoom(code, hostID, hostUsername, conn)
	reg.rooms[code] = room
	return room, nil
}

// generateCodeLocked rejection-samples the code alphabet until the code is
// unused among live rooms. Caller holds reg.mu.
func (reg *Registry) generateCodeLocked() string {
	chars := reg.cfg.RoomCodeChars
	buf := make([]byte, reg.cfg.RoomCodeLength)
	for {
		for i := range buf {
			buf[i] = chars[rand.IntN(len(chars))]
		}
		code := string(buf)
		if _, taken := reg.rooms[code]; !taken {
			return code
		}
	}
}

// Get looks up a room by code. Codes compare case-insensitively.
func (reg *Registry) Get(code string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	room, ok := reg.rooms[strings.ToUpper(code)]
	return room, ok
}

// JoinRoom adds a player to an existing room.
func (reg *Registry) JoinRoom(code, connID, username string, conn Sender) (*Room, error) {
	if code == "" || connID == "" || username == "" {
		return nil, ErrInvalidInput
	}

	// Hold the registry read lock across the membership change so the room
	// cannot be torn down between lookup and add.
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	room, ok := reg.rooms[strings.ToUpper(code)]
	if !ok {
		return nil, ErrRoomNotFound
	}

	room.mu.Lock()
	defer room.mu.Unlock()
	if room.gameStarted {
		return nil, ErrGameInProgress
	}
	if err := room.addLocked(connID, username, conn, reg.cfg.MaxPlayers); err != nil {
		return nil, err
	}
	return room, nil
}

// LeaveRoom removes a player from a room, reassigning the host when needed
// and tearing the room down once empty. Leaving twice is a no-op.
func (reg *Registry) LeaveRoom(code, connID string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.rooms[strings.ToUpper(code)]
	if !ok {
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()
	if _, removed := room.removeLocked(connID); !removed {
		return
	}
	if len(room.players) == 0 {
		reg.dropLocked(room)
	}
}

// dropLocked deletes an empty room and its game state. Caller holds reg.mu
// and room.mu.
func (reg *Registry) dropLocked(room *Room) {
	room.game = nil
	delete(reg.rooms, room.code)
}

// FindRoomOf is the reverse lookup used on disconnect, when the transport
// does not know the room code.
func (reg *Registry) FindRoomOf(connID string) *Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	for _, room := range reg.rooms {
		room.mu.Lock()
		_, ok := room.players[connID]
		room.mu.Unlock()
		if ok {
			return room
		}
	}
	return nil
}

// Count reports the number of live rooms.
func (reg *Registry) Count() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}
