package game

import (
	"sort"
	"sync"
	"time"
)

// Room groups the players of one game session. All mutating access to a room
// and to its game state happens under mu; handlers for different rooms run
// unordered relative to each other.
type Room struct {
	mu sync.Mutex

	code        string
	hostID      string
	players     map[string]*Player
	gameStarted bool
	createdAt   time.Time

	// game is created lazily on first use and dies with the room.
	game *State
}

func newRoom(code, hostID, hostUsername string, conn Sender) *Room {
	r := &Room{
		code:      code,
		hostID:    hostID,
		players:   make(map[string]*Player),
		createdAt: time.Now(),
	}
	r.players[hostID] = newPlayer(hostID, hostUsername, conn)
	return r
}

func (r *Room) Code() string { return r.code }

// addLocked adds a player, enforcing capacity and per-room username
// uniqueness. Caller holds r.mu.
func (r *Room) addLocked(id, username string, conn Sender, maxPlayers int) error {
	if len(r.players) >= maxPlayers {
		return ErrRoomFull
	}
	if _, ok := r.players[id]; ok {
		return ErrInvalidInput
	}
	for _, p := range r.players {
		if p.username == username {
			return ErrDuplicateUsername
		}
	}
	r.players[id] = newPlayer(id, username, conn)
	return nil
}

// removeLocked removes a player and reassigns the host to the oldest
// remaining member if needed. Caller holds r.mu.
func (r *Room) removeLocked(id string) (*Player, bool) {
	p, ok := r.players[id]
	if !ok {
		return nil, false
	}
	delete(r.players, id)

	if id == r.hostID && len(r.players) > 0 {
		var oldest *Player
		for _, m := range r.players {
			if oldest == nil || m.joinedAt.Before(oldest.joinedAt) {
				oldest = m
			}
		}
		r.hostID = oldest.id
	}
	return p, true
}

func (r *Room) playerLocked(id string) *Player {
	return r.players[id]
}

func (r *Room) countLocked() int {
	return len(r.players)
}

// memberIDsLocked returns player ids in join order; used for the drawer
// rotation and the player-list payloads.
func (r *Room) memberIDsLocked() []string {
	members := make([]*Player, 0, len(r.players))
	for _, p := range r.players {
		members = append(members, p)
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].joinedAt.Before(members[j].joinedAt)
	})
	ids := make([]string, len(members))
	for i, p := range members {
		ids[i] = p.id
	}
	return ids
}

func (r *Room) playerListLocked() []PlayerSnapshot {
	list := make([]PlayerSnapshot, 0, len(r.players))
	for _, id := range r.memberIDsLocked() {
		list = append(list, r.players[id].snapshot())
	}
	return list
}

func (r *Room) snapshotLocked() RoomSnapshot {
	return RoomSnapshot{
		RoomCode:    r.code,
		HostID:      r.hostID,
		Players:     r.playerListLocked(),
		PlayerCount: len(r.players),
		GameStarted: r.gameStarted,
	}
}

// PlayerCount is the externally safe counter, used by tests and handlers
// that hold no lock.
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}
