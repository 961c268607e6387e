package game

import "time"

// Sender delivers a single named event to one connection. The websocket
// client implements it; tests substitute a mock.
type Sender interface {
	Send(event string, data any) error
}

// Player belongs to exactly one room. Fields are mutated only while the
// owning room's lock is held.
type Player struct {
	id         string
	username   string
	score      int
	hasGuessed bool
	joinedAt   time.Time
	conn       Sender
}

func newPlayer(id, username string, conn Sender) *Player {
	return &Player{
		id:       id,
		username: username,
		joinedAt: time.Now(),
		conn:     conn,
	}
}

func (p *Player) send(event string, data any) {
	if p.conn == nil {
		return
	}
	_ = p.conn.Send(event, data)
}

func (p *Player) snapshot() PlayerSnapshot {
	return PlayerSnapshot{
		ID:         p.id,
		Username:   p.username,
		Score:      p.score,
		HasGuessed: p.hasGuessed,
	}
}
