package game

import (
	"sync"
	"time"
)

// Session is the per-connection view the orchestrator keeps alongside room
// membership.
type Session struct {
	RoomCode    string
	Username    string
	ConnectedAt time.Time
	IsDrawer    bool
	CurrentWord string
}

// SessionUpdate is a structured patch; nil fields are left untouched.
type SessionUpdate struct {
	RoomCode    *string
	IsDrawer    *bool
	CurrentWord *string
}

// SessionStore tracks sessions for live connections.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

func (s *SessionStore) Create(connID, roomCode, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[connID] = &Session{
		RoomCode:    roomCode,
		Username:    username,
		ConnectedAt: time.Now(),
	}
}

func (s *SessionStore) Update(connID string, update SessionUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[connID]
	if !ok {
		return
	}
	if update.RoomCode != nil {
		sess.RoomCode = *update.RoomCode
	}
	if update.IsDrawer != nil {
		sess.IsDrawer = *update.IsDrawer
	}
	if update.CurrentWord != nil {
		sess.CurrentWord = *update.CurrentWord
	}
}

func (s *SessionStore) Get(connID string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[connID]
	if !ok {
		return Session{}, false
	}
	return *sess, true
}

func (s *SessionStore) Remove(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, connID)
}

// RoomSessions returns the sessions bound to one room code.
func (s *SessionStore) RoomSessions(roomCode string) map[string]Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]Session)
	for id, sess := range s.sessions {
		if sess.RoomCode == roomCode {
			out[id] = *sess
		}
	}
	return out
}
