package game

import (
	"slices"
	"time"
)

// WordSource supplies a word and its category, avoiding the excluded set.
type WordSource interface {
	Pick(exclude map[string]struct{}) (word, category string)
}

// State is the per-room turn/round machine. It carries no locking of its
// own; the owning room's lock serializes all access, including the derived
// time queries.
type State struct {
	totalRounds  int
	turnDuration time.Duration
	words        WordSource

	round        int
	drawerOrder  []string
	drawerIndex  int
	drawerID     string
	currentWord  string
	wordCategory string
	usedWords    map[string]struct{}

	turnStart    time.Time
	turnDeadline time.Time
	timerActive  bool

	// timerEpoch increments on every StartTurn and fences stale timer
	// callbacks: a timer scheduled for turn N is ignored once N has ended.
	timerEpoch int

	guessed map[string]struct{}
	active  bool
	ended   bool

	now func() time.Time
}

func newState(totalRounds int, turnDuration time.Duration, words WordSource) *State {
	return &State{
		totalRounds:  totalRounds,
		turnDuration: turnDuration,
		words:        words,
		round:        1,
		usedWords:    make(map[string]struct{}),
		guessed:      make(map[string]struct{}),
		now:          time.Now,
	}
}

// StartGame fixes the drawer rotation to the given order. The caller
// guarantees at least two players.
func (s *State) StartGame(playerIDs []string) {
	s.drawerOrder = slices.Clone(playerIDs)
	s.round = 1
	s.drawerIndex = 0
	s.active = true
	s.ended = false
	s.usedWords = make(map[string]struct{})
}

// StartTurn selects the next drawer and word, arms the deadline, and bumps
// the timer epoch. Returns false when there is nobody to draw.
func (s *State) StartTurn() bool {
	if len(s.drawerOrder) == 0 {
		return false
	}
	s.drawerID = s.drawerOrder[s.drawerIndex]

	s.currentWord, s.wordCategory = s.words.Pick(s.usedWords)
	s.usedWords[s.currentWord] = struct{}{}

	s.turnStart = s.now()
	s.turnDeadline = s.turnStart.Add(s.turnDuration)
	s.timerActive = true
	s.timerEpoch++

	s.guessed = make(map[string]struct{})
	return true
}

// MarkGuessed records a correct guess. Idempotent.
func (s *State) MarkGuessed(connID string) {
	s.guessed[connID] = struct{}{}
}

func (s *State) HasGuessed(connID string) bool {
	_, ok := s.guessed[connID]
	return ok
}

func (s *State) IsDrawer(connID string) bool {
	return connID == s.drawerID
}

// EndTurn disarms the timer and advances the rotation; when the rotation
// wraps it ends the round. Returns true when the whole game is over.
func (s *State) EndTurn() bool {
	s.timerActive = false
	s.turnStart = time.Time{}
	s.turnDeadline = time.Time{}

	s.drawerIndex++
	if s.drawerIndex >= len(s.drawerOrder) {
		return s.EndRound()
	}
	return false
}

// EndRound resets the rotation and advances the round counter. Returns true
// when the final round just finished.
func (s *State) EndRound() bool {
	s.drawerIndex = 0
	s.round++
	if s.round > s.totalRounds {
		s.ended = true
		s.active = false
		return true
	}
	return false
}

// RemovePlayer handles a departure. For the current drawer it only signals
// the caller to force a turn end; the rotation entry is dropped afterwards
// via dropFromOrder. Anyone else is removed immediately.
func (s *State) RemovePlayer(connID string) (wasDrawer bool) {
	idx := slices.Index(s.drawerOrder, connID)
	if idx == -1 {
		return false
	}
	// Only a live turn's drawer forces an end; between turns (grace
	// interval) drawerID still names the previous drawer.
	if s.active && s.timerActive && connID == s.drawerID {
		return true
	}
	s.dropFromOrder(connID)
	delete(s.guessed, connID)
	return false
}

// dropFromOrder removes an id from the rotation and keeps drawerIndex
// pointing at the same upcoming drawer.
func (s *State) dropFromOrder(connID string) {
	idx := slices.Index(s.drawerOrder, connID)
	if idx == -1 {
		return
	}
	s.drawerOrder = slices.Delete(s.drawerOrder, idx, idx+1)
	if idx < s.drawerIndex {
		s.drawerIndex--
	}
	if s.drawerIndex >= len(s.drawerOrder) {
		s.drawerIndex = 0
	}
}

// TimeRemaining reports whole seconds left in the turn, floored at zero.
func (s *State) TimeRemaining() int {
	if !s.timerActive || s.turnDeadline.IsZero() {
		return 0
	}
	remaining := s.turnDeadline.Sub(s.now())
	if remaining < 0 {
		return 0
	}
	return int(remaining.Seconds())
}

// TimeElapsed reports whole seconds since the turn started.
func (s *State) TimeElapsed() int {
	if s.turnStart.IsZero() {
		return 0
	}
	return int(s.now().Sub(s.turnStart).Seconds())
}

// Expired reports whether the armed deadline has passed.
func (s *State) Expired() bool {
	if !s.timerActive {
		return false
	}
	return !s.now().Before(s.turnDeadline)
}

func (s *State) Epoch() int { return s.timerEpoch }

func (s *State) Active() bool { return s.active }

func (s *State) snapshot() GameSnapshot {
	return GameSnapshot{
		CurrentRound:  s.round,
		TotalRounds:   s.totalRounds,
		DrawerID:      s.drawerID,
		TimeRemaining: s.TimeRemaining(),
		GameActive:    s.active,
		GameEnded:     s.ended,
		WordCategory:  s.wordCategory,
		GuessedCount:  len(s.guessed),
	}
}
