package game

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/DhanushKumar2007/multiplayer-drawing-game/internal/config"
)

// Hub binds socket events to the room registry, the turn state machine, and
// scoring. Handlers run concurrently per inbound message; everything that
// touches one room's state, including the turn-end transition itself, runs
// under that room's lock, so at most one of the three turn-end triggers (all
// guessed, timer fire, drawer disconnect) wins per turn.
type Hub struct {
	cfg      *config.Config
	registry *Registry
	sessions *SessionStore
	words    WordSource
}

func NewHub(cfg *config.Config, registry *Registry, sessions *SessionStore, words WordSource) *Hub {
	return &Hub{
		cfg:      cfg,
		registry: registry,
		sessions: sessions,
		words:    words,
	}
}

func (r *Room) ensureGameLocked(cfg *config.Config, words WordSource) *State {
	if r.game == nil {
		r.game = newState(cfg.TotalRounds, cfg.TurnDuration, words)
	}
	return r.game
}

// HandleCreateRoom creates a room with the sender as host.
func (h *Hub) HandleCreateRoom(connID, username string, conn Sender) {
	if username == "" {
		username = "Player"
	}
	room, err := h.registry.CreateRoom(connID, username, conn)
	if err != nil {
		sendTo(conn, EventError, ErrorPayload{Message: err.Error()})
		return
	}
	h.sessions.Create(connID, room.code, username)

	room.mu.Lock()
	snapshot := room.snapshotLocked()
	room.mu.Unlock()

	log.Info().Str("room", room.code).Str("host", username).Msg("room created")
	sendTo(conn, EventRoomCreated, RoomCreatedPayload{RoomCode: room.code, Room: snapshot})
}

// HandleJoinRoom adds the sender to an existing room and announces them.
func (h *Hub) HandleJoinRoom(connID, code, username string, conn Sender) {
	if username == "" {
		username = "Player"
	}
	room, err := h.registry.JoinRoom(code, connID, username, conn)
	if err != nil {
		sendTo(conn, EventJoinError, JoinErrorPayload{Message: err.Error()})
		return
	}
	h.sessions.Create(connID, room.code, username)

	room.mu.Lock()
	defer room.mu.Unlock()

	log.Info().Str("room", room.code).Str("player", username).Msg("player joined")
	sendTo(conn, EventRoomJoined, RoomJoinedPayload{RoomCode: room.code, Room: room.snapshotLocked()})
	h.broadcastLocked(room, EventPlayerJoined, PlayerListPayload{
		Username: username,
		Players:  room.playerListLocked(),
	})
}

// HandleStartGame starts the game. Host only, needs the minimum player
// count.
func (h *Hub) HandleStartGame(connID, code string, conn Sender) {
	room, ok := h.registry.Get(code)
	if !ok {
		sendTo(conn, EventError, ErrorPayload{Message: ErrRoomNotFound.Error()})
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.hostID != connID {
		sendTo(conn, EventError, ErrorPayload{Message: ErrNotHost.Error()})
		return
	}
	if room.countLocked() < h.cfg.MinPlayers {
		sendTo(conn, EventError, ErrorPayload{Message: ErrNotEnoughPlayers.Error()})
		return
	}
	if room.gameStarted {
		sendTo(conn, EventError, ErrorPayload{Message: ErrGameInProgress.Error()})
		return
	}

	room.gameStarted = true
	st := room.ensureGameLocked(h.cfg, h.words)
	st.StartGame(room.memberIDsLocked())
	if !st.StartTurn() {
		return
	}
	ResetGuessFlags(room.players)
	h.updateTurnSessionsLocked(room, st)

	log.Info().Str("room", room.code).Str("drawer", st.drawerID).Msg("game started")
	h.broadcastLocked(room, EventGameStarted, GameStartedPayload{
		GameState: st.snapshot(),
		DrawerID:  st.drawerID,
	})
	h.sendToDrawerLocked(room, st)
	h.scheduleTurnTimer(room.code, st.timerEpoch)
}

// HandleDraw relays drawing data from the drawer to everyone else,
// untouched.
func (h *Hub) HandleDraw(connID, code string, raw json.RawMessage) {
	room, ok := h.registry.Get(code)
	if !ok {
		return
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	if room.game == nil || !room.game.IsDrawer(connID) {
		return
	}
	h.broadcastLocked(room, EventDraw, raw, connID)
}

// HandleClearCanvas relays a canvas wipe. Drawer only.
func (h *Hub) HandleClearCanvas(connID, code string) {
	room, ok := h.registry.Get(code)
	if !ok {
		return
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	if room.game == nil || !room.game.IsDrawer(connID) {
		return
	}
	h.broadcastLocked(room, EventClearCanvas, struct{}{}, connID)
}

// HandleGuess runs the guess algorithm: validate sender, compare the
// normalized text against the word, award points on a match, and fall back
// to chat on a miss.
func (h *Hub) HandleGuess(connID, code, guess string) {
	room, ok := h.registry.Get(code)
	if !ok {
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	st := room.game
	if st == nil || !st.active {
		return
	}
	player := room.playerLocked(connID)
	if player == nil {
		return
	}
	if st.IsDrawer(connID) {
		return
	}
	if st.HasGuessed(connID) {
		player.send(EventAlreadyGuessed, AlreadyGuessedPayload{Message: "You already guessed correctly!"})
		return
	}

	// Between turns the word has just been revealed, so a matching guess
	// earns nothing; the text still flows as chat.
	if st.timerActive && matchGuess(guess, st.currentWord) {
		st.MarkGuessed(connID)

		elapsed := st.TimeElapsed()
		points := GuesserPoints(time.Duration(elapsed)*time.Second, h.cfg)
		player.score += points
		player.hasGuessed = true
		if drawer := room.playerLocked(st.drawerID); drawer != nil {
			drawer.score += DrawerPoints(h.cfg)
		}

		log.Info().Str("room", room.code).Str("player", player.username).Int("points", points).Msg("correct guess")
		h.broadcastLocked(room, EventCorrectGuess, CorrectGuessPayload{
			Username:    player.username,
			Points:      points,
			TimeElapsed: elapsed,
			Leaderboard: Leaderboard(room.players),
		})

		if h.allGuessedLocked(room, st) {
			h.endTurnLocked(room, st)
		}
		return
	}

	h.broadcastLocked(room, EventChatMessage, ChatMessagePayload{
		Username: player.username,
		Message:  guess,
	})
}

// HandleChat broadcasts a plain chat message.
func (h *Hub) HandleChat(connID, code, message string) {
	room, ok := h.registry.Get(code)
	if !ok {
		return
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	player := room.playerLocked(connID)
	if player == nil {
		return
	}
	h.broadcastLocked(room, EventChatMessage, ChatMessagePayload{
		Username: player.username,
		Message:  message,
	})
}

// HandleReaction broadcasts an emoji reaction with its canvas position.
func (h *Hub) HandleReaction(connID, code, emoji string, x, y float64) {
	room, ok := h.registry.Get(code)
	if !ok {
		return
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	player := room.playerLocked(connID)
	if player == nil {
		return
	}
	h.broadcastLocked(room, EventReaction, ReactionPayload{
		Username: player.username,
		Emoji:    emoji,
		X:        x,
		Y:        y,
	})
}

// HandleGameState answers a state query for the requester only. The word is
// included only when the requester is the drawer.
func (h *Hub) HandleGameState(connID, code string, conn Sender) {
	if code == "" {
		sess, ok := h.sessions.Get(connID)
		if !ok {
			return
		}
		code = sess.RoomCode
	}
	room, ok := h.registry.Get(code)
	if !ok {
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	st := room.game
	if st == nil {
		sendTo(conn, EventGameStateUpdate, GameStateUpdatePayload{})
		return
	}

	payload := GameStateUpdatePayload{
		DrawerID:      st.drawerID,
		Category:      st.wordCategory,
		CurrentRound:  st.round,
		IsDrawer:      st.IsDrawer(connID),
		GameActive:    st.active,
		TimeRemaining: st.TimeRemaining(),
	}
	if drawer := room.playerLocked(st.drawerID); drawer != nil {
		payload.CurrentDrawer = drawer.username
	}
	if st.IsDrawer(connID) {
		word := st.currentWord
		payload.Word = &word
	}
	sendTo(conn, EventGameStateUpdate, payload)
}

// HandleDisconnect tears down the connection's membership. Removal and any
// forced turn end share one critical section so a racing timer or guess
// cannot end the same turn twice.
func (h *Hub) HandleDisconnect(connID string) {
	h.sessions.Remove(connID)

	room := h.registry.FindRoomOf(connID)
	if room == nil {
		return
	}

	h.registry.mu.Lock()
	room.mu.Lock()
	defer room.mu.Unlock()

	player, removed := room.removeLocked(connID)
	if !removed {
		h.registry.mu.Unlock()
		return
	}
	if len(room.players) == 0 {
		h.registry.dropLocked(room)
		h.registry.mu.Unlock()
		log.Info().Str("room", room.code).Msg("room torn down")
		return
	}
	h.registry.mu.Unlock()

	log.Info().Str("room", room.code).Str("player", player.username).Msg("player left")
	h.broadcastLocked(room, EventPlayerLeft, PlayerListPayload{
		Username: player.username,
		Players:  room.playerListLocked(),
	})

	st := room.game
	if st == nil || !st.active {
		return
	}

	if st.RemovePlayer(connID) {
		// Departing drawer: same forced end as a timer expiry, then drop
		// them from the rotation.
		h.endTurnLocked(room, st)
		st.dropFromOrder(connID)
		return
	}
	if st.timerActive && h.allGuessedLocked(room, st) {
		h.endTurnLocked(room, st)
	}
}

// --- turn flow ---

// scheduleTurnTimer arms the background deadline for the current turn. The
// callback is never cancelled; the epoch fence neutralizes it if the turn
// has already advanced when it fires.
func (h *Hub) scheduleTurnTimer(code string, epoch int) {
	time.AfterFunc(h.cfg.TurnDuration, func() {
		h.onTurnTimer(code, epoch)
	})
}

func (h *Hub) onTurnTimer(code string, epoch int) {
	room, ok := h.registry.Get(code)
	if !ok {
		return
	}
	room.mu.Lock()
	defer room.mu.Unlock()

	st := room.game
	if st == nil || !st.active {
		return
	}
	if st.timerEpoch != epoch || !st.Expired() {
		return
	}
	log.Info().Str("room", room.code).Int("epoch", epoch).Msg("turn timer expired")
	h.endTurnLocked(room, st)
}

// endTurnLocked reveals the word, advances the rotation, and either finishes
// the game or schedules the next turn after the grace interval. Caller holds
// room.mu.
func (h *Hub) endTurnLocked(room *Room, st *State) {
	h.broadcastLocked(room, EventTurnEnded, TurnEndedPayload{
		Word:        st.currentWord,
		Leaderboard: Leaderboard(room.players),
	})

	if st.EndTurn() {
		log.Info().Str("room", room.code).Msg("game ended")
		h.broadcastLocked(room, EventGameEnded, GameEndedPayload{
			FinalLeaderboard: Leaderboard(room.players),
			Winners:          Winners(room.players),
		})
		return
	}

	code := room.code
	time.AfterFunc(h.cfg.TurnGrace, func() {
		h.nextTurn(code)
	})
}

// nextTurn begins the following turn once the grace interval has let
// clients render the summary. Runs on the timer goroutine; per-room only.
func (h *Hub) nextTurn(code string) {
	room, ok := h.registry.Get(code)
	if !ok {
		return
	}
	room.mu.Lock()
	defer room.mu.Unlock()

	st := room.game
	if st == nil || !st.active {
		return
	}
	if !st.StartTurn() {
		return
	}
	ResetGuessFlags(room.players)
	h.updateTurnSessionsLocked(room, st)

	log.Info().Str("room", room.code).Str("drawer", st.drawerID).Int("round", st.round).Msg("new turn")
	h.broadcastLocked(room, EventNewTurn, NewTurnPayload{
		GameState: st.snapshot(),
		DrawerID:  st.drawerID,
	})
	h.sendToDrawerLocked(room, st)
	h.scheduleTurnTimer(room.code, st.timerEpoch)
}

// --- helpers ---

func (h *Hub) sendToDrawerLocked(room *Room, st *State) {
	drawer := room.playerLocked(st.drawerID)
	if drawer == nil {
		return
	}
	drawer.send(EventYourTurn, YourTurnPayload{
		Word:     st.currentWord,
		Category: st.wordCategory,
	})
}

// allGuessedLocked reports whether every current non-drawer has guessed.
func (h *Hub) allGuessedLocked(room *Room, st *State) bool {
	nonDrawers := 0
	for id := range room.players {
		if id != st.drawerID {
			nonDrawers++
		}
	}
	return nonDrawers > 0 && len(st.guessed) >= nonDrawers
}

func (h *Hub) updateTurnSessionsLocked(room *Room, st *State) {
	for id := range room.players {
		isDrawer := id == st.drawerID
		word := ""
		if isDrawer {
			word = st.currentWord
		}
		h.sessions.Update(id, SessionUpdate{IsDrawer: &isDrawer, CurrentWord: &word})
	}
}

func (h *Hub) broadcastLocked(room *Room, event string, data any, except ...string) {
	for id, p := range room.players {
		skip := false
		for _, ex := range except {
			if id == ex {
				skip = true
				break
			}
		}
		if !skip {
			p.send(event, data)
		}
	}
}

func sendTo(conn Sender, event string, data any) {
	if conn == nil {
		return
	}
	_ = conn.Send(event, data)
}

// matchGuess compares a guess to the target word: trimmed, case-folded,
// exact equality.
func matchGuess(guess, word string) bool {
	return strings.EqualFold(strings.TrimSpace(guess), strings.TrimSpace(word))
}
