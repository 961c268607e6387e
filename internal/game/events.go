package game

// Event names shared with the client. Inbound names double as the dispatch
// keys in the websocket read loop.
const (
	EventConnected    = "connected"
	EventCreateRoom   = "create_room"
	EventRoomCreated  = "room_created"
	EventJoinRoom     = "join_room"
	EventRoomJoined   = "room_joined"
	EventJoinError    = "join_error"
	EventPlayerJoined = "player_joined"
	EventPlayerLeft   = "player_left"
	EventError        = "error"

	EventStartGame   = "start_game"
	EventGameStarted = "game_started"
	EventYourTurn    = "your_turn_to_draw"
	EventNewTurn     = "new_turn"
	EventTurnEnded   = "turn_ended"
	EventGameEnded   = "game_ended"

	EventDraw        = "draw"
	EventClearCanvas = "clear_canvas"

	EventGuess          = "guess"
	EventCorrectGuess   = "correct_guess"
	EventAlreadyGuessed = "already_guessed"
	EventChatMessage    = "chat_message"
	EventReaction       = "reaction"

	EventGetGameState    = "get_game_state"
	EventGameStateUpdate = "game_state_update"
)

type PlayerSnapshot struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Score      int    `json:"score"`
	HasGuessed bool   `json:"has_guessed"`
}

type RoomSnapshot struct {
	RoomCode    string           `json:"room_code"`
	HostID      string           `json:"host_id"`
	Players     []PlayerSnapshot `json:"players"`
	PlayerCount int              `json:"player_count"`
	GameStarted bool             `json:"game_started"`
}

type GameSnapshot struct {
	CurrentRound  int    `json:"current_round"`
	TotalRounds   int    `json:"total_rounds"`
	DrawerID      string `json:"drawer_id"`
	TimeRemaining int    `json:"time_remaining"`
	GameActive    bool   `json:"game_active"`
	GameEnded     bool   `json:"game_ended"`
	WordCategory  string `json:"word_category"`
	GuessedCount  int    `json:"guessed_count"`
}

// --- outbound payloads ---

type RoomCreatedPayload struct {
	RoomCode string       `json:"room_code"`
	Room     RoomSnapshot `json:"room"`
}

type RoomJoinedPayload struct {
	RoomCode string       `json:"room_code"`
	Room     RoomSnapshot `json:"room"`
}

type JoinErrorPayload struct {
	Message string `json:"message"`
}

type PlayerListPayload struct {
	Username string           `json:"username"`
	Players  []PlayerSnapshot `json:"players"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type GameStartedPayload struct {
	GameState GameSnapshot `json:"game_state"`
	DrawerID  string       `json:"drawer_id"`
}

type YourTurnPayload struct {
	Word     string `json:"word"`
	Category string `json:"category"`
}

type CorrectGuessPayload struct {
	Username    string             `json:"username"`
	Points      int                `json:"points"`
	TimeElapsed int                `json:"time_elapsed"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

type ChatMessagePayload struct {
	Username string `json:"username"`
	Message  string `json:"message"`
	IsSystem bool   `json:"is_system"`
}

type AlreadyGuessedPayload struct {
	Message string `json:"message"`
}

type ReactionPayload struct {
	Username string  `json:"username"`
	Emoji    string  `json:"emoji"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

type TurnEndedPayload struct {
	Word        string             `json:"word"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

type NewTurnPayload struct {
	GameState GameSnapshot `json:"game_state"`
	DrawerID  string       `json:"drawer_id"`
}

type GameEndedPayload struct {
	FinalLeaderboard []LeaderboardEntry `json:"final_leaderboard"`
	Winners          []LeaderboardEntry `json:"winners"`
}

// GameStateUpdatePayload is the full state answer; Word is set only for the
// drawer.
type GameStateUpdatePayload struct {
	CurrentDrawer string  `json:"current_drawer"`
	DrawerID      string  `json:"drawer_id"`
	Word          *string `json:"word"`
	Category      string  `json:"category"`
	CurrentRound  int     `json:"current_round"`
	IsDrawer      bool    `json:"is_drawer"`
	GameActive    bool    `json:"game_active"`
	TimeRemaining int     `json:"time_remaining"`
}
