package game

import (
	"sort"
	"time"

	"github.com/DhanushKumar2007/multiplayer-drawing-game/internal/config"
)

// GuesserPoints computes the award for a correct guess: a flat base plus a
// speed bonus for beating the threshold. Non-increasing in elapsed time.
func GuesserPoints(elapsed time.Duration, cfg *config.Config) int {
	points := cfg.GuesserPoints
	if elapsed <= cfg.SpeedBonusThreshold {
		points += cfg.SpeedBonusPoints
	}
	return points
}

// DrawerPoints is the flat award the drawer earns per correct guess against
// their word.
func DrawerPoints(cfg *config.Config) int {
	return cfg.DrawerPoints
}

// LeaderboardEntry is one scoreboard row.
type LeaderboardEntry struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// Leaderboard sorts players by score descending, ties broken by username
// ascending.
func Leaderboard(players map[string]*Player) []LeaderboardEntry {
	board := make([]LeaderboardEntry, 0, len(players))
	for _, p := range players {
		board = append(board, LeaderboardEntry{ID: p.id, Username: p.username, Score: p.score})
	}
	sort.Slice(board, func(i, j int) bool {
		if board[i].Score != board[j].Score {
			return board[i].Score > board[j].Score
		}
		return board[i].Username < board[j].Username
	})
	return board
}

// Winners returns every player tied at the maximum score.
func Winners(players map[string]*Player) []LeaderboardEntry {
	board := Leaderboard(players)
	if len(board) == 0 {
		return nil
	}
	top := board[0].Score
	winners := make([]LeaderboardEntry, 0, 1)
	for _, entry := range board {
		if entry.Score != top {
			break
		}
		winners = append(winners, entry)
	}
	return winners
}

// ResetGuessFlags clears the per-turn guess marker on every player. Runs at
// the start of each turn, not each round.
func ResetGuessFlags(players map[string]*Player) {
	for _, p := range players {
		p.hasGuessed = false
	}
}
