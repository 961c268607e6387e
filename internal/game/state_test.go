package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(words WordSource) *State {
	return newState(3, time.Minute, words)
}

func TestStartTurnRotationAndEpoch(t *testing.T) {
	q := &queueWords{words: []string{"cat", "dog", "fox"}, category: "animals"}
	st := newTestState(q)
	st.StartGame([]string{"a", "b", "c"})

	require.True(t, st.StartTurn())
	assert.Equal(t, "a", st.drawerID)
	assert.Equal(t, "cat", st.currentWord)
	assert.Equal(t, "animals", st.wordCategory)
	assert.Equal(t, 1, st.timerEpoch)
	assert.True(t, st.timerActive)

	assert.False(t, st.EndTurn())
	require.True(t, st.StartTurn())
	assert.Equal(t, "b", st.drawerID)
	assert.Equal(t, 2, st.timerEpoch)
}

func TestStartTurnEmptyOrder(t *testing.T) {
	st := newTestState(&queueWords{words: []string{"cat"}, category: "animals"})
	assert.False(t, st.StartTurn())
}

func TestStartTurnExcludesUsedWords(t *testing.T) {
	src := &MockWordSource{}
	st := newTestState(src)
	st.StartGame([]string{"a", "b"})

	src.On("Pick", map[string]struct{}{}).Return("cat", "animals").Once()
	require.True(t, st.StartTurn())

	src.On("Pick", map[string]struct{}{"cat": {}}).Return("dog", "animals").Once()
	st.EndTurn()
	require.True(t, st.StartTurn())

	assert.Equal(t, map[string]struct{}{"cat": {}, "dog": {}}, st.usedWords)
	src.AssertExpectations(t)
}

func TestRoundAndGameCompletion(t *testing.T) {
	q := &queueWords{words: []string{"cat", "dog", "fox", "owl", "bee", "elk"}, category: "animals"}
	st := newTestState(q)
	st.StartGame([]string{"a", "b"})

	ended := 0
	for round := 1; round <= 3; round++ {
		assert.Equal(t, round, st.round)
		for turn := 0; turn < 2; turn++ {
			require.True(t, st.StartTurn())
			if st.EndTurn() {
				ended++
			}
		}
	}

	assert.Equal(t, 1, ended, "the game must end exactly once")
	assert.True(t, st.ended)
	assert.False(t, st.active)
}

func TestMarkGuessedIdempotent(t *testing.T) {
	st := newTestState(&queueWords{words: []string{"cat"}, category: "animals"})
	st.StartGame([]string{"a", "b"})
	require.True(t, st.StartTurn())

	st.MarkGuessed("b")
	st.MarkGuessed("b")
	assert.Len(t, st.guessed, 1)
	assert.True(t, st.HasGuessed("b"))
	assert.False(t, st.HasGuessed("a"))
}

func TestRemovePlayer(t *testing.T) {
	t.Run("current drawer signals a forced end", func(t *testing.T) {
		st := newTestState(&queueWords{words: []string{"cat"}, category: "animals"})
		st.StartGame([]string{"a", "b", "c"})
		require.True(t, st.StartTurn())

		assert.True(t, st.RemovePlayer("a"))
		// Signal only: the rotation entry stays until the caller drops it.
		assert.Contains(t, st.drawerOrder, "a")
	})

	t.Run("non-drawer is removed and index clamped", func(t *testing.T) {
		st := newTestState(&queueWords{words: []string{"cat", "dog", "fox"}, category: "animals"})
		st.StartGame([]string{"a", "b", "c"})
		require.True(t, st.StartTurn())
		st.EndTurn()
		require.True(t, st.StartTurn())
		st.EndTurn()
		// drawerIndex now points at "c".
		require.True(t, st.StartTurn())
		st.MarkGuessed("a")

		assert.False(t, st.RemovePlayer("a"))
		assert.Equal(t, []string{"b", "c"}, st.drawerOrder)
		assert.Equal(t, 1, st.drawerIndex)
		assert.False(t, st.HasGuessed("a"))
	})

	t.Run("unknown player is a no-op", func(t *testing.T) {
		st := newTestState(&queueWords{words: []string{"cat"}, category: "animals"})
		st.StartGame([]string{"a", "b"})
		assert.False(t, st.RemovePlayer("zz"))
		assert.Equal(t, []string{"a", "b"}, st.drawerOrder)
	})
}

func TestDropFromOrder(t *testing.T) {
	st := newTestState(&queueWords{words: []string{"cat"}, category: "animals"})
	st.StartGame([]string{"a", "b", "c"})
	st.drawerIndex = 2

	st.dropFromOrder("a")
	assert.Equal(t, []string{"b", "c"}, st.drawerOrder)
	assert.Equal(t, 1, st.drawerIndex)

	st.dropFromOrder("c")
	assert.Equal(t, []string{"b"}, st.drawerOrder)
	assert.Equal(t, 0, st.drawerIndex)
}

func TestTimeQueries(t *testing.T) {
	st := newTestState(&queueWords{words: []string{"cat"}, category: "animals"})
	st.StartGame([]string{"a", "b"})

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	st.now = func() time.Time { return now }

	t.Run("zero before any turn", func(t *testing.T) {
		assert.Equal(t, 0, st.TimeRemaining())
		assert.Equal(t, 0, st.TimeElapsed())
		assert.False(t, st.Expired())
	})

	require.True(t, st.StartTurn())

	t.Run("mid turn", func(t *testing.T) {
		now = base.Add(25 * time.Second)
		assert.Equal(t, 35, st.TimeRemaining())
		assert.Equal(t, 25, st.TimeElapsed())
		assert.False(t, st.Expired())
	})

	t.Run("past the deadline", func(t *testing.T) {
		now = base.Add(90 * time.Second)
		assert.Equal(t, 0, st.TimeRemaining())
		assert.Equal(t, 90, st.TimeElapsed())
		assert.True(t, st.Expired())
	})

	t.Run("disarmed after the turn ends", func(t *testing.T) {
		st.EndTurn()
		assert.Equal(t, 0, st.TimeRemaining())
		assert.False(t, st.Expired())
	})
}
