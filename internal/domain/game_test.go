package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fills the whole grid without a four-in-a-row ever appearing
var drawSequence = []int{
	4, 3, 3, 3, 3, 3, 3, 2, 2, 2, 2, 2, 2, 4,
	4, 4, 4, 4, 1, 1, 1, 1, 1, 1, 5, 5, 5, 5,
	5, 5, 0, 0, 0, 0, 0, 6, 6, 6, 6, 6, 6, 0,
}

func assertInitial(t *testing.T, s GameState) {
	t.Helper()
	assert.Equal(t, NewBoard(), s.Board())
	assert.Equal(t, PlayerOne, s.CurrentPlayer())
	assert.False(t, s.IsOver())
	assert.Equal(t, 0, s.MoveCount())
	_, hasWinner := s.Winner()
	assert.False(t, hasWinner)
	assert.Empty(t, s.WinningLine())
	assert.Equal(t, StatusActive, s.Status())
}

func TestNewGameInitialConfiguration(t *testing.T) {
	assertInitial(t, NewGame())
}

func TestApplyMoveDropsAndAlternates(t *testing.T) {
	s := NewGame()

	s = ApplyMove(s, 3)
	assert.Equal(t, CellPlayerOne, s.Board().At(5, 3))
	assert.Equal(t, PlayerTwo, s.CurrentPlayer())
	assert.Equal(t, 1, s.MoveCount())

	s = ApplyMove(s, 3)
	assert.Equal(t, CellPlayerTwo, s.Board().At(4, 3))
	assert.Equal(t, PlayerOne, s.CurrentPlayer())
	assert.Equal(t, 2, s.MoveCount())
}

func TestApplyMoveLeavesPreviousStateUntouched(t *testing.T) {
	before := ApplyMove(NewGame(), 0)
	snapshot := before.Board()

	after := ApplyMove(before, 0)

	assert.Equal(t, snapshot, before.Board())
	assert.Equal(t, 1, before.MoveCount())
	assert.Equal(t, CellEmpty, before.Board().At(4, 0))
	assert.Equal(t, CellPlayerTwo, after.Board().At(4, 0))
}

func TestApplyMoveInvalidColumnIsNoop(t *testing.T) {
	s := ApplyMove(NewGame(), 2)

	for _, col := range []int{-1, Columns, 42} {
		next, row, err := TryMove(s, col)
		assert.ErrorIs(t, err, ErrInvalidColumn)
		assert.Equal(t, -1, row)
		assert.Equal(t, s, next)
		assert.Equal(t, s, ApplyMove(s, col))
	}
}

func TestSeventhDropIntoColumnIsRejected(t *testing.T) {
	s := NewGame()
	for i := 0; i < Rows; i++ {
		s = ApplyMove(s, 0)
	}
	require.Equal(t, Rows, s.MoveCount())
	require.False(t, s.IsOver())

	next, _, err := TryMove(s, 0)
	assert.ErrorIs(t, err, ErrColumnFull)
	assert.Equal(t, s, next)
	assert.Equal(t, s, ApplyMove(s, 0))
	assert.False(t, next.IsOver())
	assert.Equal(t, PlayerOne, next.CurrentPlayer())
}

func TestHorizontalWinScenario(t *testing.T) {
	// player one walks along the bottom row while player two stacks column 0
	s := Replay([]int{0, 0, 1, 0, 2, 0, 3})

	require.True(t, s.IsOver())
	winner, ok := s.Winner()
	require.True(t, ok)
	assert.Equal(t, PlayerOne, winner)
	assert.Equal(t, StatusWon, s.Status())
	assert.Equal(t, 7, s.MoveCount())
	assert.ElementsMatch(t, []Coord{{5, 0}, {5, 1}, {5, 2}, {5, 3}}, s.WinningLine())
	for _, c := range s.WinningLine() {
		assert.Equal(t, CellPlayerOne, s.Board().At(c.Row, c.Col))
		assert.True(t, s.IsWinningCell(c.Row, c.Col))
	}
	assert.False(t, s.IsWinningCell(4, 0))
}

func TestVerticalWinForPlayerTwo(t *testing.T) {
	s := Replay([]int{0, 6, 1, 6, 0, 6, 1, 6})

	winner, ok := s.Winner()
	require.True(t, ok)
	assert.Equal(t, PlayerTwo, winner)
	assert.ElementsMatch(t, []Coord{{2, 6}, {3, 6}, {4, 6}, {5, 6}}, s.WinningLine())
}

func TestCurrentPlayerStillFlipsOnWinningMove(t *testing.T) {
	s := Replay([]int{0, 0, 1, 0, 2, 0, 3})

	winner, _ := s.Winner()
	assert.Equal(t, PlayerOne, winner)
	assert.Equal(t, PlayerTwo, s.CurrentPlayer())
}

func TestMovesAfterGameOverAreIgnored(t *testing.T) {
	s := Replay([]int{0, 0, 1, 0, 2, 0, 3})

	next, _, err := TryMove(s, 5)
	assert.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, s, next)
	assert.Equal(t, s, ApplyMove(s, 5))
}

func TestFullBoardIsDraw(t *testing.T) {
	s := NewGame()
	for i, col := range drawSequence {
		require.False(t, s.IsOver(), "game ended early at move %d", i)
		next, _, err := TryMove(s, col)
		require.NoError(t, err, "move %d column %d", i, col)
		s = next
	}

	assert.True(t, s.IsOver())
	_, hasWinner := s.Winner()
	assert.False(t, hasWinner)
	assert.Empty(t, s.WinningLine())
	assert.Equal(t, StatusDraw, s.Status())
	assert.Equal(t, Rows*Columns, s.MoveCount())
	assert.True(t, IsDraw(s.Board()))
}

func TestResetIsIdempotent(t *testing.T) {
	mid := Replay([]int{3, 3, 4})
	won := Replay([]int{0, 0, 1, 0, 2, 0, 3})
	drawn := Replay(drawSequence)

	for _, s := range []GameState{NewGame(), mid, won, drawn} {
		fresh := s.Reset()
		assertInitial(t, fresh)
		assert.Equal(t, NewGame(), fresh)
		assert.Equal(t, fresh, fresh.Reset())
	}
}

func TestWinningLineIsACopy(t *testing.T) {
	s := Replay([]int{0, 0, 1, 0, 2, 0, 3})

	line := s.WinningLine()
	line[0] = Coord{Row: 0, Col: 6}

	assert.NotEqual(t, line, s.WinningLine())
	assert.True(t, s.IsWinningCell(5, 3))
}

func TestRandomGamesKeepCountersConsistent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for game := 0; game < 200; game++ {
		s := NewGame()
		accepted := 0

		for attempt := 0; attempt < 80 && !s.IsOver(); attempt++ {
			col := rng.Intn(Columns+2) - 1 // includes out of range columns
			mover := s.CurrentPlayer()

			next := ApplyMove(s, col)
			changed := next.Board() != s.Board()
			if changed {
				accepted++
				assert.Equal(t, mover.Other(), next.CurrentPlayer())
				assert.Equal(t, s.Board().DiscCount()+1, next.Board().DiscCount())
			} else {
				assert.Equal(t, s, next)
			}
			assert.Equal(t, accepted, next.MoveCount())
			s = next
		}

		if w, ok := s.Winner(); ok {
			line := s.WinningLine()
			assert.GreaterOrEqual(t, len(line), ToWin)
			for _, c := range line {
				assert.Equal(t, w.Cell(), s.Board().At(c.Row, c.Col))
			}
		}
	}
}
