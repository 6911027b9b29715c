package bot

import (
	"fmt"
	"strings"

	"github.com/iamasit07/connect4-classic/internal/domain"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ParseDifficulty accepts easy, medium or hard in any case
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case Easy, Medium, Hard:
		return d, nil
	default:
		return "", fmt.Errorf("unknown bot difficulty %q", s)
	}
}

// CalculateBestMove selects the best move based on difficulty.
// Returns -1 when the board has no playable column.
func CalculateBestMove(board domain.Board, botPlayer domain.Player, difficulty Difficulty) int {
	switch difficulty {
	case Easy:
		return CalculateBestMoveEasy(board, botPlayer)
	case Medium:
		return calculateMediumMove(board, botPlayer)
	case Hard:
		return CalculateBestMoveMinimax(board, botPlayer)
	default:
		return calculateMediumMove(board, botPlayer)
	}
}

// wins drops player's disc in col and reports whether it connects four
func wins(board domain.Board, col int, player domain.Player) (domain.Board, bool) {
	next, row, err := domain.SimulateMove(board, col, player)
	if err != nil {
		return board, false
	}
	won, _ := domain.CheckWin(next, row, col, player)
	return next, won
}
