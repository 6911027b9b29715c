package bot

import (
	"math/rand"

	"github.com/iamasit07/connect4-classic/internal/domain"
)

// CalculateBestMoveEasy wins if it can, blocks an immediate loss, otherwise plays at random
func CalculateBestMoveEasy(board domain.Board, botPlayer domain.Player) int {
	validColumns := domain.ValidMoves(board)
	if len(validColumns) == 0 {
		return -1
	}

	opponent := botPlayer.Other()

	for _, col := range validColumns {
		if _, won := wins(board, col, botPlayer); won {
			return col
		}
	}

	for _, col := range validColumns {
		if _, won := wins(board, col, opponent); won {
			return col
		}
	}

	return validColumns[rand.Intn(len(validColumns))]
}
