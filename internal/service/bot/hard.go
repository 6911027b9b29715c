package bot

import (
	"math"

	"github.com/iamasit07/connect4-classic/internal/domain"
)

const (
	MINIMAX_DEPTH       = 7
	MINIMAX_WIN         = 1000000
	MINIMAX_LOSS        = -1000000
	POSITION_WEIGHT     = 10
	TWO_IN_ROW_WEIGHT   = 50
	THREE_IN_ROW_WEIGHT = 500
)

// CalculateBestMoveMinimax implements hard difficulty using Minimax with alpha-beta pruning
func CalculateBestMoveMinimax(board domain.Board, botPlayer domain.Player) int {
	return minimaxRoot(board, botPlayer, MINIMAX_DEPTH)
}

func minimaxRoot(board domain.Board, botPlayer domain.Player, depth int) int {
	validColumns := orderCenterFirst(domain.ValidMoves(board))
	if len(validColumns) == 0 {
		return -1
	}

	bestCol := validColumns[0]
	bestScore := math.MinInt32
	alpha := math.MinInt32
	beta := math.MaxInt32

	opponent := botPlayer.Other()

	for _, col := range validColumns {
		testBoard, won := wins(board, col, botPlayer)
		if won {
			return col
		}

		score := minimax(testBoard, depth-1, depth, alpha, beta, false, botPlayer, opponent)
		if score > bestScore {
			bestScore = score
			bestCol = col
		}
		alpha = max(alpha, bestScore)
	}

	return bestCol
}

// minimax scores board with botPlayer maximising; rootDepth lets quicker
// wins and slower losses score better
func minimax(board domain.Board, depth, rootDepth int, alpha, beta int, isMaximizing bool, botPlayer, opponent domain.Player) int {
	validColumns := orderCenterFirst(domain.ValidMoves(board))

	if depth == 0 || len(validColumns) == 0 {
		return evaluateBoard(board, botPlayer, opponent)
	}

	if isMaximizing {
		maxEval := math.MinInt32
		for _, col := range validColumns {
			testBoard, won := wins(board, col, botPlayer)
			if won {
				return MINIMAX_WIN - (rootDepth - depth)
			}

			eval := minimax(testBoard, depth-1, rootDepth, alpha, beta, false, botPlayer, opponent)
			maxEval = max(maxEval, eval)
			alpha = max(alpha, eval)
			if beta <= alpha {
				break // Beta cutoff
			}
		}
		return maxEval
	}

	minEval := math.MaxInt32
	for _, col := range validColumns {
		testBoard, won := wins(board, col, opponent)
		if won {
			return MINIMAX_LOSS + (rootDepth - depth)
		}

		eval := minimax(testBoard, depth-1, rootDepth, alpha, beta, true, botPlayer, opponent)
		minEval = min(minEval, eval)
		beta = min(beta, eval)
		if beta <= alpha {
			break // Alpha cutoff
		}
	}
	return minEval
}

// orderCenterFirst sorts columns by distance from the centre so alpha-beta
// sees the strongest moves first
func orderCenterFirst(columns []int) []int {
	center := domain.Columns / 2
	ordered := make([]int, 0, len(columns))
	for dist := 0; dist <= center; dist++ {
		for _, col := range columns {
			if abs(col-center) == dist {
				ordered = append(ordered, col)
			}
		}
	}
	return ordered
}
