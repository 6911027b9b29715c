package bot

import (
	"github.com/iamasit07/connect4-classic/internal/domain"
)

type simulation struct {
	board domain.Board
	row   int
}

func calculateMediumMove(board domain.Board, botPlayer domain.Player) int {
	validColumns := domain.ValidMoves(board)
	if len(validColumns) == 0 {
		return -1
	}

	scores := make(map[int]int, len(validColumns))
	opponent := botPlayer.Other()

	botSimulations := make(map[int]simulation, len(validColumns))
	oppSimulations := make(map[int]simulation, len(validColumns))
	for _, col := range validColumns {
		scores[col] = 0

		botBoard, botRow, _ := domain.SimulateMove(board, col, botPlayer)
		botSimulations[col] = simulation{botBoard, botRow}

		oppBoard, oppRow, _ := domain.SimulateMove(board, col, opponent)
		oppSimulations[col] = simulation{oppBoard, oppRow}
	}

	currentOpponentThreat := evaluateWinningThreat(board, opponent, botPlayer)
	center := domain.Columns / 2

	for _, col := range validColumns {
		botSim := botSimulations[col]
		oppSim := oppSimulations[col]

		// immediate win, then immediate block
		if won, _ := domain.CheckWin(botSim.board, botSim.row, col, botPlayer); won {
			scores[col] += SCORE_WIN_NOW
		}
		if won, _ := domain.CheckWin(oppSim.board, oppSim.row, col, opponent); won {
			scores[col] += SCORE_BLOCK_WIN
		}

		// one move of look-ahead for both sides
		scores[col] += evaluateWinningThreat(botSim.board, botPlayer, opponent)
		if evaluateWinningThreat(botSim.board, opponent, botPlayer) < currentOpponentThreat {
			scores[col] += SCORE_BLOCK_WIN_THREAT
		}

		scores[col] += evaluateThreats(botSim.board, botSim.row, col, botPlayer)
		scores[col] += evaluateThreats(oppSim.board, oppSim.row, col, opponent) / 2

		switch abs(col - center) {
		case 0:
			scores[col] += SCORE_CENTER
		case 1:
			scores[col] += SCORE_NEAR_CENTER
		case 2:
			scores[col] += SCORE_EDGE
		}
	}

	return findBestColumn(scores)
}

// findBestColumn picks the highest score, ties going to the column nearer the centre
func findBestColumn(scores map[int]int) int {
	center := domain.Columns / 2
	bestColumn := -1
	maxScore := 0

	for col := 0; col < domain.Columns; col++ {
		score, exists := scores[col]
		if !exists {
			continue
		}
		if bestColumn == -1 || score > maxScore ||
			(score == maxScore && abs(col-center) < abs(bestColumn-center)) {
			maxScore = score
			bestColumn = col
		}
	}

	return bestColumn
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
