package bot

import (
	"github.com/iamasit07/connect4-classic/internal/domain"
)

const (
	// Score priorities (from highest to lowest)
	SCORE_WIN_NOW           = 100000 // Bot can win immediately
	SCORE_BLOCK_WIN         = 10000  // Block opponent's immediate win
	SCORE_CREATE_WIN_THREAT = 8000   // Create a position where bot can win next move
	SCORE_BLOCK_WIN_THREAT  = 5000   // Block opponent's potential win setup
	SCORE_THREE_IN_ROW      = 400
	SCORE_TWO_IN_ROW        = 100
	SCORE_SINGLE            = 25
	SCORE_CENTER            = 30
	SCORE_NEAR_CENTER       = 20
	SCORE_EDGE              = 5
)

var directions = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal \
	{1, -1}, // diagonal /
}

// evaluateBoard is the static score of a position from botPlayer's side
func evaluateBoard(board domain.Board, botPlayer, opponent domain.Player) int {
	score := 0
	bot, opp := botPlayer.Cell(), opponent.Cell()

	for row := 0; row < domain.Rows; row++ {
		for col := 0; col < domain.Columns; col++ {
			switch board.At(row, col) {
			case bot:
				score += evaluatePosition(board, row, col, botPlayer)
			case opp:
				score -= evaluatePosition(board, row, col, opponent)
			}
		}
	}

	centerCol := domain.Columns / 2
	for row := 0; row < domain.Rows; row++ {
		switch board.At(row, centerCol) {
		case bot:
			score += POSITION_WEIGHT * 2
		case opp:
			score -= POSITION_WEIGHT * 2
		}
	}

	return score
}

func evaluatePosition(board domain.Board, row, col int, player domain.Player) int {
	score := POSITION_WEIGHT

	for _, dir := range directions {
		total, hasSpace := lineAround(board, row, col, dir, player)
		if !hasSpace {
			continue
		}
		if total >= 3 {
			score += THREE_IN_ROW_WEIGHT
		} else if total == 2 {
			score += TWO_IN_ROW_WEIGHT
		}
	}

	return score
}

// evaluateThreats scores the lines a disc at (row, col) takes part in
func evaluateThreats(board domain.Board, row, col int, player domain.Player) int {
	score := 0

	for _, dir := range directions {
		total, hasSpace := lineAround(board, row, col, dir, player)
		if !hasSpace {
			continue // No point in counting if we can't extend
		}
		switch {
		case total >= 3:
			score += SCORE_THREE_IN_ROW
		case total == 2:
			score += SCORE_TWO_IN_ROW
		case total == 1:
			score += SCORE_SINGLE
		}
	}

	return score
}

// lineAround counts player's discs either side of (row, col) along dir and
// reports whether the line can still be extended by a playable move
func lineAround(board domain.Board, row, col int, dir [2]int, player domain.Player) (int, bool) {
	dRow, dCol := dir[0], dir[1]
	posCount := domain.CountDiskInDirection(board, row, col, dRow, dCol, player)
	negCount := domain.CountDiskInDirection(board, row, col, -dRow, -dCol, player)
	return posCount + negCount, checkSpaceForExtension(board, row, col, dRow, dCol, posCount, negCount)
}

// evaluateWinningThreat scores how many immediate wins player has and
// whether the opponent can block them
func evaluateWinningThreat(board domain.Board, player, opponent domain.Player) int {
	winningMoves := []int{}
	for _, col := range domain.ValidMoves(board) {
		if _, won := wins(board, col, player); won {
			winningMoves = append(winningMoves, col)
		}
	}

	// two open wins cannot both be blocked
	if len(winningMoves) >= 2 {
		return SCORE_CREATE_WIN_THREAT
	}

	if len(winningMoves) == 1 {
		blockBoard, _, _ := domain.SimulateMove(board, winningMoves[0], opponent)

		for _, nextCol := range domain.ValidMoves(blockBoard) {
			if _, won := wins(blockBoard, nextCol, player); won {
				return SCORE_CREATE_WIN_THREAT / 2
			}
		}
		return SCORE_CREATE_WIN_THREAT / 4
	}

	return 0
}

func checkSpaceForExtension(board domain.Board, row, col, dRow, dCol, posCount, negCount int) bool {
	posRow := row + dRow*(posCount+1)
	posCol := col + dCol*(posCount+1)
	if isOpenAndPlayable(board, posRow, posCol) {
		return true
	}

	negRow := row - dRow*(negCount+1)
	negCol := col - dCol*(negCount+1)
	return isOpenAndPlayable(board, negRow, negCol)
}

func isOpenAndPlayable(board domain.Board, row, col int) bool {
	return board.InBounds(row, col) && board.At(row, col) == domain.CellEmpty && isPlayableSpace(board, row, col)
}

// Check if a space is actually playable (respects gravity)
func isPlayableSpace(board domain.Board, row, col int) bool {
	if row == domain.Rows-1 {
		return true
	}
	return board.At(row+1, col) != domain.CellEmpty
}
