package domain

// GameState is an immutable snapshot of a match. Every transition returns a
// new value; accessors hand out copies.
type GameState struct {
	board         Board
	currentPlayer Player
	winner        Player
	hasWinner     bool
	winningLine   []Coord
	isOver        bool
	moveCount     int
}

func NewGame() GameState {
	return GameState{
		board:         NewBoard(),
		currentPlayer: PlayerOne,
	}
}

// Reset throws away whatever came before and returns the initial configuration
func (s GameState) Reset() GameState {
	return NewGame()
}

func (s GameState) Board() Board { return s.board }
func (s GameState) CurrentPlayer() Player { return s.currentPlayer }
func (s GameState) IsOver() bool { return s.isOver }
func (s GameState) MoveCount() int { return s.moveCount }
func (s GameState) Winner() (Player, bool) { return s.winner, s.hasWinner }

func (s GameState) WinningLine() []Coord {
	if len(s.winningLine) == 0 {
		return nil
	}
	line := make([]Coord, len(s.winningLine))
	copy(line, s.winningLine)
	return line
}

func (s GameState) IsWinningCell(row, col int) bool {
	for _, c := range s.winningLine {
		if c.Row == row && c.Col == col {
			return true
		}
	}
	return false
}

func (s GameState) Status() GameStatus {
	switch {
	case s.hasWinner:
		return StatusWon
	case s.isOver:
		return StatusDraw
	default:
		return StatusActive
	}
}

// TryMove drops a disc for the current player and reports the landing row.
// A rejected move returns the unchanged state together with the reason.
//
// currentPlayer flips on every accepted move, including the one that ends
// the game, so on a finished game it names whoever would have moved next.
func TryMove(s GameState, column int) (GameState, int, error) {
	if s.isOver {
		return s, -1, ErrGameOver
	}

	row, err := ResolveRow(s.board, column)
	if err != nil {
		return s, -1, err
	}

	player := s.currentPlayer
	next := GameState{
		board:         s.board.Place(row, column, player),
		currentPlayer: player.Other(),
		moveCount:     s.moveCount + 1,
	}

	if won, line := CheckWin(next.board, row, column, player); won {
		next.winner = player
		next.hasWinner = true
		next.winningLine = line
		next.isOver = true
		return next, row, nil
	}

	if IsDraw(next.board) {
		next.isOver = true
	}

	return next, row, nil
}

// ApplyMove is the pure transition: illegal moves are no-ops.
func ApplyMove(s GameState, column int) GameState {
	next, _, err := TryMove(s, column)
	if err != nil {
		return s
	}
	return next
}

// Replay rebuilds a game from its column sequence, skipping rejected drops
func Replay(columns []int) GameState {
	s := NewGame()
	for _, col := range columns {
		s = ApplyMove(s, col)
	}
	return s
}
