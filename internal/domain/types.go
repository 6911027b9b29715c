package domain

import "fmt"

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// Cell is the occupancy of a single board square
type Cell uint8

const (
	CellEmpty Cell = iota
	CellPlayerOne
	CellPlayerTwo
)

// Player is one of the two sides. There is deliberately no "none" value,
// an absent winner is modelled as (Player, false).
type Player uint8

const (
	PlayerOne Player = iota + 1
	PlayerTwo
)

func (p Player) Other() Player {
	if p == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

func (p Player) Cell() Cell {
	if p == PlayerOne {
		return CellPlayerOne
	}
	return CellPlayerTwo
}

// String gives the label used in saved game records
func (p Player) String() string {
	return fmt.Sprintf("Player %d", uint8(p))
}

func (p Player) Valid() bool {
	return p == PlayerOne || p == PlayerTwo
}

// Coord is a (row, col) position, row 0 being the top of the board
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidColumn Error = "invalid column"
	ErrColumnFull    Error = "column is full"
	ErrGameOver      Error = "game is already over"
	ErrGameNotOver   Error = "game is not over yet"
	ErrInvalidRecord Error = "invalid game record"
)
