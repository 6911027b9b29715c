package domain

// Board is a fixed 6x7 grid. It is an array, so assigning or passing a Board
// copies it and a board held by a GameState can never be changed through
// another reference.
type Board [Rows][Columns]Cell

func NewBoard() Board {
	return Board{}
}

func (b Board) InBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Columns
}

func (b Board) At(row, col int) Cell {
	return b[row][col]
}

// Place returns a copy of the board with the player's disc at (row, col).
func (b Board) Place(row, col int, player Player) Board {
	b[row][col] = player.Cell()
	return b
}

// Ints converts the board for json payloads and database storage
// (0 -> empty, 1 -> player one, 2 -> player two)
func (b Board) Ints() [][]int {
	out := make([][]int, Rows)
	for r := range b {
		out[r] = make([]int, Columns)
		for c := range b[r] {
			out[r][c] = int(b[r][c])
		}
	}
	return out
}

// BoardFromInts is the inverse of Ints. Unknown cell codes are rejected.
func BoardFromInts(grid [][]int) (Board, error) {
	var b Board
	if len(grid) != Rows {
		return b, ErrInvalidRecord
	}
	for r := range grid {
		if len(grid[r]) != Columns {
			return b, ErrInvalidRecord
		}
		for c, v := range grid[r] {
			if v < int(CellEmpty) || v > int(CellPlayerTwo) {
				return b, ErrInvalidRecord
			}
			b[r][c] = Cell(v)
		}
	}
	return b, nil
}

func (b Board) DiscCount() int {
	n := 0
	for r := range b {
		for c := range b[r] {
			if b[r][c] != CellEmpty {
				n++
			}
		}
	}
	return n
}

// this is a helper function used by the bot
func ValidMoves(b Board) []int {
	validMoves := []int{}
	for col := 0; col < Columns; col++ {
		if b[0][col] == CellEmpty {
			validMoves = append(validMoves, col)
		}
	}
	return validMoves
}

// this will simulate a move and give the result to the caller,
// the input board is left as it was
func SimulateMove(b Board, column int, player Player) (Board, int, error) {
	row, err := ResolveRow(b, column)
	if err != nil {
		return b, -1, err
	}
	return b.Place(row, column, player), row, nil
}

// this counts the number of disks in a specific direction
func CountDiskInDirection(b Board, row, column, deltaRow, deltaCol int, player Player) int {
	count := 0
	want := player.Cell()
	r, c := row+deltaRow, column+deltaCol
	for b.InBounds(r, c) && b[r][c] == want {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}
