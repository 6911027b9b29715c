package domain

// axes scanned by CheckWin, in priority order
var winAxes = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal \
	{1, -1}, // diagonal /
}

// ResolveRow finds the row a disc dropped into column lands on.
// here row 0 represents the top row (0 -> top and 5 -> bottom)
func ResolveRow(b Board, column int) (int, error) {
	if column < 0 || column >= Columns {
		return -1, ErrInvalidColumn
	}

	for row := Rows - 1; row >= 0; row-- {
		if b[row][column] == CellEmpty {
			return row, nil
		}
	}

	return -1, ErrColumnFull
}

// CheckWin looks at the lines passing through the disc just placed at
// (row, column). Only runs through that position can be new, so there is no
// need to scan the whole board. The first axis holding ToWin or more
// connected discs is reported, origin first.
func CheckWin(b Board, row, column int, player Player) (bool, []Coord) {
	want := player.Cell()

	for _, axis := range winAxes {
		line := []Coord{{Row: row, Col: column}}

		for _, sign := range [2]int{1, -1} {
			dr, dc := axis[0]*sign, axis[1]*sign
			r, c := row+dr, column+dc
			for steps := 0; steps < ToWin-1 && b.InBounds(r, c) && b[r][c] == want; steps++ {
				line = append(line, Coord{Row: r, Col: c})
				r += dr
				c += dc
			}
		}

		if len(line) >= ToWin {
			return true, line
		}
	}

	return false, nil
}

// IsDraw reports a full board. Discs stack from the bottom, so a full top row
// means every column is full.
func IsDraw(b Board) bool {
	for c := 0; c < Columns; c++ {
		if b[0][c] == CellEmpty {
			return false
		}
	}

	return true
}
