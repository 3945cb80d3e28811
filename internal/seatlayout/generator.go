package seatlayout

import "fmt"

// Generate builds a fresh grid of rows x (columns+1) visual slots. The middle
// slot of every row but the last is an unavailable walkway with the
// WalkwayColumn sentinel; every other slot is an available regular seat with a
// dense API column.
func Generate(rows, columns int, pattern Pattern) (Grid, error) {
	if rows <= 0 || columns <= 0 || rows > MaxRows || columns > MaxColumns {
		return nil, fmt.Errorf("%w: %d rows x %d columns", ErrInvalidDimensions, rows, columns)
	}
	if !pattern.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
	}

	actualColumns := columns + 1
	middle := actualColumns / 2

	grid := make(Grid, rows)
	for r := 0; r < rows; r++ {
		lastRow := r == rows-1
		row := make([]Seat, actualColumns)
		apiColumn := 0

		for c := 0; c < actualColumns; c++ {
			seat := Seat{
				ID:           seatID(r, c),
				Row:          r,
				VisualRow:    r,
				VisualColumn: c,
				Type:         SeatRegular,
				Available:    true,
				Label:        DefaultLabel(r, c, columns, lastRow),
			}

			if c == middle && !lastRow {
				seat.Available = false
				seat.IsWalkway = true
				seat.Column = WalkwayColumn
			} else {
				seat.Column = apiColumn
				apiColumn++
			}

			row[c] = seat
		}
		grid[r] = row
	}

	return grid, nil
}
