// Package seatlayout generates, edits, flattens and rebuilds bus seat layouts.
//
// A layout is a grid of rows by visual columns. One column per row is reserved
// for the walkway; it sits at the middle of the visual row and is a real seat
// only in the last row. The API form of a layout is a flat list of seats that
// carries both the dense per-row API column and the visual coordinates needed
// to redraw the grid exactly.
package seatlayout

import (
	"fmt"
	"strings"
)

const (
	// Upper bounds on a layout. Generate, ValidateLayout and the editor
	// request DTOs all reject larger grids.
	MaxRows    = 30
	MaxColumns = 20

	// WalkwayColumn is the API column of a walkway seat before serialization.
	WalkwayColumn = -1
)

type SeatType string

const (
	SeatRegular  SeatType = "regular"
	SeatVIP      SeatType = "vip"
	SeatDisabled SeatType = "disabled"
)

func (t SeatType) Valid() bool {
	switch t {
	case SeatRegular, SeatVIP, SeatDisabled:
		return true
	}
	return false
}

type Pattern string

const (
	Pattern1x1    Pattern = "1x1"
	Pattern2x1    Pattern = "2x1"
	Pattern1x2    Pattern = "1x2"
	Pattern2x2    Pattern = "2x2"
	Pattern3x2    Pattern = "3x2"
	PatternCustom Pattern = "custom"
)

var patternColumns = map[Pattern]int{
	Pattern1x1:    2,
	Pattern2x1:    3,
	Pattern1x2:    3,
	Pattern2x2:    4,
	Pattern3x2:    5,
	PatternCustom: 0,
}

func (p Pattern) Valid() bool {
	_, ok := patternColumns[p]
	return ok
}

// Columns returns the seat columns implied by the pattern, or 0 for custom.
func (p Pattern) Columns() int {
	return patternColumns[p]
}

func ParsePattern(s string) (Pattern, error) {
	p := Pattern(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPattern, s)
	}
	return p, nil
}

// Seat is a single position in a layout. Column is the API-facing index,
// VisualRow/VisualColumn the slot in the rendered grid.
type Seat struct {
	ID           string   `json:"id"`
	Row          int      `json:"row"`
	Column       int      `json:"column"`
	VisualRow    int      `json:"visual_row"`
	VisualColumn int      `json:"visual_column"`
	Type         SeatType `json:"type"`
	Available    bool     `json:"available"`
	Label        string   `json:"label"`
	IsWalkway    bool     `json:"is_walkway"`
}

// Position addresses a seat by its visual coordinates.
type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// Grid is indexed [row][visualColumn]. Operations never mutate a Grid they
// receive; they work on a Clone.
type Grid [][]Seat

func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for r, row := range g {
		out[r] = append([]Seat(nil), row...)
	}
	return out
}

func (g Grid) Rows() int { return len(g) }

func (g Grid) At(p Position) (Seat, bool) {
	if p.Row < 0 || p.Row >= len(g) || p.Column < 0 || p.Column >= len(g[p.Row]) {
		return Seat{}, false
	}
	return g[p.Row][p.Column], true
}

func (g Grid) AvailableCount() int {
	n := 0
	for _, row := range g {
		for _, s := range row {
			if s.Available {
				n++
			}
		}
	}
	return n
}

// MiddleColumn is the visual index of the walkway for a layout with the given
// number of seat columns.
func MiddleColumn(columns int) int {
	return (columns + 1) / 2
}

// DefaultLabel computes the generated label for a visual slot. Seats right of
// the walkway continue the letter sequence of the left side, so both sides
// never share a letter.
func DefaultLabel(row, visualColumn, columns int, lastRow bool) string {
	middle := MiddleColumn(columns)
	switch {
	case visualColumn == middle && lastRow:
		return fmt.Sprintf("%dW", row+1)
	case visualColumn == middle:
		return fmt.Sprintf("W%d", row+1)
	case visualColumn < middle:
		return fmt.Sprintf("%d%s", row+1, columnLetters(visualColumn))
	default:
		return fmt.Sprintf("%d%s", row+1, columnLetters(visualColumn-1))
	}
}

// columnLetters maps 0 -> A, 25 -> Z, 26 -> AA.
func columnLetters(i int) string {
	var b []byte
	for i >= 0 {
		b = append([]byte{byte('A' + i%26)}, b...)
		i = i/26 - 1
	}
	return string(b)
}

func seatID(row, visualColumn int) string {
	return fmt.Sprintf("seat-%d-%d", row, visualColumn)
}

func labelKey(label string) string {
	return strings.ToUpper(strings.TrimSpace(label))
}

// renumber assigns dense API columns to the non-walkway seats of every row.
func renumber(g Grid) {
	for r := range g {
		col := 0
		for c := range g[r] {
			if g[r][c].IsWalkway {
				g[r][c].Column = WalkwayColumn
				continue
			}
			g[r][c].Column = col
			col++
		}
	}
}
