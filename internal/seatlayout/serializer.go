package seatlayout

import (
	"sort"

	"github.com/google/uuid"
)

type SerializeResult struct {
	Seats      []FlatSeat `json:"seats"`
	TotalSeats int        `json:"total_seats"`
}

// Serialize flattens a grid into API records. Within each row seats get
// sequential API columns in visual order; the visual coordinates are kept so
// that Reconcile can redraw the grid exactly. TotalSeats is the number of
// available seats and is the authoritative total for submission.
func Serialize(grid Grid, columns int) SerializeResult {
	byRow := make(map[int][]Seat)
	for _, row := range grid {
		for _, s := range row {
			byRow[s.Row] = append(byRow[s.Row], s)
		}
	}

	rowKeys := make([]int, 0, len(byRow))
	for r := range byRow {
		rowKeys = append(rowKeys, r)
	}
	sort.Ints(rowKeys)

	if len(rowKeys) == 0 {
		return SerializeResult{Seats: []FlatSeat{}}
	}

	lastRow := rowKeys[len(rowKeys)-1]
	middle := MiddleColumn(columns)
	seen := make(map[string]bool)

	var res SerializeResult
	for _, r := range rowKeys {
		seats := byRow[r]
		sort.SliceStable(seats, func(i, j int) bool {
			return seats[i].VisualColumn < seats[j].VisualColumn
		})

		for i, s := range seats {
			column := i
			if column > columns {
				column = columns
			}

			id := s.ID
			if id == "" {
				id = seatID(r, s.VisualColumn)
			}
			for base := id; seen[id]; {
				id = base + "-" + uuid.NewString()[:8]
			}
			seen[id] = true

			label := s.Label
			if label == "" {
				label = DefaultLabel(r, s.VisualColumn, columns, r == lastRow)
			}

			seatType := s.Type
			if !seatType.Valid() {
				seatType = SeatRegular
			}

			walkway := s.IsWalkway
			if r == lastRow && s.VisualColumn == middle {
				walkway = false
			}

			visualRow, visualColumn := s.VisualRow, s.VisualColumn
			res.Seats = append(res.Seats, FlatSeat{
				ID:           id,
				Row:          r,
				Column:       column,
				Type:         seatType,
				Available:    s.Available,
				Label:        label,
				VisualRow:    &visualRow,
				VisualColumn: &visualColumn,
				IsWalkway:    &walkway,
			})

			if s.Available {
				res.TotalSeats++
			}
		}
	}

	return res
}

// WithFreshIDs returns a copy of layout whose seats carry new unique ids.
// Used when a configuration is cloned so seat ids never repeat across
// configurations.
func WithFreshIDs(layout Layout) Layout {
	out := layout
	out.Seats = make([]FlatSeat, len(layout.Seats))
	for i, s := range layout.Seats {
		r, c := s.Row, s.Column
		if s.VisualRow != nil && s.VisualColumn != nil {
			r, c = *s.VisualRow, *s.VisualColumn
		}
		s.ID = seatID(r, c) + "-" + uuid.NewString()[:8]
		out.Seats[i] = s
	}
	return out
}
