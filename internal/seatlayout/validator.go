package seatlayout

import (
	"fmt"
	"strings"
)

// Submission is what the editor hands to the validator before serializing.
type Submission struct {
	Name             string
	TotalSeats       int
	LayoutConfigured bool
	Pattern          Pattern
	Grid             Grid
}

// ValidationOutcome carries the authoritative total. A declared total that
// differs from the available seat count is corrected, not rejected.
type ValidationOutcome struct {
	TotalSeats int  `json:"total_seats"`
	Corrected  bool `json:"corrected"`
}

func ValidateSubmission(sub Submission) (ValidationOutcome, error) {
	if strings.TrimSpace(sub.Name) == "" {
		return ValidationOutcome{}, ErrNameRequired
	}
	if sub.TotalSeats <= 0 {
		return ValidationOutcome{}, ErrTotalSeatsRequired
	}
	if !sub.LayoutConfigured || len(sub.Grid) == 0 {
		return ValidationOutcome{}, ErrLayoutNotConfigured
	}

	available := sub.Grid.AvailableCount()
	if sub.Pattern == PatternCustom && available == 0 {
		return ValidationOutcome{}, ErrNoAvailableSeat
	}
	if dup := FindDuplicateLabel(sub.Grid); dup != nil {
		return ValidationOutcome{}, dup
	}

	return ValidationOutcome{
		TotalSeats: available,
		Corrected:  available != sub.TotalSeats,
	}, nil
}

// FindDuplicateLabel returns the first label, in row-major order, shared by
// two or more available seats. Labels compare case-insensitively.
func FindDuplicateLabel(grid Grid) *DuplicateLabelError {
	seen := make(map[string][]Position)
	var order []string
	for r, row := range grid {
		for c, s := range row {
			if !s.Available {
				continue
			}
			key := labelKey(s.Label)
			if _, ok := seen[key]; !ok {
				order = append(order, key)
			}
			seen[key] = append(seen[key], Position{Row: r, Column: c})
		}
	}
	for _, key := range order {
		if ps := seen[key]; len(ps) > 1 {
			return &DuplicateLabelError{Label: grid[ps[0].Row][ps[0].Column].Label, Positions: ps}
		}
	}
	return nil
}

// ValidateLayout checks a stored or submitted flat layout the way the
// persistence API does: dimensions and pattern, seat bounds and positions,
// seat types, unique labels and at least one available seat. The declared total is
// corrected to the available count.
func ValidateLayout(layout Layout, declaredTotal int) (ValidationOutcome, error) {
	if layout.Rows <= 0 || layout.Columns <= 0 || layout.Rows > MaxRows || layout.Columns > MaxColumns {
		return ValidationOutcome{}, fmt.Errorf("%w: %d rows x %d columns", ErrInvalidDimensions, layout.Rows, layout.Columns)
	}
	if !layout.Pattern.Valid() {
		return ValidationOutcome{}, fmt.Errorf("%w: %q", ErrInvalidPattern, layout.Pattern)
	}
	if declaredTotal <= 0 {
		return ValidationOutcome{}, ErrTotalSeatsRequired
	}
	if len(layout.Seats) == 0 {
		return ValidationOutcome{}, ErrLayoutNotConfigured
	}

	seen := make(map[string][]Position)
	occupied := make(map[Position]bool)
	apiSlots := make(map[Position]bool)
	available := 0
	for _, s := range layout.Seats {
		p := Position{Row: s.Row, Column: s.Column}
		if s.VisualRow != nil && s.VisualColumn != nil {
			p = Position{Row: *s.VisualRow, Column: *s.VisualColumn}
		}
		if p.Row < 0 || p.Row >= layout.Rows || p.Column < 0 || p.Column > layout.Columns {
			return ValidationOutcome{}, fmt.Errorf("%w: (%d,%d) outside %dx%d layout",
				ErrSeatNotFound, p.Row, p.Column, layout.Rows, layout.Columns)
		}
		if occupied[p] {
			return ValidationOutcome{}, fmt.Errorf("%w: two seats at (%d,%d)", ErrSeatPosition, p.Row, p.Column)
		}
		occupied[p] = true
		if s.Row != p.Row {
			return ValidationOutcome{}, fmt.Errorf("%w: seat in row %d drawn in row %d", ErrSeatPosition, s.Row, p.Row)
		}
		slot := Position{Row: s.Row, Column: s.Column}
		if s.Column < 0 || s.Column > layout.Columns || apiSlots[slot] {
			return ValidationOutcome{}, fmt.Errorf("%w: column %d of row %d", ErrSeatPosition, s.Column, s.Row)
		}
		apiSlots[slot] = true
		if s.Type != "" && !s.Type.Valid() {
			return ValidationOutcome{}, fmt.Errorf("%w: %q", ErrInvalidSeatType, s.Type)
		}
		if !s.Available {
			continue
		}
		available++
		key := labelKey(s.Label)
		seen[key] = append(seen[key], p)
		if len(seen[key]) == 2 {
			return ValidationOutcome{}, &DuplicateLabelError{Label: s.Label, Positions: seen[key]}
		}
	}

	// A stored configuration must always sell at least one seat, whatever
	// the arrangement.
	if available == 0 {
		return ValidationOutcome{}, ErrNoAvailableSeat
	}

	return ValidationOutcome{
		TotalSeats: available,
		Corrected:  available != declaredTotal,
	}, nil
}
