package seatlayout

import (
	"fmt"
	"strings"
)

// EditorState is the complete state of a configuration being edited. Every
// operation returns a new state and leaves the receiver untouched.
type EditorState struct {
	ID               string   `json:"id,omitempty"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	BusType          BusType  `json:"bus_type"`
	TotalSeats       int      `json:"total_seats"`
	Amenities        []string `json:"amenities"`
	Rows             int      `json:"rows"`
	Columns          int      `json:"columns"`
	Pattern          Pattern  `json:"arrangement_pattern"`
	Grid             Grid     `json:"grid"`
	LayoutConfigured bool     `json:"layout_configured"`
	Dirty            bool     `json:"dirty"`
}

func NewEditorState(rows, columns int, pattern Pattern) (EditorState, error) {
	grid, err := Generate(rows, columns, pattern)
	if err != nil {
		return EditorState{}, err
	}
	return EditorState{
		BusType:          BusTypeStandard,
		Amenities:        []string{},
		Rows:             rows,
		Columns:          columns,
		Pattern:          pattern,
		Grid:             grid,
		TotalSeats:       grid.AvailableCount(),
		LayoutConfigured: true,
	}, nil
}

// OpenEditorState rebuilds the editable state of a stored configuration. The
// flat layout is the only source of truth.
func OpenEditorState(cfg Configuration) (EditorState, ReconcileResult, error) {
	l := cfg.SeatLayout
	res, err := Reconcile(l.Seats, l.Rows, l.Columns, l.Pattern, cfg.TotalSeats)
	if err != nil {
		return EditorState{}, ReconcileResult{}, err
	}
	amenities := append([]string{}, cfg.Amenities...)
	return EditorState{
		ID:               cfg.ID,
		Name:             cfg.Name,
		Description:      cfg.Description,
		BusType:          cfg.BusType,
		TotalSeats:       res.Grid.AvailableCount(),
		Amenities:        amenities,
		Rows:             l.Rows,
		Columns:          l.Columns,
		Pattern:          l.Pattern,
		Grid:             res.Grid,
		LayoutConfigured: true,
	}, res, nil
}

func (s EditorState) withGrid(grid Grid) EditorState {
	s.Grid = grid
	s.TotalSeats = grid.AvailableCount()
	s.LayoutConfigured = true
	s.Dirty = true
	return s
}

// Resize regenerates the grid with new dimensions. Per-seat edits are lost.
func (s EditorState) Resize(rows, columns int) (EditorState, error) {
	grid, err := Generate(rows, columns, s.Pattern)
	if err != nil {
		return s, err
	}
	s.Rows, s.Columns = rows, columns
	return s.withGrid(grid), nil
}

// ChangePattern switches the arrangement and regenerates the grid. Fixed
// patterns set the column count; custom keeps the current one. When the
// current grid has custom labels the caller must confirm the switch.
func (s EditorState) ChangePattern(pattern Pattern, confirm bool) (EditorState, error) {
	if !pattern.Valid() {
		return s, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
	}
	if pattern == s.Pattern && s.LayoutConfigured {
		return s, nil
	}
	if s.HasCustomLabels() && !confirm {
		return s, ErrConfirmationRequired
	}

	columns := pattern.Columns()
	if columns == 0 {
		columns = s.Columns
	}
	grid, err := Generate(s.Rows, columns, pattern)
	if err != nil {
		return s, err
	}
	s.Pattern, s.Columns = pattern, columns
	return s.withGrid(grid), nil
}

// HasCustomLabels reports whether any seat label differs from its generated
// default.
func (s EditorState) HasCustomLabels() bool {
	last := len(s.Grid) - 1
	for r, row := range s.Grid {
		for c, seat := range row {
			if seat.Label != DefaultLabel(r, c, s.Columns, r == last) {
				return true
			}
		}
	}
	return false
}

func (s EditorState) SetSeatType(p Position, t SeatType) (EditorState, error) {
	if !t.Valid() {
		return s, fmt.Errorf("%w: %q", ErrInvalidSeatType, t)
	}
	seat, err := s.editable(p)
	if err != nil {
		return s, err
	}
	grid := s.Grid.Clone()
	seat.Type = t
	grid[p.Row][p.Column] = seat
	return s.withGrid(grid), nil
}

// ToggleAvailability flips a seat between available and unavailable. In a
// custom arrangement toggling a walkway turns it into a regular seat.
func (s EditorState) ToggleAvailability(p Position) (EditorState, error) {
	seat, err := s.editable(p)
	if err != nil {
		return s, err
	}

	switch {
	case seat.IsWalkway:
		seat.IsWalkway = false
		seat.Available = true
	case seat.Available:
		seat.Available = false
	default:
		seat.Available = true
	}

	if seat.Available {
		if dup := s.labelTaken(p, seat.Label); dup != nil {
			return s, dup
		}
	}

	grid := s.Grid.Clone()
	grid[p.Row][p.Column] = seat
	renumber(grid)
	return s.withGrid(grid), nil
}

// SetLabel relabels a seat. An empty label restores the generated default.
func (s EditorState) SetLabel(p Position, label string) (EditorState, error) {
	seat, err := s.editable(p)
	if err != nil {
		return s, err
	}

	label = strings.TrimSpace(label)
	if label == "" {
		label = DefaultLabel(p.Row, p.Column, s.Columns, p.Row == len(s.Grid)-1)
	}
	if seat.Available {
		if dup := s.labelTaken(p, label); dup != nil {
			return s, dup
		}
	}

	grid := s.Grid.Clone()
	seat.Label = label
	grid[p.Row][p.Column] = seat
	return s.withGrid(grid), nil
}

func (s EditorState) editable(p Position) (Seat, error) {
	seat, ok := s.Grid.At(p)
	if !ok {
		return Seat{}, fmt.Errorf("%w: (%d,%d)", ErrSeatNotFound, p.Row, p.Column)
	}
	if seat.IsWalkway && s.Pattern != PatternCustom {
		return Seat{}, ErrWalkwayLocked
	}
	return seat, nil
}

func (s EditorState) labelTaken(p Position, label string) *DuplicateLabelError {
	key := labelKey(label)
	for r, row := range s.Grid {
		for c, other := range row {
			if (Position{Row: r, Column: c}) == p || !other.Available {
				continue
			}
			if labelKey(other.Label) == key {
				return &DuplicateLabelError{Label: label, Positions: []Position{{Row: r, Column: c}, p}}
			}
		}
	}
	return nil
}

// Prepare validates the state and produces the body to submit. The total
// seat count in the body is always the number of available seats.
func (s EditorState) Prepare() (Configuration, ValidationOutcome, error) {
	if err := s.Check(); err != nil {
		return Configuration{}, ValidationOutcome{}, err
	}

	outcome, err := ValidateSubmission(Submission{
		Name:             s.Name,
		TotalSeats:       s.TotalSeats,
		LayoutConfigured: s.LayoutConfigured,
		Pattern:          s.Pattern,
		Grid:             s.Grid,
	})
	if err != nil {
		return Configuration{}, ValidationOutcome{}, err
	}

	flat := Serialize(s.Grid, s.Columns)
	amenities := append([]string{}, s.Amenities...)
	return Configuration{
		ID:          s.ID,
		Name:        strings.TrimSpace(s.Name),
		Description: s.Description,
		BusType:     s.BusType,
		TotalSeats:  flat.TotalSeats,
		SeatLayout: Layout{
			Rows:    s.Rows,
			Columns: s.Columns,
			Pattern: s.Pattern,
			Seats:   flat.Seats,
		},
		Amenities: amenities,
	}, outcome, nil
}

// Check rejects states whose grid does not match their dimensions or whose
// seats sit at coordinates other than their grid slot. States
// arrive from clients between edits, so every operation starts with it.
func (s EditorState) Check() error {
	if !s.LayoutConfigured && len(s.Grid) == 0 {
		return nil
	}
	if !s.Pattern.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPattern, s.Pattern)
	}
	if s.Rows < 1 || s.Rows > MaxRows || s.Columns < 1 || s.Columns > MaxColumns {
		return fmt.Errorf("%w: %d x %d", ErrInvalidDimensions, s.Rows, s.Columns)
	}
	if len(s.Grid) != s.Rows {
		return fmt.Errorf("%w: grid has %d rows, want %d", ErrInvalidDimensions, len(s.Grid), s.Rows)
	}
	for r, row := range s.Grid {
		if len(row) != s.Columns+1 {
			return fmt.Errorf("%w: row %d has %d slots, want %d", ErrInvalidDimensions, r, len(row), s.Columns+1)
		}
		for c, seat := range row {
			if seat.Row != r || seat.VisualRow != r || seat.VisualColumn != c {
				return fmt.Errorf("%w: slot (%d,%d) holds seat row %d at visual (%d,%d)",
					ErrSeatPosition, r, c, seat.Row, seat.VisualRow, seat.VisualColumn)
			}
		}
	}
	return nil
}
