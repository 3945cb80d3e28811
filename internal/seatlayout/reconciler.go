package seatlayout

// ReconcileResult is the rebuilt grid plus the availability changes made to
// reach the target. Repaired is set when seats had to be re-enabled or the
// target could not be met, which callers log as a diagnostic.
type ReconcileResult struct {
	Grid     Grid       `json:"grid"`
	Target   int        `json:"target"`
	Disabled []Position `json:"disabled,omitempty"`
	Enabled  []Position `json:"enabled,omitempty"`
	Repaired bool       `json:"repaired"`
}

// Reconcile rebuilds an editable grid from a stored flat layout. The stored
// seats are overlaid on a freshly generated grid and availability is then
// adjusted from the back of the bus until exactly target seats are available.
func Reconcile(stored []FlatSeat, rows, columns int, pattern Pattern, target int) (ReconcileResult, error) {
	base, err := Generate(rows, columns, pattern)
	if err != nil {
		return ReconcileResult{}, err
	}

	grid := overlay(base, stored, columns, pattern)
	return enforceTotal(grid, rows, columns, target), nil
}

// overlay copies stored per-seat state onto the generated grid. Seats are
// matched by visual coordinates; legacy records without them are matched by
// (row, column), where column is the seat's index in visual order as written
// by Serialize. The WalkwayColumn sentinel never takes part in matching.
func overlay(base Grid, stored []FlatSeat, columns int, pattern Pattern) Grid {
	grid := base.Clone()

	byVisual := make(map[Position]FlatSeat, len(stored))
	byLegacy := make(map[Position]FlatSeat)
	for _, s := range stored {
		if s.VisualRow != nil && s.VisualColumn != nil {
			byVisual[Position{Row: *s.VisualRow, Column: *s.VisualColumn}] = s
			continue
		}
		byLegacy[Position{Row: s.Row, Column: s.Column}] = s
	}

	lastRow := len(grid) - 1
	middle := MiddleColumn(columns)

	for r := range grid {
		for c := range grid[r] {
			key := Position{Row: r, Column: c}
			fs, ok := byVisual[key]
			if !ok {
				fs, ok = byLegacy[key]
			}
			if !ok {
				continue
			}
			applyStored(&grid[r][c], fs, pattern, r == lastRow && c == middle)
		}
	}

	renumber(grid)
	return grid
}

func applyStored(seat *Seat, fs FlatSeat, pattern Pattern, lastRowMiddle bool) {
	if fs.Type.Valid() {
		seat.Type = fs.Type
	}
	if fs.Label != "" {
		seat.Label = fs.Label
	}

	switch {
	case lastRowMiddle:
		seat.IsWalkway = false
		seat.Available = fs.Available
	case seat.IsWalkway && pattern != PatternCustom:
		// walkway by construction
	case seat.IsWalkway:
		walkway := !fs.Available
		if fs.IsWalkway != nil {
			walkway = *fs.IsWalkway
		}
		seat.IsWalkway = walkway
		seat.Available = fs.Available && !walkway
	default:
		seat.Available = fs.Available
	}
}

// enforceTotal makes the available count equal target. Seats are disabled
// from the back of the bus first; when the template excludes the last-row
// middle seat (target == rows*columns) that seat goes first.
func enforceTotal(grid Grid, rows, columns, target int) ReconcileResult {
	res := ReconcileResult{Grid: grid, Target: target}
	if target < 0 {
		target = 0
	}

	order := backToFront(grid)
	middleSeat := Position{Row: rows - 1, Column: MiddleColumn(columns)}
	if target == rows*columns {
		order = append([]Position{middleSeat}, withoutPosition(order, middleSeat)...)
	}

	positions := len(order)
	available := grid.AvailableCount()
	expectedDisabled := positions - target
	currentDisabled := positions - available

	for _, p := range order {
		if currentDisabled >= expectedDisabled {
			break
		}
		if grid[p.Row][p.Column].Available {
			grid[p.Row][p.Column].Available = false
			res.Disabled = append(res.Disabled, p)
			currentDisabled++
			available--
		}
	}

	if available < target {
		for _, p := range backToFront(grid) {
			if available >= target {
				break
			}
			if !grid[p.Row][p.Column].Available {
				grid[p.Row][p.Column].Available = true
				res.Enabled = append(res.Enabled, p)
				available++
			}
		}
		res.Repaired = true
	}
	if available != target {
		res.Repaired = true
	}

	return res
}

// backToFront lists non-walkway seats ordered by row then visual column,
// both descending.
func backToFront(grid Grid) []Position {
	var out []Position
	for r := len(grid) - 1; r >= 0; r-- {
		for c := len(grid[r]) - 1; c >= 0; c-- {
			if grid[r][c].IsWalkway {
				continue
			}
			out = append(out, Position{Row: r, Column: c})
		}
	}
	return out
}

func withoutPosition(in []Position, p Position) []Position {
	out := make([]Position, 0, len(in))
	for _, q := range in {
		if q != p {
			out = append(out, q)
		}
	}
	return out
}
