package seatlayout

import (
	"testing"
)

func mustGenerate(t *testing.T, rows, columns int, pattern Pattern) Grid {
	t.Helper()
	grid, err := Generate(rows, columns, pattern)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	return grid
}

func mustState(t *testing.T, rows, columns int, pattern Pattern) EditorState {
	t.Helper()
	s, err := NewEditorState(rows, columns, pattern)
	if err != nil {
		t.Fatalf("NewEditorState() error = %v", err)
	}
	s.Name = "Coach"
	return s
}

func TestReconcile_RoundTrip(t *testing.T) {
	s := mustState(t, 5, 4, Pattern2x2)

	var err error
	if s, err = s.ToggleAvailability(Position{Row: 0, Column: 0}); err != nil {
		t.Fatalf("ToggleAvailability() error = %v", err)
	}
	if s, err = s.ToggleAvailability(Position{Row: 2, Column: 4}); err != nil {
		t.Fatalf("ToggleAvailability() error = %v", err)
	}
	if s, err = s.SetLabel(Position{Row: 1, Column: 1}, "VIP-1"); err != nil {
		t.Fatalf("SetLabel() error = %v", err)
	}
	if s, err = s.SetSeatType(Position{Row: 1, Column: 1}, SeatVIP); err != nil {
		t.Fatalf("SetSeatType() error = %v", err)
	}

	flat := Serialize(s.Grid, s.Columns)
	res, err := Reconcile(flat.Seats, s.Rows, s.Columns, s.Pattern, flat.TotalSeats)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if res.Repaired || len(res.Disabled) != 0 || len(res.Enabled) != 0 {
		t.Errorf("Reconcile() adjusted a consistent layout: %+v", res)
	}

	for r, row := range s.Grid {
		for c, want := range row {
			got := res.Grid[r][c]
			if got.Available != want.Available || got.Label != want.Label || got.Type != want.Type || got.IsWalkway != want.IsWalkway {
				t.Errorf("seat (%d,%d) = %+v, want %+v", r, c, got, want)
			}
		}
	}
}

func TestReconcile_SeatCountConvergence(t *testing.T) {
	rows, columns := 6, 4
	flat := Serialize(mustGenerate(t, rows, columns, Pattern2x2), columns)

	// disable a varying number of stored seats and ask for a range of totals
	for disabled := 0; disabled < 6; disabled++ {
		stored := append([]FlatSeat(nil), flat.Seats...)
		n := 0
		for i := range stored {
			if n == disabled {
				break
			}
			if stored[i].Available {
				stored[i].Available = false
				n++
			}
		}

		for _, target := range []int{1, 10, 20, rows * columns, rows*columns + 1} {
			res, err := Reconcile(stored, rows, columns, Pattern2x2, target)
			if err != nil {
				t.Fatalf("Reconcile() error = %v", err)
			}
			if got := res.Grid.AvailableCount(); got != target {
				t.Errorf("disabled=%d target=%d: available = %d", disabled, target, got)
			}
			for _, row := range res.Grid[:rows-1] {
				if w := row[MiddleColumn(columns)]; !w.IsWalkway || w.Available {
					t.Errorf("disabled=%d target=%d: walkway changed: %+v", disabled, target, w)
				}
			}
		}
	}
}

func TestReconcile_DisablesFromTheBack(t *testing.T) {
	rows, columns := 3, 4
	res, err := Reconcile(nil, rows, columns, Pattern2x2, rows*columns-1)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}

	// rows*columns+1 seats exist, so two go, rearmost right-hand first
	want := []Position{{Row: 2, Column: 4}, {Row: 2, Column: 3}}
	if len(res.Disabled) != len(want) {
		t.Fatalf("Disabled = %v, want %v", res.Disabled, want)
	}
	for i, p := range want {
		if res.Disabled[i] != p {
			t.Errorf("Disabled[%d] = %v, want %v", i, res.Disabled[i], p)
		}
	}
	if res.Repaired {
		t.Error("Repaired should be false when only disabling")
	}
}

func TestReconcile_TemplateExcludesMiddleSeat(t *testing.T) {
	rows, columns := 4, 4
	res, err := Reconcile(nil, rows, columns, Pattern2x2, rows*columns)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	middle := res.Grid[rows-1][MiddleColumn(columns)]
	if middle.Available || middle.IsWalkway {
		t.Errorf("last row middle seat = %+v, want disabled non-walkway", middle)
	}
	if got := res.Grid.AvailableCount(); got != rows*columns {
		t.Errorf("available = %d, want %d", got, rows*columns)
	}
}

func TestReconcile_RepairEnablesSeats(t *testing.T) {
	rows, columns := 3, 2
	flat := Serialize(mustGenerate(t, rows, columns, Pattern1x1), columns)
	for i := range flat.Seats {
		flat.Seats[i].Available = false
	}

	res, err := Reconcile(flat.Seats, rows, columns, Pattern1x1, 3)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if !res.Repaired {
		t.Error("Repaired should be true after enabling seats")
	}
	if len(res.Enabled) != 3 || res.Grid.AvailableCount() != 3 {
		t.Errorf("Enabled = %v, available = %d, want 3", res.Enabled, res.Grid.AvailableCount())
	}
	if res.Enabled[0] != (Position{Row: 2, Column: 2}) {
		t.Errorf("first enabled seat = %v, want rear right seat", res.Enabled[0])
	}
}

func TestReconcile_UnreachableTargetIsRepaired(t *testing.T) {
	res, err := Reconcile(nil, 2, 2, Pattern1x1, 50)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if !res.Repaired {
		t.Error("Repaired should be true when the target cannot be met")
	}
	if got := res.Grid.AvailableCount(); got != 5 {
		t.Errorf("available = %d, want every seat (5)", got)
	}
}

func TestReconcile_LegacyRecordsWithoutVisualCoordinates(t *testing.T) {
	rows, columns := 3, 4
	flat := Serialize(mustGenerate(t, rows, columns, Pattern2x2), columns)
	for i := range flat.Seats {
		flat.Seats[i].VisualRow = nil
		flat.Seats[i].VisualColumn = nil
		flat.Seats[i].IsWalkway = nil
		if flat.Seats[i].Row == 0 && flat.Seats[i].Column == 3 {
			flat.Seats[i].Label = "FRONT-R"
			flat.Seats[i].Available = false
		}
	}

	res, err := Reconcile(flat.Seats, rows, columns, Pattern2x2, 12)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	got := res.Grid[0][3]
	if got.Label != "FRONT-R" || got.Available {
		t.Errorf("legacy seat = %+v, want FRONT-R unavailable", got)
	}
	if !res.Grid[0][2].IsWalkway {
		t.Error("walkway should stay a walkway for legacy records")
	}
}

func TestReconcile_CustomWalkwayOverride(t *testing.T) {
	s := mustState(t, 3, 4, PatternCustom)
	s, err := s.ToggleAvailability(Position{Row: 0, Column: 2})
	if err != nil {
		t.Fatalf("ToggleAvailability() error = %v", err)
	}

	flat := Serialize(s.Grid, s.Columns)
	res, err := Reconcile(flat.Seats, 3, 4, PatternCustom, flat.TotalSeats)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	seat := res.Grid[0][2]
	if seat.IsWalkway || !seat.Available {
		t.Errorf("converted walkway = %+v, want available seat", seat)
	}
	if seat.Column != 2 {
		t.Errorf("converted walkway API column = %d, want 2", seat.Column)
	}

	// the same stored data under a fixed pattern keeps the walkway
	res, err = Reconcile(flat.Seats, 3, 4, Pattern2x2, flat.TotalSeats-1)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if !res.Grid[0][2].IsWalkway || res.Grid[0][2].Available {
		t.Errorf("walkway under 2x2 = %+v, want walkway", res.Grid[0][2])
	}
}

func TestReconcile_DoesNotMutateInput(t *testing.T) {
	flat := Serialize(mustGenerate(t, 2, 2, Pattern1x1), 2)
	before := make([]bool, len(flat.Seats))
	for i, s := range flat.Seats {
		before[i] = s.Available
	}
	if _, err := Reconcile(flat.Seats, 2, 2, Pattern1x1, 1); err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	for i, s := range flat.Seats {
		if s.Available != before[i] {
			t.Fatalf("stored seat %d was modified", i)
		}
	}
}
