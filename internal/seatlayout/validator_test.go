package seatlayout

import (
	"errors"
	"testing"
)

func TestValidateSubmission(t *testing.T) {
	grid := mustGenerate(t, 3, 4, Pattern2x2)

	dupGrid := grid.Clone()
	dupGrid[2][0].Label = "3A"
	dupGrid[2][1].Label = "3a"

	noneAvailable := grid.Clone()
	for r := range noneAvailable {
		for c := range noneAvailable[r] {
			noneAvailable[r][c].Available = false
		}
	}

	tests := []struct {
		name string
		sub  Submission
		want error
	}{
		{"Empty name", Submission{Name: "  ", TotalSeats: 13, LayoutConfigured: true, Pattern: Pattern2x2, Grid: grid}, ErrNameRequired},
		{"Zero seats", Submission{Name: "A", TotalSeats: 0, LayoutConfigured: true, Pattern: Pattern2x2, Grid: grid}, ErrTotalSeatsRequired},
		{"Not configured", Submission{Name: "A", TotalSeats: 13, Pattern: Pattern2x2, Grid: grid}, ErrLayoutNotConfigured},
		{"Empty grid", Submission{Name: "A", TotalSeats: 13, LayoutConfigured: true, Pattern: Pattern2x2}, ErrLayoutNotConfigured},
		{"Custom without seats", Submission{Name: "A", TotalSeats: 13, LayoutConfigured: true, Pattern: PatternCustom, Grid: noneAvailable}, ErrNoAvailableSeat},
		{"Duplicate labels", Submission{Name: "A", TotalSeats: 13, LayoutConfigured: true, Pattern: Pattern2x2, Grid: dupGrid}, ErrDuplicateLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateSubmission(tt.sub)
			if !errors.Is(err, tt.want) {
				t.Errorf("ValidateSubmission() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateSubmission_CorrectsTotal(t *testing.T) {
	grid := mustGenerate(t, 3, 4, Pattern2x2)

	out, err := ValidateSubmission(Submission{Name: "Coach", TotalSeats: 40, LayoutConfigured: true, Pattern: Pattern2x2, Grid: grid})
	if err != nil {
		t.Fatalf("ValidateSubmission() error = %v", err)
	}
	if out.TotalSeats != 13 || !out.Corrected {
		t.Errorf("outcome = %+v, want 13 corrected", out)
	}

	out, err = ValidateSubmission(Submission{Name: "Coach", TotalSeats: 13, LayoutConfigured: true, Pattern: Pattern2x2, Grid: grid})
	if err != nil {
		t.Fatalf("ValidateSubmission() error = %v", err)
	}
	if out.Corrected {
		t.Error("matching total should not be reported as corrected")
	}
}

func TestFindDuplicateLabel_IgnoresUnavailableSeats(t *testing.T) {
	grid := mustGenerate(t, 2, 2, Pattern1x1)
	grid[0][0].Label = "X"
	grid[1][0].Label = "X"
	grid[1][0].Available = false

	if dup := FindDuplicateLabel(grid); dup != nil {
		t.Errorf("FindDuplicateLabel() = %v, want nil", dup)
	}
}

func TestDuplicateLabelError(t *testing.T) {
	err := error(&DuplicateLabelError{Label: "3A", Positions: []Position{{Row: 2, Column: 0}, {Row: 2, Column: 1}}})

	var dup *DuplicateLabelError
	if !errors.As(err, &dup) || dup.Label != "3A" {
		t.Fatalf("errors.As() failed for %v", err)
	}
	if err.Error() != `duplicate seat label "3A" at (2,0), (2,1)` {
		t.Errorf("Error() = %q", err.Error())
	}
	if !IsValidation(err) {
		t.Error("IsValidation() should accept duplicate label errors")
	}
}

func TestValidateLayout(t *testing.T) {
	flat := Serialize(mustGenerate(t, 3, 4, Pattern2x2), 4)
	valid := Layout{Rows: 3, Columns: 4, Pattern: Pattern2x2, Seats: flat.Seats}

	out, err := ValidateLayout(valid, 20)
	if err != nil {
		t.Fatalf("ValidateLayout() error = %v", err)
	}
	if out.TotalSeats != 13 || !out.Corrected {
		t.Errorf("outcome = %+v, want 13 corrected", out)
	}

	dup := append([]FlatSeat(nil), flat.Seats...)
	dup[1].Label = dup[0].Label

	outside := append([]FlatSeat(nil), flat.Seats...)
	row := 7
	outside[0].VisualRow = &row

	badType := append([]FlatSeat(nil), flat.Seats...)
	badType[0].Type = "bench"

	stacked := append([]FlatSeat(nil), flat.Seats...)
	zero := 0
	for i := range stacked {
		stacked[i].Row = 0
		stacked[i].VisualRow = &zero
		stacked[i].VisualColumn = &zero
	}

	shared := append([]FlatSeat(nil), flat.Seats...)
	shared[1].VisualColumn = shared[0].VisualColumn

	rowMismatch := append([]FlatSeat(nil), flat.Seats...)
	rowMismatch[0].Row = 1

	legacyClash := []FlatSeat{
		{ID: "a", Row: 0, Column: 0, Type: SeatRegular, Available: true, Label: "1A"},
		{ID: "b", Row: 0, Column: 0, Type: SeatRegular, Available: true, Label: "1B"},
	}

	closed := append([]FlatSeat(nil), flat.Seats...)
	for i := range closed {
		closed[i].Available = false
	}

	tests := []struct {
		name   string
		layout Layout
		total  int
		want   error
	}{
		{"Bad dimensions", Layout{Rows: 0, Columns: 4, Pattern: Pattern2x2, Seats: flat.Seats}, 13, ErrInvalidDimensions},
		{"Bad pattern", Layout{Rows: 3, Columns: 4, Pattern: "wide", Seats: flat.Seats}, 13, ErrInvalidPattern},
		{"Zero total", valid, 0, ErrTotalSeatsRequired},
		{"No seats", Layout{Rows: 3, Columns: 4, Pattern: Pattern2x2}, 13, ErrLayoutNotConfigured},
		{"Duplicate", Layout{Rows: 3, Columns: 4, Pattern: Pattern2x2, Seats: dup}, 13, ErrDuplicateLabel},
		{"Outside", Layout{Rows: 3, Columns: 4, Pattern: Pattern2x2, Seats: outside}, 13, ErrSeatNotFound},
		{"Bad type", Layout{Rows: 3, Columns: 4, Pattern: Pattern2x2, Seats: badType}, 13, ErrInvalidSeatType},
		{"Collapsed coordinates", Layout{Rows: 3, Columns: 4, Pattern: Pattern2x2, Seats: stacked}, 13, ErrSeatPosition},
		{"Shared visual position", Layout{Rows: 3, Columns: 4, Pattern: Pattern2x2, Seats: shared}, 13, ErrSeatPosition},
		{"Row disagrees with visual row", Layout{Rows: 3, Columns: 4, Pattern: Pattern2x2, Seats: rowMismatch}, 13, ErrSeatPosition},
		{"Legacy column reused", Layout{Rows: 3, Columns: 4, Pattern: Pattern2x2, Seats: legacyClash}, 2, ErrSeatPosition},
		{"Nothing available", Layout{Rows: 3, Columns: 4, Pattern: Pattern2x2, Seats: closed}, 13, ErrNoAvailableSeat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateLayout(tt.layout, tt.total)
			if !errors.Is(err, tt.want) {
				t.Errorf("ValidateLayout() error = %v, want %v", err, tt.want)
			}
		})
	}
}
