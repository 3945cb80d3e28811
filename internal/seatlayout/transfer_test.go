package seatlayout

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestImport_EmptySeatsFallBackToDefaults(t *testing.T) {
	s, err := Import([]byte(`{"rows":2,"columns":2,"arrangement_pattern":"1x1","seats":[]}`))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if s.Rows != 2 || s.Columns != 2 || s.Pattern != Pattern1x1 {
		t.Fatalf("state = %d x %d %q", s.Rows, s.Columns, s.Pattern)
	}

	for r, row := range s.Grid {
		for c, seat := range row {
			if seat.IsWalkway {
				continue
			}
			if !seat.Available {
				t.Errorf("seat (%d,%d) unavailable", r, c)
			}
			if want := DefaultLabel(r, c, 2, r == 1); seat.Label != want {
				t.Errorf("seat (%d,%d) label = %q, want %q", r, c, seat.Label, want)
			}
		}
	}
	if s.TotalSeats != 5 {
		t.Errorf("TotalSeats = %d, want 5", s.TotalSeats)
	}
}

func TestImport_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Invalid JSON", `{"rows":`},
		{"Missing rows", `{"columns":2,"seats":[]}`},
		{"Missing seats", `{"rows":2,"columns":2}`},
		{"Seats not array", `{"rows":2,"columns":2,"seats":{}}`},
		{"Bad pattern", `{"rows":2,"columns":2,"arrangement_pattern":"9x9","seats":[]}`},
		{"Bad dimensions", `{"rows":0,"columns":2,"seats":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Import([]byte(tt.input))
			if !errors.Is(err, ErrImport) {
				t.Errorf("Import() error = %v, want ErrImport", err)
			}
		})
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	s := mustState(t, 4, 4, Pattern2x2)
	s.Name = "Night Express / 40"

	var err error
	if s, err = s.ToggleAvailability(Position{Row: 3, Column: 4}); err != nil {
		t.Fatalf("ToggleAvailability() error = %v", err)
	}
	if s, err = s.SetLabel(Position{Row: 0, Column: 0}, "DRV"); err != nil {
		t.Fatalf("SetLabel() error = %v", err)
	}
	if s, err = s.SetSeatType(Position{Row: 1, Column: 0}, SeatVIP); err != nil {
		t.Fatalf("SetSeatType() error = %v", err)
	}

	name, data, err := Export(s)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if name != "bus-config-night-express-40.json" {
		t.Errorf("filename = %q", name)
	}

	var doc ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("export is not JSON: %v", err)
	}
	if doc.Rows != 4 || doc.Columns != 4 || doc.Pattern != Pattern2x2 || len(doc.Seats) != 20 {
		t.Errorf("document = %+v", doc)
	}

	imported, err := Import(data)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	for r, row := range s.Grid {
		for c, want := range row {
			got := imported.Grid[r][c]
			if got.Available != want.Available || got.Label != want.Label || got.Type != want.Type || got.IsWalkway != want.IsWalkway {
				t.Errorf("seat (%d,%d) = %+v, want %+v", r, c, got, want)
			}
		}
	}
}

func TestExport_RequiresLayout(t *testing.T) {
	if _, _, err := Export(EditorState{}); !errors.Is(err, ErrLayoutNotConfigured) {
		t.Errorf("Export() error = %v, want ErrLayoutNotConfigured", err)
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Night Express / 40": "night-express-40",
		"  VIP  ":            "vip",
		"--":                 "",
		"Ruta Norte-Sur!":    "ruta-norte-sur",
	}
	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
	if got := ExportFilename(""); got != "bus-config-untitled.json" {
		t.Errorf("ExportFilename(\"\") = %q", got)
	}
}
