package seatlayout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// ExportDocument is the downloadable form of a layout.
type ExportDocument struct {
	Rows    int          `json:"rows"`
	Columns int          `json:"columns"`
	Pattern Pattern      `json:"arrangement_pattern"`
	Seats   []ExportSeat `json:"seats"`
}

type ExportSeat struct {
	Row       int      `json:"row"`
	Column    int      `json:"column"`
	Type      SeatType `json:"type"`
	Available bool     `json:"available"`
	Label     string   `json:"label"`
}

// Export renders the state as an indented JSON document and the file name to
// offer it under.
func Export(s EditorState) (string, []byte, error) {
	if !s.LayoutConfigured || len(s.Grid) == 0 {
		return "", nil, ErrLayoutNotConfigured
	}

	flat := Serialize(s.Grid, s.Columns)
	doc := ExportDocument{
		Rows:    s.Rows,
		Columns: s.Columns,
		Pattern: s.Pattern,
		Seats:   make([]ExportSeat, len(flat.Seats)),
	}
	for i, fs := range flat.Seats {
		doc.Seats[i] = ExportSeat{
			Row:       fs.Row,
			Column:    fs.Column,
			Type:      fs.Type,
			Available: fs.Available,
			Label:     fs.Label,
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("encode export: %w", err)
	}
	return ExportFilename(s.Name), data, nil
}

func ExportFilename(name string) string {
	slug := Slugify(name)
	if slug == "" {
		slug = "untitled"
	}
	return "bus-config-" + slug + ".json"
}

// Slugify lower-cases name and collapses every run of other characters than
// letters and digits into a single dash.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

type importDocument struct {
	Rows    *int            `json:"rows"`
	Columns *int            `json:"columns"`
	Pattern string          `json:"arrangement_pattern"`
	Seats   json.RawMessage `json:"seats"`
}

type importSeat struct {
	Row       int      `json:"row"`
	Column    int      `json:"column"`
	Type      SeatType `json:"type"`
	Available *bool    `json:"available"`
	Label     string   `json:"label"`
}

// Import parses pasted layout JSON and rebuilds the editor state through the
// same reconciliation used when opening a stored configuration. The target
// total is whatever the imported seats leave available, so no seat is
// re-enabled or disabled behind the user's back. Seats missing from the
// document keep their generated defaults.
func Import(data []byte) (EditorState, error) {
	var doc importDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return EditorState{}, fmt.Errorf("%w: invalid JSON: %v", ErrImport, err)
	}
	if doc.Rows == nil || doc.Columns == nil {
		return EditorState{}, fmt.Errorf("%w: rows and columns are required", ErrImport)
	}
	raw := bytes.TrimSpace(doc.Seats)
	if len(raw) == 0 || raw[0] != '[' {
		return EditorState{}, fmt.Errorf("%w: seats must be an array", ErrImport)
	}

	var seats []importSeat
	if err := json.Unmarshal(raw, &seats); err != nil {
		return EditorState{}, fmt.Errorf("%w: invalid seats: %v", ErrImport, err)
	}

	pattern := Pattern2x2
	if doc.Pattern != "" {
		p, err := ParsePattern(doc.Pattern)
		if err != nil {
			return EditorState{}, fmt.Errorf("%w: %v", ErrImport, err)
		}
		pattern = p
	}

	stored := make([]FlatSeat, len(seats))
	for i, s := range seats {
		available := true
		if s.Available != nil {
			available = *s.Available
		}
		stored[i] = FlatSeat{
			Row:       s.Row,
			Column:    s.Column,
			Type:      s.Type,
			Available: available,
			Label:     s.Label,
		}
	}

	rows, columns := *doc.Rows, *doc.Columns
	base, err := Generate(rows, columns, pattern)
	if err != nil {
		return EditorState{}, fmt.Errorf("%w: %v", ErrImport, err)
	}
	target := overlay(base, stored, columns, pattern).AvailableCount()

	res, err := Reconcile(stored, rows, columns, pattern, target)
	if err != nil {
		return EditorState{}, fmt.Errorf("%w: %v", ErrImport, err)
	}

	return EditorState{
		BusType:          BusTypeStandard,
		Amenities:        []string{},
		Rows:             rows,
		Columns:          columns,
		Pattern:          pattern,
		Grid:             res.Grid,
		TotalSeats:       res.Grid.AvailableCount(),
		LayoutConfigured: true,
		Dirty:            true,
	}, nil
}
