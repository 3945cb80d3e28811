package request

import "fleet-admin/internal/seatlayout"

type GenerateLayoutRequest struct {
	Rows    int    `json:"rows" validate:"gte=1,lte=30"`
	Columns int    `json:"columns" validate:"gte=1,lte=20"`
	Pattern string `json:"arrangement_pattern" validate:"required"`
}

// SeatRequest addresses one seat of the posted state by grid position.
type SeatRequest struct {
	State  seatlayout.EditorState `json:"state"`
	Row    int                    `json:"row" validate:"gte=0"`
	Column int                    `json:"column" validate:"gte=0"`
}

func (r SeatRequest) Position() seatlayout.Position {
	return seatlayout.Position{Row: r.Row, Column: r.Column}
}

type SeatTypeRequest struct {
	SeatRequest
	Type string `json:"type" validate:"required,oneof=regular vip disabled"`
}

type SeatLabelRequest struct {
	SeatRequest
	Label string `json:"label" validate:"max=20"`
}

type ResizeRequest struct {
	State   seatlayout.EditorState `json:"state"`
	Rows    int                    `json:"rows" validate:"gte=1,lte=30"`
	Columns int                    `json:"columns" validate:"gte=1,lte=20"`
}

type PatternRequest struct {
	State   seatlayout.EditorState `json:"state"`
	Pattern string                 `json:"arrangement_pattern" validate:"required"`
	Confirm bool                   `json:"confirm"`
}

type ReconcileRequest struct {
	SeatLayout seatlayout.Layout `json:"seat_layout"`
	TotalSeats int               `json:"total_seats" validate:"gte=0"`
}

type EditorStateRequest struct {
	State seatlayout.EditorState `json:"state"`
}
