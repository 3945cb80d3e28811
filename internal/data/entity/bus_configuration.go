package entity

import (
	"fleet-admin/internal/seatlayout"

	"github.com/google/uuid"
)

// BusConfiguration is a named seat layout template. SeatLayout is stored as
// JSONB and amenities as text[].
type BusConfiguration struct {
	Base
	Name        string             `db:"name"`
	Description string             `db:"description"`
	BusType     seatlayout.BusType `db:"bus_type"`
	TotalSeats  int                `db:"total_seats"`
	SeatLayout  seatlayout.Layout  `db:"seat_layout"`
	Amenities   []string           `db:"amenities"`
	CreatedBy   *uuid.UUID         `db:"created_by"`
}

// Layout returns the engine view of the row.
func (c *BusConfiguration) Layout() seatlayout.Configuration {
	return seatlayout.Configuration{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		BusType:     c.BusType,
		TotalSeats:  c.TotalSeats,
		SeatLayout:  c.SeatLayout,
		Amenities:   c.Amenities,
	}
}

// ConfigurationFilter narrows list queries. Empty fields match everything.
type ConfigurationFilter struct {
	BusType string
	Search  string
}
