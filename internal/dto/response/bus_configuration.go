package response

import (
	"time"

	"fleet-admin/internal/data/entity"
	"fleet-admin/internal/seatlayout"
)

// BusConfigurationResponse carries the same fields as the engine's
// Configuration plus timestamps, so clients can decode either.
type BusConfigurationResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	BusType     seatlayout.BusType `json:"bus_type"`
	TotalSeats  int                `json:"total_seats"`
	SeatLayout  seatlayout.Layout  `json:"seat_layout"`
	Amenities   []string           `json:"amenities"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type ConfigurationValidationResponse struct {
	Valid      bool `json:"valid"`
	TotalSeats int  `json:"total_seats"`
	Corrected  bool `json:"corrected"`
}

func BusConfigurationToResponse(cfg *entity.BusConfiguration) BusConfigurationResponse {
	amenities := cfg.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return BusConfigurationResponse{
		ID:          cfg.ID.String(),
		Name:        cfg.Name,
		Description: cfg.Description,
		BusType:     cfg.BusType,
		TotalSeats:  cfg.TotalSeats,
		SeatLayout:  cfg.SeatLayout,
		Amenities:   amenities,
		CreatedAt:   cfg.CreatedAt,
		UpdatedAt:   cfg.UpdatedAt,
	}
}

// ToConfiguration returns the engine view of the response.
func (r BusConfigurationResponse) ToConfiguration() seatlayout.Configuration {
	return seatlayout.Configuration{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		BusType:     r.BusType,
		TotalSeats:  r.TotalSeats,
		SeatLayout:  r.SeatLayout,
		Amenities:   r.Amenities,
	}
}
