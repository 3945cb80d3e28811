package request

import "fleet-admin/internal/seatlayout"

type BusConfigurationRequest struct {
	Name        string            `json:"name" validate:"required,max=120"`
	Description string            `json:"description" validate:"max=1000"`
	BusType     string            `json:"bus_type" validate:"required,oneof=Economy Standard Business Executive VIP Luxury Sleeper"`
	TotalSeats  int               `json:"total_seats" validate:"gt=0"`
	SeatLayout  seatlayout.Layout `json:"seat_layout"`
	Amenities   []string          `json:"amenities" validate:"omitempty,dive,max=60"`
}

// BusConfigurationUpdateRequest is a partial update. Nil fields keep their
// stored value.
type BusConfigurationUpdateRequest struct {
	Name        *string            `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Description *string            `json:"description,omitempty" validate:"omitempty,max=1000"`
	BusType     *string            `json:"bus_type,omitempty" validate:"omitempty,oneof=Economy Standard Business Executive VIP Luxury Sleeper"`
	TotalSeats  *int               `json:"total_seats,omitempty" validate:"omitempty,gt=0"`
	SeatLayout  *seatlayout.Layout `json:"seat_layout,omitempty"`
	Amenities   *[]string          `json:"amenities,omitempty"`
}

type CloneConfigurationRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

type ConfigurationListRequest struct {
	PaginatedRequest
	BusType string
	Search  string
}

// ToConfiguration converts a create request to the engine view.
func (r *BusConfigurationRequest) ToConfiguration() seatlayout.Configuration {
	return seatlayout.Configuration{
		Name:        r.Name,
		Description: r.Description,
		BusType:     seatlayout.BusType(r.BusType),
		TotalSeats:  r.TotalSeats,
		SeatLayout:  r.SeatLayout,
		Amenities:   r.Amenities,
	}
}

// ConfigurationToRequest builds a create request from the engine view.
func ConfigurationToRequest(cfg seatlayout.Configuration) BusConfigurationRequest {
	return BusConfigurationRequest{
		Name:        cfg.Name,
		Description: cfg.Description,
		BusType:     string(cfg.BusType),
		TotalSeats:  cfg.TotalSeats,
		SeatLayout:  cfg.SeatLayout,
		Amenities:   cfg.Amenities,
	}
}
