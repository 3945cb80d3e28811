package response

import (
	"time"

	"fleet-admin/internal/data/entity"
)

type BusResponse struct {
	ID              string           `json:"id"`
	PlateNumber     string           `json:"plate_number"`
	FleetNumber     string           `json:"fleet_number"`
	ConfigurationID string           `json:"configuration_id"`
	Status          entity.BusStatus `json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

type BusDetailResponse struct {
	BusResponse
	Configuration *BusConfigurationResponse `json:"configuration,omitempty"`
}

func BusToResponse(bus *entity.Bus) BusResponse {
	return BusResponse{
		ID:              bus.ID.String(),
		PlateNumber:     bus.PlateNumber,
		FleetNumber:     bus.FleetNumber,
		ConfigurationID: bus.ConfigurationID.String(),
		Status:          bus.Status,
		CreatedAt:       bus.CreatedAt,
		UpdatedAt:       bus.UpdatedAt,
	}
}
