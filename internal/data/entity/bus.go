package entity

import "github.com/google/uuid"

type BusStatus string

const (
	BusStatusActive      BusStatus = "active"
	BusStatusMaintenance BusStatus = "maintenance"
	BusStatusInactive    BusStatus = "inactive"
)

type Bus struct {
	Base
	PlateNumber     string    `db:"plate_number"`
	FleetNumber     string    `db:"fleet_number"`
	ConfigurationID uuid.UUID `db:"configuration_id"`
	Status          BusStatus `db:"status"`
}

type BusFilter struct {
	ConfigurationID *uuid.UUID
	Status          string
}
