package request

type BusRequest struct {
	PlateNumber     string `json:"plate_number" validate:"required,max=20"`
	FleetNumber     string `json:"fleet_number" validate:"max=20"`
	ConfigurationID string `json:"configuration_id" validate:"required,uuid"`
	Status          string `json:"status" validate:"omitempty,oneof=active maintenance inactive"`
}

type BusUpdateRequest struct {
	PlateNumber     *string `json:"plate_number,omitempty" validate:"omitempty,min=1,max=20"`
	FleetNumber     *string `json:"fleet_number,omitempty" validate:"omitempty,max=20"`
	ConfigurationID *string `json:"configuration_id,omitempty" validate:"omitempty,uuid"`
	Status          *string `json:"status,omitempty" validate:"omitempty,oneof=active maintenance inactive"`
}

type BusListRequest struct {
	PaginatedRequest
	ConfigurationID string
	Status          string
}
