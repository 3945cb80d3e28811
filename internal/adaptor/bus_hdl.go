package adaptor

import (
	"encoding/json"
	"net/http"

	"fleet-admin/internal/dto/request"
	"fleet-admin/internal/usecase"
	"fleet-admin/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BusHandler struct {
	service usecase.BusService
	log     *zap.Logger
}

func NewBusHandler(service usecase.BusService, log *zap.Logger) *BusHandler {
	return &BusHandler{
		service: service,
		log:     log.With(zap.String("handler", "bus")),
	}
}

// GetBuses handles GET /api/buses?page&per_page&configuration_id&status
func (h *BusHandler) GetBuses(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.BusListRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		},
		ConfigurationID: query.Get("configuration_id"),
		Status:          query.Get("status"),
	}

	buses, err := h.service.GetBuses(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "get buses")
		return
	}

	utils.ResponseSuccess(w, "Buses retrieved successfully", buses)
}

// GetBusByID handles GET /api/buses/{id}
func (h *BusHandler) GetBusByID(w http.ResponseWriter, r *http.Request) {
	bus, err := h.service.GetBusByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "get bus")
		return
	}

	utils.ResponseSuccess(w, "Bus retrieved successfully", bus)
}

// CreateBus handles POST /api/buses
func (h *BusHandler) CreateBus(w http.ResponseWriter, r *http.Request) {
	var req request.BusRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	bus, err := h.service.CreateBus(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create bus")
		return
	}

	utils.ResponseCreated(w, "Bus created successfully", bus)
}

// UpdateBus handles PATCH /api/buses/{id}
func (h *BusHandler) UpdateBus(w http.ResponseWriter, r *http.Request) {
	var req request.BusUpdateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	bus, err := h.service.UpdateBus(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "update bus")
		return
	}

	utils.ResponseSuccess(w, "Bus updated successfully", bus)
}

// DeleteBus handles DELETE /api/buses/{id}
func (h *BusHandler) DeleteBus(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteBus(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "delete bus")
		return
	}

	utils.ResponseSuccess(w, "Bus deleted successfully", nil)
}

func (h *BusHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}
