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

type BusConfigurationHandler struct {
	service usecase.BusConfigurationService
	log     *zap.Logger
}

func NewBusConfigurationHandler(service usecase.BusConfigurationService, log *zap.Logger) *BusConfigurationHandler {
	return &BusConfigurationHandler{
		service: service,
		log:     log.With(zap.String("handler", "bus_configuration")),
	}
}

// GetConfigurations handles GET /api/bus-configurations?page&per_page&bus_type&search
func (h *BusConfigurationHandler) GetConfigurations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ConfigurationListRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		},
		BusType: query.Get("bus_type"),
		Search:  query.Get("search"),
	}

	configs, err := h.service.GetConfigurations(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "get bus configurations")
		return
	}

	utils.ResponseSuccess(w, "Bus configurations retrieved successfully", configs)
}

// GetConfigurationByID handles GET /api/bus-configurations/{id}
func (h *BusConfigurationHandler) GetConfigurationByID(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.GetConfigurationByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "get bus configuration")
		return
	}

	utils.ResponseSuccess(w, "Bus configuration retrieved successfully", cfg)
}

// CreateConfiguration handles POST /api/bus-configurations
func (h *BusConfigurationHandler) CreateConfiguration(w http.ResponseWriter, r *http.Request) {
	var req request.BusConfigurationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	cfg, err := h.service.CreateConfiguration(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create bus configuration")
		return
	}

	utils.ResponseCreated(w, "Bus configuration created successfully", cfg)
}

// UpdateConfiguration handles PATCH /api/bus-configurations/{id}
func (h *BusConfigurationHandler) UpdateConfiguration(w http.ResponseWriter, r *http.Request) {
	var req request.BusConfigurationUpdateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	cfg, err := h.service.UpdateConfiguration(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "update bus configuration")
		return
	}

	utils.ResponseSuccess(w, "Bus configuration updated successfully", cfg)
}

// DeleteConfiguration handles DELETE /api/bus-configurations/{id}
func (h *BusConfigurationHandler) DeleteConfiguration(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteConfiguration(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "delete bus configuration")
		return
	}

	utils.ResponseSuccess(w, "Bus configuration deleted successfully", nil)
}

// ValidateConfiguration handles POST /api/bus-configurations/validate
func (h *BusConfigurationHandler) ValidateConfiguration(w http.ResponseWriter, r *http.Request) {
	var req request.BusConfigurationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.ValidateConfiguration(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "validate bus configuration")
		return
	}

	utils.ResponseSuccess(w, "Bus configuration is valid", result)
}

// CloneConfiguration handles POST /api/bus-configurations/{id}/clone
func (h *BusConfigurationHandler) CloneConfiguration(w http.ResponseWriter, r *http.Request) {
	var req request.CloneConfigurationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	cfg, err := h.service.CloneConfiguration(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "clone bus configuration")
		return
	}

	utils.ResponseCreated(w, "Bus configuration cloned successfully", cfg)
}

func (h *BusConfigurationHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}
