package adaptor

import (
	"encoding/json"
	"io"
	"net/http"

	"fleet-admin/internal/dto/request"
	"fleet-admin/internal/dto/response"
	"fleet-admin/internal/usecase"
	"fleet-admin/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxImportBytes = 1 << 20

type EditorHandler struct {
	service usecase.EditorService
	log     *zap.Logger
}

func NewEditorHandler(service usecase.EditorService, log *zap.Logger) *EditorHandler {
	return &EditorHandler{
		service: service,
		log:     log.With(zap.String("handler", "editor")),
	}
}

// Generate handles POST /api/editor/generate
func (h *EditorHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req request.GenerateLayoutRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	h.respond(w, "generate layout", "Layout generated", func() (*response.EditorResponse, error) {
		return h.service.Generate(r.Context(), &req)
	})
}

// Open handles GET /api/editor/bus-configurations/{id}
func (h *EditorHandler) Open(w http.ResponseWriter, r *http.Request) {
	h.respond(w, "open configuration", "Configuration opened", func() (*response.EditorResponse, error) {
		return h.service.Open(r.Context(), chi.URLParam(r, "id"))
	})
}

// Reconcile handles POST /api/editor/reconcile
func (h *EditorHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	var req request.ReconcileRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	h.respond(w, "reconcile layout", "Layout reconciled", func() (*response.EditorResponse, error) {
		return h.service.Reconcile(r.Context(), &req)
	})
}

// SetSeatType handles POST /api/editor/seat-type
func (h *EditorHandler) SetSeatType(w http.ResponseWriter, r *http.Request) {
	var req request.SeatTypeRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	h.respond(w, "set seat type", "Seat type updated", func() (*response.EditorResponse, error) {
		return h.service.SetSeatType(r.Context(), &req)
	})
}

// ToggleAvailability handles POST /api/editor/availability
func (h *EditorHandler) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	var req request.SeatRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	h.respond(w, "toggle availability", "Seat availability updated", func() (*response.EditorResponse, error) {
		return h.service.ToggleAvailability(r.Context(), &req)
	})
}

// SetLabel handles POST /api/editor/label
func (h *EditorHandler) SetLabel(w http.ResponseWriter, r *http.Request) {
	var req request.SeatLabelRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	h.respond(w, "set seat label", "Seat label updated", func() (*response.EditorResponse, error) {
		return h.service.SetLabel(r.Context(), &req)
	})
}

// Resize handles POST /api/editor/resize
func (h *EditorHandler) Resize(w http.ResponseWriter, r *http.Request) {
	var req request.ResizeRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	h.respond(w, "resize layout", "Layout resized", func() (*response.EditorResponse, error) {
		return h.service.Resize(r.Context(), &req)
	})
}

// ChangePattern handles POST /api/editor/pattern
func (h *EditorHandler) ChangePattern(w http.ResponseWriter, r *http.Request) {
	var req request.PatternRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	h.respond(w, "change pattern", "Arrangement pattern changed", func() (*response.EditorResponse, error) {
		return h.service.ChangePattern(r.Context(), &req)
	})
}

// Submit handles POST /api/editor/submit
func (h *EditorHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.EditorStateRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	result, err := h.service.Submit(r.Context(), req.State)
	if err != nil {
		h.handleServiceError(w, err, "submit configuration")
		return
	}

	if result.Created {
		utils.ResponseCreated(w, "Bus configuration created successfully", result)
		return
	}
	utils.ResponseSuccess(w, "Bus configuration updated successfully", result)
}

// Import handles POST /api/editor/import. The body is the pasted layout JSON
// as-is, not wrapped in a request object.
func (h *EditorHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		utils.ResponseBadRequest(w, "Import body is too large or unreadable", nil)
		return
	}

	h.respond(w, "import layout", "Layout imported", func() (*response.EditorResponse, error) {
		return h.service.Import(r.Context(), data)
	})
}

// Export handles POST /api/editor/export
func (h *EditorHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req request.EditorStateRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	filename, body, err := h.service.Export(r.Context(), req.State)
	if err != nil {
		h.handleServiceError(w, err, "export layout")
		return
	}

	utils.ResponseAttachment(w, filename, "application/json", body)
}

func (h *EditorHandler) respond(w http.ResponseWriter, operation, message string, call func() (*response.EditorResponse, error)) {
	result, err := call()
	if err != nil {
		h.handleServiceError(w, err, operation)
		return
	}
	utils.ResponseSuccess(w, message, result)
}

func (h *EditorHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}

// decodeRequest decodes and validates a JSON body, answering 400 itself when
// either step fails.
func decodeRequest[T any](w http.ResponseWriter, r *http.Request, req *T) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}
	return true
}
