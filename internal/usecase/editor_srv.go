package usecase

import (
	"context"
	"fmt"

	"fleet-admin/internal/dto/request"
	"fleet-admin/internal/dto/response"
	"fleet-admin/internal/seatlayout"
	"fleet-admin/pkg/utils"

	"go.uber.org/zap"
)

// ConfigurationStore is where the editor loads and submits configurations.
// The in-process configuration service and the fleetapi client both satisfy
// it.
type ConfigurationStore interface {
	Get(ctx context.Context, id string) (*response.BusConfigurationResponse, error)
	Validate(ctx context.Context, req *request.BusConfigurationRequest) (*response.ConfigurationValidationResponse, error)
	Create(ctx context.Context, req *request.BusConfigurationRequest) (*response.BusConfigurationResponse, error)
	Update(ctx context.Context, id string, req *request.BusConfigurationUpdateRequest) (*response.BusConfigurationResponse, error)
}

// LocalStore adapts BusConfigurationService to ConfigurationStore.
type LocalStore struct {
	Configurations BusConfigurationService
}

func (l LocalStore) Get(ctx context.Context, id string) (*response.BusConfigurationResponse, error) {
	return l.Configurations.GetConfigurationByID(ctx, id)
}

func (l LocalStore) Validate(ctx context.Context, req *request.BusConfigurationRequest) (*response.ConfigurationValidationResponse, error) {
	return l.Configurations.ValidateConfiguration(ctx, req)
}

func (l LocalStore) Create(ctx context.Context, req *request.BusConfigurationRequest) (*response.BusConfigurationResponse, error) {
	return l.Configurations.CreateConfiguration(ctx, req)
}

func (l LocalStore) Update(ctx context.Context, id string, req *request.BusConfigurationUpdateRequest) (*response.BusConfigurationResponse, error) {
	return l.Configurations.UpdateConfiguration(ctx, id, req)
}

// EditorService applies editor operations to client-held state. Every call
// takes a state and returns the next one; nothing is kept between calls.
type EditorService interface {
	Generate(ctx context.Context, req *request.GenerateLayoutRequest) (*response.EditorResponse, error)
	Open(ctx context.Context, id string) (*response.EditorResponse, error)
	Reconcile(ctx context.Context, req *request.ReconcileRequest) (*response.EditorResponse, error)
	SetSeatType(ctx context.Context, req *request.SeatTypeRequest) (*response.EditorResponse, error)
	ToggleAvailability(ctx context.Context, req *request.SeatRequest) (*response.EditorResponse, error)
	SetLabel(ctx context.Context, req *request.SeatLabelRequest) (*response.EditorResponse, error)
	Resize(ctx context.Context, req *request.ResizeRequest) (*response.EditorResponse, error)
	ChangePattern(ctx context.Context, req *request.PatternRequest) (*response.EditorResponse, error)
	Submit(ctx context.Context, state seatlayout.EditorState) (*response.SubmitResponse, error)
	Import(ctx context.Context, data []byte) (*response.EditorResponse, error)
	Export(ctx context.Context, state seatlayout.EditorState) (string, []byte, error)
}

type editorService struct {
	store ConfigurationStore
	log   *zap.Logger
}

func NewEditorService(store ConfigurationStore, log *zap.Logger) EditorService {
	return &editorService{
		store: store,
		log:   log.With(zap.String("service", "editor")),
	}
}

func (s *editorService) Generate(ctx context.Context, req *request.GenerateLayoutRequest) (*response.EditorResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	pattern, err := seatlayout.ParsePattern(req.Pattern)
	if err != nil {
		return nil, err
	}
	columns := req.Columns
	if fixed := pattern.Columns(); fixed > 0 {
		columns = fixed
	}

	state, err := seatlayout.NewEditorState(req.Rows, columns, pattern)
	if err != nil {
		return nil, err
	}
	state.Dirty = true
	return &response.EditorResponse{State: state}, nil
}

func (s *editorService) Open(ctx context.Context, id string) (*response.EditorResponse, error) {
	stored, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	state, res, err := seatlayout.OpenEditorState(stored.ToConfiguration())
	if err != nil {
		return nil, fmt.Errorf("open configuration %s: %w", id, err)
	}
	s.logRepair(id, res)

	return &response.EditorResponse{State: state, Reconcile: response.ReconcileToSummary(res)}, nil
}

func (s *editorService) Reconcile(ctx context.Context, req *request.ReconcileRequest) (*response.EditorResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	total := req.TotalSeats
	if total == 0 {
		for _, seat := range req.SeatLayout.Seats {
			if seat.Available {
				total++
			}
		}
	}

	state, res, err := seatlayout.OpenEditorState(seatlayout.Configuration{
		BusType:    seatlayout.BusTypeStandard,
		TotalSeats: total,
		SeatLayout: req.SeatLayout,
	})
	if err != nil {
		return nil, err
	}
	s.logRepair("", res)

	return &response.EditorResponse{State: state, Reconcile: response.ReconcileToSummary(res)}, nil
}

func (s *editorService) SetSeatType(ctx context.Context, req *request.SeatTypeRequest) (*response.EditorResponse, error) {
	return s.apply(req, req.State, func(st seatlayout.EditorState) (seatlayout.EditorState, error) {
		return st.SetSeatType(req.Position(), seatlayout.SeatType(req.Type))
	})
}

func (s *editorService) ToggleAvailability(ctx context.Context, req *request.SeatRequest) (*response.EditorResponse, error) {
	return s.apply(req, req.State, func(st seatlayout.EditorState) (seatlayout.EditorState, error) {
		return st.ToggleAvailability(req.Position())
	})
}

func (s *editorService) SetLabel(ctx context.Context, req *request.SeatLabelRequest) (*response.EditorResponse, error) {
	return s.apply(req, req.State, func(st seatlayout.EditorState) (seatlayout.EditorState, error) {
		return st.SetLabel(req.Position(), req.Label)
	})
}

func (s *editorService) Resize(ctx context.Context, req *request.ResizeRequest) (*response.EditorResponse, error) {
	return s.apply(req, req.State, func(st seatlayout.EditorState) (seatlayout.EditorState, error) {
		return st.Resize(req.Rows, req.Columns)
	})
}

func (s *editorService) ChangePattern(ctx context.Context, req *request.PatternRequest) (*response.EditorResponse, error) {
	return s.apply(req, req.State, func(st seatlayout.EditorState) (seatlayout.EditorState, error) {
		pattern, err := seatlayout.ParsePattern(req.Pattern)
		if err != nil {
			return st, err
		}
		return st.ChangePattern(pattern, req.Confirm)
	})
}

// Submit validates the state locally before the store sees anything, then
// asks the store to validate and persists through Create or Update.
func (s *editorService) Submit(ctx context.Context, state seatlayout.EditorState) (*response.SubmitResponse, error) {
	if err := state.Check(); err != nil {
		return nil, err
	}

	// 1. Local validation and serialization
	cfg, outcome, err := state.Prepare()
	if err != nil {
		s.log.Warn("Submission rejected", zap.Error(err), zap.String("name", state.Name))
		return nil, err
	}
	corrected := outcome.Corrected

	// 2. Store validation
	body := request.ConfigurationToRequest(cfg)
	checked, err := s.store.Validate(ctx, &body)
	if err != nil {
		return nil, err
	}
	if checked.TotalSeats > 0 && checked.TotalSeats != body.TotalSeats {
		body.TotalSeats = checked.TotalSeats
		corrected = true
	}

	// 3. Persist
	var saved *response.BusConfigurationResponse
	created := cfg.ID == ""
	if created {
		saved, err = s.store.Create(ctx, &body)
	} else {
		saved, err = s.store.Update(ctx, cfg.ID, &request.BusConfigurationUpdateRequest{
			Name:        &body.Name,
			Description: &body.Description,
			BusType:     &body.BusType,
			TotalSeats:  &body.TotalSeats,
			SeatLayout:  &body.SeatLayout,
			Amenities:   &body.Amenities,
		})
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("Configuration submitted",
		zap.String("configuration_id", saved.ID),
		zap.Bool("created", created),
		zap.Bool("corrected", corrected),
		zap.Int("total_seats", saved.TotalSeats),
	)

	return &response.SubmitResponse{
		Configuration: saved.ToConfiguration(),
		Created:       created,
		Corrected:     corrected,
	}, nil
}

func (s *editorService) Import(ctx context.Context, data []byte) (*response.EditorResponse, error) {
	state, err := seatlayout.Import(data)
	if err != nil {
		s.log.Warn("Import rejected", zap.Error(err))
		return nil, err
	}
	return &response.EditorResponse{State: state}, nil
}

func (s *editorService) Export(ctx context.Context, state seatlayout.EditorState) (string, []byte, error) {
	if err := state.Check(); err != nil {
		return "", nil, err
	}
	return seatlayout.Export(state)
}

// apply validates the request, checks the posted state and runs op on it.
func (s *editorService) apply(req any, state seatlayout.EditorState, op func(seatlayout.EditorState) (seatlayout.EditorState, error)) (*response.EditorResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}
	if err := state.Check(); err != nil {
		return nil, err
	}

	next, err := op(state)
	if err != nil {
		return nil, err
	}
	return &response.EditorResponse{State: next}, nil
}

func (s *editorService) logRepair(id string, res seatlayout.ReconcileResult) {
	if !res.Repaired {
		return
	}
	s.log.Warn("Stored layout repaired while reconciling",
		zap.String("configuration_id", id),
		zap.Int("target", res.Target),
		zap.Int("enabled", len(res.Enabled)),
		zap.Int("disabled", len(res.Disabled)),
		zap.Int("available", res.Grid.AvailableCount()),
	)
}
