package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fleet-admin/internal/data/entity"
	"fleet-admin/internal/data/repository"
	"fleet-admin/internal/dto/request"
	"fleet-admin/internal/dto/response"
	"fleet-admin/pkg/cache"
	"fleet-admin/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BusService interface {
	GetBuses(ctx context.Context, req *request.BusListRequest) (*response.PaginatedResponse[response.BusResponse], error)
	GetBusByID(ctx context.Context, id string) (*response.BusDetailResponse, error)
	CreateBus(ctx context.Context, req *request.BusRequest) (*response.BusResponse, error)
	UpdateBus(ctx context.Context, id string, req *request.BusUpdateRequest) (*response.BusResponse, error)
	DeleteBus(ctx context.Context, id string) error
}

type busService struct {
	repo     *repository.Repository
	cache    cache.Service
	cacheTTL time.Duration
	log      *zap.Logger
}

func NewBusService(repo *repository.Repository, cacheSvc cache.Service, cacheTTL time.Duration, log *zap.Logger) BusService {
	return &busService{
		repo:     repo,
		cache:    cacheSvc,
		cacheTTL: cache.TTL(cacheTTL),
		log:      log.With(zap.String("service", "bus")),
	}
}

func (s *busService) GetBuses(ctx context.Context, req *request.BusListRequest) (*response.PaginatedResponse[response.BusResponse], error) {
	if req.Page < 1 {
		req.Page = 1
	}
	req.PerPage = req.Limit()

	filter := entity.BusFilter{Status: req.Status}
	if req.ConfigurationID != "" {
		configID, err := uuid.Parse(req.ConfigurationID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid configuration id %q", ErrValidation, req.ConfigurationID)
		}
		filter.ConfigurationID = &configID
	}

	buses, err := s.repo.Bus.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list buses: %w", err)
	}

	total, err := s.repo.Bus.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count buses: %w", err)
	}

	items := make([]response.BusResponse, len(buses))
	for i, bus := range buses {
		items[i] = response.BusToResponse(bus)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *busService) GetBusByID(ctx context.Context, id string) (*response.BusDetailResponse, error) {
	var cached response.BusDetailResponse
	err := s.cache.Get(ctx, cache.BusKey(id), &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.log.Warn("Bus cache read failed", zap.Error(err), zap.String("bus_id", id))
	}

	bus, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &response.BusDetailResponse{BusResponse: response.BusToResponse(bus)}

	cfg, err := s.repo.BusConfiguration.FindByID(ctx, bus.ConfigurationID)
	if err != nil {
		return nil, fmt.Errorf("find configuration for bus %s: %w", id, err)
	}
	if cfg != nil {
		cfgResp := response.BusConfigurationToResponse(cfg)
		detail.Configuration = &cfgResp
	}

	if err := s.cache.Set(ctx, cache.BusKey(id), detail, s.cacheTTL); err != nil {
		s.log.Warn("Bus cache write failed", zap.Error(err), zap.String("bus_id", id))
	}

	return detail, nil
}

func (s *busService) CreateBus(ctx context.Context, req *request.BusRequest) (*response.BusResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	plate := normalizePlate(req.PlateNumber)
	if err := s.checkPlate(ctx, plate, uuid.Nil); err != nil {
		return nil, err
	}

	configID, err := s.checkConfiguration(ctx, req.ConfigurationID)
	if err != nil {
		return nil, err
	}

	status := entity.BusStatus(req.Status)
	if status == "" {
		status = entity.BusStatusActive
	}

	bus := &entity.Bus{
		Base:            entity.NewBase(time.Now()),
		PlateNumber:     plate,
		FleetNumber:     strings.TrimSpace(req.FleetNumber),
		ConfigurationID: configID,
		Status:          status,
	}

	if err := s.repo.Bus.Create(ctx, bus); err != nil {
		return nil, fmt.Errorf("create bus %s: %w", plate, err)
	}

	s.log.Info("Bus created",
		zap.String("bus_id", bus.ID.String()),
		zap.String("plate_number", bus.PlateNumber),
		zap.String("configuration_id", bus.ConfigurationID.String()),
	)

	resp := response.BusToResponse(bus)
	return &resp, nil
}

func (s *busService) UpdateBus(ctx context.Context, id string, req *request.BusUpdateRequest) (*response.BusResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	bus, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PlateNumber != nil {
		plate := normalizePlate(*req.PlateNumber)
		if plate != bus.PlateNumber {
			if err := s.checkPlate(ctx, plate, bus.ID); err != nil {
				return nil, err
			}
		}
		bus.PlateNumber = plate
	}
	if req.FleetNumber != nil {
		bus.FleetNumber = strings.TrimSpace(*req.FleetNumber)
	}
	if req.ConfigurationID != nil {
		configID, err := s.checkConfiguration(ctx, *req.ConfigurationID)
		if err != nil {
			return nil, err
		}
		bus.ConfigurationID = configID
	}
	if req.Status != nil {
		bus.Status = entity.BusStatus(*req.Status)
	}

	bus.UpdatedAt = time.Now()
	if err := s.repo.Bus.Update(ctx, bus); err != nil {
		return nil, fmt.Errorf("update bus %s: %w", id, err)
	}

	s.invalidate(ctx, id)
	s.log.Info("Bus updated", zap.String("bus_id", id))

	resp := response.BusToResponse(bus)
	return &resp, nil
}

func (s *busService) DeleteBus(ctx context.Context, id string) error {
	bus, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Bus.Delete(ctx, bus.ID); err != nil {
		return fmt.Errorf("delete bus %s: %w", id, err)
	}

	s.invalidate(ctx, id)
	s.log.Info("Bus deleted", zap.String("bus_id", id), zap.String("plate_number", bus.PlateNumber))
	return nil
}

func (s *busService) find(ctx context.Context, id string) (*entity.Bus, error) {
	busID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid bus id %q", ErrValidation, id)
	}

	bus, err := s.repo.Bus.FindByID(ctx, busID)
	if err != nil {
		return nil, fmt.Errorf("find bus %s: %w", id, err)
	}
	if bus == nil {
		return nil, fmt.Errorf("bus %s: %w", id, ErrNotFound)
	}
	return bus, nil
}

// checkConfiguration resolves a configuration id that a bus will reference.
// A missing configuration is the caller's mistake, not a missing bus.
func (s *busService) checkConfiguration(ctx context.Context, id string) (uuid.UUID, error) {
	configID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid configuration id %q", ErrValidation, id)
	}

	cfg, err := s.repo.BusConfiguration.FindByID(ctx, configID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("find bus configuration %s: %w", id, err)
	}
	if cfg == nil {
		return uuid.Nil, fmt.Errorf("%w: bus configuration %s does not exist", ErrValidation, id)
	}
	return cfg.ID, nil
}

func (s *busService) checkPlate(ctx context.Context, plate string, self uuid.UUID) error {
	existing, err := s.repo.Bus.FindByPlateNumber(ctx, plate)
	if err != nil {
		return fmt.Errorf("find bus by plate %s: %w", plate, err)
	}
	if existing != nil && existing.ID != self {
		return fmt.Errorf("%w: plate number %s is already registered", ErrConflict, plate)
	}
	return nil
}

func (s *busService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, cache.BusKey(id)); err != nil {
		s.log.Warn("Bus cache invalidation failed", zap.Error(err), zap.String("bus_id", id))
	}
}

func normalizePlate(plate string) string {
	return strings.ToUpper(strings.Join(strings.Fields(plate), " "))
}
