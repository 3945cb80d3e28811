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
	"fleet-admin/internal/seatlayout"
	"fleet-admin/pkg/cache"
	"fleet-admin/pkg/queue"
	"fleet-admin/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BusConfigurationService interface {
	GetConfigurations(ctx context.Context, req *request.ConfigurationListRequest) (*response.PaginatedResponse[response.BusConfigurationResponse], error)
	GetConfigurationByID(ctx context.Context, id string) (*response.BusConfigurationResponse, error)
	CreateConfiguration(ctx context.Context, req *request.BusConfigurationRequest) (*response.BusConfigurationResponse, error)
	UpdateConfiguration(ctx context.Context, id string, req *request.BusConfigurationUpdateRequest) (*response.BusConfigurationResponse, error)
	DeleteConfiguration(ctx context.Context, id string) error
	ValidateConfiguration(ctx context.Context, req *request.BusConfigurationRequest) (*response.ConfigurationValidationResponse, error)
	CloneConfiguration(ctx context.Context, id string, req *request.CloneConfigurationRequest) (*response.BusConfigurationResponse, error)
}

type busConfigurationService struct {
	repo      *repository.Repository
	cache     cache.Service
	cacheTTL  time.Duration
	publisher queue.Publisher
	log       *zap.Logger
}

func NewBusConfigurationService(
	repo *repository.Repository,
	cacheSvc cache.Service,
	cacheTTL time.Duration,
	publisher queue.Publisher,
	log *zap.Logger,
) BusConfigurationService {
	return &busConfigurationService{
		repo:      repo,
		cache:     cacheSvc,
		cacheTTL:  cache.TTL(cacheTTL),
		publisher: publisher,
		log:       log.With(zap.String("service", "bus_configuration")),
	}
}

func (s *busConfigurationService) GetConfigurations(ctx context.Context, req *request.ConfigurationListRequest) (*response.PaginatedResponse[response.BusConfigurationResponse], error) {
	if req.Page < 1 {
		req.Page = 1
	}
	req.PerPage = req.Limit()

	filter := entity.ConfigurationFilter{BusType: req.BusType, Search: req.Search}

	configs, err := s.repo.BusConfiguration.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list bus configurations: %w", err)
	}

	total, err := s.repo.BusConfiguration.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count bus configurations: %w", err)
	}

	items := make([]response.BusConfigurationResponse, len(configs))
	for i, cfg := range configs {
		items[i] = response.BusConfigurationToResponse(cfg)
	}

	s.log.Debug("Bus configurations retrieved",
		zap.Int("count", len(items)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
	)

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *busConfigurationService) GetConfigurationByID(ctx context.Context, id string) (*response.BusConfigurationResponse, error) {
	var cached response.BusConfigurationResponse
	err := s.cache.Get(ctx, cache.ConfigurationKey(id), &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.log.Warn("Configuration cache read failed", zap.Error(err), zap.String("configuration_id", id))
	}

	cfg, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.BusConfigurationToResponse(cfg)
	if err := s.cache.Set(ctx, cache.ConfigurationKey(id), resp, s.cacheTTL); err != nil {
		s.log.Warn("Configuration cache write failed", zap.Error(err), zap.String("configuration_id", id))
	}

	return &resp, nil
}

func (s *busConfigurationService) CreateConfiguration(ctx context.Context, req *request.BusConfigurationRequest) (*response.BusConfigurationResponse, error) {
	outcome, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cfg := &entity.BusConfiguration{
		Base:        entity.NewBase(now),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		BusType:     seatlayout.BusType(req.BusType),
		TotalSeats:  outcome.TotalSeats,
		SeatLayout:  req.SeatLayout,
		Amenities:   utils.NormalizeStrings(req.Amenities),
	}
	if userID, ok := utils.GetUserIDFromContext(ctx); ok {
		cfg.CreatedBy = &userID
	}

	if err := s.repo.BusConfiguration.Create(ctx, cfg); err != nil {
		return nil, fmt.Errorf("create bus configuration: %w", err)
	}

	s.log.Info("Bus configuration created",
		zap.String("configuration_id", cfg.ID.String()),
		zap.String("name", cfg.Name),
		zap.Int("total_seats", cfg.TotalSeats),
	)
	s.publish(ctx, queue.ConfigurationCreated, cfg, "")

	resp := response.BusConfigurationToResponse(cfg)
	return &resp, nil
}

func (s *busConfigurationService) UpdateConfiguration(ctx context.Context, id string, req *request.BusConfigurationUpdateRequest) (*response.BusConfigurationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	cfg, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		cfg.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		cfg.Description = *req.Description
	}
	if req.BusType != nil {
		cfg.BusType = seatlayout.BusType(*req.BusType)
	}
	if req.Amenities != nil {
		cfg.Amenities = utils.NormalizeStrings(*req.Amenities)
	}

	// total_seats must keep matching the available seats of the layout
	if req.SeatLayout != nil || req.TotalSeats != nil {
		if req.SeatLayout != nil {
			cfg.SeatLayout = *req.SeatLayout
		}
		if req.TotalSeats != nil {
			cfg.TotalSeats = *req.TotalSeats
		}
		outcome, err := seatlayout.ValidateLayout(cfg.SeatLayout, cfg.TotalSeats)
		if err != nil {
			return nil, err
		}
		if outcome.Corrected {
			s.log.Info("Total seats corrected to available count",
				zap.String("configuration_id", id),
				zap.Int("declared", cfg.TotalSeats),
				zap.Int("available", outcome.TotalSeats),
			)
		}
		cfg.TotalSeats = outcome.TotalSeats
	}

	cfg.UpdatedAt = time.Now()
	if err := s.repo.BusConfiguration.Update(ctx, cfg); err != nil {
		return nil, fmt.Errorf("update bus configuration %s: %w", id, err)
	}

	s.invalidate(ctx, id)
	s.log.Info("Bus configuration updated", zap.String("configuration_id", id))
	s.publish(ctx, queue.ConfigurationUpdated, cfg, "")

	resp := response.BusConfigurationToResponse(cfg)
	return &resp, nil
}

func (s *busConfigurationService) DeleteConfiguration(ctx context.Context, id string) error {
	cfg, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	inUse, err := s.repo.Bus.CountByConfiguration(ctx, cfg.ID)
	if err != nil {
		return fmt.Errorf("count buses for configuration %s: %w", id, err)
	}
	if inUse > 0 {
		return fmt.Errorf("%w: configuration is assigned to %d bus(es)", ErrConflict, inUse)
	}

	if err := s.repo.BusConfiguration.Delete(ctx, cfg.ID); err != nil {
		return fmt.Errorf("delete bus configuration %s: %w", id, err)
	}

	s.invalidate(ctx, id)
	s.log.Info("Bus configuration deleted", zap.String("configuration_id", id))
	s.publish(ctx, queue.ConfigurationDeleted, cfg, "")

	return nil
}

func (s *busConfigurationService) ValidateConfiguration(ctx context.Context, req *request.BusConfigurationRequest) (*response.ConfigurationValidationResponse, error) {
	outcome, err := s.validate(req)
	if err != nil {
		return nil, err
	}
	return &response.ConfigurationValidationResponse{
		Valid:      true,
		TotalSeats: outcome.TotalSeats,
		Corrected:  outcome.Corrected,
	}, nil
}

func (s *busConfigurationService) CloneConfiguration(ctx context.Context, id string, req *request.CloneConfigurationRequest) (*response.BusConfigurationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	source, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	clone := &entity.BusConfiguration{
		Base:        entity.NewBase(now),
		Name:        strings.TrimSpace(req.Name),
		Description: source.Description,
		BusType:     source.BusType,
		TotalSeats:  source.TotalSeats,
		SeatLayout:  seatlayout.WithFreshIDs(source.SeatLayout),
		Amenities:   append([]string{}, source.Amenities...),
	}
	if userID, ok := utils.GetUserIDFromContext(ctx); ok {
		clone.CreatedBy = &userID
	}

	if err := s.repo.BusConfiguration.Create(ctx, clone); err != nil {
		return nil, fmt.Errorf("clone bus configuration %s: %w", id, err)
	}

	s.log.Info("Bus configuration cloned",
		zap.String("source_id", id),
		zap.String("configuration_id", clone.ID.String()),
	)
	s.publish(ctx, queue.ConfigurationCloned, clone, id)

	resp := response.BusConfigurationToResponse(clone)
	return &resp, nil
}

// validate runs the DTO rules and then the seat layout rules. The returned
// outcome carries the corrected total.
func (s *busConfigurationService) validate(req *request.BusConfigurationRequest) (seatlayout.ValidationOutcome, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return seatlayout.ValidationOutcome{}, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	outcome, err := seatlayout.ValidateLayout(req.SeatLayout, req.TotalSeats)
	if err != nil {
		s.log.Warn("Seat layout rejected", zap.Error(err), zap.String("name", req.Name))
		return seatlayout.ValidationOutcome{}, err
	}
	if outcome.Corrected {
		s.log.Info("Total seats corrected to available count",
			zap.String("name", req.Name),
			zap.Int("declared", req.TotalSeats),
			zap.Int("available", outcome.TotalSeats),
		)
	}
	return outcome, nil
}

func (s *busConfigurationService) find(ctx context.Context, id string) (*entity.BusConfiguration, error) {
	configID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid configuration id %q", ErrValidation, id)
	}

	cfg, err := s.repo.BusConfiguration.FindByID(ctx, configID)
	if err != nil {
		return nil, fmt.Errorf("find bus configuration %s: %w", id, err)
	}
	if cfg == nil {
		return nil, fmt.Errorf("bus configuration %s: %w", id, ErrNotFound)
	}
	return cfg, nil
}

// invalidate drops the configuration and every cached bus detail, since bus
// details embed their configuration.
func (s *busConfigurationService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, cache.ConfigurationKey(id)); err != nil {
		s.log.Warn("Configuration cache invalidation failed", zap.Error(err), zap.String("configuration_id", id))
	}
	if err := s.cache.DeletePattern(ctx, cache.BusPattern()); err != nil {
		s.log.Warn("Bus cache invalidation failed", zap.Error(err), zap.String("configuration_id", id))
	}
}

// publish never fails the request; a lost event is logged.
func (s *busConfigurationService) publish(ctx context.Context, t queue.EventType, cfg *entity.BusConfiguration, sourceID string) {
	event := queue.NewEvent(t, cfg.ID.String())
	event.SourceID = sourceID
	event.Name = cfg.Name
	event.TotalSeats = cfg.TotalSeats
	if userID, ok := utils.GetUserIDFromContext(ctx); ok {
		event.ActorID = userID.String()
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Error("Failed to publish configuration event",
			zap.Error(err),
			zap.String("type", string(t)),
			zap.String("configuration_id", event.EntityID),
		)
	}
}
