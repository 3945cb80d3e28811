package usecase

import (
	"fleet-admin/internal/data/repository"
	"fleet-admin/internal/fleetapi"
	"fleet-admin/pkg/cache"
	"fleet-admin/pkg/queue"
	"fleet-admin/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth             AuthService
	User             UserService
	BusConfiguration BusConfigurationService
	Bus              BusService
	Editor           EditorService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	cacheSvc cache.Service,
	publisher queue.Publisher,
	log *zap.Logger,
) *Service {
	configurations := NewBusConfigurationService(repo, cacheSvc, config.Redis.TTL, publisher, log)

	var store ConfigurationStore = LocalStore{Configurations: configurations}
	if config.FleetAPI.BaseURL != "" {
		store = fleetapi.NewClient(config.FleetAPI.BaseURL, config.FleetAPI.Timeout,
			fleetapi.WithToken(config.FleetAPI.Token))
		log.Info("Editor submits to remote fleet API", zap.String("base_url", config.FleetAPI.BaseURL))
	}

	return &Service{
		Auth:             NewAuthService(repo, config, log),
		User:             NewUserService(repo, log),
		BusConfiguration: configurations,
		Bus:              NewBusService(repo, cacheSvc, config.Redis.TTL, log),
		Editor:           NewEditorService(store, log),
	}
}
