package adaptor

import (
	"fleet-admin/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth             *AuthHandler
	User             *UserHandler
	BusConfiguration *BusConfigurationHandler
	Bus              *BusHandler
	Editor           *EditorHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:             NewAuthHandler(service.Auth, log),
		User:             NewUserHandler(service.User, log),
		BusConfiguration: NewBusConfigurationHandler(service.BusConfiguration, log),
		Bus:              NewBusHandler(service.Bus, log),
		Editor:           NewEditorHandler(service.Editor, log),
	}
}
