package wire

import (
	"fleet-admin/internal/adaptor"
	"fleet-admin/internal/data/entity"
	"fleet-admin/internal/data/repository"
	"fleet-admin/pkg/middleware"
	"fleet-admin/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBusConfiguration(
	r chi.Router,
	configHandler *adaptor.BusConfigurationHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/bus-configurations", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// ==================== READ ROUTES (any role) ====================
		r.Get("/", configHandler.GetConfigurations)
		r.Get("/{id}", configHandler.GetConfigurationByID)

		// ==================== WRITE ROUTES (admin, manager) ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(log, entity.RoleAdmin, entity.RoleManager))

			r.Post("/", configHandler.CreateConfiguration)
			r.Post("/validate", configHandler.ValidateConfiguration)
			r.Patch("/{id}", configHandler.UpdateConfiguration)
			r.Delete("/{id}", configHandler.DeleteConfiguration)
			r.Post("/{id}/clone", configHandler.CloneConfiguration)
		})
	})
}
