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

func wireBus(
	r chi.Router,
	busHandler *adaptor.BusHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/buses", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Get("/", busHandler.GetBuses)
		r.Get("/{id}", busHandler.GetBusByID)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(log, entity.RoleAdmin, entity.RoleManager))

			r.Post("/", busHandler.CreateBus)
			r.Patch("/{id}", busHandler.UpdateBus)
			r.Delete("/{id}", busHandler.DeleteBus)
		})
	})
}
