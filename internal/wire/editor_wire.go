package wire

import (
	"fleet-admin/internal/adaptor"
	"fleet-admin/internal/data/repository"
	"fleet-admin/pkg/middleware"
	"fleet-admin/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireEditor mounts the stateless editor endpoints. Submitting still goes
// through the configuration store, which applies its own role checks when it
// is the remote API.
func wireEditor(
	r chi.Router,
	editorHandler *adaptor.EditorHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/editor", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Post("/generate", editorHandler.Generate)
		r.Get("/bus-configurations/{id}", editorHandler.Open)
		r.Post("/reconcile", editorHandler.Reconcile)
		r.Post("/seat-type", editorHandler.SetSeatType)
		r.Post("/availability", editorHandler.ToggleAvailability)
		r.Post("/label", editorHandler.SetLabel)
		r.Post("/resize", editorHandler.Resize)
		r.Post("/pattern", editorHandler.ChangePattern)
		r.Post("/import", editorHandler.Import)
		r.Post("/export", editorHandler.Export)
		r.Post("/submit", editorHandler.Submit)
	})
}
