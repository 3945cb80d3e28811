package wire

import (
	"context"
	"net/http"
	"time"

	"fleet-admin/internal/adaptor"
	"fleet-admin/internal/data/repository"
	"fleet-admin/internal/usecase"
	"fleet-admin/pkg/cache"
	"fleet-admin/pkg/middleware"
	"fleet-admin/pkg/queue"
	"fleet-admin/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the router and the services background jobs need.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services and handlers and mounts every route.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	cacheSvc cache.Service,
	publisher queue.Publisher,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, config, cacheSvc, publisher, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, cacheSvc, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	cacheSvc cache.Service,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.AllowedOrigins))

	wireAuth(r, handler.Auth, repo, config, logger)
	wireUser(r, handler.User, repo, config, logger)
	wireBusConfiguration(r, handler.BusConfiguration, repo, config, logger)
	wireBus(r, handler.Bus, repo, config, logger)
	wireEditor(r, handler.Editor, repo, config, logger)

	r.Get("/health", health(cacheSvc))

	return r
}

// health reports the process as up; a failing cache only degrades it.
func health(cacheSvc cache.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := map[string]string{"server": "ok", "cache": "ok"}
		if err := cacheSvc.Ping(ctx); err != nil {
			status["cache"] = "unavailable"
		}
		utils.ResponseSuccess(w, "OK", status)
	}
}
