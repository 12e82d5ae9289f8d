package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/magscene/magsav/docs" //nolint:revive,nolintlint
	"github.com/magscene/magsav/internal/entity"
	"github.com/magscene/magsav/internal/service"
)

func NewRouter(h *Handler, mw *Middleware, resources []Resource, metrics http.Handler) http.Handler {
	router := chi.NewRouter()

	router.Use(mw.Log, mw.Recover, mw.Cors, mw.Metrics)

	if metrics != nil {
		router.Handle("/metrics", metrics)
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/swagger/*", httpSwagger.WrapHandler)

		r.Get("/dashboard/stats", h.Stats)
		r.Post("/import/{type}", h.Import)

		r.Post("/service-requests/{id}/validate", h.ValidateRequest)
		r.Post("/rma/{id}/authorize", h.AuthorizeRMA)

		r.Get("/equipment/{id}/photo", h.Photo)
		r.Put("/equipment/{id}/photo", h.UploadPhoto)

		for _, res := range resources {
			res.Register(r)
		}
	})

	return router
}

// ServiceResources exposes one REST resource per record kind.
func ServiceResources(s *service.Service) []Resource {
	return []Resource{
		NewResource[entity.Equipment](s.Equipment),
		NewResource[entity.ServiceRequest](s.ServiceRequests),
		NewResource[entity.Repair](s.Repairs),
		NewResource[entity.RMA](s.RMAs),
		NewResource[entity.Client](s.Clients),
		NewResource[entity.Contract](s.Contracts),
		NewResource[entity.Vehicle](s.Vehicles),
		NewResource[entity.Personnel](s.Personnel),
		NewResource[entity.Supplier](s.Suppliers),
		NewResource[entity.Project](s.Projects),
	}
}
