package web

import (
	"github.com/go-chi/chi/v5"

	"github.com/mholecek/location-scout/internal/geocode"
	"github.com/mholecek/location-scout/internal/render"
	"github.com/mholecek/location-scout/internal/storage/files"
	"github.com/mholecek/location-scout/internal/web/handlers"
	"github.com/mholecek/location-scout/internal/web/middleware"
)

func (s *Server) setupRoutes(stores handlers.Stores, fileStore *files.Store) {
	var geocoder *geocode.Client
	if s.config.Geocode.URL != "" {
		geocoder = geocode.NewClient(s.config.Geocode.URL, s.config.Geocode.UserAgent)
	}
	var renderer *render.Client
	if s.config.Render.URL != "" {
		renderer = render.NewClient(s.config.Render.URL)
	}

	// Create handlers
	projectsHandler := handlers.NewProjectsHandler(stores.Projects, s.log)
	locationsHandler := handlers.NewLocationsHandler(stores.Locations, stores.SunTimes, geocoder, s.config.GoldenHourWindow(), s.log)
	photosHandler := handlers.NewPhotosHandler(stores.Photos, stores.Locations, fileStore, s.log)
	proposalsHandler := handlers.NewProposalsHandler(stores.Proposals, s.config.Server.ShareSecret, s.config.Server.PublicBaseURL, s.log)
	exportHandler := handlers.NewExportHandler(stores, fileStore, s.config.ExportOptions, renderer,
		s.config.Server.ShareSecret, s.config.Server.PublicBaseURL, s.log)
	publicHandler := handlers.NewPublicHandler(stores.Proposals, stores.Locations, stores.Photos, fileStore,
		s.config.Server.ShareSecret, s.config.Defaults.Privacy.ObfuscationRadiusM, s.log)

	// Health check (no auth required)
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	// API routes
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequireToken(s.config.Server.APIToken))

		// Projects
		r.Get("/projects", projectsHandler.List)
		r.Post("/projects", projectsHandler.Create)
		r.Get("/projects/{id}", projectsHandler.Get)
		r.Put("/projects/{id}", projectsHandler.Update)
		r.Delete("/projects/{id}", projectsHandler.Delete)

		// Locations
		r.Get("/projects/{id}/locations", locationsHandler.ListByProject)
		r.Post("/projects/{id}/locations", locationsHandler.Create)
		r.Get("/locations/{id}", locationsHandler.Get)
		r.Put("/locations/{id}", locationsHandler.Update)
		r.Delete("/locations/{id}", locationsHandler.Delete)
		r.Get("/locations/{id}/sun", locationsHandler.Sun)
		r.Get("/locations/{id}/golden-hour/next", locationsHandler.NextGoldenHour)
		r.Post("/locations/{id}/geocode", locationsHandler.Geocode)

		// Photos
		r.Get("/locations/{id}/photos", photosHandler.List)
		r.Post("/locations/{id}/photos", photosHandler.Upload)
		r.Get("/photos/{id}", photosHandler.Get)
		r.Get("/photos/{id}/file", photosHandler.File)
		r.Delete("/photos/{id}", photosHandler.Delete)

		// Proposals
		r.Get("/projects/{id}/proposals", proposalsHandler.ListByProject)
		r.Post("/projects/{id}/proposals", proposalsHandler.Create)
		r.Get("/proposals/{id}", proposalsHandler.Get)
		r.Put("/proposals/{id}", proposalsHandler.Update)
		r.Delete("/proposals/{id}", proposalsHandler.Delete)
		r.Post("/proposals/{id}/publish", proposalsHandler.Publish)
		r.Delete("/proposals/{id}/publish", proposalsHandler.Unpublish)

		// Exports
		r.Get("/projects/{id}/report", exportHandler.ProjectReport)
		r.Get("/proposals/{id}/report", exportHandler.ProposalReport)
		r.Get("/proposals/{id}/page.pdf", exportHandler.ProposalPage)
	})

	// Public proposal pages (share-token auth)
	s.router.Get("/p/{token}", publicHandler.Get)
	s.router.Get("/p/{token}/photos/{photoId}", publicHandler.Photo)
}
