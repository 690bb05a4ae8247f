package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zapponejosh/lunar-calendar-api/internal/config"
)

// NewRouter configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET    /health
//	GET    /api/v1/lunar                    ?year&month&day (defaults 2024-01-01)
//	GET    /api/v1/lunar/today
//	GET    /api/v1/solar                    ?year&month&day&leap
//	GET    /api/v1/calendar                 ?year&month
//	POST   /api/v1/calculate
//	GET    /api/v1/clothes
//	POST   /api/v1/clothes                  (API key)
//	GET    /api/v1/clothes/stats
//	GET    /api/v1/clothes/season/{season}
//	GET    /api/v1/clothes/type/{type}
//	GET    /api/v1/clothes/{id}
//	PUT    /api/v1/clothes/{id}             (API key)
//	DELETE /api/v1/clothes/{id}             (API key)
func NewRouter(handlers *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RecoveryMiddleware(logger))
	r.Use(LoggingMiddleware(logger))
	r.Use(CORSMiddleware(cfg.CORSOrigin))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	r.Get("/health", handlers.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		// ======================================================================
		// Calendar routes
		// ======================================================================
		r.Get("/lunar", handlers.GetLunarDate)
		r.Get("/lunar/today", handlers.GetTodayLunarDate)
		r.Get("/solar", handlers.GetSolarDate)
		r.Get("/calendar", handlers.GetMonthGrid)
		r.Post("/calculate", handlers.Calculate)

		// ======================================================================
		// Wardrobe routes (mutations need the API key when one is set)
		// ======================================================================
		r.Route("/clothes", func(r chi.Router) {
			r.Get("/", handlers.ListClothes)
			r.Get("/stats", handlers.GetWardrobeStats)
			r.Get("/season/{season}", handlers.ListClothesBySeason)
			r.Get("/type/{type}", handlers.ListClothesByType)
			r.Get("/{id}", handlers.GetClothing)

			r.Group(func(r chi.Router) {
				r.Use(APIKeyMiddleware(cfg, logger))
				r.Post("/", handlers.CreateClothing)
				r.Put("/{id}", handlers.UpdateClothing)
				r.Delete("/{id}", handlers.DeleteClothing)
			})
		})
	})

	return r
}
