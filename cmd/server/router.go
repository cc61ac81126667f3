package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/recallapp/recall-api/internal/api"
	apiMiddleware "github.com/recallapp/recall-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	reviewHandler := api.NewReviewHandler(app.reviewService, app.srsService, app.logger)
	dashboardHandler := api.NewDashboardHandler(app.dashboardService, app.logger)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Review endpoints
			r.Post("/cards/{id}/review", reviewHandler.SubmitReview)
			r.Get("/cards/due", reviewHandler.GetDueCards)
			r.Get("/cards/{id}/history", reviewHandler.GetReviewHistory)

			// Dashboard endpoints
			r.Get("/dashboard/stats", dashboardHandler.GetStats)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
