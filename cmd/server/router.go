package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/astral-academy/mastery-api/internal/api"
	apiMiddleware "github.com/astral-academy/mastery-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	progressHandler := api.NewProgressHandler(app.progressService, app.logger)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Learning event endpoints
		r.Post("/events/lesson-completed", progressHandler.LessonCompleted)
		r.Post("/events/assignment-graded", progressHandler.AssignmentGraded)
		r.Post("/events/course-completed", progressHandler.CourseCompleted)

		// Progress summary endpoint
		r.Get("/learners/{id}/progress", progressHandler.GetProgressSummary)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
