package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/phrazzld/studydeck/internal/api"
	apiMiddleware "github.com/phrazzld/studydeck/internal/api/middleware"
	"github.com/phrazzld/studydeck/internal/service/auth"
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
	r.Use(cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler)

	jwtService := auth.NewJWTService(app.config.Auth)
	authHandler := api.NewAuthHandler(jwtService, &app.config.Auth, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(jwtService)

	courseHandler := api.NewCourseHandler(&app.engineMu, app.registry, app.logger)
	studyHandler := api.NewStudyHandler(&app.engineMu, app.session, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoint (public)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Course management endpoints
			r.Get("/courses", courseHandler.ListCourses)
			r.Post("/courses", courseHandler.CreateCourse)
			r.Post("/courses/{name}/cards", courseHandler.CreateCard)

			// Study session endpoints
			r.Post("/study/select", studyHandler.SelectCourse)
			r.Post("/study/next", studyHandler.NextCard)
			r.Post("/study/reveal", studyHandler.RevealAnswer)
			r.Put("/study/current", studyHandler.EditCurrentCard)
			r.Delete("/study/current", studyHandler.DeleteCurrentCard)
			r.Get("/study/progress", studyHandler.Progress)
		})
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
