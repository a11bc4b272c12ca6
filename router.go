package main

import (
	"net/http"

	"agrilink/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	httpSwagger "github.com/swaggo/http-swagger"
)

// routes wires middlewares and endpoints. CORS origins come from CORS_ORIGINS.
func (a *App) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(a.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=60")
		w.Write(openapiYAML)
	})

	r.Mount("/swagger", httpSwagger.Handler(
		httpSwagger.URL("/api/openapi.yaml"),
	))

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", a.handleRegister)
		api.Post("/auth/login", a.handleLogin)

		api.Group(func(pr chi.Router) {
			pr.Use(a.authMiddleware)
			pr.Get("/me", a.handleMe)

			pr.Group(func(fr chi.Router) {
				fr.Use(requireRole(models.RoleFarmer))

				fr.Route("/farms", func(fr chi.Router) {
					fr.Get("/", a.handleListFarms)
					fr.Post("/", a.handleCreateFarm)
					fr.Get("/{id}", a.handleGetFarm)
					fr.Put("/{id}", a.handleUpdateFarm)
					fr.Delete("/{id}", a.handleDeleteFarm)
					fr.Get("/{id}/suggestion", a.handleGetSuggestion)
					fr.Post("/{id}/suggestion", a.handleSuggest)
				})

				fr.Route("/reports", func(rr chi.Router) {
					rr.Get("/", a.handleListReports)
					rr.Post("/", a.handleCreateReport)
					rr.Get("/stats", a.handleReportStats)
					rr.Get("/{id}", a.handleGetReport)
					rr.Put("/{id}/status", a.handleUpdateReportStatus)
					rr.Delete("/{id}", a.handleDeleteReport)
				})

				fr.Post("/questions", a.handleAskQuestion)
				fr.Get("/questions", a.handleListMyQuestions)
			})

			pr.Route("/admin", func(ar chi.Router) {
				ar.Use(requireRole(models.RoleAdmin))
				ar.Get("/questions", a.handleListQuestions)
				ar.Put("/questions/{id}/answer", a.handleAnswerQuestion)
			})
		})
	})

	return r
}
