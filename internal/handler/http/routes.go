package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	if len(h.corsOrigins) > 0 {
		router.Use(h.withCORS())
	}
	router.Use(h.withTraceID, h.withLogging, middleware.Recoverer)
	router.Use(middleware.Compress(5, "application/json", "text/plain"))

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	router.Get("/", h.apiRoot)
	router.Get("/healthz", h.health)
	router.Get("/version", h.getServerVersion)

	router.Route("/auth", func(r chi.Router) {
		// routes without authorization
		r.Post("/register/", h.register)
		r.Post("/login/", h.login)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Post("/logout/", h.logout)
			r.Get("/profile/", h.profile)
			r.Put("/profile/update/", h.updateProfile)
			r.Patch("/profile/update/", h.updateProfile)
			r.Post("/change-password/", h.changePassword)
			r.Get("/verify-token/", h.verifyToken)
		})
	})

	router.Route("/api", func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", h.listProjects)
			r.Post("/", h.createProject)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.getProject)
				r.Put("/", h.updateProject)
				r.Patch("/", h.updateProject)
				r.Delete("/", h.deleteProject)
				r.Get("/vacancies/", h.projectVacancies)
				r.Post("/vacancies/", h.createProjectVacancy)
				r.Get("/stats/", h.projectStats)
			})
		})

		r.Route("/vacancies", func(r chi.Router) {
			r.Get("/", h.listVacancies)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.getVacancy)
				r.Put("/", h.updateVacancy)
				r.Patch("/", h.updateVacancy)
				r.Delete("/", h.deleteVacancy)
			})
		})
	})

	return router
}

func (h *Handler) withCORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   h.corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", traceIDHeader},
		ExposedHeaders:   []string{traceIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
