package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/mikkelsv/taskvault/internal/metrics"
	"github.com/mikkelsv/taskvault/internal/service"
)

// NewRouter builds the full HTTP routing tree: operational endpoints
// at the root, the JSON API under /api, task routes behind bearer
// authentication.
func NewRouter(auth *service.AuthService, tasks *service.TaskService, rec *metrics.Recorder) http.Handler {
	authHandler := NewAuthHandler(auth)
	taskHandler := NewTaskHandler(tasks)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(rec.Middleware)

	r.Get("/", HandleRoot)
	r.Get("/healthz", HandleHealthz)
	r.Method(http.MethodGet, "/metrics", rec.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/signup", authHandler.HandleSignup)
		api.Post("/auth/login", authHandler.HandleLogin)

		api.Group(func(priv chi.Router) {
			priv.Use(RequireAuth(auth))

			priv.Post("/auth/logout", authHandler.HandleLogout)
			priv.Get("/auth/me", authHandler.HandleMe)

			priv.Post("/tasks", taskHandler.HandleCreate)
			priv.Get("/tasks", taskHandler.HandleList)
			priv.Get("/tasks/{id}", taskHandler.HandleGet)
			priv.Put("/tasks/{id}", taskHandler.HandleUpdate)
			priv.Delete("/tasks/{id}", taskHandler.HandleDelete)
			priv.Patch("/tasks/{id}/complete", taskHandler.HandleToggleComplete)
		})
	})

	return r
}
