package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eventz-dev/eventz/internal/middleware/metrics"
	"github.com/eventz-dev/eventz/internal/setup"
)

func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(deps.SecurityHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Cfg.Public.CorsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(metrics.Middleware)

	h := deps.Handler
	auth := deps.Auth

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Method("GET", "/metrics", promhttp.Handler())

	fileServer := http.StripPrefix("/media/", http.FileServer(http.Dir(deps.MediaRoot)))
	r.Handle("/media/*", fileServer)

	r.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.OptionalAuth())
			r.Post("/auth/login", h.Login)
			r.Post("/auth/wallet", h.WalletLogin)
			r.Get("/events", h.ListEvents)
			r.Get("/events/active", h.GetActiveEvent)
			r.Get("/events/{id}", h.GetEvent)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.NeedAuth())
			r.Post("/auth/logout", h.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.AdminOnly())
			r.Post("/auth/register", h.Register)
			r.Post("/events", h.CreateEvent)
			r.Patch("/events/{id}", h.UpdateEvent)
			r.Delete("/events/{id}", h.DeleteEvent)
			r.Post("/events/{id}/activate", h.ActivateEvent)
			r.Get("/users", h.GetUsers)
			r.Patch("/users/{id}", h.UpdateUser)
			r.Delete("/users/{id}", h.DeleteUser)
			r.Post("/uploads/hero", h.UploadHero)
		})
	})

	return r
}
