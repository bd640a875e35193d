package api

import (
	"encoding/json"
	"net/http"

	"github.com/blaisecz/sleep-cycles/internal/api/handler"
	"github.com/blaisecz/sleep-cycles/internal/api/middleware"
	"github.com/blaisecz/sleep-cycles/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	userHandler           *handler.UserHandler
	profileHandler        *handler.ProfileHandler
	recommendationHandler *handler.RecommendationHandler
	alertHandler          *handler.AlertHandler
}

func NewRouter(
	userHandler *handler.UserHandler,
	profileHandler *handler.ProfileHandler,
	recommendationHandler *handler.RecommendationHandler,
	alertHandler *handler.AlertHandler,
) *Router {
	return &Router{
		userHandler:           userHandler,
		profileHandler:        profileHandler,
		recommendationHandler: recommendationHandler,
		alertHandler:          alertHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.Tracing)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		problem.NotFound("No route for " + r.Method + " " + r.URL.Path).Write(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		problem.New(http.StatusMethodNotAllowed, "method-not-allowed", "Method Not Allowed",
			r.Method+" is not supported on "+r.URL.Path).Write(w)
	})

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.Post("/recommendations", rt.recommendationHandler.Compute)

		r.Route("/users", func(r chi.Router) {
			r.Post("/", rt.userHandler.Create)

			r.Route("/{userId}", func(r chi.Router) {
				r.Get("/", rt.userHandler.GetByID)
				r.Post("/onboarding", rt.userHandler.CompleteOnboarding)

				r.Get("/profile", rt.profileHandler.Get)
				r.Put("/profile", rt.profileHandler.Save)

				r.Post("/recommendations/sleep-now", rt.recommendationHandler.SleepNow)
				r.Post("/recommendations/wake-at", rt.recommendationHandler.WakeAt)

				r.Route("/alerts", func(r chi.Router) {
					r.Post("/", rt.alertHandler.Schedule)
					r.Get("/", rt.alertHandler.List)
					r.Delete("/", rt.alertHandler.CancelAll)
					r.Delete("/{alertId}", rt.alertHandler.Cancel)
				})
			})
		})
	})

	return r
}
