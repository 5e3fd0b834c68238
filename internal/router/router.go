package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tripwise-backend/internal/handlers"
	"tripwise-backend/internal/middleware"
)

func New(assistantHandler *handlers.AssistantHandler, rateLimitPerMin int, frontendURL string) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	askLimiter := middleware.NewRateLimiter(rateLimitPerMin, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/assistant", func(r chi.Router) {
		r.Use(askLimiter.Middleware)
		r.Post("/ask", assistantHandler.Ask)
		r.Get("/summary", assistantHandler.Summary)
		r.Post("/reset", assistantHandler.Reset)
	})

	return r
}
