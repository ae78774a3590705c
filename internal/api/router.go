package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/apipulse/api-pulse/internal/config"
)

// NewRouter creates a new HTTP router
func NewRouter(cfg *config.Config, db *gorm.DB) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(SecurityHeadersMiddleware(cfg))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Rate limiting: a general bucket for the API, a stricter one for auth
	apiLimiter := NewRateLimiter(rate.Limit(50), 100)
	authLimiter := NewRateLimiter(rate.Limit(1), 5)
	r.Use(RateLimitMiddleware(apiLimiter))

	// Auth routes
	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(RateLimitMiddleware(authLimiter))
			r.Post("/register", HandleRegister(db))
			r.Post("/login", HandleLogin(db, cfg))
		})

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(cfg.JWTSecret, db))
			r.Get("/me", HandleGetCurrentUser())
		})
	})

	// Monitor routes
	r.Route("/monitors", func(r chi.Router) {
		r.Post("/", HandleCreateMonitor(db))
		r.Get("/", HandleGetMonitors(db))
		r.Get("/{id}", HandleGetMonitor(db))
		r.Put("/{id}", HandleUpdateMonitor(db))
		r.Delete("/{id}", HandleDeleteMonitor(db))
		r.Post("/{id}/simulate-failure", HandleSimulateFailure(db))
	})

	// Incident routes
	r.Route("/incidents", func(r chi.Router) {
		r.Get("/", HandleGetIncidents(db))
		r.Get("/{id}", HandleGetIncident(db))
		r.Post("/{id}/resolve", HandleResolveIncident(db))
	})

	// Alert routes
	r.Route("/alerts", func(r chi.Router) {
		r.Get("/", HandleGetAlerts(db))
		r.Get("/{id}", HandleGetAlert(db))
		r.Post("/test", HandleTestAlert(db))
	})

	// Root banner
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message": "Welcome to " + config.AppName,
			"version": config.Version,
		})
	})

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	return r
}
