// Package router assembles the clinic API's HTTP surface.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bramliclinic/clinic-platform/internal/analytics"
	"github.com/bramliclinic/clinic-platform/internal/assistant"
	"github.com/bramliclinic/clinic-platform/internal/clinic"
	"github.com/bramliclinic/clinic-platform/internal/contact"
	httpmiddleware "github.com/bramliclinic/clinic-platform/internal/http/middleware"
	"github.com/bramliclinic/clinic-platform/internal/medicalfiles"
	"github.com/bramliclinic/clinic-platform/internal/scheduling"
	"github.com/bramliclinic/clinic-platform/internal/triage"
	"github.com/bramliclinic/clinic-platform/internal/updates"
	"github.com/bramliclinic/clinic-platform/pkg/logging"
)

// Config holds the handlers and settings the router wires together.
type Config struct {
	Logger             *logging.Logger
	TriageHandler      *triage.Handler
	SchedulingHandler  *scheduling.Handler
	AssistantHandler   *assistant.Handler
	ContactHandler     *contact.Handler
	UpdatesHandler     *updates.Handler
	AnalyticsHandler   *analytics.Handler
	MedicalFiles       *medicalfiles.Handler
	ClinicHandler      *clinic.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// RateLimitRPS caps per-IP request rate; zero disables limiting.
	RateLimitRPS   float64
	RateLimitBurst int
}

// New creates a chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// One budget shared across the public routes. Health checks and
	// Prometheus scrapes stay outside it.
	var limit func(http.Handler) http.Handler
	if cfg.RateLimitRPS > 0 {
		limit = httpmiddleware.Limit(httpmiddleware.NewIPLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		if limit != nil {
			api.Use(limit)
		}
		if cfg.TriageHandler != nil {
			api.Post("/chat", cfg.TriageHandler.Chat)
		}
		if cfg.SchedulingHandler != nil {
			api.Get("/appointments/slots", cfg.SchedulingHandler.Slots)
			api.Post("/appointments", cfg.SchedulingHandler.Create)
		}
		if cfg.ContactHandler != nil {
			api.Post("/contact", cfg.ContactHandler.Submit)
		}
		if cfg.UpdatesHandler != nil {
			api.Get("/updates", cfg.UpdatesHandler.List)
		}
		if cfg.AnalyticsHandler != nil {
			api.Post("/analytics/track", cfg.AnalyticsHandler.Track)
			api.Get("/analytics", cfg.AnalyticsHandler.List)
		}
		if cfg.MedicalFiles != nil {
			api.Post("/medical-files/upload", cfg.MedicalFiles.Upload)
		}
		if cfg.ClinicHandler != nil {
			api.Get("/clinic", cfg.ClinicHandler.Get)
		}
	})

	if cfg.AssistantHandler != nil {
		r.Route("/chat", func(cr chi.Router) {
			if limit != nil {
				cr.Use(limit)
			}
			cr.Get("/ws", cfg.AssistantHandler.HandleWebSocket)
			cr.Post("/message", cfg.AssistantHandler.HandleMessage)
		})
	}

	return r
}
