package http

import (
	"context"
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventregistration/internal/delivery/http/controllers"
	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/delivery/http/middleware"
	"eventregistration/internal/domain"
	"eventregistration/internal/metrics"
)

// RouterConfig carries everything NewRouter wires together.
type RouterConfig struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Verifier domain.TokenVerifier
	// HasAdmins gates admin registration: open until the first admin exists.
	HasAdmins func(ctx context.Context) (bool, error)
	// Health reports datastore reachability for /healthz; nil means always healthy.
	Health func(ctx context.Context) error

	Events        *controllers.EventController
	Registrations *controllers.RegistrationController
	Auth          *controllers.AuthController
	Contact       *controllers.ContactController
	Feedback      *controllers.FeedbackController

	// UploadDir is served at /uploads/ when set.
	UploadDir      string
	AllowedOrigins []string
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	admin := middleware.RequireAdmin(cfg.Verifier, cfg.Logger)

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("API is running..."))
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if cfg.Health != nil {
			if err := cfg.Health(r.Context()); err != nil {
				cfg.Logger.ErrorContext(r.Context(), "health check failed", "err", err)
				helpers.WriteMessage(w, http.StatusServiceUnavailable, "unavailable")
				return
			}
		}
		helpers.WriteMessage(w, http.StatusOK, "ok")
	})
	mux.Handle("GET /metrics", cfg.Metrics.Handler())

	// Events
	mux.HandleFunc("GET /api/events", cfg.Events.ListEvents)
	mux.HandleFunc("GET /api/events/{id}", cfg.Events.GetEvent)
	mux.HandleFunc("POST /api/events", admin(cfg.Events.CreateEvent))
	mux.HandleFunc("PUT /api/events/{id}", admin(cfg.Events.UpdateEvent))
	mux.HandleFunc("DELETE /api/events/{id}", admin(cfg.Events.DeleteEvent))

	// Registrations
	mux.HandleFunc("POST /api/register", cfg.Registrations.Register)
	mux.HandleFunc("GET /api/register", admin(cfg.Registrations.ListByEventQuery))
	mux.HandleFunc("GET /api/registrations", admin(cfg.Registrations.ListAll))
	mux.HandleFunc("GET /api/registrations/event/{eventId}", admin(cfg.Registrations.ListByEvent))
	mux.HandleFunc("GET /api/registrations/event/{eventId}/export", admin(cfg.Registrations.Export))
	mux.HandleFunc("DELETE /api/registrations/{id}", admin(cfg.Registrations.Delete))
	mux.HandleFunc("DELETE /api/registrations/event/{eventId}", admin(cfg.Registrations.DeleteAllForEvent))

	// Auth
	mux.HandleFunc("POST /api/admin/login", cfg.Auth.Login)
	mux.HandleFunc("POST /api/admin/register",
		middleware.RequireAdminOnceBootstrapped(cfg.Verifier, cfg.HasAdmins, cfg.Logger)(cfg.Auth.Register))

	// Contact
	mux.HandleFunc("POST /api/contact", cfg.Contact.Submit)
	mux.HandleFunc("GET /api/contact", admin(cfg.Contact.List))
	mux.HandleFunc("PATCH /api/contact/{id}/read", admin(cfg.Contact.MarkRead))
	mux.HandleFunc("DELETE /api/contact/{id}", admin(cfg.Contact.Delete))

	// Feedback
	mux.HandleFunc("POST /api/feedback", cfg.Feedback.Submit)
	mux.HandleFunc("GET /api/feedback/verified", cfg.Feedback.ListVerified)
	mux.HandleFunc("GET /api/feedback/admin", admin(cfg.Feedback.ListAll))
	mux.HandleFunc("PATCH /api/feedback/verify/{id}", admin(cfg.Feedback.Verify))
	mux.HandleFunc("DELETE /api/feedback/{id}", admin(cfg.Feedback.Delete))

	if cfg.UploadDir != "" {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(cfg.Logger, cfg.Metrics, mux))
}
