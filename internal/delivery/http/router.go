package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventhub/internal/delivery/http/controllers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/domain"
)

// RouterConfig carries the cross-cutting pieces the router wires around the controllers.
type RouterConfig struct {
	// BasePath prefixes the REST routes, e.g. "/api". Empty mounts them at the root.
	BasePath       string
	AllowedOrigins []string
	Logger         *slog.Logger
	Verifier       domain.TokenVerifier
	AuthLimiter    *middleware.RateLimiter
	Metrics        *middleware.Metrics
	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
}

// NewRouter initializes the HTTP router with all application routes and wraps it in
// the middleware chain: request id, logging, metrics, CORS.
func NewRouter(cfg RouterConfig, auth *controllers.AuthController, events *controllers.EventController, health *controllers.HealthController) http.Handler {
	mux := http.NewServeMux()
	base := cfg.BasePath
	requireAuth := middleware.RequireAuth(cfg.Verifier, cfg.Logger)

	mux.HandleFunc("GET /{$}", health.Root)
	mux.HandleFunc("GET /healthz", health.Healthz)

	// Auth
	mux.HandleFunc("POST "+base+"/auth/signup", cfg.AuthLimiter.Wrap(auth.SignUp))
	mux.HandleFunc("POST "+base+"/auth/login", cfg.AuthLimiter.Wrap(auth.Login))

	// Events
	mux.HandleFunc("POST "+base+"/events", requireAuth(events.CreateEvent))
	mux.HandleFunc("GET "+base+"/events/my", requireAuth(events.ListMyEvents))
	mux.HandleFunc("GET "+base+"/events/{id}", requireAuth(events.GetEvent))
	mux.HandleFunc("PUT "+base+"/events/{id}", requireAuth(events.UpdateEvent))
	mux.HandleFunc("DELETE "+base+"/events/{id}", requireAuth(events.DeleteEvent))

	if cfg.MetricsHandler != nil {
		mux.Handle("GET /metrics", cfg.MetricsHandler)
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var handler http.Handler = middleware.CORS(cfg.AllowedOrigins, mux)
	if cfg.Metrics != nil {
		handler = cfg.Metrics.Middleware(handler)
	}
	handler = middleware.LoggingMiddleware(cfg.Logger, handler)
	return middleware.RequestID(handler)
}
