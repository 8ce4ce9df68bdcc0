package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"calbooking/internal/delivery/http/controllers"
	"calbooking/internal/delivery/http/middleware"
	"calbooking/internal/domain"
)

// Controllers groups every controller the router mounts.
type Controllers struct {
	Health      *controllers.HealthController
	Auth        *controllers.AuthController
	Slots       *controllers.SlotController
	Bookings    *controllers.BookingController
	EventTypes  *controllers.EventTypeController
	Schedules   *controllers.ScheduleController
	Credentials *controllers.CredentialController
	Webhooks    *controllers.WebhookController
	Teams       *controllers.TeamController
}

// RouterConfig holds the cross-cutting dependencies of the router.
type RouterConfig struct {
	Logger             *slog.Logger
	Verifier           domain.TokenVerifier
	BookingLimiter     *middleware.RateLimiter
	CORSAllowedOrigins []string
}

// NewRouter initializes the HTTP router with all application routes, wrapped in CORS and request logging.
func NewRouter(c Controllers, cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(cfg.Verifier, cfg.Logger)
	optionalAuth := middleware.OptionalAuth(cfg.Verifier)

	mux.HandleFunc("GET /health", c.Health.Health)

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)
	mux.HandleFunc("GET /me", auth(c.Auth.Me))

	// Public booking flow
	mux.HandleFunc("GET /slots", c.Slots.GetSlots)
	mux.HandleFunc("POST /bookings", middleware.RateLimit(cfg.BookingLimiter)(c.Bookings.Create))
	mux.HandleFunc("GET /bookings/{uid}", c.Bookings.Get)
	mux.HandleFunc("POST /bookings/{uid}/cancel", optionalAuth(c.Bookings.Cancel))
	mux.HandleFunc("POST /bookings/{uid}/reschedule", c.Bookings.Reschedule)

	// Organizer
	mux.HandleFunc("GET /me/bookings", auth(c.Bookings.ListMine))
	mux.HandleFunc("POST /bookings/{uid}/confirm", auth(c.Bookings.Confirm))
	mux.HandleFunc("POST /bookings/{uid}/reject", auth(c.Bookings.Reject))

	mux.HandleFunc("POST /event-types", auth(c.EventTypes.Create))
	mux.HandleFunc("GET /event-types", auth(c.EventTypes.List))
	mux.HandleFunc("GET /event-types/{id}", auth(c.EventTypes.Get))
	mux.HandleFunc("PUT /event-types/{id}", auth(c.EventTypes.Update))
	mux.HandleFunc("DELETE /event-types/{id}", auth(c.EventTypes.Delete))

	mux.HandleFunc("POST /schedules", auth(c.Schedules.Create))
	mux.HandleFunc("GET /schedules", auth(c.Schedules.List))
	mux.HandleFunc("GET /schedules/{id}", auth(c.Schedules.Get))
	mux.HandleFunc("PUT /schedules/{id}", auth(c.Schedules.Update))
	mux.HandleFunc("DELETE /schedules/{id}", auth(c.Schedules.Delete))

	mux.HandleFunc("POST /credentials", auth(c.Credentials.Create))
	mux.HandleFunc("GET /credentials", auth(c.Credentials.List))
	mux.HandleFunc("DELETE /credentials/{id}", auth(c.Credentials.Delete))

	mux.HandleFunc("POST /webhooks", auth(c.Webhooks.Create))
	mux.HandleFunc("GET /webhooks", auth(c.Webhooks.List))
	mux.HandleFunc("GET /webhooks/{id}", auth(c.Webhooks.Get))
	mux.HandleFunc("PATCH /webhooks/{id}", auth(c.Webhooks.Update))
	mux.HandleFunc("DELETE /webhooks/{id}", auth(c.Webhooks.Delete))
	mux.HandleFunc("POST /webhooks/{id}/ping", auth(c.Webhooks.Ping))
	mux.HandleFunc("GET /webhooks/{id}/deliveries", auth(c.Webhooks.ListDeliveries))

	mux.HandleFunc("POST /teams", auth(c.Teams.Create))
	mux.HandleFunc("GET /teams", auth(c.Teams.List))
	mux.HandleFunc("POST /teams/{teamID}/members", auth(c.Teams.AddMember))
	mux.HandleFunc("GET /teams/{teamID}/members", auth(c.Teams.ListMembers))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(cfg.Logger, mux))
}
