package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"calbooking/config"
	_ "calbooking/docs"
	"calbooking/internal/adapters/auth"
	"calbooking/internal/adapters/calendar"
	"calbooking/internal/adapters/email"
	"calbooking/internal/adapters/telemetry"
	deliveryhttp "calbooking/internal/delivery/http"
	"calbooking/internal/delivery/http/controllers"
	"calbooking/internal/delivery/http/middleware"
	"calbooking/internal/repository/postgres"
	"calbooking/internal/services"
)

const (
	shutdownTimeout      = 30 * time.Second
	rateLimitSweepPeriod = time.Minute
	rateLimitIdle        = 3 * time.Minute
)

// @title Booking API
// @version 1.0
// @description Scheduling and booking service: availability, slots, bookings, seats and webhooks.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName: "calbooking",
		Endpoint:    cfg.Otel.Endpoint,
		Enabled:     cfg.Otel.Enabled,
	})
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}
	logger.Info("connected to database")

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)
	eventTypeRepo := postgres.NewEventTypeRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	credentialRepo := postgres.NewCredentialRepository(db)
	webhookRepo := postgres.NewWebhookRepository(db)
	teamRepo := postgres.NewTeamRepository(db)

	// Adapters
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	issuer := auth.NewJWTIssuer(cfg.JWTSecret)
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)
	mailer := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.InsecureSkipVerify,
		},
	}, logger)
	calendars := calendar.NewRegistry(&http.Client{Timeout: cfg.Calendar.Timeout})

	// Services
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	dispatcher := services.NewWebhookDispatcher(webhookRepo, &http.Client{Timeout: cfg.Webhook.Timeout}, services.WebhookDispatcherConfig{
		Workers:        cfg.Webhook.Workers,
		QueueSize:      cfg.Webhook.QueueSize,
		MaxAttempts:    cfg.Webhook.MaxAttempts,
		InitialBackoff: cfg.Webhook.InitialBackoff,
		MaxBackoff:     cfg.Webhook.MaxBackoff,
		Timeout:        cfg.Webhook.Timeout,
		RatePerSecond:  cfg.Webhook.RatePerSecond,
	}, logger)

	authService := services.NewAuthService(userRepo, hasher, issuer, cfg.JWTExpiry, emailService, logger, cfg.RequestTimeout)
	scheduleService := services.NewScheduleService(scheduleRepo, userRepo, cfg.RequestTimeout)
	eventTypeService := services.NewEventTypeService(eventTypeRepo, scheduleRepo, teamRepo, cfg.RequestTimeout)
	teamService := services.NewTeamService(teamRepo, userRepo, cfg.RequestTimeout)
	credentialService := services.NewCredentialService(credentialRepo, calendars, cfg.RequestTimeout)
	availabilityService := services.NewAvailabilityService(
		eventTypeRepo, userRepo, scheduleRepo, bookingRepo, credentialRepo, calendars,
		services.CalendarOptions{Timeout: cfg.Calendar.Timeout, Concurrency: cfg.Calendar.Concurrency},
		logger, cfg.RequestTimeout,
	)
	bookingService := services.NewBookingService(
		bookingRepo, eventTypeRepo, userRepo, availabilityService, services.NewKeyedLocker(),
		emailService, dispatcher, logger, cfg.RequestTimeout,
	)
	webhookService := services.NewWebhookService(webhookRepo, eventTypeRepo, dispatcher, cfg.RequestTimeout)

	bookingLimiter := middleware.NewRateLimiter(cfg.Booking.RatePerSecond, cfg.Booking.RateBurst)
	go bookingLimiter.Run(ctx, rateLimitSweepPeriod, rateLimitIdle)

	router := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Health:      controllers.NewHealthController(logger, db),
		Auth:        controllers.NewAuthController(logger, authService),
		Slots:       controllers.NewSlotController(logger, availabilityService),
		Bookings:    controllers.NewBookingController(logger, bookingService),
		EventTypes:  controllers.NewEventTypeController(logger, eventTypeService),
		Schedules:   controllers.NewScheduleController(logger, scheduleService),
		Credentials: controllers.NewCredentialController(logger, credentialService),
		Webhooks:    controllers.NewWebhookController(logger, webhookService),
		Teams:       controllers.NewTeamController(logger, teamService),
	}, deliveryhttp.RouterConfig{
		Logger:             logger,
		Verifier:           verifier,
		BookingLimiter:     bookingLimiter,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	logger.Info("server stopped")
	return errors.Join(errs...)
}
