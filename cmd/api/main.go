// Sleep Cycles API
//
// REST API for personalised sleep-cycle recommendations and wake-up alerts.
//
//	@title			Sleep Cycles API
//	@version		1.0
//	@description	Rank bedtimes and wake times by whole sleep cycles, adjusted for age, BMI and gender.
//
//	@BasePath	/v1
//
//	@tag.name			users
//	@tag.description	User management and onboarding
//
//	@tag.name			profile
//	@tag.description	Biometric sleep profile
//
//	@tag.name			recommendations
//	@tag.description	Sleep-now and wake-at recommendations
//
//	@tag.name			alerts
//	@tag.description	Wake-up alerts scheduled from a recommendation window
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blaisecz/sleep-cycles/internal/api"
	"github.com/blaisecz/sleep-cycles/internal/api/handler"
	"github.com/blaisecz/sleep-cycles/internal/config"
	"github.com/blaisecz/sleep-cycles/internal/logging"
	"github.com/blaisecz/sleep-cycles/internal/notify"
	"github.com/blaisecz/sleep-cycles/internal/repository"
	"github.com/blaisecz/sleep-cycles/internal/seed"
	"github.com/blaisecz/sleep-cycles/internal/service"
	"github.com/blaisecz/sleep-cycles/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		slog.Error("sleep cycles api failed", "error", err)
		os.Exit(1)
	}
}

// run wires the application and blocks until shutdown. Errors are returned so
// deferred cleanup runs before the process exits.
func run() error {
	// Load configuration
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialise tracing: %w", err)
	}

	// Connect to database
	db, err := config.NewDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := config.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	slog.Info("database migration completed")

	if cfg.Seed {
		slog.Info("seeding database with sample data")
		if err := seed.Run(ctx, db); err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}
	}

	publisher, err := newPublisher(cfg)
	if err != nil {
		return err
	}
	defer publisher.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	alertRepo := repository.NewAlertRepository(db)

	// Initialize services
	userService := service.NewUserService(userRepo)
	profileService := service.NewProfileService(profileRepo, userRepo)
	recommendationService := service.NewRecommendationService(profileService, time.Now)
	alertService := service.NewAlertService(alertRepo, userRepo, publisher)

	// Setup router
	router := api.NewRouter(
		handler.NewUserHandler(userService),
		handler.NewProfileHandler(profileService),
		handler.NewRecommendationHandler(recommendationService),
		handler.NewAlertHandler(alertService),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return serve(ctx, server, shutdownTracer)
}

// serve runs the server until ctx is cancelled or the listener fails, then
// shuts down the server and flushes traces.
func serve(ctx context.Context, server *http.Server, shutdownTracer func(context.Context) error) error {
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		slog.Info("shutting down server")
	case err := <-serverErr:
		if err != nil {
			runErr = fmt.Errorf("server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		slog.Error("failed to flush traces", "error", err)
	}
	slog.Info("server exited")
	return runErr
}

// newPublisher connects to RabbitMQ when configured. Without a broker alerts
// are stored but never delivered.
func newPublisher(cfg *config.Config) (notify.Publisher, error) {
	if cfg.RabbitMQURL == "" {
		slog.Warn("RABBITMQ_URL not set, alert events will not be delivered")
		return notify.NoopPublisher{}, nil
	}

	publisher, err := notify.NewRabbitMQPublisher(cfg.RabbitMQURL, cfg.AlertQueue)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	slog.Info("alert publisher connected", "queue", cfg.AlertQueue)
	return publisher, nil
}
