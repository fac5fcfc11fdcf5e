package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/bpcalc/internal/api/middleware"
	"github.com/phrazzld/bpcalc/internal/config"
	"github.com/phrazzld/bpcalc/internal/domain/bloodpressure"
	"github.com/phrazzld/bpcalc/internal/events"
	"github.com/phrazzld/bpcalc/internal/platform/rabbitmq"
	"github.com/phrazzld/bpcalc/internal/platform/redis"
	"github.com/phrazzld/bpcalc/internal/redact"
	"github.com/phrazzld/bpcalc/internal/service"
	goredis "github.com/redis/go-redis/v9"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	readingService service.ReadingService
	eventEmitter   *events.InMemoryEventEmitter
	rateLimiter    *middleware.RateLimiter

	// optional infrastructure, nil when disabled or unreachable
	publisher   *rabbitmq.Publisher
	redisClient *goredis.Client
}

// newApplication creates a new application instance with all dependencies initialized.
// The telemetry broker and Redis are optional: when configured but unreachable
// the application logs a warning and runs without them.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(events.NewLogEventHandler(logger))

	if cfg.TelemetryEnabled() {
		publisher, err := rabbitmq.Dial(cfg.Telemetry, logger)
		if err != nil {
			logger.Warn("telemetry broker unavailable, classifications will only be logged",
				"error", redact.Error(err))
		} else {
			app.publisher = publisher
			app.eventEmitter.RegisterHandler(publisher)
			logger.Info("telemetry broker connected", "queue", cfg.Telemetry.Queue)
		}
	}

	if cfg.RateLimit.Enabled {
		client, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("redis unavailable, rate limiting disabled", "error", redact.Error(err))
		} else {
			app.redisClient = client
			logger.Info("redis connected", "addr", cfg.Redis.Addr)
		}
	}
	// a nil *goredis.Client must not become a non-nil interface value
	var scripter goredis.Scripter
	if app.redisClient != nil {
		scripter = app.redisClient
	}
	app.rateLimiter = middleware.NewRateLimiter(cfg.RateLimit, scripter)

	readingService, err := service.NewReadingService(
		bloodpressure.NewDefaultService(),
		app.eventEmitter,
		logger,
	)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create reading service: %w", err)
	}
	app.readingService = readingService

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router, err := app.setupRouter()
	if err != nil {
		app.cleanup()
		return fmt.Errorf("failed to set up router: %w", err)
	}

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.publisher != nil {
		if err := app.publisher.Close(); err != nil {
			app.logger.Error("error closing telemetry publisher", "error", redact.Error(err))
		}
	}

	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", redact.Error(err))
		}
	}

	app.logger.Info("application shutdown completed")
}
