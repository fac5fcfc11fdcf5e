package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/bpcalc/internal/ciutil"
	"github.com/phrazzld/bpcalc/internal/config"
)

// loadAppConfig loads the application configuration from the environment,
// an optional .env file and an optional config file.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// logAppConfig reports the effective configuration without secrets.
func logAppConfig(logger *slog.Logger, cfg *config.Config) {
	logger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"rate_limit_enabled", cfg.RateLimit.Enabled,
		"telemetry_broker_enabled", cfg.TelemetryEnabled())

	if cfg.TelemetryEnabled() {
		logger.Debug("telemetry broker configuration",
			"amqp_url", ciutil.MaskSensitiveValue(cfg.Telemetry.AMQPURL),
			"queue", cfg.Telemetry.Queue)
	}
	if cfg.RateLimit.Enabled {
		logger.Debug("rate limit configuration",
			"redis_addr", cfg.Redis.Addr,
			"capacity", cfg.RateLimit.Capacity,
			"refill_tokens", cfg.RateLimit.RefillTokens,
			"refill_interval_ms", cfg.RateLimit.RefillIntervalMS)
	}
}
