package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Redis     RedisConfig     `mapstructure:"redis"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=1"`
}

// TelemetryConfig controls where classification records are sent besides the
// application log. Publishing to RabbitMQ is enabled when AMQPURL is set.
type TelemetryConfig struct {
	AMQPURL               string `mapstructure:"amqp_url"                validate:"omitempty,url"`
	Queue                 string `mapstructure:"queue"                   validate:"required"`
	PublishTimeoutSeconds int    `mapstructure:"publish_timeout_seconds" validate:"gte=1"`
}

// RateLimitConfig configures the Redis-backed token bucket.
type RateLimitConfig struct {
	Enabled          bool   `mapstructure:"enabled"`
	Capacity         int    `mapstructure:"capacity"           validate:"gte=1"`
	RefillTokens     int    `mapstructure:"refill_tokens"      validate:"gte=1"`
	RefillIntervalMS int    `mapstructure:"refill_interval_ms" validate:"gte=1"`
	Prefix           string `mapstructure:"prefix"             validate:"required"`
}

// RedisConfig holds the connection settings for Redis.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"     validate:"required"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"       validate:"gte=0"`
}

// TelemetryEnabled reports whether classification records should be published
// to RabbitMQ.
func (c *Config) TelemetryEnabled() bool {
	return c.Telemetry.AMQPURL != ""
}
