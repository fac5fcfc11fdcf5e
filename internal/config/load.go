package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "BPCALC"

// ConfigFileEnv names an explicit config file to read instead of ./config.yaml.
const ConfigFileEnv = EnvPrefix + "_CONFIG_FILE"

// defaults lists every configuration key with its default value. Keys must be
// registered here so viper can map environment variables onto them.
var defaults = map[string]any{
	"server.port":                       8080,
	"server.log_level":                  "info",
	"server.shutdown_timeout_seconds":   10,
	"telemetry.amqp_url":                "",
	"telemetry.queue":                   "bpcalc.classifications",
	"telemetry.publish_timeout_seconds": 5,
	"ratelimit.enabled":                 false,
	"ratelimit.capacity":                60,
	"ratelimit.refill_tokens":           1,
	"ratelimit.refill_interval_ms":      1000,
	"ratelimit.prefix":                  "rl",
	"redis.addr":                        "localhost:6379",
	"redis.password":                    "",
	"redis.db":                          0,
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files, and a
// .env file in the working directory is read first without overriding
// variables that are already set.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return load(".env")
}

func load(dotEnvPath string) (*Config, error) {
	if err := loadDotEnv(dotEnvPath); err != nil {
		return nil, err
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path := os.Getenv(ConfigFileEnv); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key := range defaults {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
