// Package config handles configuration loading, parsing, and validation
// from environment variables, an optional YAML file and an optional .env file.
// It provides type-safe access to the settings needed by the HTTP server,
// telemetry and rate limiting.
package config
