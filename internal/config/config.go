package config

import (
	"github.com/caarlos0/env/v11"

	"bookpress/internal/config/configs"
)

// Config aggregates all configuration sections for the application. Fields
// are populated from environment variables using the caarlos0/env library.
// The nested structs are tagged with envPrefix so their fields are parsed
// with the given prefix. See the individual types in the configs package
// for default values and options. Use Load to construct a Config.
type Config struct {
	// Env specifies the deployment environment (e.g. prod, dev).
	Env string `env:"ENV" envDefault:"prod"`

	// HTTP holds configuration for the HTTP server.
	HTTP configs.HTTP `envPrefix:"HTTP_"`

	// Log configures the structured logger.
	Log configs.Logger `envPrefix:"LOG_"`

	// Psql configures the PostgreSQL connection.
	Psql configs.Postgres `envPrefix:"PSQL_"`

	// Redis configures the Redis client used for the dispatch lock and
	// the dashboard cache.
	Redis configs.Redis `envPrefix:"REDIS_"`

	// Auth configures JWT issuing and password hashing.
	Auth configs.Auth `envPrefix:"AUTH_"`

	// Mail configures the outbound email transport.
	Mail configs.Mail `envPrefix:"MAIL_"`

	// Storage configures the S3 object store for uploads.
	Storage configs.Storage `envPrefix:"S3_"`

	// Cron configures the scheduled-blog publisher.
	Cron configs.Cron `envPrefix:"CRON_"`
}

// Load reads configuration from environment variables into a Config. If
// parsing fails, an error is returned. All fields are loaded with their
// specified defaults when no environment variable is provided.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
