package configs

import "time"

// Redis holds the connection settings for the Redis instance backing the
// dispatch lock and the dashboard stats cache.
type Redis struct {
	// Addr is the host:port of the Redis server.
	Addr string `env:"ADDR" envDefault:"localhost:6379"`
	// Password is the optional AUTH password.
	Password string `env:"PASSWORD"`
	// DB selects the logical database.
	DB int `env:"DB" envDefault:"0"`
	// LockTTL caps how long a dispatch lock may be held; a crashed
	// process releases its lock after this long.
	LockTTL time.Duration `env:"LOCK_TTL" envDefault:"15m"`
	// StatsTTL controls how long the dashboard payload is cached.
	StatsTTL time.Duration `env:"STATS_TTL" envDefault:"30s"`
}
