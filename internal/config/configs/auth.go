package configs

import "time"

// Auth configures session token issuing.
type Auth struct {
	// JWTSecret signs bearer tokens (HMAC-SHA256). Required in
	// production; the default exists only to keep local setups running.
	JWTSecret string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	// TokenTTL is the lifetime of an issued token.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	// BcryptCost tunes password hashing; the bcrypt default of 10 is
	// used when this is zero.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
}
