package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// BaseURL is the externally reachable origin used in confirmation links.
	BaseURL string `env:"BASE_URL, default=http://localhost:8080"`

	// MinimumAge is the registration age threshold in years.
	MinimumAge int `env:"MINIMUM_AGE, default=27"`

	// RequireConfirmedAccount gates sign-in on email confirmation. The source
	// system read this from ambient identity options; here it is explicit.
	RequireConfirmedAccount bool `env:"REQUIRE_CONFIRMED_ACCOUNT, default=false"`

	ConfirmationTTL time.Duration `env:"CONFIRMATION_TTL, default=24h"`
	SessionTTL      time.Duration `env:"SESSION_TTL,      default=24h"`

	// ExternalAuthSchemes lists the external login providers advertised on
	// the registration form (comma-separated). Empty means none configured.
	ExternalAuthSchemes []string `env:"EXTERNAL_AUTH_SCHEMES"`

	Mongo MongoConfig
	Redis RedisConfig
	SMTP  SMTPConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=registration_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT, default=587"`
	Username string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASS"`
	From     string `env:"SMTP_FROM, default=no-reply@memberhub.local"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
