package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// AccessSecret signs access tokens; RefreshSecret signs refresh tokens.
	// They must differ so neither token kind can stand in for the other.
	AccessSecret  string `env:"ACCESS_SECRET"`
	RefreshSecret string `env:"REFRESH_SECRET"`

	Issuer     string        `env:"AUTH_ISSUER" envDefault:"gatehouse"`
	AccessTTL  time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"30s"`
	RefreshTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"24h"`

	DatabaseFile string `env:"DATABASE_FILE" envDefault:"gatehouse.db"`
	PepperFile   string `env:"PEPPER_FILE" envDefault:"pepper"`

	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	Port        int      `env:"PORT" envDefault:"3000"`
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*"`

	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
}

// LoadConfig reads an optional .env file and then the process environment.
// Both token secrets are mandatory; starting without them would mean signing
// tokens with an empty key.
func LoadConfig() (Config, error) {
	// A missing .env file is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.AccessSecret == "" {
		return Config{}, errors.New("ACCESS_SECRET must be set")
	}
	if cfg.RefreshSecret == "" {
		return Config{}, errors.New("REFRESH_SECRET must be set")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return Config{}, errors.New("ACCESS_SECRET and REFRESH_SECRET must differ")
	}

	return cfg, nil
}
