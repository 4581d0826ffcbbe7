package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/fitness-tracker-api/shared/database"
	"github.com/vasapolrittideah/fitness-tracker-api/shared/discovery"
	"github.com/vasapolrittideah/fitness-tracker-api/shared/logger"
	"github.com/vasapolrittideah/fitness-tracker-api/shared/mailer"
	"github.com/vasapolrittideah/fitness-tracker-api/shared/security"
)

const EnvProduction = "production"

const devTokenSecret = "dev-secret-change-me"

// FitnessServiceConfig holds every setting of the fitness service.
type FitnessServiceConfig struct {
	AppEnv string `env:"APP_ENV" envDefault:"development"`

	HTTP          HTTPConfig             `envPrefix:"HTTP_"`
	Mongo         database.MongoConfig   `envPrefix:"MONGO_"`
	Token         TokenConfig            `envPrefix:"TOKEN_"`
	PasswordReset PasswordResetConfig    `envPrefix:"PASSWORD_RESET_"`
	Password      security.Config        `envPrefix:"PASSWORD_"`
	Mailer        mailer.Config          `envPrefix:"SMTP_"`
	Consul        discovery.ConsulConfig `envPrefix:"CONSUL_"`
	Log           logger.Config          `envPrefix:"LOG_"`

	GRPCHealthAddr string `env:"GRPC_HEALTH_ADDR" envDefault:":50051"`
	GoogleClientID string `env:"GOOGLE_CLIENT_ID"`
}

type HTTPConfig struct {
	Host            string        `env:"HOST"             envDefault:"0.0.0.0"`
	Port            int           `env:"PORT"             envDefault:"5000"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT"     envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT"    envDefault:"15s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT"     envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Addr returns the listen address of the HTTP server.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type TokenConfig struct {
	Secret    string        `env:"SECRET"`
	Issuer    string        `env:"ISSUER"     envDefault:"fitness-service"`
	ExpiresIn time.Duration `env:"EXPIRES_IN" envDefault:"720h"`
}

type PasswordResetConfig struct {
	ExpiresIn  time.Duration `env:"EXPIRES_IN"  envDefault:"1h"`
	CodeLength int           `env:"CODE_LENGTH" envDefault:"8"`
	AppName    string        `env:"APP_NAME"    envDefault:"Built by Rain"`
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (c *FitnessServiceConfig) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

// NewFitnessServiceConfig loads the configuration from the environment and
// terminates the process when it is invalid.
func NewFitnessServiceConfig(logger *zerolog.Logger) *FitnessServiceConfig {
	cfg, err := Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load fitness service configuration")
	}

	if !cfg.IsProduction() && cfg.Token.Secret == devTokenSecret {
		logger.Warn().Msg("TOKEN_SECRET not set, using development secret")
	}

	return cfg
}

// Load parses and validates the configuration without side effects.
func Load() (*FitnessServiceConfig, error) {
	cfg, err := env.ParseAs[FitnessServiceConfig]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if cfg.Token.Secret == "" && !cfg.IsProduction() {
		cfg.Token.Secret = devTokenSecret
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *FitnessServiceConfig) validate() error {
	if c.Token.Secret == "" {
		return errors.New("missing TOKEN_SECRET environment variable")
	}
	if c.Token.ExpiresIn <= 0 {
		return errors.New("TOKEN_EXPIRES_IN must be positive")
	}
	if c.PasswordReset.ExpiresIn < time.Second {
		return errors.New("PASSWORD_RESET_EXPIRES_IN must be at least one second")
	}
	if c.PasswordReset.CodeLength <= 0 || c.PasswordReset.CodeLength > 64 {
		return errors.New("PASSWORD_RESET_CODE_LENGTH must be between 1 and 64")
	}
	if c.HTTP.Port <= 0 {
		return errors.New("HTTP_PORT must be positive")
	}

	return nil
}
