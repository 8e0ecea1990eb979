// Package config manages environment configuration.
//
// It loads variables (optionally from a `.env` file) into structured types,
// validates that required values are present so the process fails fast, and
// provides the result to the rest of the application.
package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// Config is the root configuration object for the application.
type Config struct {
	Primary     Primary           `koanf:"primary" validate:"required"`
	Server      ServerConfig      `koanf:"server" validate:"required"`
	Database    DatabaseConfig    `koanf:"database" validate:"required"`
	Redis       RedisConfig       `koanf:"redis" validate:"required"`
	Auth        AuthConfig        `koanf:"auth" validate:"required"`
	Payment     PaymentConfig     `koanf:"payment" validate:"required"`
	Integration IntegrationConfig `koanf:"integration"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env      string `koanf:"env" validate:"required"`
	LogLevel string `koanf:"log_level"`
}

// ServerConfig groups settings for the HTTP server runtime. Timeouts are
// seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details ("host:port").
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig stores the token signing secret and token lifetime in minutes.
type AuthConfig struct {
	SecretKey       string `koanf:"secret_key" validate:"required"`
	TokenTTLMinutes int    `koanf:"token_ttl_minutes" validate:"required"`
}

// PaymentConfig stores payment processor credentials.
type PaymentConfig struct {
	StripeSecretKey string `koanf:"stripe_secret_key" validate:"required"`
	Currency        string `koanf:"currency" validate:"required"`
}

// IntegrationConfig stores third-party integration keys. Email delivery is
// optional; with no key the confirmation email worker logs and skips.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
}

// Load reads configuration from MCMS_-prefixed environment variables,
// unmarshals it into Config, and validates it. Missing required values are
// fatal: a misconfigured process should not start.
func Load() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	err := k.Load(env.Provider("MCMS_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "MCMS_"))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load environment variables")
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("could not unmarshal config")
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("config validation failed")
	}

	return mainConfig, nil
}
