package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/kuhlali/chamapro-extend/internal/mpesa"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"ChamaPro"`
		Port     int    `envconfig:"PORT" default:"8080"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"chamapro"`
		SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		Secret   string        `envconfig:"JWT_SECRET" required:"true"`
		TokenTTL time.Duration `envconfig:"JWT_TTL" default:"72h"`
	}

	Mpesa struct {
		Environment        string        `envconfig:"MPESA_ENVIRONMENT" default:"sandbox"`
		ConsumerKey        string        `envconfig:"MPESA_CONSUMER_KEY"`
		ConsumerSecret     string        `envconfig:"MPESA_CONSUMER_SECRET"`
		ShortCode          string        `envconfig:"MPESA_SHORTCODE"`
		PassKey            string        `envconfig:"MPESA_PASSKEY"`
		CallbackURL        string        `envconfig:"MPESA_CALLBACK_URL"`
		InitiatorName      string        `envconfig:"MPESA_INITIATOR_NAME" default:"testapi"`
		SecurityCredential string        `envconfig:"MPESA_SECURITY_CREDENTIAL"`
		Timeout            time.Duration `envconfig:"MPESA_TIMEOUT" default:"30s"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

// GatewayConfig builds the M-Pesa client configuration.
func (c *Config) GatewayConfig() mpesa.Config {
	return mpesa.Config{
		BaseURL:            mpesa.BaseURLFor(c.Mpesa.Environment),
		ConsumerKey:        c.Mpesa.ConsumerKey,
		ConsumerSecret:     c.Mpesa.ConsumerSecret,
		ShortCode:          c.Mpesa.ShortCode,
		PassKey:            c.Mpesa.PassKey,
		CallbackURL:        strings.TrimRight(c.Mpesa.CallbackURL, "/"),
		InitiatorName:      c.Mpesa.InitiatorName,
		SecurityCredential: c.Mpesa.SecurityCredential,
		Timeout:            c.Mpesa.Timeout,
	}
}

// SlogLevel maps LOG_LEVEL to a slog level, falling back to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
