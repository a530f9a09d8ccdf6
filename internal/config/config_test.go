package config_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuhlali/chamapro-extend/internal/config"
	"github.com/kuhlali/chamapro-extend/internal/mpesa"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("MPESA_CALLBACK_URL", "https://chama.example.com/")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "chamapro", cfg.DB.Name)
	assert.Equal(t, 72*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "postgres://postgres:@localhost:5432/chamapro?sslmode=disable", cfg.ConnectionString())

	gw := cfg.GatewayConfig()
	assert.Equal(t, mpesa.SandboxURL, gw.BaseURL)
	assert.Equal(t, "https://chama.example.com", gw.CallbackURL)
	assert.Equal(t, "testapi", gw.InitiatorName)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	require.NoError(t, os.Unsetenv("JWT_SECRET"))

	_, err := config.Load()
	assert.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var cfg config.Config
			cfg.App.LogLevel = tt.in
			assert.Equal(t, tt.want, cfg.SlogLevel())
		})
	}
}
