package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileOverDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
driver = "sqlite"
path = "/tmp/counseling.db"

[booking]
timezone = "Europe/Moscow"
advance_booking_days = 14

[cors]
allowed_origins = ["https://counseling.example.com"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file:/tmp/counseling.db?_foreign_keys=on&_busy_timeout=5000", cfg.Database.DSN())
	assert.Equal(t, "Europe/Moscow", cfg.Booking.Timezone)
	assert.Equal(t, 14, cfg.Booking.AdvanceBookingDays)
	assert.Equal(t, 60, cfg.Booking.MinBookingNoticeMinutes)
	assert.Equal(t, []string{"https://counseling.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "X-Operator-ID", cfg.Auth.OperatorHeader)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090
`)
	t.Setenv("COUNSELING_SERVER_HTTP_PORT", "7070")
	t.Setenv("COUNSELING_BOOKING_MIN_BOOKING_NOTICE_MINUTES", "15")
	t.Setenv("COUNSELING_RATE_LIMIT_ENABLED", "false")
	t.Setenv("COUNSELING_RATE_LIMIT_TRUSTED_PROXIES", "10.0.0.0/8,192.0.2.10")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Booking.MinBookingNoticeMinutes)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.10"}, cfg.RateLimit.TrustedProxies)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{name: "bad port", modify: func(c *Config) { c.Server.HTTPPort = 0 }},
		{name: "unknown driver", modify: func(c *Config) { c.Database.Driver = "mysql" }},
		{name: "sqlite without path", modify: func(c *Config) { c.Database.Driver = "sqlite"; c.Database.Path = "" }},
		{name: "unknown timezone", modify: func(c *Config) { c.Booking.Timezone = "Mars/Olympus" }},
		{name: "negative horizon", modify: func(c *Config) { c.Booking.AdvanceBookingDays = -1 }},
		{name: "horizon over a year", modify: func(c *Config) { c.Booking.AdvanceBookingDays = 366 }},
		{name: "negative notice", modify: func(c *Config) { c.Booking.MinBookingNoticeMinutes = -1 }},
		{name: "notice over a week", modify: func(c *Config) { c.Booking.MinBookingNoticeMinutes = 10081 }},
		{name: "zero message length", modify: func(c *Config) { c.Booking.MaxMessageLength = 0 }},
		{name: "zero burst", modify: func(c *Config) { c.RateLimit.Burst = 0 }},
		{name: "negative max clients", modify: func(c *Config) { c.RateLimit.MaxClients = -1 }},
		{name: "bad trusted proxy", modify: func(c *Config) { c.RateLimit.TrustedProxies = []string{"proxy.local"} }},
		{name: "empty operator header", modify: func(c *Config) { c.Auth.OperatorHeader = "" }},
	}

	require.NoError(t, Default().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
