package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("file values over defaults", func(t *testing.T) {
		path := writeConfig(t, `
server:
  port: "9000"
storage:
  data_dir: /tmp/edupulse
jwt:
  secret: file-secret
mentorship:
  default_hourly_rate: 80
`)
		cfg, err := LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.Server.Port)
		assert.Equal(t, "/tmp/edupulse", cfg.Storage.DataDir)
		assert.Equal(t, StorageDriverFile, cfg.Storage.Driver)
		assert.Equal(t, 80.0, cfg.Mentorship.DefaultHourlyRate)
		assert.Equal(t, "https://meet.edupulse.com", cfg.Mentorship.MeetingBaseURL)
		assert.Equal(t, "24h", cfg.JWT.AccessTokenExpiration)
	})

	t.Run("env overrides file", func(t *testing.T) {
		path := writeConfig(t, "jwt:\n  secret: file-secret\n")
		t.Setenv("JWT_SECRET", "env-secret")
		t.Setenv("SERVER_PORT", "7777")
		t.Setenv("AUTH_HASH_PASSWORDS", "true")
		t.Setenv("MENTORSHIP_DEFAULT_HOURLY_RATE", "90.5")

		cfg, err := LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "env-secret", cfg.JWT.Secret)
		assert.Equal(t, "7777", cfg.Server.Port)
		assert.True(t, cfg.Auth.HashPasswords)
		assert.Equal(t, 90.5, cfg.Mentorship.DefaultHourlyRate)
	})

	t.Run("missing file falls back to defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s")
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "5000", cfg.Server.Port)
		assert.Equal(t, 50.0, cfg.Mentorship.DefaultHourlyRate)
	})

	t.Run("secret is required", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT secret is required")
	})

	t.Run("redis driver needs url", func(t *testing.T) {
		path := writeConfig(t, "storage:\n  driver: redis\njwt:\n  secret: s\n")
		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis_url")
	})

	t.Run("unknown relay", func(t *testing.T) {
		path := writeConfig(t, "chat:\n  relay: carrier-pigeon\njwt:\n  secret: s\n")
		_, err := LoadConfig(path)
		require.Error(t, err)
	})

	t.Run("hourly rate must be positive", func(t *testing.T) {
		path := writeConfig(t, "mentorship:\n  default_hourly_rate: 0\njwt:\n  secret: s\n")
		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "default_hourly_rate")
	})

	t.Run("bad env value", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s")
		t.Setenv("AUTH_LOGIN_BURST", "many")
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})
}

func TestAllowedOriginList(t *testing.T) {
	cfg := &Config{}
	cfg.Server.AllowedOrigins = "http://a.test, http://b.test,,"
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOriginList())
}

func TestUsesRedis(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	assert.False(t, cfg.UsesRedis())

	cfg.Chat.Relay = ChatRelayRedis
	assert.True(t, cfg.UsesRedis())
}
