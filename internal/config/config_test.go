package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "jwt-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "UTC", cfg.App.Timezone)
	assert.Equal(t, float64(20), cfg.Attendance.DefaultRadiusMeters)
	assert.Equal(t, 10*time.Second, cfg.Attendance.LockTTL)
	assert.Equal(t, "", cfg.RedisAddr())
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_TIMEZONE", "Africa/Lagos")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("ATTENDANCE_DEFAULT_RADIUS_METERS", "50")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "cache:6380", cfg.RedisAddr())
	assert.Equal(t, float64(50), cfg.Attendance.DefaultRadiusMeters)
	assert.Equal(t, "Africa/Lagos", cfg.Location().String())
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"missing db password": {"DB_PASSWORD": "", "JWT_SECRET_KEY": "x"},
		"missing jwt secret":  {"DB_PASSWORD": "x", "JWT_SECRET_KEY": ""},
		"bad timezone":        {"DB_PASSWORD": "x", "JWT_SECRET_KEY": "x", "APP_TIMEZONE": "Nowhere/City"},
		"radius out of range": {"DB_PASSWORD": "x", "JWT_SECRET_KEY": "x", "ATTENDANCE_DEFAULT_RADIUS_METERS": "5000"},
		"bad port":            {"DB_PASSWORD": "x", "JWT_SECRET_KEY": "x", "DB_PORT": "abc"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: 5433, User: "u", Password: "p", Name: "n", SSLMode: "disable",
	}}
	assert.Equal(t, "postgres://u:p@db:5433/n?sslmode=disable", cfg.DatabaseURL())
}
