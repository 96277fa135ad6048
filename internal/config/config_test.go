package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.MaxUploadBytes)
	assert.Equal(t, time.Hour, cfg.SweepInterval)
	assert.Equal(t, 0, cfg.RetentionDays, "retention has no default: the sweeper must stay off")
	assert.False(t, cfg.IsProduction())
}

func TestLoadRetentionDays(t *testing.T) {
	t.Setenv("ROOM_RETENTION_DAYS", "30")
	assert.Equal(t, 30, Load().RetentionDays)
}

func TestLoadRetentionDaysNonNumericIsInvalid(t *testing.T) {
	t.Setenv("ROOM_RETENTION_DAYS", "a-month")
	assert.Equal(t, 0, Load().RetentionDays)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("SWEEP_INTERVAL", "10m")
	t.Setenv("APP_ENV", "production")

	cfg := Load()
	assert.Equal(t, int64(1048576), cfg.MaxUploadBytes)
	assert.Equal(t, 10*time.Minute, cfg.SweepInterval)
	assert.True(t, cfg.IsProduction())
}
