package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybuddy/internal/platform/config"
)

func TestLoadWithoutFileReturnsDefaults(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, config.Default(dir), cfg)
	assert.Equal(t, 60*time.Second, cfg.Timing.BuddyFadeDelay)
	assert.Equal(t, "@StudyBuddy:", cfg.Storage.Prefix)
}

func TestLoadOverridesFromYAML(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	raw := `
storage:
  driver: redis
  redis:
    addr: cache:6379
    db: 2
timing:
  prompt_timeout: 45s
  reminder_count: 5
  breathing_cycle: 6s
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(raw), 0o644))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, config.DriverRedis, cfg.Storage.Driver)
	assert.Equal(t, "cache:6379", cfg.Storage.Redis.Addr)
	assert.Equal(t, 2, cfg.Storage.Redis.DB)
	assert.Equal(t, 45*time.Second, cfg.Timing.PromptTimeout)
	assert.Equal(t, 5, cfg.Timing.ReminderCount)
	assert.Equal(t, 5*time.Second, cfg.Timing.CheckInDisplay)
	assert.Equal(t, 6*time.Second, cfg.Timing.BreathingCycle)
	assert.Equal(t, 5*time.Minute, cfg.Timing.CalmReadyAfter)
	assert.Equal(t, "@StudyBuddy:", cfg.Storage.Prefix)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("storage:\n  driver: etcd\n"), 0o644))
	_, err := config.Load(dir)
	require.Error(t, err)
}

func TestLoadRequiresDataDir(t *testing.T) {
	t.Parallel()
	_, err := config.Load("  ")
	require.Error(t, err)
}
