package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("", []byte(""))
	require.NoError(t, err)

	assert.Equal(t, "UTC", cfg.Tripwind.System.Timezone)
	assert.Equal(t, "INFO", cfg.Tripwind.System.Logging.Level)
	assert.Equal(t, 1440, cfg.Tripwind.Pipeline.Scheduler.IntervalMinutes)
	assert.Equal(t, "metadata", cfg.Tripwind.Infrastructure.TaskRepositoryDBRef)
	assert.Equal(t, "workload", cfg.Tripwind.Infrastructure.TargetStoreDBRef)
}

func TestLoadConfig_EmbeddedOverridesDefaults(t *testing.T) {
	embedded := []byte(`
tripwind:
  system:
    timezone: Asia/Tokyo
    logging:
      level: DEBUG
  pipeline:
    scheduler:
      interval_minutes: 60
      run_on_start: true
    run_history_limit: 25
`)
	cfg, err := LoadConfig("", embedded)
	require.NoError(t, err)

	assert.Equal(t, "Asia/Tokyo", cfg.Tripwind.System.Timezone)
	assert.Equal(t, "DEBUG", cfg.Tripwind.System.Logging.Level)
	assert.Equal(t, 60, cfg.Tripwind.Pipeline.Scheduler.IntervalMinutes)
	assert.True(t, cfg.Tripwind.Pipeline.Scheduler.RunOnStart)
	assert.Equal(t, 25, cfg.Tripwind.Pipeline.RunHistoryLimit)
}

func TestLoadConfig_ExpandsEnvironmentVariables(t *testing.T) {
	os.Setenv("TRIPWIND_TEST_TZ", "America/New_York")
	defer os.Unsetenv("TRIPWIND_TEST_TZ")

	embedded := []byte(`
tripwind:
  system:
    timezone: ${TRIPWIND_TEST_TZ}
`)
	cfg, err := LoadConfig("", embedded)
	require.NoError(t, err)

	assert.Equal(t, "America/New_York", cfg.Tripwind.System.Timezone)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	_, err := LoadConfig("", []byte("tripwind: [unclosed"))
	assert.Error(t, err)
}

func TestLoadConfig_AdapterConfigs(t *testing.T) {
	embedded := []byte(`
tripwind:
  database:
    metadata:
      type: sqlite
      database: tripwind.db
    workload:
      type: postgres
      host: localhost
`)
	cfg, err := LoadConfig("", embedded)
	require.NoError(t, err)

	require.Contains(t, cfg.Tripwind.AdapterConfigs, "metadata")
	require.Contains(t, cfg.Tripwind.AdapterConfigs, "workload")
}
