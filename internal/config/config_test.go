package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel-reimbursement/core/types"
	"travel-reimbursement/internal/errors"
)

func TestDefaultMatchesDefaultRateSchedule(t *testing.T) {
	schedule, err := Default().RateSchedule()
	require.NoError(t, err)

	want := types.DefaultRateSchedule()
	assert.True(t, want.HighTravel.Equal(schedule.HighTravel))
	assert.True(t, want.HighFull.Equal(schedule.HighFull))
	assert.True(t, want.LowTravel.Equal(schedule.LowTravel))
	assert.True(t, want.LowFull.Equal(schedule.LowFull))
	assert.Equal(t, "cli", Default().Output.DefaultFormat)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
rates:
  high_travel: 90
  low_full: 40.5
output:
  default_format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 90.0, cfg.Rates.HighTravel)
	assert.Equal(t, 40.5, cfg.Rates.LowFull)
	assert.Equal(t, Default().Rates.HighFull, cfg.Rates.HighFull, "unset keys keep their defaults")
	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("TRAVEL_REIMBURSE_RATES_LOW_TRAVEL", "60")
	t.Setenv("TRAVEL_REIMBURSE_OUTPUT_DEFAULT_FORMAT", "markdown")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 60.0, cfg.Rates.LowTravel)
	assert.Equal(t, "markdown", cfg.Output.DefaultFormat)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rates: [unterminated\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Rates.HighFull = 80
	cfg.Output.ShowDetails = true
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestRateScheduleRejectsNonPositiveRates(t *testing.T) {
	cfg := Default()
	cfg.Rates.LowFull = 0

	_, err := cfg.RateSchedule()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestRateScheduleKeepsCents(t *testing.T) {
	cfg := Default()
	cfg.Rates.LowFull = 45.25

	schedule, err := cfg.RateSchedule()
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("45.25").Equal(schedule.LowFull))
}

func TestGlobalConfig(t *testing.T) {
	original := Get()
	t.Cleanup(func() { Set(original) })

	cfg := Default()
	cfg.Version = "2.0"
	Set(cfg)
	assert.Equal(t, "2.0", Get().Version)
}
