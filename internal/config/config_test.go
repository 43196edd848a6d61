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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
symbol:
  name: GBPUSD
  pip_size: 0.0001
  tick_size: 0.00001
  digits: 5
data:
  csv_path: bars.csv
profile:
  periods: 100
  step_in_pips: 5
  combine_width: 0.002
patterns:
  lookback: 30
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "GBPUSD", cfg.Symbol.Name)
	assert.Equal(t, 0.0001, cfg.Symbol.PipSize)
	assert.Equal(t, 5, cfg.Symbol.Digits)
	assert.Equal(t, "bars.csv", cfg.Data.CSVPath)
	assert.Equal(t, 100, cfg.Profile.Periods)
	assert.Equal(t, 5.0, cfg.Profile.StepInPips)
	assert.Equal(t, 0.002, cfg.Profile.CombineWidth)
	assert.Equal(t, 30, cfg.Patterns.Lookback)

	assert.NoError(t, cfg.Validate())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err, "A missing config file falls back to defaults")

	assert.Equal(t, "EURUSD", cfg.Symbol.Name)
	assert.Equal(t, 0.0001, cfg.Symbol.PipSize)
	assert.Equal(t, 5, cfg.Symbol.Digits)
	assert.Equal(t, 50, cfg.Profile.Periods)
	assert.Equal(t, 10.0, cfg.Profile.StepInPips)
	assert.Equal(t, 20, cfg.Patterns.Lookback)

	assert.Error(t, cfg.Validate(), "csv_path has no default and must be supplied")
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
data:
  csv_path: original.csv
`)

	t.Setenv("BARLENS_CSV_PATH", "override.csv")
	t.Setenv("BARLENS_SYMBOL", "USDJPY")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "override.csv", cfg.Data.CSVPath)
	assert.Equal(t, "USDJPY", cfg.Symbol.Name)
}

func TestValidate(t *testing.T) {
	path := writeConfig(t, `
symbol:
  pip_size: -1
data:
  csv_path: bars.csv
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Error(t, cfg.Validate(), "Negative pip size should be rejected")
}
