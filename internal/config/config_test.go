package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadFrom_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "savedGoals", cfg.Storage.Key)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
}

func TestLoadFrom_OverridesAndExpandsHome(t *testing.T) {
	path := writeConfig(t, `
debug = true

[storage]
backend = "memory"
path = "~/goals/test.db"
format = "yaml"

[calendar]
timezone = "UTC"
week_start = "monday"
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	assert.True(t, cfg.Debug)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(home, "goals", "test.db"), cfg.Storage.Path)
	assert.Equal(t, "yaml", cfg.Storage.Format)
	assert.Equal(t, "savedGoals", cfg.Storage.Key, "unset keys keep defaults")
	assert.Equal(t, time.Monday, cfg.FirstWeekday())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoadFrom_RejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"backend":    "[storage]\nbackend = \"redis\"\n",
		"format":     "[storage]\nformat = \"xml\"\n",
		"week start": "[calendar]\nweek_start = \"friday\"\n",
		"timezone":   "[calendar]\ntimezone = \"Mars/Olympus\"\n",
		"syntax":     "[storage\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Storage.Format = "yaml"
	cfg.Calendar.WeekStart = "monday"

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, cfg.SaveTo(path))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestFirstWeekday_Default(t *testing.T) {
	assert.Equal(t, time.Sunday, Default().FirstWeekday())
}
