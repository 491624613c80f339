package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/pdxmph/goals-tui/internal/goals"
)

// Backends lists the storage backends main knows how to open
var Backends = []string{"sqlite", "memory"}

// Config holds the application configuration
type Config struct {
	Debug    bool           `toml:"debug"`
	Storage  StorageConfig  `toml:"storage"`
	Calendar CalendarConfig `toml:"calendar"`
	Log      LogConfig      `toml:"log"`
}

// StorageConfig selects where the goal list is persisted
type StorageConfig struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
	Key     string `toml:"key"`
	Format  string `toml:"format"`
}

// CalendarConfig controls day boundaries and the month grid
type CalendarConfig struct {
	Timezone  string `toml:"timezone"`
	WeekStart string `toml:"week_start"`
}

// LogConfig holds the debug log destination
type LogConfig struct {
	File string `toml:"file"`
}

// Default returns the default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Storage: StorageConfig{
			Backend: "sqlite",
			Path:    filepath.Join(homeDir, ".config", "goals", "goals.db"),
			Key:     goals.DefaultKey,
			Format:  string(goals.FormatJSON),
		},
		Calendar: CalendarConfig{
			Timezone:  "Local",
			WeekStart: "sunday",
		},
		Log: LogConfig{
			File: filepath.Join(homeDir, ".config", "goals-tui", "debug.log"),
		},
	}
}

// Path returns the standard config file location
func Path() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}
	return filepath.Join(homeDir, ".config", "goals-tui", "config.toml"), nil
}

// Load loads configuration from the standard location
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom loads configuration from a specific path
func LoadFrom(configPath string) (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// No config file, return defaults
		return cfg, nil
	}

	// Read and parse config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Expand home directory in paths
	cfg.Storage.Path = expandPath(cfg.Storage.Path)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	return cfg, nil
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	if !slices.Contains(Backends, c.Storage.Backend) {
		return fmt.Errorf("unknown storage backend %q (have %v)", c.Storage.Backend, Backends)
	}

	if _, err := goals.ParseFormat(c.Storage.Format); err != nil {
		return err
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	switch c.Calendar.WeekStart {
	case "sunday", "monday":
	default:
		return fmt.Errorf("unknown week_start %q", c.Calendar.WeekStart)
	}

	return nil
}

// Location resolves the configured time zone
func (c *Config) Location() (*time.Location, error) {
	switch c.Calendar.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Calendar.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Calendar.Timezone, err)
	}
	return loc, nil
}

// FirstWeekday returns the weekday the calendar grid starts on
func (c *Config) FirstWeekday() time.Weekday {
	if c.Calendar.WeekStart == "monday" {
		return time.Monday
	}
	return time.Sunday
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}

// Save saves the configuration to the standard location
func (c *Config) Save() error {
	configPath, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return c.SaveTo(configPath)
}

// SaveTo saves the configuration to a specific path
func (c *Config) SaveTo(configPath string) error {
	f, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	return nil
}
