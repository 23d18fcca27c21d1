// ABOUTME: splits configuration: data directory and display-unit preferences.
// ABOUTME: Unit defaults fall back to the process locale when not pinned in the config file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/splits/internal/storage"
	"github.com/harperreed/splits/internal/units"
)

// Config stores splits tool configuration.
type Config struct {
	// DataDir is the root directory for data storage; splits.db lives here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/splits.
	DataDir string `json:"data_dir,omitempty"`

	// WeightUnit is the display unit for weights: "kg" or "lb".
	// Empty means derive from locale.
	WeightUnit string `json:"weight_unit,omitempty"`

	// DistanceUnit is the display unit for distances: "km" or "mi".
	// Empty means derive from locale.
	DistanceUnit string `json:"distance_unit,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetWeightUnit resolves the display unit for weights. The config file
// wins; otherwise an imperial locale gets pounds and everyone else
// kilograms. Stored values are always kilograms regardless.
func (c *Config) GetWeightUnit() units.WeightUnit {
	if u, err := units.ParseWeightUnit(c.WeightUnit); err == nil {
		return u
	}
	if localeIsImperial() {
		return units.Pounds
	}
	return units.Kilograms
}

// GetDistanceUnit resolves the display unit for distances, with the same
// precedence as GetWeightUnit.
func (c *Config) GetDistanceUnit() units.DistanceUnit {
	if u, err := units.ParseDistanceUnit(c.DistanceUnit); err == nil {
		return u
	}
	if localeIsImperial() {
		return units.Miles
	}
	return units.Kilometers
}

// localeIsImperial sniffs the process locale for the three countries
// still measuring in pounds and miles.
func localeIsImperial() bool {
	for _, v := range []string{"LC_MEASUREMENT", "LC_ALL", "LANG"} {
		locale := os.Getenv(v)
		if locale == "" {
			continue
		}
		if i := strings.IndexAny(locale, ".@"); i >= 0 {
			locale = locale[:i]
		}
		switch {
		case strings.HasSuffix(locale, "_US"), strings.HasSuffix(locale, "_LR"), strings.HasSuffix(locale, "_MM"):
			return true
		}
		return false
	}
	return false
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the SQLite store in the configured data directory.
func (c *Config) OpenStorage() (storage.Repository, error) {
	dbPath := filepath.Join(c.GetDataDir(), "splits.db")
	return storage.Open(dbPath)
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "splits", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	if c.WeightUnit != "" {
		if _, err := units.ParseWeightUnit(c.WeightUnit); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
	}
	if c.DistanceUnit != "" {
		if _, err := units.ParseDistanceUnit(c.DistanceUnit); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
	}

	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
