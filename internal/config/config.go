package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/kartoza/kartoza-audio-limiter/internal/models"
)

const (
	// DefaultConfigDir is the default configuration directory
	DefaultConfigDir = ".config/kartoza-audio-limiter"
	// ConfigFileName is the name of the configuration file
	ConfigFileName = "config.json"
)

// Paths for PID and state files
const (
	PIDFile    = "/tmp/kartoza-audio-limiter.pid"
	StatusFile = "/tmp/kartoza-audio-limiter.status"
)

// Config holds the application configuration
type Config struct {
	Limiter        models.Settings `json:"limiter"`
	RunAtStartup   bool            `json:"run_at_startup"`
	MinimizeToTray bool            `json:"minimize_to_tray"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Limiter:        models.DefaultSettings(),
		MinimizeToTray: true,
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfigDir
	}
	return filepath.Join(home, DefaultConfigDir)
}

// EnsureDirectories creates the necessary directories
func EnsureDirectories() error {
	return os.MkdirAll(GetConfigDir(), 0755)
}

// Load loads the configuration from disk, clamping any hand-edited
// out-of-range values. A missing file yields the defaults.
func Load() (*Config, error) {
	configPath := filepath.Join(GetConfigDir(), ConfigFileName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			return &cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Limiter = cfg.Limiter.Clamped()

	return &cfg, nil
}

// Save saves the configuration to disk
func Save(cfg *Config) error {
	if err := EnsureDirectories(); err != nil {
		return err
	}

	configPath := filepath.Join(GetConfigDir(), ConfigFileName)

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}
