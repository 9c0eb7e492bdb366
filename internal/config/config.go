package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config stores persistent tool settings: which simulator to invoke, where
// scratch artifacts go, and the model library picked last time.
type Config struct {
	Simulator string   `json:"simulator"`
	ExtraArgs []string `json:"extra_args,omitempty"`
	WorkDir   string   `json:"work_dir"`
	ModelLib  string   `json:"model_lib,omitempty"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		Simulator: "ngspice",
		WorkDir:   "temp_sim_output",
	}
}

// EnvConfigPath overrides the config file location when set. Tests use it
// to keep runs away from the invoking user's real config.
const EnvConfigPath = "SPICETRACE_CONFIG"

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	var configDir string
	// Use platform-appropriate config directory
	if os.Getenv("APPDATA") != "" {
		// Windows: use %APPDATA%\SpiceTrace
		configDir = filepath.Join(os.Getenv("APPDATA"), "SpiceTrace")
	} else {
		// Linux/macOS: use ~/.config/spicetrace
		configDir = filepath.Join(homeDir, ".config", "spicetrace")
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(configDir, "config.json"), nil
}

// Load reads the saved configuration, falling back to defaults when no file
// exists yet. A malformed file is an error, not a silent reset.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return Default(), err
	}
	return LoadFile(configPath)
}

// LoadFile reads configuration from an explicit path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save persists the configuration.
func Save(cfg *Config) error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(configPath, cfg)
}

// SaveFile writes configuration to an explicit path.
func SaveFile(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
