package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configDir  = ".gitpulse"
	configFile = "config"
	configType = "yaml"

	// EnvConfigDir overrides the config directory (used by tests and CI).
	EnvConfigDir = "GITPULSE_CONFIG_DIR"
)

// Load reads the configuration from <config dir>/config.yaml.
// Returns an empty config if the file does not exist.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, fmt.Errorf("config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigName(configFile)
	v.SetConfigType(configType)
	v.AddConfigPath(dir)

	// Defaults
	v.SetDefault("preferences.theme", "default")

	cfg := &Config{}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to <config dir>/config.yaml.
func Save(cfg *Config) error {
	dir, err := Dir()
	if err != nil {
		return fmt.Errorf("config dir: %w", err)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	v := viper.New()
	v.Set("profiles", cfg.Profiles)
	v.Set("preferences", cfg.Preferences)

	path := filepath.Join(dir, configFile+"."+configType)
	return v.WriteConfigAs(path)
}

// DefaultProfile returns the default profile from config, or the first one.
func DefaultProfile(cfg *Config) *Profile {
	if len(cfg.Profiles) == 0 {
		return nil
	}

	if cfg.Preferences.DefaultProfile != "" {
		if p := cfg.Profile(cfg.Preferences.DefaultProfile); p != nil {
			return p
		}
	}

	return &cfg.Profiles[0]
}

// Dir returns the configuration directory, honoring the env override.
func Dir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDir), nil
}
