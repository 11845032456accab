// ABOUTME: Configuration management for default sequence parameters
// ABOUTME: Handles loading/saving TOML config files and environment overrides with fallback to defaults

// Package config loads the default sequence parameters from TOML and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	localConfigFile = "./ifl-sequencer.toml"

	// Environment variables that override file values
	EnvListLength = "IFLSEQ_LIST_LENGTH"
	EnvMinLength  = "IFLSEQ_MIN_LENGTH"
	EnvMaxLength  = "IFLSEQ_MAX_LENGTH"
	EnvLogLevel   = "IFLSEQ_LOG_LEVEL"
)

// Defaults holds the parameter values used when a shell does not supply one
type Defaults struct {
	SequenceLength int `toml:"list_length"`
	MinLength      int `toml:"min_length"`
	MaxLength      int `toml:"max_length"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() Defaults {
	return Defaults{
		SequenceLength: 10,
		MinLength:      5,
		MaxLength:      15,
	}
}

// GetConfigPath returns the default config file path
// First tries current directory, then falls back to ~/.config/ifl-sequencer/config.toml
func GetConfigPath() string {
	if _, err := os.Stat(localConfigFile); err == nil {
		return localConfigFile
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return localConfigFile
	}

	return filepath.Join(home, ".config", "ifl-sequencer", "config.toml")
}

// LoadConfig loads defaults from a TOML file
// If the file doesn't exist, returns built-in defaults. Keys missing from the file keep
// their built-in value.
func LoadConfig(path string) (Defaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}

		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves defaults to a TOML file
func SaveConfig(path string, cfg Defaults) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		_ = f.Close()

		return fmt.Errorf("failed to write config: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close config file: %w", err)
	}

	return nil
}

// LoadEnv loads a .env file from the working directory if one exists.
// Variables already set in the process environment win.
func LoadEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}

	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	return nil
}

// ApplyEnv overrides cfg with any IFLSEQ_* length variables that are set
func ApplyEnv(cfg Defaults) (Defaults, error) {
	overrides := []struct {
		name  string
		field *int
	}{
		{EnvListLength, &cfg.SequenceLength},
		{EnvMinLength, &cfg.MinLength},
		{EnvMaxLength, &cfg.MaxLength},
	}

	for _, o := range overrides {
		raw, ok := os.LookupEnv(o.name)
		if !ok || raw == "" {
			continue
		}

		v, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", o.name, raw, err)
		}

		*o.field = v
	}

	return cfg, nil
}

// Load resolves the effective defaults: built-ins, then the config file, then the environment
func Load() (Defaults, string, error) {
	path := GetConfigPath()

	cfg, err := LoadConfig(path)
	if err != nil {
		return cfg, path, err
	}

	cfg, err = ApplyEnv(cfg)

	return cfg, path, err
}
