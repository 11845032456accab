// ABOUTME: Tests for configuration load/save functionality
// ABOUTME: Validates TOML parsing, default fallback, and environment overrides

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.SequenceLength != 10 || cfg.MinLength != 5 || cfg.MaxLength != 15 {
		t.Errorf("Expected defaults 10/5/15, got %d/%d/%d", cfg.SequenceLength, cfg.MinLength, cfg.MaxLength)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Defaults{SequenceLength: 24, MinLength: 2, MaxLength: 8}
	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded != cfg {
		t.Errorf("Loaded %+v, want %+v", loaded, cfg)
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	// Loading non-existent file should return defaults without error
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	if err != nil {
		t.Errorf("Expected no error for non-existent file, got: %v", err)
	}

	if cfg != DefaultConfig() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("max_length = 30\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.MaxLength != 30 {
		t.Errorf("Expected MaxLength 30, got %d", cfg.MaxLength)
	}

	if cfg.SequenceLength != 10 || cfg.MinLength != 5 {
		t.Errorf("Expected unset keys to keep defaults, got %+v", cfg)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("max_length = \"lots\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err == nil {
		t.Error("Expected parse error, got none")
	}

	if cfg != DefaultConfig() {
		t.Errorf("Expected defaults on parse error, got %+v", cfg)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvListLength, "40")
	t.Setenv(EnvMaxLength, "20")

	cfg, err := ApplyEnv(DefaultConfig())
	if err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}

	want := Defaults{SequenceLength: 40, MinLength: 5, MaxLength: 20}
	if cfg != want {
		t.Errorf("ApplyEnv() = %+v, want %+v", cfg, want)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	t.Setenv(EnvMinLength, "five")

	if _, err := ApplyEnv(DefaultConfig()); err == nil {
		t.Error("Expected error for non-numeric override, got none")
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvMinLength+"=2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Chdir(dir)

	// Register a restore, then make sure the variable starts unset
	t.Setenv(EnvMinLength, "")
	os.Unsetenv(EnvMinLength)

	if err := LoadEnv(); err != nil {
		t.Fatalf("LoadEnv failed: %v", err)
	}

	cfg, err := ApplyEnv(DefaultConfig())
	if err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}

	if cfg.MinLength != 2 {
		t.Errorf("MinLength = %d, want 2 from .env", cfg.MinLength)
	}
}

func TestLoadEnvMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := LoadEnv(); err != nil {
		t.Errorf("LoadEnv without .env should succeed, got %v", err)
	}
}

func TestLoadPrefersLocalFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if err := SaveConfig(filepath.Join(dir, localConfigFile), Defaults{SequenceLength: 3, MinLength: 1, MaxLength: 2}); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvMaxLength, "9")

	cfg, path, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if path != localConfigFile {
		t.Errorf("path = %q, want %q", path, localConfigFile)
	}

	want := Defaults{SequenceLength: 3, MinLength: 1, MaxLength: 9}
	if cfg != want {
		t.Errorf("Load() = %+v, want %+v (env overrides file)", cfg, want)
	}
}
