package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/volmeta/volmeta/pkg/volume"
)

func TestLoad_DefaultConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	// Write minimal config
	configContent := `
logging:
  level: "INFO"

probe:
  timeout: "2s"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Explicit values preserved, defaults filled in
	if cfg.Probe.Timeout != 2*time.Second {
		t.Errorf("Expected timeout 2s, got %v", cfg.Probe.Timeout)
	}
	if cfg.Probe.MaxConcurrent != volume.DefaultMaxConcurrent {
		t.Errorf("Expected default max_concurrent %d, got %d", volume.DefaultMaxConcurrent, cfg.Probe.MaxConcurrent)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("Expected default output 'stdout', got %q", cfg.Logging.Output)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	// Use a temporary directory with a non-existent config file path
	// This ensures we don't load the user's config from ~/.config/volmeta/
	tmpDir := t.TempDir()
	nonExistentPath := filepath.Join(tmpDir, "nonexistent.yaml")

	cfg, err := Load(nonExistentPath)
	if err != nil {
		t.Fatalf("Expected no error with missing config file, got: %v", err)
	}

	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected default level 'INFO', got %q", cfg.Logging.Level)
	}
	if cfg.Probe.Timeout != volume.DefaultTimeout {
		t.Errorf("Expected default timeout %v, got %v", volume.DefaultTimeout, cfg.Probe.Timeout)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	if err := os.WriteFile(configPath, []byte("logging: [broken"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Fatal("Expected error for invalid YAML, got nil")
	}
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	t.Setenv("VOLMETA_LOGGING_LEVEL", "DEBUG")

	tmpDir := t.TempDir()
	cfg, err := Load(filepath.Join(tmpDir, "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Expected env override level 'DEBUG', got %q", cfg.Logging.Level)
	}
}

func TestProbeConfig_Options(t *testing.T) {
	p := ProbeConfig{
		Timeout:            3 * time.Second,
		MaxConcurrent:      4,
		RateLimit:          10,
		SkipNetworkVolumes: true,
	}

	opts := p.Options()
	if opts.Timeout != 3*time.Second {
		t.Errorf("Expected timeout 3s, got %v", opts.Timeout)
	}
	if opts.MaxConcurrent != 4 {
		t.Errorf("Expected max concurrent 4, got %d", opts.MaxConcurrent)
	}
	if opts.RateLimit != 10 {
		t.Errorf("Expected rate limit 10, got %d", opts.RateLimit)
	}
	if !opts.SkipNetworkVolumes {
		t.Error("Expected skip network volumes to carry over")
	}
}
