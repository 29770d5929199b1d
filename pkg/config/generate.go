package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultYAML renders the default configuration as a YAML document suitable
// for writing to disk. Durations are rendered in their string form so the
// file round-trips through the loader.
func DefaultYAML() ([]byte, error) {
	var cfg Config
	ApplyDefaults(&cfg)

	doc := map[string]any{
		"logging": map[string]any{
			"level":  cfg.Logging.Level,
			"output": cfg.Logging.Output,
		},
		"probe": map[string]any{
			"timeout":              cfg.Probe.Timeout.String(),
			"max_concurrent":       cfg.Probe.MaxConcurrent,
			"rate_limit":           cfg.Probe.RateLimit,
			"skip_network_volumes": cfg.Probe.SkipNetworkVolumes,
		},
		"metrics": map[string]any{
			"enabled": false,
			"listen":  "localhost:9090",
		},
	}

	return yaml.Marshal(doc)
}

// WriteDefaultConfig writes the default configuration file.
//
// Parameters:
//   - path: Destination file (empty string uses the default location)
//   - force: Overwrite an existing file
//
// Returns the path written, or an error when the file exists and force is
// false or the write fails.
func WriteDefaultConfig(path string, force bool) (string, error) {
	if path == "" {
		path = GetDefaultConfigPath()
	}

	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("config file %s already exists (use force to overwrite)", path)
	}

	data, err := DefaultYAML()
	if err != nil {
		return "", fmt.Errorf("failed to render default config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}
