package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/volmeta/volmeta/pkg/volume"
)

// Config represents the complete volmeta configuration.
//
// Configuration sources (in order of precedence):
//  1. CLI flags (highest priority)
//  2. Environment variables (VOLMETA_*)
//  3. Configuration file (YAML)
//  4. Default values (lowest priority)
type Config struct {
	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging"`

	// Probe controls mount probing and metadata enrichment behavior
	Probe ProbeConfig `mapstructure:"probe"`

	// Metrics controls the Prometheus metrics endpoint
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive, normalized to uppercase)
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`

	// Output specifies where logs are written
	// Valid values: stdout, stderr, or a file path
	Output string `mapstructure:"output" validate:"required"`
}

// ProbeConfig controls how mounts are probed and metadata is resolved.
type ProbeConfig struct {
	// Timeout is the hard deadline for a single probe or enrichment pass
	Timeout time.Duration `mapstructure:"timeout" validate:"required,gt=0"`

	// MaxConcurrent bounds the number of probes in flight at once
	MaxConcurrent int `mapstructure:"max_concurrent" validate:"required,gt=0"`

	// RateLimit caps probe dispatch per second; 0 disables the limiter
	RateLimit uint `mapstructure:"rate_limit"`

	// SkipNetworkVolumes avoids touching network mounts beyond what the
	// local mount table already knows
	SkipNetworkVolumes bool `mapstructure:"skip_network_volumes"`
}

// Options converts the probe section into per-call options.
func (p ProbeConfig) Options() volume.Options {
	return volume.Options{
		Timeout:            p.Timeout,
		MaxConcurrent:      p.MaxConcurrent,
		RateLimit:          p.RateLimit,
		SkipNetworkVolumes: p.SkipNetworkVolumes,
	}
}

// MetricsConfig controls the Prometheus metrics endpoint.
type MetricsConfig struct {
	// Enabled turns metric collection on
	Enabled bool `mapstructure:"enabled"`

	// Listen is the host:port the metrics endpoint binds to
	// Only used when Enabled is true
	Listen string `mapstructure:"listen" validate:"omitempty,hostname_port"`
}

// Load loads configuration from file, environment, and defaults.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (VOLMETA_*)
//  2. Configuration file
//  3. Default values
//
// Parameters:
//   - configPath: Path to config file (empty string uses default location)
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: Configuration loading or validation error
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setupViper(v, configPath)

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setupViper configures viper with environment variables and config file settings.
func setupViper(v *viper.Viper, configPath string) {
	// Environment variables use the VOLMETA_ prefix and underscores
	// Example: VOLMETA_LOGGING_LEVEL=DEBUG
	v.SetEnvPrefix("VOLMETA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Registering every key up front lets environment-only overrides
	// survive Unmarshal.
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.output", "")
	v.SetDefault("probe.timeout", time.Duration(0))
	v.SetDefault("probe.max_concurrent", 0)
	v.SetDefault("probe.rate_limit", 0)
	v.SetDefault("probe.skip_network_volumes", false)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.listen", "")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// readConfigFile reads the configuration file if it exists.
func readConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - use defaults
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	return nil
}

// getConfigDir returns the configuration directory path.
//
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config, or falls back to current
// directory (.) if home directory cannot be determined.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "volmeta")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "volmeta")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// ConfigExists checks if a config file exists at the default location.
func ConfigExists() bool {
	_, err := os.Stat(GetDefaultConfigPath())
	return err == nil
}

// GetConfigDir returns the configuration directory path (exposed for init command).
func GetConfigDir() string {
	return getConfigDir()
}
