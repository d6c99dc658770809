// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment variable overrides. Env always wins over file values.
const (
	EnvModelsDir     = "MODELGATE_MODELS_DIR"
	EnvLogLevel      = "MODELGATE_LOG_LEVEL"
	EnvLogFormat     = "MODELGATE_LOG_FORMAT"
	EnvMetricsListen = "MODELGATE_METRICS_LISTEN"
)

// Config is the root configuration structure.
type Config struct {
	Models  ModelsConfig  `yaml:"models"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Output  OutputConfig  `yaml:"output"`
}

// ModelsConfig locates the model definitions.
type ModelsConfig struct {
	// Dir is the directory holding YAML model definitions.
	Dir string `yaml:"dir"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	// Level is the zerolog level: debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is "console" or "json".
	Format string `yaml:"format"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`

	// Listen is the optional address for the metrics endpoint in watch
	// mode (e.g., ":9090"). Empty disables the listener.
	Listen string `yaml:"listen,omitempty"`
}

// OutputConfig configures artifact emission.
type OutputConfig struct {
	// Path is where compiled artifacts are written. Empty means stdout.
	Path string `yaml:"path,omitempty"`
}

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		Models:  ModelsConfig{Dir: "models"},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Load reads configuration from a YAML file, applies environment overrides,
// and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault loads the file when it exists and falls back to defaults
// (plus env overrides) when it does not.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		cfg.applyEnv()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return Load(path)
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvModelsDir); v != "" {
		c.Models.Dir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvMetricsListen); v != "" {
		c.Metrics.Enabled = true
		c.Metrics.Listen = v
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Models.Dir == "" {
		return fmt.Errorf("models.dir must not be empty")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error", "":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "console", "json", "":
	default:
		return fmt.Errorf("logging.format %q is not one of console, json", c.Logging.Format)
	}

	return nil
}
