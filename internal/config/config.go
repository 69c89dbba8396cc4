// Package config loads run configuration for the springs CLI.
//
// Values are resolved in order: built-in defaults, the YAML file (if it
// exists), environment variables, then command-line flags applied by the
// caller. Validate must be called after all layers are applied.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all run configuration.
type Config struct {
	// Worker goroutines used by the aggregator; 0 means one per CPU.
	Workers int `yaml:"workers" validate:"gte=0,lte=1024"`

	// Copies produced by the unfold transform for the second total.
	Multiplicity int `yaml:"multiplicity" validate:"gte=1,lte=64"`

	// Counting strategy: memo, table or automaton.
	Strategy string `yaml:"strategy" validate:"oneof=memo table automaton"`

	// Handling of malformed lines: fail_fast or collect_all.
	ErrorPolicy string `yaml:"error_policy" validate:"oneof=fail_fast collect_all"`

	// Optional path for a Prometheus text-format metrics dump.
	MetricsFile string `yaml:"metrics_file"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

var validate = validator.New()

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Workers:      0,
		Multiplicity: 5,
		Strategy:     "memo",
		ErrorPolicy:  "fail_fast",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file and applies environment
// overrides. A missing file is not an error; defaults are used instead.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies SPRINGS_* environment variables.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("SPRINGS_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SPRINGS_WORKERS: %w", err)
		}
		c.Workers = n
	}
	if v := os.Getenv("SPRINGS_STRATEGY"); v != "" {
		c.Strategy = v
	}
	if v := os.Getenv("SPRINGS_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("SPRINGS_METRICS_FILE"); v != "" {
		c.MetricsFile = v
	}
	return nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
