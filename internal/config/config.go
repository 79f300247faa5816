// Package config provides unified configuration loading for slipcurve.
// It supports loading from YAML files and environment variables, plus
// parsing of the engine's ini-style tyre parameter files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tyrelab/slipcurve/internal/curve"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the tool configuration file looked up under the
// project root's .slipcurve directory.
const ConfigFileName = "config.yaml"

// Config contains all slipcurve configuration settings.
type Config struct {
	// Curve holds the synthesizer region boundaries and shape constants.
	Curve curve.Config `json:"curve" yaml:"curve"`

	// Chatter holds the experimental chatter-overlay defaults.
	Chatter curve.ChatterConfig `json:"chatter" yaml:"chatter"`

	// Logging configures operational and solver-trace output.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// LoggingConfig configures slipcurve's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables solver tracing to .slipcurve/solves.jsonl.
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config with the research defaults.
func Default() *Config {
	return &Config{
		Curve:   curve.DefaultConfig(),
		Chatter: curve.DefaultChatterConfig(),
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load loads configuration for the project at root.
// Order: defaults -> root/.slipcurve/config.yaml -> environment variables.
func Load(root string) (*Config, error) {
	config := Default()

	configPath := filepath.Join(root, ".slipcurve", ConfigFileName)
	if _, statErr := os.Stat(configPath); statErr == nil {
		fileConfig, loadErr := LoadFromFile(configPath)
		if loadErr != nil {
			return nil, fmt.Errorf("loading config file: %w", loadErr)
		}
		config = fileConfig
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Curve.Validate(); err != nil {
		return err
	}
	if err := c.Chatter.Validate(c.Curve); err != nil {
		return err
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("SLIPCURVE_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}

	if v := os.Getenv("SLIPCURVE_RESOLUTION"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Curve.Resolution = f
		}
	}

	if v := os.Getenv("SLIPCURVE_MAX_ANGLE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Curve.MaxAngle = f
		}
	}
}
