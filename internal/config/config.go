package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/apple-boxes/internal/boxes"
)

const (
	defaultAlgorithm = boxes.GreedySort
	defaultLogLevel  = "info"

	envAlgorithm      = "APPLE_BOXES_ALGORITHM"
	envMaxCapacity    = "APPLE_BOXES_MAX_CAPACITY"
	envStrictCapacity = "APPLE_BOXES_STRICT_CAPACITY"
	envCrossCheck     = "APPLE_BOXES_CROSS_CHECK"
	envLogLevel       = "APPLE_BOXES_LOG_LEVEL"
)

// Config aggregates solver settings resolved from multiple sources.
// Precedence: Overrides > YAML config > Environment variables > Defaults
type Config struct {
	Algorithm      boxes.Algorithm
	MaxCapacity    int
	StrictCapacity bool
	CrossCheck     bool
	LogLevel       string
}

// yamlConfig represents the YAML configuration file structure. Pointers tell
// an absent key apart from an explicit zero value.
type yamlConfig struct {
	Algorithm      string `yaml:"algorithm"`
	MaxCapacity    *int   `yaml:"max_capacity"`
	StrictCapacity *bool  `yaml:"strict_capacity"`
	CrossCheck     *bool  `yaml:"cross_check"`
	LogLevel       string `yaml:"log_level"`
}

// Overrides holds values supplied directly by the embedding program.
type Overrides struct {
	ConfigFile     string
	Algorithm      *string
	MaxCapacity    *int
	StrictCapacity *bool
	CrossCheck     *bool
	LogLevel       *string
}

// Load extracts configuration from multiple sources with precedence:
// Overrides > YAML config > Environment variables > Defaults
func Load(overrides *Overrides) (Config, error) {
	cfg := Default()

	if err := applyEnvConfig(&cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		applyYAMLConfig(&cfg, yamlCfg)
	}

	if overrides != nil {
		applyOverrides(&cfg, overrides)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Default returns a Config with default values.
func Default() Config {
	return Config{
		Algorithm:   defaultAlgorithm,
		MaxCapacity: boxes.DefaultMaxCapacity,
		LogLevel:    defaultLogLevel,
	}
}

// SolverOptions translates the configuration into solver options.
func (c Config) SolverOptions() []boxes.Option {
	return []boxes.Option{
		boxes.WithMaxCapacity(c.MaxCapacity),
		boxes.WithStrictCapacity(c.StrictCapacity),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var err error
	if _, algErr := boxes.ParseAlgorithm(string(c.Algorithm)); algErr != nil {
		err = multierr.Append(err, fmt.Errorf("algorithm: %w", algErr))
	}
	if c.MaxCapacity < 1 || c.MaxCapacity > boxes.MaxSupportedCapacity {
		err = multierr.Append(err, fmt.Errorf("max capacity must be between 1 and %d, got %d", boxes.MaxSupportedCapacity, c.MaxCapacity))
	}
	if _, lvlErr := zapcore.ParseLevel(c.LogLevel); lvlErr != nil {
		err = multierr.Append(err, fmt.Errorf("log level: %w", lvlErr))
	}
	return err
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) {
	if yamlCfg.Algorithm != "" {
		cfg.Algorithm = boxes.Algorithm(yamlCfg.Algorithm)
	}
	if yamlCfg.MaxCapacity != nil {
		cfg.MaxCapacity = *yamlCfg.MaxCapacity
	}
	if yamlCfg.StrictCapacity != nil {
		cfg.StrictCapacity = *yamlCfg.StrictCapacity
	}
	if yamlCfg.CrossCheck != nil {
		cfg.CrossCheck = *yamlCfg.CrossCheck
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
}

// applyEnvConfig applies environment variable configuration. Malformed values
// are reported rather than ignored.
func applyEnvConfig(cfg *Config) error {
	var err error

	if alg := strings.TrimSpace(os.Getenv(envAlgorithm)); alg != "" {
		cfg.Algorithm = boxes.Algorithm(alg)
	}

	if raw := strings.TrimSpace(os.Getenv(envMaxCapacity)); raw != "" {
		value, parseErr := strconv.Atoi(raw)
		if parseErr != nil {
			err = multierr.Append(err, fmt.Errorf("%s: invalid integer %q", envMaxCapacity, raw))
		} else {
			cfg.MaxCapacity = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv(envStrictCapacity)); raw != "" {
		value, parseErr := strconv.ParseBool(raw)
		if parseErr != nil {
			err = multierr.Append(err, fmt.Errorf("%s: invalid boolean %q", envStrictCapacity, raw))
		} else {
			cfg.StrictCapacity = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv(envCrossCheck)); raw != "" {
		value, parseErr := strconv.ParseBool(raw)
		if parseErr != nil {
			err = multierr.Append(err, fmt.Errorf("%s: invalid boolean %q", envCrossCheck, raw))
		} else {
			cfg.CrossCheck = value
		}
	}

	if level := strings.TrimSpace(os.Getenv(envLogLevel)); level != "" {
		cfg.LogLevel = level
	}

	return err
}

// applyOverrides applies values set by the embedding program.
func applyOverrides(cfg *Config, overrides *Overrides) {
	if overrides.Algorithm != nil && *overrides.Algorithm != "" {
		cfg.Algorithm = boxes.Algorithm(*overrides.Algorithm)
	}
	if overrides.MaxCapacity != nil {
		cfg.MaxCapacity = *overrides.MaxCapacity
	}
	if overrides.StrictCapacity != nil {
		cfg.StrictCapacity = *overrides.StrictCapacity
	}
	if overrides.CrossCheck != nil {
		cfg.CrossCheck = *overrides.CrossCheck
	}
	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}
}
