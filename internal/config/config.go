// Package config provides configuration management for the pipeline.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingCustomersCSV = errors.New("inputs.customers_csv is required")
	ErrMissingOrdersXML    = errors.New("inputs.orders_xml is required")
	ErrMissingDSN          = errors.New("database.dsn is required")
	ErrInvalidDriver       = errors.New("database.driver must be 'sqlite'")
	ErrInvalidTimezone     = errors.New("timezone is not a valid IANA zone name")
	ErrInvalidLogLevel     = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat    = errors.New("logging.format must be 'text' or 'json'")
)

// Config represents the complete pipeline configuration. It is passed
// explicitly to the pipeline entry points; there is no process-wide
// settings singleton.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
}

// PipelineConfig contains the settings for one batch run.
type PipelineConfig struct {
	Inputs   InputsConfig   `yaml:"inputs"`
	Timezone string         `yaml:"timezone"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// InputsConfig names the raw source files.
type InputsConfig struct {
	CustomersCSV string `yaml:"customers_csv"`
	OrdersXML    string `yaml:"orders_xml"`
}

// DatabaseConfig defines the persisted path's database.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig defines optional metrics exposition. When ListenAddr is
// empty the run counters are only logged.
type MetricsConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// LoadConfig loads configuration from a YAML file, applies defaults, and
// validates it.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Pipeline.Timezone == "" {
		c.Pipeline.Timezone = "Asia/Kolkata"
	}

	if c.Pipeline.Database.Driver == "" {
		c.Pipeline.Database.Driver = "sqlite"
	}

	if c.Pipeline.Logging.Level == "" {
		c.Pipeline.Logging.Level = "info"
	}

	if c.Pipeline.Logging.Format == "" {
		c.Pipeline.Logging.Format = "text"
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Pipeline.Inputs.CustomersCSV == "" {
		return ErrMissingCustomersCSV
	}

	if c.Pipeline.Inputs.OrdersXML == "" {
		return ErrMissingOrdersXML
	}

	if c.Pipeline.Database.Driver != "sqlite" {
		return fmt.Errorf("%w: got %q", ErrInvalidDriver, c.Pipeline.Database.Driver)
	}

	if c.Pipeline.Database.DSN == "" {
		return ErrMissingDSN
	}

	if _, err := time.LoadLocation(c.Pipeline.Timezone); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimezone, c.Pipeline.Timezone)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Pipeline.Logging.Level] {
		return fmt.Errorf("%w: got %q", ErrInvalidLogLevel, c.Pipeline.Logging.Level)
	}

	if c.Pipeline.Logging.Format != "text" && c.Pipeline.Logging.Format != "json" {
		return fmt.Errorf("%w: got %q", ErrInvalidLogFormat, c.Pipeline.Logging.Format)
	}

	return nil
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Customers: %s, Orders: %s, TZ: %s, DB: %s}",
		c.Pipeline.Inputs.CustomersCSV,
		c.Pipeline.Inputs.OrdersXML,
		c.Pipeline.Timezone,
		c.Pipeline.Database.DSN,
	)
}
