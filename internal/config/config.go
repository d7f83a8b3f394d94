// Package config loads calculator settings from defaults, an optional YAML
// file, a .env file and the process environment, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	Service    ServiceConfig    `yaml:"service"`
	HTTP       HTTPConfig       `yaml:"http"`
	Logging    LoggingConfig    `yaml:"logging"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Calculator CalculatorConfig `yaml:"calculator"`
}

type ServiceConfig struct {
	Name string `yaml:"name"`
}

type HTTPConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "console"
}

type TelemetryConfig struct {
	// Enabled turns on OTLP export of traces, metrics and logs. The exporters
	// read their endpoints from the standard OTEL_EXPORTER_OTLP_* variables.
	Enabled bool `yaml:"enabled"`
}

type CalculatorConfig struct {
	// DivisionPrecision is the number of fractional digits kept by division
	// when the quotient does not terminate.
	DivisionPrecision int `yaml:"division_precision"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			Name: "go-calculator",
		},
		HTTP: HTTPConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Telemetry: TelemetryConfig{
			Enabled: false,
		},
		Calculator: CalculatorConfig{
			DivisionPrecision: 16,
		},
	}
}

// DefaultCLIConfig is DefaultConfig with logging reduced to errors so the
// terminal only shows calculator output.
func DefaultCLIConfig() *Config {
	cfg := DefaultConfig()
	cfg.Logging.Level = "error"
	return cfg
}

// Load builds the configuration. path may be empty, in which case CALC_CONFIG
// is consulted; a missing file falls back to defaults.
func Load(path string) (*Config, error) {
	return LoadWithDefaults(path, DefaultConfig())
}

// LoadWithDefaults is Load starting from cfg instead of DefaultConfig. The
// config file and environment are layered on top of cfg.
func LoadWithDefaults(path string, cfg *Config) (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}

	if path == "" {
		path = os.Getenv("CALC_CONFIG")
	}

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDotEnv loads environment variables from .env when present.
// Existing process environment variables are not overridden.
func LoadDotEnv() error {
	err := godotenv.Load()
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load .env: %w", err)
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("OTEL_SERVICE_NAME"); v != "" {
		c.Service.Name = v
	}
	if v := os.Getenv("CALC_HTTP_ADDR"); v != "" {
		c.HTTP.Addr = v
	}
	if v := os.Getenv("CALC_CORS_ORIGINS"); v != "" {
		c.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("CALC_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("CALC_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("CALC_TELEMETRY_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse CALC_TELEMETRY_ENABLED: %w", err)
		}
		c.Telemetry.Enabled = enabled
	}
	if v := os.Getenv("CALC_DIVISION_PRECISION"); v != "" {
		precision, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse CALC_DIVISION_PRECISION: %w", err)
		}
		c.Calculator.DivisionPrecision = precision
	}
	return nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Service.Name == "" {
		return errors.New("service.name must not be empty")
	}
	if c.Calculator.DivisionPrecision < 0 {
		return fmt.Errorf("calculator.division_precision must be >= 0, got %d", c.Calculator.DivisionPrecision)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
