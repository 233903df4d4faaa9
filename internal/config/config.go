// Package config loads and validates the outbook configuration. Settings come
// from an optional YAML file with environment expansion; CLI flags override
// file values, and the API key can live in a .env file so it stays out of
// both.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/outbook/internal/foundation/errors"
)

// DefaultAPIURL points at the cloud-hosted Outline instance.
const DefaultAPIURL = "https://app.getoutline.com/api"

// DefaultOutput is the output HTML file path when none is configured.
const DefaultOutput = "outline_compilation.html"

// Config represents the application configuration.
type Config struct {
	APIURL     string       `yaml:"api_url"`
	APIKey     string       `yaml:"api_key"`
	Collection string       `yaml:"collection"`
	Output     string       `yaml:"output"`
	Daemon     DaemonConfig `yaml:"daemon,omitempty"`
}

// DaemonConfig configures periodic re-export mode. Interval is a Go duration
// string ("30m", "1h").
type DaemonConfig struct {
	Interval    string `yaml:"interval"`
	StateDB     string `yaml:"state_db,omitempty"`
	MetricsAddr string `yaml:"metrics_addr,omitempty"`
}

// IntervalDuration parses the configured interval.
func (d DaemonConfig) IntervalDuration() (time.Duration, error) {
	interval, err := time.ParseDuration(d.Interval)
	if err != nil {
		return 0, errors.ValidationError("daemon interval is not a valid duration").
			WithContext("interval", d.Interval).
			Build()
	}
	if interval < time.Minute {
		return 0, errors.ValidationError("daemon interval must be at least one minute").Build()
	}
	return interval, nil
}

// Load loads configuration from the specified file. A missing file is not an
// error when path is empty (flag-only operation); env vars referenced in the
// YAML are expanded, and a .env file is loaded beforehand if present.
func Load(path string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "read config file").
				WithContext("path", path).
				Build()
		}
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "unmarshal config").Build()
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("OUTLINE_API_KEY")
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Daemon.Interval == "" {
		c.Daemon.Interval = "1h"
	}
}

// Validate checks that the configuration is sufficient for an export.
func (c *Config) Validate() error {
	if _, err := url.ParseRequestURI(c.APIURL); err != nil {
		return errors.ValidationError("api URL is not a valid URL").
			WithContext("api_url", c.APIURL).
			Build()
	}
	if c.APIKey == "" {
		return errors.ValidationError("api key is required (flag, config file, or OUTLINE_API_KEY)").Build()
	}
	if c.Collection == "" {
		return errors.ValidationError("collection ID is required").Build()
	}
	if _, err := uuid.Parse(c.Collection); err != nil {
		return errors.ValidationError("collection ID is not a valid UUID").
			WithContext("collection", c.Collection).
			Build()
	}
	return nil
}

// ValidateAuthOnly checks just the fields needed to verify credentials.
func (c *Config) ValidateAuthOnly() error {
	if _, err := url.ParseRequestURI(c.APIURL); err != nil {
		return errors.ValidationError("api URL is not a valid URL").Build()
	}
	if c.APIKey == "" {
		return errors.ValidationError("api key is required (flag, config file, or OUTLINE_API_KEY)").Build()
	}
	return nil
}

func loadEnvFile() error {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load()
}
