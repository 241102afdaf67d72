// Package config loads the settings of the gelfconv command from YAML.
//
// Every setting has a default, so running without a file is fine:
//
//	facility: billing
//	cache_hostname: true
//	input:
//	  codec: auto     # auto, json, yaml, kv, plain, ncsa
//	  framing: lines  # lines, whole, yaml, auto
//	validate: false
//	logging:
//	  level: info     # debug, info, warn, error
//	  format: tint    # tint, json, text
//	metrics:
//	  textfile: /var/lib/node_exporter/gelfconv.prom
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// GELF facility attached to every document; may be empty
	Facility string `yaml:"facility"`

	// fixed host name instead of asking the operating system
	Hostname string `yaml:"hostname"`

	// resolve the host name once instead of on every event
	CacheHostname *bool `yaml:"cache_hostname" default:"true"`

	Input             InputConfig   `yaml:"input"`
	ValidateDocuments bool          `yaml:"validate"`
	Logging           LoggingConfig `yaml:"logging"`
	Metrics           MetricsConfig `yaml:"metrics"`
}

type InputConfig struct {
	Codec   string `yaml:"codec" default:"auto"`
	Framing string `yaml:"framing" default:"lines"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" default:"info"`
	Format string `yaml:"format" default:"tint"`
}

type MetricsConfig struct {
	// node_exporter textfile collector target; empty disables it
	Textfile string `yaml:"textfile"`
}

// Default returns the configuration used when no file is given.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("applying config defaults: %w", err)
	}
	return cfg, nil
}

// Load reads path on top of the defaults. An empty path means defaults only.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
		// keys present but left empty fall back to their defaults
		if err := defaults.Set(cfg); err != nil {
			return nil, fmt.Errorf("applying config defaults: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

var (
	validCodecs     = []string{"auto", "json", "yaml", "kv", "logfmt", "plain", "ncsa"}
	validFramings   = []string{"lines", "whole", "yaml", "auto"}
	validLogFormats = []string{"tint", "json", "text"}
)

func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(validCodecs, c.Input.Codec) {
		errs = append(errs, fmt.Errorf("input.codec must be one of %v, got %q", validCodecs, c.Input.Codec))
	}
	if !slices.Contains(validFramings, c.Input.Framing) {
		errs = append(errs, fmt.Errorf("input.framing must be one of %v, got %q", validFramings, c.Input.Framing))
	}
	if !slices.Contains(validLogFormats, strings.ToLower(c.Logging.Format)) {
		errs = append(errs, fmt.Errorf("logging.format must be one of %v, got %q", validLogFormats, c.Logging.Format))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// LogLevel parses logging.level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("logging.level: %w", err)
	}
	return level, nil
}

func (c *Config) ShouldCacheHostname() bool {
	return c.CacheHostname == nil || *c.CacheHostname
}
