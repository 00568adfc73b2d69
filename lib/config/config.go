// Copyright 2026 The Clot Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the configuration for the clot command line tools.
type Config struct {
	// FallbackEncoding is the character set tried last when a text
	// field does not decode as UTF-8 or the record's own encoding.
	// Empty means no fallback.
	FallbackEncoding string `yaml:"fallback_encoding"`

	// Schemes is the allowed URL scheme set for tracker and web-seed
	// URLs. Empty means the built-in default (https, http, udp).
	Schemes []string `yaml:"schemes"`

	// Dump configures the JSON rendering defaults.
	Dump DumpConfig `yaml:"dump"`
}

// DumpConfig holds the default rendering options for dump output.
// Command-line flags override these per invocation.
type DumpConfig struct {
	// Indent is the number of spaces per nesting level. Zero renders
	// one-line output.
	Indent int `yaml:"indent"`

	// Tab indents with tabs and overrides Indent.
	Tab bool `yaml:"tab"`

	// SortKeys orders dictionary keys lexicographically.
	SortKeys bool `yaml:"sort_keys"`
}

// Default returns a Config with the built-in defaults.
func Default() *Config {
	return &Config{
		Schemes: []string{"https", "http", "udp"},
	}
}

// Load reads the configuration from the file named by the CLOT_CONFIG
// environment variable.
func Load() (*Config, error) {
	configPath := os.Getenv("CLOT_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("CLOT_CONFIG environment variable not set; " +
			"set it to the path of your clot.yaml config file, or use --config flag")
	}

	return LoadFile(configPath)
}

// LoadFile reads the configuration file at path, merging it over the
// defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Dump.Indent < 0 {
		errs = append(errs, fmt.Errorf("dump.indent must not be negative"))
	}
	if c.Dump.Indent > 16 {
		errs = append(errs, fmt.Errorf("dump.indent must be at most 16"))
	}

	for i, scheme := range c.Schemes {
		if scheme == "" {
			errs = append(errs, fmt.Errorf("schemes[%d] is empty", i))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
