// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

// Package config loads cinpctl settings from HCL files and the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// Environment variables that override values from the configuration file.
const (
	EnvHost      = "CINP_HOST"
	EnvAuthID    = "CINP_AUTH_ID"
	EnvAuthToken = "CINP_AUTH_TOKEN"
	EnvTimeout   = "CINP_TIMEOUT"
)

// Config represents the cinpctl configuration from HCL.
type Config struct {
	// Host is the base URL of the CInP server, e.g. "https://contractor:8888".
	Host string `hcl:"host,optional"`

	// Session credentials, usually the result of a previous login.
	AuthID    string `hcl:"auth_id,optional"`
	AuthToken string `hcl:"auth_token,optional"`

	// Timeout is a Go duration string such as "30s".
	Timeout string `hcl:"timeout,optional"`

	PrettyPrintLogs bool `hcl:"pretty_print_logs,optional"`
}

// LoadFile loads a configuration from an HCL file.
func LoadFile(filename string) (*Config, error) {
	if filename == "" {
		return nil, fmt.Errorf("configuration file path is required")
	}

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", filename)
	}

	var cfg Config
	if err := hclsimple.DecodeFile(filename, nil, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}

	if _, err := cfg.TimeoutDuration(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyEnv overrides configuration values with non-empty CINP_* variables
// returned by lookup. Pass os.LookupEnv outside of tests.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	set(&c.Host, EnvHost)
	set(&c.AuthID, EnvAuthID)
	set(&c.AuthToken, EnvAuthToken)
	set(&c.Timeout, EnvTimeout)
}

// TimeoutDuration parses Timeout. An empty value yields zero, which leaves
// the client default in place.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid timeout %q: must be positive", c.Timeout)
	}

	return d, nil
}

// Validate checks that enough is configured to reach a server.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("host is required (set it in the config file, with -host or %s)", EnvHost)
	}
	if (c.AuthID == "") != (c.AuthToken == "") {
		return fmt.Errorf("auth_id and auth_token must be set together")
	}

	_, err := c.TimeoutDuration()
	return err
}
