// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

// Package base holds the pieces shared by every cinpctl command.
package base

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/netascode/go-cinp"
	"github.com/netascode/go-cinp/internal/config"
)

// Command is embedded by all commands.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui

	// LookupEnv reads environment overrides, os.LookupEnv when nil.
	LookupEnv func(string) (string, bool)

	flagConfig    string
	flagHost      string
	flagAuthID    string
	flagAuthToken string
	flagTimeout   time.Duration
}

// FlagSet wraps flag.FlagSet with help rendering.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet returns a FlagSet that reports errors to the caller instead of
// exiting.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	f.SetOutput(new(strings.Builder))
	return &FlagSet{FlagSet: f}
}

// Help renders the flags in the indented style of the command help texts.
func (f *FlagSet) Help() string {
	var b strings.Builder
	b.WriteString("\n\nOptions:\n")
	f.VisitAll(func(fl *flag.Flag) {
		fmt.Fprintf(&b, "\n  -%s", fl.Name)
		if fl.DefValue != "" && fl.DefValue != "0s" && fl.DefValue != "false" {
			fmt.Fprintf(&b, "=%s", fl.DefValue)
		}
		fmt.Fprintf(&b, "\n      %s\n", fl.Usage)
	})
	return b.String()
}

// ConnectionFlags registers the flags every server-facing command accepts.
func (c *Command) ConnectionFlags(f *FlagSet) {
	f.StringVar(
		&c.flagConfig, "config", "", "Path to an HCL configuration file.",
	)
	f.StringVar(
		&c.flagHost, "host", "",
		fmt.Sprintf("CInP server base URL. Overrides the config file and %s.", config.EnvHost),
	)
	f.StringVar(
		&c.flagAuthID, "auth-id", "", "Session id sent as Auth-Id.",
	)
	f.StringVar(
		&c.flagAuthToken, "auth-token", "", "Session token sent as Auth-Token.",
	)
	f.DurationVar(
		&c.flagTimeout, "timeout", 0, "Per-request timeout, e.g. 30s.",
	)
}

// Config resolves the effective configuration: file, then environment,
// then flags.
func (c *Command) Config() (*config.Config, error) {
	cfg := &config.Config{}
	if c.flagConfig != "" {
		var err error
		if cfg, err = config.LoadFile(c.flagConfig); err != nil {
			return nil, err
		}
	}

	lookup := c.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	cfg.ApplyEnv(lookup)

	if c.flagHost != "" {
		cfg.Host = c.flagHost
	}
	if c.flagAuthID != "" {
		cfg.AuthID = c.flagAuthID
	}
	if c.flagAuthToken != "" {
		cfg.AuthToken = c.flagAuthToken
	}
	if c.flagTimeout != 0 {
		cfg.Timeout = c.flagTimeout.String()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Client builds a CInP client from the resolved configuration. Server error
// traces are written to the UI.
func (c *Command) Client() (*cinp.Client, error) {
	cfg, err := c.Config()
	if err != nil {
		return nil, err
	}

	opts := []func(*cinp.Client){
		cinp.WithLogger(cinp.NewHclogLogger(c.Log)),
		cinp.WithPrettyPrintLogs(cfg.PrettyPrintLogs),
		cinp.WithServerErrorHandler(func(message, trace string) {
			c.UI.Error(fmt.Sprintf("server error: %s", message))
			if trace != "" {
				c.UI.Error(trace)
			}
		}),
	}
	if cfg.AuthToken != "" {
		opts = append(opts, cinp.Auth(cfg.AuthID, cfg.AuthToken))
	}
	if d, _ := cfg.TimeoutDuration(); d > 0 {
		opts = append(opts, cinp.OperationTimeout(d))
	}

	client, err := cinp.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating client: %w", err)
	}
	return client, nil
}

// Context returns a context cancelled on interrupt.
func (c *Command) Context() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// Fail reports err on the UI and returns the exit code for it.
func (c *Command) Fail(err error) int {
	var cinpErr *cinp.CinpError
	if errors.As(err, &cinpErr) {
		c.Log.Debug("request failed", "error", cinpErr.DetailedError())
	}
	c.UI.Error(err.Error())
	return 1
}

// Output writes v to the UI as indented JSON.
func (c *Command) Output(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding output: %w", err)
	}
	c.UI.Output(string(out))
	return nil
}

// ParseValues decodes a JSON object argument. An empty string yields an
// untyped nil so no request body is sent.
func ParseValues(raw string) (any, error) {
	if raw == "" {
		return nil, nil
	}

	var values map[string]any
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("values must be a JSON object: %w", err)
	}
	return values, nil
}
