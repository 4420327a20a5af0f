// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package session

import (
	"errors"
	"flag"
	"fmt"

	"github.com/mitchellh/cli"

	"github.com/netascode/go-cinp/contractor"
	"github.com/netascode/go-cinp/internal/cmd/base"
)

type LoginCommand struct {
	*base.Command

	flagUsername string
	flagPassword string
}

func (c *LoginCommand) Synopsis() string {
	return "Log in and print session credentials"
}

func (c *LoginCommand) Help() string {
	return `Usage: cinpctl session login [options]

  Log in to a Contractor server and print the session credentials in the
  configuration file format. The password is prompted for when not given.

  Example:
    cinpctl session login -host=https://contractor -username=root >> cinpctl.hcl` +
		c.Flags().Help()
}

func (c *LoginCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("login", flag.ContinueOnError))
	c.ConnectionFlags(f)

	f.StringVar(
		&c.flagUsername, "username", "", "(Required) Username to log in as.",
	)
	f.StringVar(
		&c.flagPassword, "password", "", "Password. Prompted for when empty.",
	)

	return f
}

func (c *LoginCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cli.RunResultHelp
		}
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if c.flagUsername == "" {
		c.UI.Error("username flag is required")
		return 1
	}

	password := c.flagPassword
	if password == "" {
		var err error
		if password, err = c.UI.AskSecret("Password:"); err != nil {
			c.UI.Error(fmt.Sprintf("error reading password: %v", err))
			return 1
		}
	}

	client, err := c.Client()
	if err != nil {
		return c.Fail(err)
	}
	defer client.Close()

	ctx, cancel := c.Context()
	defer cancel()

	token, err := contractor.New(client).Login(ctx, c.flagUsername, password)
	if err != nil {
		return c.Fail(err)
	}

	c.Log.Info("logged in", "user", c.flagUsername)
	c.UI.Output(fmt.Sprintf("auth_id    = %q\nauth_token = %q", c.flagUsername, token))
	return 0
}
