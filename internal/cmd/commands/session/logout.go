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

type LogoutCommand struct {
	*base.Command
}

func (c *LogoutCommand) Synopsis() string {
	return "End the configured session"
}

func (c *LogoutCommand) Help() string {
	return `Usage: cinpctl session logout [options]

  Log out the session given by the configured auth_id and auth_token.` +
		c.Flags().Help()
}

func (c *LogoutCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("logout", flag.ContinueOnError))
	c.ConnectionFlags(f)
	return f
}

func (c *LogoutCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cli.RunResultHelp
		}
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.Client()
	if err != nil {
		return c.Fail(err)
	}
	defer client.Close()

	if !client.HasCredentials() {
		c.UI.Warn("no session configured, nothing to do")
		return 0
	}

	ctx, cancel := c.Context()
	defer cancel()

	if err := contractor.New(client).Logout(ctx); err != nil {
		return c.Fail(err)
	}

	c.UI.Info("Logged out")
	return 0
}
