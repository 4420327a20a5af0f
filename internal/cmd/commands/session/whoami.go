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

type WhoamiCommand struct {
	*base.Command
}

func (c *WhoamiCommand) Synopsis() string {
	return "Print the user of the configured session"
}

func (c *WhoamiCommand) Help() string {
	return `Usage: cinpctl session whoami [options]

  Print the username the configured session belongs to.` +
		c.Flags().Help()
}

func (c *WhoamiCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("whoami", flag.ContinueOnError))
	c.ConnectionFlags(f)
	return f
}

func (c *WhoamiCommand) Run(args []string) int {
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

	ctx, cancel := c.Context()
	defer cancel()

	user, err := contractor.New(client).Whoami(ctx)
	if err != nil {
		return c.Fail(err)
	}

	c.UI.Output(user)
	return 0
}
