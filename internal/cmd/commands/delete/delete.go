// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package delete

import (
	"errors"
	"flag"
	"fmt"

	"github.com/mitchellh/cli"

	"github.com/netascode/go-cinp/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Delete one or more objects"
}

func (c *Command) Help() string {
	return `Usage: cinpctl delete [options] <object uri>

  Send a DELETE request for an object uri.

  Example:
    cinpctl delete /api/v1/Site/Site:site2:` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("delete", flag.ContinueOnError))
	c.ConnectionFlags(f)
	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cli.RunResultHelp
		}
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if f.NArg() != 1 {
		return cli.RunResultHelp
	}

	client, err := c.Client()
	if err != nil {
		return c.Fail(err)
	}
	defer client.Close()

	ctx, cancel := c.Context()
	defer cancel()

	if err := client.Delete(ctx, f.Arg(0)); err != nil {
		return c.Fail(err)
	}

	c.UI.Info(fmt.Sprintf("Deleted %s", f.Arg(0)))
	return 0
}
