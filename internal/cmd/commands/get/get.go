// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package get

import (
	"errors"
	"flag"
	"fmt"

	"github.com/mitchellh/cli"

	"github.com/netascode/go-cinp"
	"github.com/netascode/go-cinp/internal/cmd/base"
)

type Command struct {
	*base.Command

	flagMulti bool
}

func (c *Command) Synopsis() string {
	return "Get one or more objects"
}

func (c *Command) Help() string {
	return `Usage: cinpctl get [options] <uri>

  Send a GET request for an object uri and print the object as JSON. A uri
  naming several ids returns a map of uri to object.

  Examples:
    cinpctl get /api/v1/Site/Site:site1:
    cinpctl get /api/v1/Building/Foundation:web01:web02:` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("get", flag.ContinueOnError))
	c.ConnectionFlags(f)

	f.BoolVar(
		&c.flagMulti, "multi", false,
		"Request Multi-Object mode even for a single id.",
	)

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

	res, err := client.Get(ctx, f.Arg(0), cinp.ForceMultiMode(c.flagMulti))
	if err != nil {
		return c.Fail(err)
	}

	if err := c.Output(res.Data); err != nil {
		return c.Fail(err)
	}
	return 0
}
