// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package update

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

	flagValues string
	flagMulti  bool
}

func (c *Command) Synopsis() string {
	return "Update one or more objects"
}

func (c *Command) Help() string {
	return `Usage: cinpctl update [options] <object uri>

  Send an UPDATE request with the given field values and print the updated
  object, or a map of uri to object when several ids are named.

  Example:
    cinpctl update -values='{"description":"Main Site"}' /api/v1/Site/Site:site1:` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("update", flag.ContinueOnError))
	c.ConnectionFlags(f)

	f.StringVar(
		&c.flagValues, "values", "", "(Required) Field values as a JSON object.",
	)
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
	if c.flagValues == "" {
		c.UI.Error("values flag is required")
		return 1
	}

	values, err := base.ParseValues(c.flagValues)
	if err != nil {
		return c.Fail(err)
	}

	client, err := c.Client()
	if err != nil {
		return c.Fail(err)
	}
	defer client.Close()

	ctx, cancel := c.Context()
	defer cancel()

	res, err := client.Update(ctx, f.Arg(0), values, cinp.ForceMultiMode(c.flagMulti))
	if err != nil {
		return c.Fail(err)
	}

	if err := c.Output(res.Data); err != nil {
		return c.Fail(err)
	}
	return 0
}
