// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package create

import (
	"errors"
	"flag"
	"fmt"

	"github.com/mitchellh/cli"

	"github.com/netascode/go-cinp/internal/cmd/base"
)

type Command struct {
	*base.Command

	flagValues string
}

// Result is the printed form of a CREATE response.
type Result struct {
	ID     string `json:"id"`
	Object any    `json:"object"`
}

func (c *Command) Synopsis() string {
	return "Create an object"
}

func (c *Command) Help() string {
	return `Usage: cinpctl create [options] <model uri>

  Send a CREATE request with the given field values and print the uri of
  the new object together with the object itself.

  Example:
    cinpctl create -values='{"name":"site2","description":"Second Site"}' /api/v1/Site/Site` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("create", flag.ContinueOnError))
	c.ConnectionFlags(f)

	f.StringVar(
		&c.flagValues, "values", "", "(Required) Field values as a JSON object.",
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

	res, err := client.Create(ctx, f.Arg(0), values)
	if err != nil {
		return c.Fail(err)
	}

	if err := c.Output(Result{ID: res.ID, Object: res.Data}); err != nil {
		return c.Fail(err)
	}
	return 0
}
