// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package call

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

	flagParams string
	flagMulti  bool
}

func (c *Command) Synopsis() string {
	return "Call a model or object action"
}

func (c *Command) Help() string {
	return `Usage: cinpctl call [options] <action uri>

  Send a CALL request and print the action's return value as JSON.

  Examples:
    cinpctl call "/api/v1/Auth/User(whoami)"
    cinpctl call "/api/v1/Building/Foundation:web01:(getConfig)"
    cinpctl call -params='{"site":"/api/v1/Site/Site:site1:"}' "/api/v1/Foreman/BaseJob(jobStats)"` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("call", flag.ContinueOnError))
	c.ConnectionFlags(f)

	f.StringVar(
		&c.flagParams, "params", "", "Action parameters as a JSON object.",
	)
	f.BoolVar(
		&c.flagMulti, "multi", false,
		"Request Multi-Object mode for the call.",
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

	params, err := base.ParseValues(c.flagParams)
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

	res, err := client.Call(ctx, f.Arg(0), params, cinp.ForceMultiMode(c.flagMulti))
	if err != nil {
		return c.Fail(err)
	}

	if err := c.Output(res.Data); err != nil {
		return c.Fail(err)
	}
	return 0
}
