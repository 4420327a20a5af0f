// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package filter

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

	flagFilter    string
	flagValues    string
	flagChunkSize int
}

func (c *Command) Synopsis() string {
	return "Fetch every object matching a list filter"
}

func (c *Command) Help() string {
	return `Usage: cinpctl filter [options] <model uri>

  Send a filtered LIST for the first chunk-size uris, then fetch those
  objects with a single multi-id GET. Prints a JSON map of uri to object.

  Examples:
    cinpctl filter /api/v1/Site/Site
    cinpctl filter -filter=site -values='{"site":"/api/v1/Site/Site:site1:"}' /api/v1/Building/Structure` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("filter", flag.ContinueOnError))
	c.ConnectionFlags(f)

	f.StringVar(
		&c.flagFilter, "filter", "", "Name of the list filter to apply.",
	)
	f.StringVar(
		&c.flagValues, "values", "", "Filter values as a JSON object.",
	)
	f.IntVar(
		&c.flagChunkSize, "chunk-size", cinp.DefaultListChunkSize,
		"Number of uris requested from the LIST.",
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
	if c.flagChunkSize < 1 {
		c.UI.Error("chunk-size must be at least 1")
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

	objects, err := client.GetFilteredObjects(ctx, f.Arg(0), c.flagFilter, values,
		cinp.ListChunkSize(c.flagChunkSize))
	if err != nil {
		return c.Fail(err)
	}

	c.Log.Debug("fetched filtered objects", "uri", f.Arg(0), "count", len(objects))
	if err := c.Output(objects); err != nil {
		return c.Fail(err)
	}
	return 0
}
