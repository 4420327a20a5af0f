// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package list

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

	flagFilter   string
	flagValues   string
	flagPosition int
	flagCount    int
	flagIDs      bool
}

// Page is the printed form of one LIST response.
type Page struct {
	Items    []string `json:"items"`
	Position int      `json:"position"`
	Count    int      `json:"count"`
	Total    int      `json:"total"`
}

func (c *Command) Synopsis() string {
	return "List object uris of a model"
}

func (c *Command) Help() string {
	return `Usage: cinpctl list [options] <model uri>

  Send a LIST request and print one page of object uris together with the
  paging headers returned by the server.

  Examples:
    cinpctl list /api/v1/Site/Site
    cinpctl list -filter=site -values='{"site":"/api/v1/Site/Site:site1:"}' /api/v1/Building/Foundation
    cinpctl list -position=50 -count=50 -ids /api/v1/Building/Structure` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("list", flag.ContinueOnError))
	c.ConnectionFlags(f)

	f.StringVar(
		&c.flagFilter, "filter", "", "Name of the list filter to apply.",
	)
	f.StringVar(
		&c.flagValues, "values", "", "Filter values as a JSON object.",
	)
	f.IntVar(
		&c.flagPosition, "position", cinp.DefaultListPosition, "Index of the first item.",
	)
	f.IntVar(
		&c.flagCount, "count", cinp.DefaultListCount, "Number of items to return.",
	)
	f.BoolVar(
		&c.flagIDs, "ids", false, "Print object ids instead of uris.",
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
	if c.flagPosition < 0 || c.flagCount < 0 {
		c.UI.Error("position and count must not be negative")
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

	res, err := client.List(ctx, f.Arg(0), c.flagFilter, values,
		cinp.Position(c.flagPosition), cinp.Count(c.flagCount))
	if err != nil {
		return c.Fail(err)
	}

	page := Page{Items: res.URIs(), Position: res.Position, Count: res.Count, Total: res.Total}
	if c.flagIDs {
		if page.Items, err = res.IDs(); err != nil {
			return c.Fail(err)
		}
	}

	if err := c.Output(page); err != nil {
		return c.Fail(err)
	}
	return 0
}
