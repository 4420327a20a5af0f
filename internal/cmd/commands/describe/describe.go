// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package describe

import (
	"errors"
	"flag"
	"fmt"
	"slices"
	"strings"

	"github.com/mitchellh/cli"

	"github.com/netascode/go-cinp"
	"github.com/netascode/go-cinp/internal/cmd/base"
)

type Command struct {
	*base.Command

	flagRaw bool
}

func (c *Command) Synopsis() string {
	return "Describe a namespace, model or action"
}

func (c *Command) Help() string {
	return `Usage: cinpctl describe [options] <uri>

  Send a DESCRIBE request and print a summary of the namespace, model or
  action the uri points at.

  Examples:
    cinpctl describe /api/v1/
    cinpctl describe /api/v1/Building/Foundation
    cinpctl describe "/api/v1/Building/Foundation(getConfig)"` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("describe", flag.ContinueOnError))
	c.ConnectionFlags(f)

	f.BoolVar(
		&c.flagRaw, "raw", false,
		"Print the response body as JSON instead of a summary.",
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

	res, err := client.Describe(ctx, f.Arg(0))
	if err != nil {
		return c.Fail(err)
	}

	if c.flagRaw {
		c.UI.Output(res.GetValue("@pretty").String())
		return 0
	}

	if res.Type == "" {
		c.UI.Warn("server returned an unrecognized description type")
		c.UI.Output(res.JSON())
		return 0
	}

	c.UI.Output(Summary(res))
	return 0
}

// Summary renders a description as human readable text.
func Summary(res cinp.DescribeRes) string {
	var b strings.Builder

	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%-14s %s\n", label+":", value)
		}
	}
	list := func(label string, values []string) {
		if len(values) > 0 {
			line(label, strings.Join(values, ", "))
		}
	}

	line("Type", res.Type)
	switch {
	case res.Namespace != nil:
		ns := res.Namespace
		line("Name", ns.Name)
		line("Path", ns.Path)
		line("API Version", ns.APIVersion)
		if ns.MultiURIMax > 0 {
			line("Multi URI Max", fmt.Sprint(ns.MultiURIMax))
		}
		list("Namespaces", ns.NamespaceList)
		list("Models", ns.ModelList)
		line("Doc", ns.Doc)
	case res.Model != nil:
		m := res.Model
		line("Name", m.Name)
		line("Path", m.Path)
		fields := make([]string, 0, len(m.FieldList))
		for _, field := range m.FieldList {
			fields = append(fields, fmt.Sprintf("%v (%v)", field["name"], field["type"]))
		}
		list("Fields", fields)
		list("Actions", m.ActionList)
		list("Not Allowed", m.NotAllowedMethods)
		filters := make([]string, 0, len(m.ListFilters))
		for name := range m.ListFilters {
			filters = append(filters, name)
		}
		slices.Sort(filters)
		list("Filters", filters)
		line("Doc", m.Doc)
	case res.Action != nil:
		a := res.Action
		line("Name", a.Name)
		line("Path", a.Path)
		line("Static", fmt.Sprint(a.Static))
		if a.ReturnType != nil {
			line("Returns", fmt.Sprint(a.ReturnType))
		}
		params := make([]string, 0, len(a.ParameterList))
		for _, p := range a.ParameterList {
			params = append(params, fmt.Sprint(p["name"]))
		}
		list("Parameters", params)
		line("Doc", a.Doc)
	}

	return strings.TrimRight(b.String(), "\n")
}
