// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package session

import (
	"github.com/mitchellh/cli"

	"github.com/netascode/go-cinp/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Manage Contractor sessions"
}

func (c *Command) Help() string {
	return `Usage: cinpctl session <subcommand> [options] [args]

  This command groups subcommands for logging in to and out of a
  Contractor server.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
