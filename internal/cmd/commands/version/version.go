// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package version

import (
	"github.com/netascode/go-cinp/internal/cmd/base"
	"github.com/netascode/go-cinp/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version of cinpctl"
}

func (c *Command) Help() string {
	return `Usage: cinpctl version

  Print the version of cinpctl and the CInP protocol version it speaks.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output(version.Full())
	return 0
}
