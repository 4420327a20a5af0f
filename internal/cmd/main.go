// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package cmd

import (
	"bufio"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/netascode/go-cinp/internal/version"
)

// Main runs the CLI with the given arguments and returns the exit code.
func Main(args []string) int {
	cliName := args[0]

	level := hclog.Warn
	if v := os.Getenv("CINP_LOG_LEVEL"); v != "" {
		level = hclog.LevelFromString(v)
	}

	log := hclog.New(&hclog.LoggerOptions{
		Name:   cliName,
		Level:  level,
		Output: os.Stderr,
	})

	if len(args) == 2 &&
		(args[1] == "-version" ||
			args[1] == "-v") {
		args = []string{cliName, "version"}
	}

	ui := &cli.BasicUi{
		Reader:      bufio.NewReader(os.Stdin),
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}

	return run(cliName, args[1:], log, ui)
}

func run(cliName string, args []string, log hclog.Logger, ui cli.Ui) int {
	c := &cli.CLI{
		Name:     cliName,
		Args:     args,
		Version:  version.Version,
		Commands: initCommands(log, ui),
	}

	exitCode, err := c.Run()
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	return exitCode
}
