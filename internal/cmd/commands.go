// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/netascode/go-cinp/internal/cmd/base"
	"github.com/netascode/go-cinp/internal/cmd/commands/call"
	"github.com/netascode/go-cinp/internal/cmd/commands/create"
	deletecmd "github.com/netascode/go-cinp/internal/cmd/commands/delete"
	"github.com/netascode/go-cinp/internal/cmd/commands/describe"
	"github.com/netascode/go-cinp/internal/cmd/commands/filter"
	"github.com/netascode/go-cinp/internal/cmd/commands/get"
	"github.com/netascode/go-cinp/internal/cmd/commands/list"
	"github.com/netascode/go-cinp/internal/cmd/commands/session"
	"github.com/netascode/go-cinp/internal/cmd/commands/update"
	"github.com/netascode/go-cinp/internal/cmd/commands/version"
)

// initCommands builds the command table. Every command shares one base so
// they log and print the same way.
func initCommands(log hclog.Logger, ui cli.Ui) map[string]cli.CommandFactory {
	b := &base.Command{
		Log: log,
		UI:  ui,
	}

	return map[string]cli.CommandFactory{
		"call": func() (cli.Command, error) {
			return &call.Command{Command: b}, nil
		},
		"create": func() (cli.Command, error) {
			return &create.Command{Command: b}, nil
		},
		"delete": func() (cli.Command, error) {
			return &deletecmd.Command{Command: b}, nil
		},
		"describe": func() (cli.Command, error) {
			return &describe.Command{Command: b}, nil
		},
		"filter": func() (cli.Command, error) {
			return &filter.Command{Command: b}, nil
		},
		"get": func() (cli.Command, error) {
			return &get.Command{Command: b}, nil
		},
		"list": func() (cli.Command, error) {
			return &list.Command{Command: b}, nil
		},
		"session": func() (cli.Command, error) {
			return &session.Command{Command: b}, nil
		},
		"session login": func() (cli.Command, error) {
			return &session.LoginCommand{Command: b}, nil
		},
		"session logout": func() (cli.Command, error) {
			return &session.LogoutCommand{Command: b}, nil
		},
		"session whoami": func() (cli.Command, error) {
			return &session.WhoamiCommand{Command: b}, nil
		},
		"update": func() (cli.Command, error) {
			return &update.Command{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
	}
}
