// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package main

import (
	"os"

	"github.com/netascode/go-cinp/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
