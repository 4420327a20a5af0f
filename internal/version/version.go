// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

// Package version reports the cinpctl build version.
package version

import "github.com/netascode/go-cinp"

// Version is set at build time with -ldflags "-X ...version.Version=...".
var Version = "0.1.0"

// Full returns the cinpctl version together with the protocol it speaks.
func Full() string {
	return "cinpctl v" + Version + " (CInP " + cinp.ProtocolVersion + ")"
}
