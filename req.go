// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package cinp

import "time"

// Default request modifier values
const (
	DefaultListPosition  = 0
	DefaultListCount     = 10
	DefaultListChunkSize = 100
	DefaultGetChunkSize  = 10
)

// Req carries request-specific options applied via functional modifiers
//
// Operation parameters (uri, values, filters) are passed directly to methods;
// a modifier only touches the fields relevant to the operation it is used with.
//
// Example:
//
//	res, err := client.List(ctx, "/api/v1/Building/Foundation", "site",
//	    map[string]any{"site": "/api/v1/Site/Site:site1:"},
//	    cinp.Position(20),
//	    cinp.Count(20),
//	    cinp.Timeout(10*time.Second))
type Req struct {
	// Timeout is the request-specific timeout
	// Overrides the context deadline and the client default if set
	Timeout time.Duration

	// MultiObject asks the server for a multi-object shaped body
	// Used by Get, Update, Call
	MultiObject bool

	// Position and Count page a List
	Position int
	Count    int

	// ListChunkSize is the LIST page size used by GetFilteredObjects
	ListChunkSize int

	// GetChunkSize is accepted by GetFilteredObjects and GetMulti but not used:
	// all ids are fetched with a single batched GET
	GetChunkSize int
}

// newReq builds a Req with defaults and applies the modifiers
func newReq(mods []func(*Req)) *Req {
	req := &Req{
		Position:      DefaultListPosition,
		Count:         DefaultListCount,
		ListChunkSize: DefaultListChunkSize,
		GetChunkSize:  DefaultGetChunkSize,
	}
	for _, mod := range mods {
		if mod != nil {
			mod(req)
		}
	}
	return req
}
