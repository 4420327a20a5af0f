// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package cinp

import (
	"fmt"

	"github.com/tidwall/sjson"
)

// Body builds a JSON request body (CREATE / UPDATE values, CALL parameters, LIST filter
// values) using sjson path-based manipulation.
//
// Errors are tracked internally so calls can be chained; check them with Err or String.
// A Body can be passed directly as the values argument of Create, Update, Call and List.
//
// Example:
//
//	values := cinp.Body{}.
//	    Set("locator", "web01").
//	    Set("site", "/api/v1/Site/Site:site1:").
//	    Set("blueprint", "/api/v1/BluePrint/FoundationBluePrint:manual-foundation-base:")
//
//	res, err := client.Create(ctx, "/api/v1/Manual/ManualFoundation", values)
type Body struct {
	// str contains the JSON string being built
	str string
	// err tracks the first error encountered during building
	err error
}

// Set sets a value at the specified path and returns a new Body
//
// The path uses dot notation for nested fields (e.g., "config_values.hostname").
// Once an error occurs, all subsequent operations are no-ops that preserve the error.
func (b Body) Set(path string, value any) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.Set(b.str, path, value)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("Set(%q): %w", path, err)}
	}
	return Body{str: result}
}

// SetRaw sets a raw JSON value at the specified path and returns a new Body
//
// Example:
//
//	body := cinp.Body{}.SetRaw("config_values", `{"memory_size": 2048}`)
func (b Body) SetRaw(path, rawJSON string) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.SetRaw(b.str, path, rawJSON)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("SetRaw(%q): %w", path, err)}
	}
	return Body{str: result}
}

// SetRef sets a reference to another object at path
//
// Model fields in CInP hold the uri of the referenced object. The uri must be
// well formed and address exactly one object.
//
// Example:
//
//	body := cinp.Body{}.SetRef("site", "/api/v1/Site/Site:site1:")
func (b Body) SetRef(path, uri string) Body {
	if b.err != nil {
		return b
	}

	u, err := SplitURI(uri)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("SetRef(%q): %w", path, err)}
	}
	if len(u.IDs) != 1 || u.Action != "" {
		return Body{str: b.str, err: fmt.Errorf("SetRef(%q): %w: %q must address one object", path, ErrMalformedURI, uri)}
	}
	return b.Set(path, uri)
}

// SetRefs sets a list of object references at path, for many-to-many fields
func (b Body) SetRefs(path string, uris []string) Body {
	if b.err != nil {
		return b
	}

	for _, uri := range uris {
		if _, err := SplitURI(uri); err != nil {
			return Body{str: b.str, err: fmt.Errorf("SetRefs(%q): %w", path, err)}
		}
	}
	if uris == nil {
		uris = []string{}
	}
	return b.Set(path, uris)
}

// Delete removes a value at the specified path and returns a new Body
func (b Body) Delete(path string) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.Delete(b.str, path)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("Delete(%q): %w", path, err)}
	}
	return Body{str: result}
}

// String returns the JSON string and any error encountered during building
func (b Body) String() (string, error) {
	return b.str, b.err
}

// Err returns any error that occurred during building
func (b Body) Err() error {
	return b.err
}

// Res returns the JSON string, or "" if an error occurred during building
func (b Body) Res() string {
	if b.err != nil {
		return ""
	}
	return b.str
}

// Bytes returns the JSON bytes and any error encountered during building
func (b Body) Bytes() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	return []byte(b.str), nil
}
