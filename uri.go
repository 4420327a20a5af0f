// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package cinp

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrMalformedURI is returned (wrapped) when a URI does not match the CInP addressing grammar
var ErrMalformedURI = errors.New("malformed uri")

// uriRegex is the CInP addressing grammar:
//
//	/ns1/ns2/.../Model:id1:id2:...:(action)
//
// Submatch groups: 1 namespace, 3 model, 4 id segment, 6 action (with parentheses).
var uriRegex = regexp.MustCompile(`^(/([a-zA-Z0-9\-_.!~*]+/)*)([a-zA-Z0-9\-_.!~*]+)?(:([a-zA-Z0-9\-_.!~*']*:)*)?(\([a-zA-Z0-9\-_.!~*]+\))?$`)

// URI is a parsed CInP resource URI
//
// IDs is nil when the URI carries no id segment (a collection level URI).
// A non-nil IDs slice means an id segment was present, even if it holds no ids.
type URI struct {
	// Namespace holds the namespace path segments, outermost first
	Namespace []string

	// Model is the model name, empty for namespace URIs
	Model string

	// IDs is the ordered id list
	IDs []string

	// Action is the action name without parentheses
	Action string
}

// SplitURI parses a URI into its namespace path, model, id list and action
//
// Example:
//
//	u, err := cinp.SplitURI("/api/v1/Building/Foundation:web01:(getConfig)")
//	// u.Namespace = [api v1 Building], u.Model = Foundation
//	// u.IDs = [web01], u.Action = getConfig
//
// Returns an error wrapping ErrMalformedURI if the URI does not match the grammar.
func SplitURI(uri string) (URI, error) {
	loc := uriRegex.FindStringSubmatchIndex(uri)
	if loc == nil {
		return URI{}, fmt.Errorf("%w: %q", ErrMalformedURI, truncateURI(uri))
	}

	result := URI{}

	namespace := strings.Trim(uri[loc[2]:loc[3]], "/")
	if namespace != "" {
		result.Namespace = strings.Split(namespace, "/")
	}

	if loc[6] >= 0 {
		result.Model = uri[loc[6]:loc[7]]
	}

	if loc[8] >= 0 {
		result.IDs = splitIDSegment(uri[loc[8]:loc[9]])
	}

	if loc[12] >= 0 {
		action := uri[loc[12]:loc[13]]
		result.Action = action[1 : len(action)-1]
	}

	return result, nil
}

// MustSplitURI is like SplitURI but panics if the URI is malformed
//
// Use it only for URIs the program itself constructed or received from the server.
func MustSplitURI(uri string) URI {
	u, err := SplitURI(uri)
	if err != nil {
		panic(err)
	}
	return u
}

// splitIDSegment turns ":id1:id2:" into [id1 id2]
func splitIDSegment(segment string) []string {
	parts := strings.Split(segment, ":")
	return parts[1 : len(parts)-1]
}

// String renders the URI in its textual form
//
// A single id is still delimited by colons on both sides (Model:id:).
func (u URI) String() string {
	var builder strings.Builder

	builder.WriteString("/")
	for _, segment := range u.Namespace {
		builder.WriteString(segment)
		builder.WriteString("/")
	}

	builder.WriteString(u.Model)

	if u.IDs != nil {
		builder.WriteString(":")
		for _, id := range u.IDs {
			builder.WriteString(id)
			builder.WriteString(":")
		}
	}

	if u.Action != "" {
		builder.WriteString("(")
		builder.WriteString(u.Action)
		builder.WriteString(")")
	}

	return builder.String()
}

// NamespacePath returns the namespace part of the URI including the leading and trailing slash
func (u URI) NamespacePath() string {
	if len(u.Namespace) == 0 {
		return "/"
	}
	return "/" + strings.Join(u.Namespace, "/") + "/"
}

// IsCollection reports whether the URI addresses a model without any ids
func (u URI) IsCollection() bool {
	return u.Model != "" && u.IDs == nil
}

// WithIDs returns a copy of the URI addressing the given ids
func (u URI) WithIDs(ids ...string) URI {
	u.Namespace = append([]string(nil), u.Namespace...)
	u.IDs = append([]string{}, ids...)
	u.Action = ""
	return u
}

// ExtractIDs returns the ids of all given URIs concatenated in input order
//
// Empty strings are skipped, as are URIs without an id segment. Duplicates are kept.
//
// Example:
//
//	ids, err := cinp.ExtractIDs([]string{
//	    "/api/v1/Site/Site:site1:",
//	    "/api/v1/Site/Site:site2:",
//	})
//	// ids = [site1 site2]
func ExtractIDs(uris []string) ([]string, error) {
	result := []string{}
	for _, uri := range uris {
		ids, err := extractIDs(uri)
		if err != nil {
			return nil, err
		}
		result = append(result, ids...)
	}
	return result, nil
}

func extractIDs(uri string) ([]string, error) {
	if uri == "" {
		return nil, nil
	}
	u, err := SplitURI(uri)
	if err != nil {
		return nil, err
	}
	return u.IDs, nil
}

// extractIDsFromJSON applies ExtractIDs to a decoded LIST body
//
// The body may be a JSON array of URIs or an object whose values are URIs.
// Null and non-string entries are skipped.
func extractIDsFromJSON(body gjson.Result) ([]string, error) {
	result := []string{}
	if !body.IsArray() && !body.IsObject() {
		if body.Type != gjson.String {
			return result, nil
		}
		return ExtractIDs([]string{body.String()})
	}

	var err error
	body.ForEach(func(_, value gjson.Result) bool {
		if value.Type != gjson.String {
			return true
		}
		var ids []string
		ids, err = extractIDs(value.String())
		if err != nil {
			return false
		}
		result = append(result, ids...)
		return true
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// validateURI checks a URI before it is put on the wire
//
// Checks:
//   - URI is not empty
//   - URI contains no null bytes
//   - URI matches the addressing grammar
func validateURI(uri string) error {
	if uri == "" {
		return fmt.Errorf("%w: uri cannot be empty", ErrMalformedURI)
	}

	if i := strings.IndexByte(uri, 0); i >= 0 {
		return fmt.Errorf("%w: uri contains null byte at position %d", ErrMalformedURI, i)
	}

	if !uriRegex.MatchString(uri) {
		return fmt.Errorf("%w: %q", ErrMalformedURI, truncateURI(uri))
	}

	return nil
}

// truncateURI truncates a URI for error messages
func truncateURI(uri string) string {
	if len(uri) <= 100 {
		return uri
	}
	return uri[:100] + "..."
}
