// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package cinp

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed CInP request
type ErrorKind int

const (
	// KindCommunication means no usable HTTP response was received
	KindCommunication ErrorKind = iota

	// KindInvalidRequest is HTTP 400
	KindInvalidRequest

	// KindInvalidSession is HTTP 401
	KindInvalidSession

	// KindNotAuthorized is HTTP 403
	KindNotAuthorized

	// KindNotFound is HTTP 404
	KindNotFound

	// KindServerError is HTTP 500
	KindServerError

	// KindUnknown is any other non-2xx status
	KindUnknown
)

// String returns the human-readable reason for an ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindCommunication:
		return "Communication Error"
	case KindInvalidRequest:
		return "Invalid Request"
	case KindInvalidSession:
		return "Invalid Session"
	case KindNotAuthorized:
		return "Not Authorized"
	case KindNotFound:
		return "Not Found"
	case KindServerError:
		return "Server Error"
	case KindUnknown:
		return "Unknown"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Sentinel errors, one per ErrorKind. A *CinpError matches its kind's sentinel with errors.Is.
//
//	if errors.Is(err, cinp.ErrNotFound) {
//	    // object is gone
//	}
var (
	ErrCommunication  = errors.New("cinp: communication error")
	ErrInvalidRequest = errors.New("cinp: invalid request")
	ErrInvalidSession = errors.New("cinp: invalid session")
	ErrNotAuthorized  = errors.New("cinp: not authorized")
	ErrNotFound       = errors.New("cinp: not found")
	ErrServerError    = errors.New("cinp: server error")
	ErrUnknown        = errors.New("cinp: unknown error")
)

var kindSentinels = map[ErrorKind]error{
	KindCommunication:  ErrCommunication,
	KindInvalidRequest: ErrInvalidRequest,
	KindInvalidSession: ErrInvalidSession,
	KindNotAuthorized:  ErrNotAuthorized,
	KindNotFound:       ErrNotFound,
	KindServerError:    ErrServerError,
	KindUnknown:        ErrUnknown,
}

// CinpError represents a classified CInP request failure
type CinpError struct {
	// Kind classifies the failure
	Kind ErrorKind

	// Method and URI of the failed request
	Method string
	URI    string

	// StatusCode is the HTTP status, 0 for communication errors
	StatusCode int

	// Detail is the user-facing detail for InvalidRequest and Unknown errors
	// (the body's message field, or the raw body)
	Detail string

	// Message and Trace are reported by the server for ServerError
	Message string
	Trace   string

	// Err is the underlying Go error for communication errors
	Err error
}

// Error implements the error interface
func (e *CinpError) Error() string {
	switch {
	case e.Kind == KindServerError && e.Message != "":
		return fmt.Sprintf("cinp: %s %s failed: %s: %s", e.Method, e.URI, e.Kind, e.Message)
	case e.Kind == KindUnknown:
		return fmt.Sprintf("cinp: %s %s failed: status %d: %s", e.Method, e.URI, e.StatusCode, e.Detail)
	case e.Detail != "":
		return fmt.Sprintf("cinp: %s %s failed: %s: %s", e.Method, e.URI, e.Kind, e.Detail)
	case e.Err != nil:
		return fmt.Sprintf("cinp: %s %s failed: %s: %s", e.Method, e.URI, e.Kind, e.Err.Error())
	default:
		return fmt.Sprintf("cinp: %s %s failed: %s", e.Method, e.URI, e.Kind)
	}
}

// DetailedError returns the error message including the server trace
//
// Server traces can leak internals; use this only for diagnostics.
func (e *CinpError) DetailedError() string {
	if e.Trace == "" {
		return e.Error()
	}
	return fmt.Sprintf("%s (trace: %s)", e.Error(), e.Trace)
}

// Unwrap returns the underlying error, if any
func (e *CinpError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind
func (e *CinpError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// KindOf returns the ErrorKind of err and true if err wraps a *CinpError
func KindOf(err error) (ErrorKind, bool) {
	var cerr *CinpError
	if errors.As(err, &cerr) {
		return cerr.Kind, true
	}
	return 0, false
}
