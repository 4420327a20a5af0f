// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package cinp

import (
	"net/http"
	"time"
)

// Client configuration options using the functional options pattern

// Auth sets the initial credential pair
//
// An empty token leaves the client unauthenticated, like SetAuth.
func Auth(id, token string) func(*Client) {
	return func(c *Client) {
		c.setAuthLocked(id, token)
	}
}

// WithHTTPClient sets the HTTP client used for all requests
//
// Use it to configure TLS, proxies or a custom transport. A nil client is ignored.
func WithHTTPClient(httpClient *http.Client) func(*Client) {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// OperationTimeout sets the default per-request timeout (default: 30s)
func OperationTimeout(duration time.Duration) func(*Client) {
	return func(c *Client) {
		c.OperationTimeout = duration
	}
}

// UserAgent sets the User-Agent header sent with every request
func UserAgent(userAgent string) func(*Client) {
	return func(c *Client) {
		c.UserAgent = userAgent
	}
}

// WithServerErrorHandler registers the callback invoked for every HTTP 500 response
//
// The handler runs synchronously before the failing operation returns its error,
// so a UI can show a diagnostic while the caller still receives a ServerError.
//
// Example:
//
//	client, _ := cinp.NewClient("http://contractor:8888",
//	    cinp.WithServerErrorHandler(func(message, trace string) {
//	        fmt.Fprintf(os.Stderr, "server error: %s\n%s\n", message, trace)
//	    }))
func WithServerErrorHandler(handler func(message, trace string)) func(*Client) {
	return func(c *Client) {
		c.serverErrorHandler = handler
	}
}

// WithLogger configures a custom logger for the client
//
// By default, the client uses NoOpLogger which discards all log messages.
// Request and response bodies logged at Debug level are redacted first
// (passwords, tokens, secrets).
//
// Example:
//
//	logger := cinp.NewDefaultLogger(cinp.LogLevelInfo)
//	client, _ := cinp.NewClient("http://contractor:8888",
//	    cinp.WithLogger(logger))
func WithLogger(logger Logger) func(*Client) {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPrettyPrintLogs enables/disables JSON pretty printing in debug logs (default: disabled)
func WithPrettyPrintLogs(enabled bool) func(*Client) {
	return func(c *Client) {
		c.prettyPrintLogs = enabled
	}
}

// Request modifiers for individual operations

// Timeout returns a request modifier that sets a custom timeout for the operation.
//
// The timeout priority model is:
//  1. Request-specific timeout (this modifier)
//  2. Context deadline (if already set)
//  3. Client.OperationTimeout
//
// Example:
//
//	res, err := client.Call(ctx, "/api/v1/Building/Foundation:web01:(doCreate)", nil,
//	    cinp.Timeout(2*time.Minute))
func Timeout(duration time.Duration) func(*Req) {
	return func(req *Req) {
		req.Timeout = duration
	}
}

// ForceMultiMode returns a request modifier that sets the Multi-Object header
//
// With multi mode forced the server answers with a map of uri to object,
// even when a single object is addressed. Applies to Get, Update and Call.
func ForceMultiMode(enabled bool) func(*Req) {
	return func(req *Req) {
		req.MultiObject = enabled
	}
}

// Position returns a request modifier that sets the List start position (default: 0)
func Position(position int) func(*Req) {
	return func(req *Req) {
		req.Position = position
	}
}

// Count returns a request modifier that sets the List page size (default: 10)
func Count(count int) func(*Req) {
	return func(req *Req) {
		req.Count = count
	}
}

// ListChunkSize returns a request modifier that sets the LIST page size
// used by GetFilteredObjects (default: 100)
func ListChunkSize(size int) func(*Req) {
	return func(req *Req) {
		req.ListChunkSize = size
	}
}

// GetChunkSize returns a request modifier for the batched GET size (default: 10)
//
// The value is accepted for compatibility but currently has no effect:
// every id is requested in one batched GET.
func GetChunkSize(size int) func(*Req) {
	return func(req *Req) {
		req.GetChunkSize = size
	}
}
