// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package cinp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"
)

// Default client configuration values
const (
	DefaultOperationTimeout = 30 * time.Second
	DefaultPrettyPrintLogs  = false
	DefaultUserAgent        = "go-cinp/" + ProtocolVersion
)

// Security limits for JSON processing and logging
const (
	MaxJSONSizeForLogging = 1 * 1024 * 1024
	MaxSensitiveFields    = 1000
)

// Logging message constants
const (
	JSONTooLargeMessage     = "[JSON TOO LARGE FOR LOGGING]"
	JSONTooManySensitiveMsg = "[JSON CONTAINS TOO MANY SENSITIVE FIELDS]"
)

// sensitiveFields are JSON keys whose string values are redacted in logs
var sensitiveFields = []string{"password", "token", "auth_token", "secret", "auth"}

// defaultRedactionPatterns holds one pattern per entry of sensitiveFields
var defaultRedactionPatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(sensitiveFields))
	for _, field := range sensitiveFields {
		patterns = append(patterns, regexp.MustCompile(`"`+field+`"\s*:\s*"[^"]*"`))
	}
	return patterns
}()

// Client is a CInP protocol client bound to one server
//
// A Client holds the session state (credential pair, server error handler).
// It is safe for concurrent use; credentials may be changed while requests are in flight,
// each request reads them once when it is built.
type Client struct {
	// RWMutex to synchronize access to mutable session state
	mu sync.RWMutex

	// Host is the server base URL, e.g. http://contractor:8888
	Host string

	// parsed Host
	baseURL *url.URL

	httpClient *http.Client

	// Session state
	authID             string // unexported for security
	authToken          string // unexported for security
	serverErrorHandler func(message, trace string)

	// OperationTimeout is the default per-request timeout
	OperationTimeout time.Duration

	// UserAgent is sent with every request
	UserAgent string

	// Logging configuration
	logger            Logger
	prettyPrintLogs   bool
	redactionPatterns []*regexp.Regexp
}

// NewClient creates a new CInP client for the server at host
//
// No connection is made; the first operation performs the first request.
//
// Example:
//
//	client, err := cinp.NewClient(
//	    "http://contractor:8888",
//	    cinp.OperationTimeout(10*time.Second),
//	    cinp.WithLogger(cinp.NewDefaultLogger(cinp.LogLevelInfo)),
//	)
//	if err != nil {
//	    log.Fatal(err)  // Configuration error
//	}
//	defer client.Close()
//
//	res, err := client.Get(ctx, "/api/v1/Site/Site:site1:")
//
// Returns a configured Client or an error if configuration validation fails.
func NewClient(host string, opts ...func(*Client)) (*Client, error) {
	client := &Client{
		Host:              host,
		httpClient:        &http.Client{},
		OperationTimeout:  DefaultOperationTimeout,
		UserAgent:         DefaultUserAgent,
		logger:            &NoOpLogger{},
		prettyPrintLogs:   DefaultPrettyPrintLogs,
		redactionPatterns: defaultRedactionPatterns,
	}

	for _, opt := range opts {
		opt(client)
	}

	if err := client.validateConfig(); err != nil {
		return nil, err
	}

	client.logger.Info(context.Background(), "CInP client created",
		"host", client.Host,
		"version", ProtocolVersion,
		"authenticated", client.authToken != "")

	return client, nil
}

// Close releases idle HTTP connections
//
// The client remains usable; later requests open new connections.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// SetAuth sets or clears the credential pair
//
// An empty token clears both values and subsequent requests are unauthenticated.
// Otherwise both values are stored and sent as Auth-Id / Auth-Token on every request.
//
// Example:
//
//	client.SetAuth("admin", token)  // log in
//	client.SetAuth("", "")          // log out
func (c *Client) SetAuth(id, token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setAuthLocked(id, token)
}

// setAuthLocked updates the credentials.
// PRECONDITION: caller holds c.mu.Lock() or owns c exclusively.
func (c *Client) setAuthLocked(id, token string) {
	if token == "" {
		c.authID = ""
		c.authToken = ""
		return
	}
	c.authID = id
	c.authToken = token
}

// HasCredentials returns true if a credential pair is set
//
// This method only indicates if credentials exist without exposing the token.
func (c *Client) HasCredentials() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authToken != ""
}

// AuthID returns the current auth identity, or "" when unauthenticated
func (c *Client) AuthID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authID
}

// credentials returns a snapshot of the credential pair
func (c *Client) credentials() (id, token string, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authID, c.authToken, c.authToken != ""
}

// SetServerErrorHandler registers (or, with nil, removes) the server error callback
//
// See WithServerErrorHandler.
func (c *Client) SetServerErrorHandler(handler func(message, trace string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.serverErrorHandler = handler
}

// reportServerError invokes the registered handler, or logs when none is registered
func (c *Client) reportServerError(ctx context.Context, message, trace string) {
	c.mu.RLock()
	handler := c.serverErrorHandler
	c.mu.RUnlock()

	if handler != nil {
		handler(message, trace)
		return
	}

	if message == "" {
		message = trace
	}
	c.logger.Error(ctx, "CInP server error",
		"host", c.Host,
		"message", message)
}

// validateConfig validates client configuration
//
// Validates:
//   - Host is a non-empty absolute http or https URL
//   - OperationTimeout is positive
func (c *Client) validateConfig() error {
	if strings.TrimSpace(c.Host) == "" {
		return fmt.Errorf("host cannot be empty")
	}

	u, err := url.Parse(c.Host)
	if err != nil {
		return fmt.Errorf("invalid host: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid host scheme: %q (must be http or https)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid host: %q has no host part", c.Host)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("invalid host: %q must not carry a query or fragment", c.Host)
	}

	// uris are absolute paths appended to the base
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	c.baseURL = u

	if c.OperationTimeout <= 0 {
		return fmt.Errorf("operation timeout must be positive, got: %v", c.OperationTimeout)
	}

	if u.Scheme == "http" {
		c.logger.Warn(context.Background(), "TLS disabled - connection is not encrypted",
			"host", c.Host,
			"security_risk", "Auth tokens transmitted in clear text")
	}

	return nil
}

// prepareJSONForLogging redacts sensitive data and formats JSON for logging
//
// Bodies over MaxJSONSizeForLogging or with more than MaxSensitiveFields sensitive
// keys are replaced by a placeholder rather than processed.
func (c *Client) prepareJSONForLogging(jsonStr string) string {
	if len(jsonStr) > MaxJSONSizeForLogging {
		return JSONTooLargeMessage
	}

	sensitiveCount := 0
	for _, field := range sensitiveFields {
		sensitiveCount += strings.Count(jsonStr, `"`+field+`"`)
	}
	if sensitiveCount > MaxSensitiveFields {
		c.logger.Warn(context.Background(), "Too many sensitive fields detected",
			"count", sensitiveCount,
			"max", MaxSensitiveFields)
		return JSONTooManySensitiveMsg
	}

	redacted := c.redactSensitiveData(jsonStr)

	if c.prettyPrintLogs {
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(redacted), "", "  "); err == nil {
			return buf.String()
		}
	}

	return redacted
}

// redactSensitiveData replaces the string value of every sensitive field with [REDACTED]
func (c *Client) redactSensitiveData(jsonStr string) string {
	result := jsonStr
	for i, pattern := range c.redactionPatterns {
		result = pattern.ReplaceAllString(result, `"`+sensitiveFields[i]+`":"[REDACTED]"`)
	}
	return result
}
