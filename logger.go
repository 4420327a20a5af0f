// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package cinp

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/go-hclog"
)

// MaxLogValueLength limits the length of a single logged value. Longer values are truncated.
const MaxLogValueLength = 1024

// Logger interface for pluggable logging support
//
// Implementations receive a message plus alternating key-value pairs.
// Three implementations ship with the package:
//   - NoOpLogger: discards everything (default)
//   - DefaultLogger: Go's standard log package with a level threshold
//   - HclogLogger: adapter for github.com/hashicorp/go-hclog
type Logger interface {
	Debug(ctx context.Context, msg string, keysAndValues ...any)
	Info(ctx context.Context, msg string, keysAndValues ...any)
	Warn(ctx context.Context, msg string, keysAndValues ...any)
	Error(ctx context.Context, msg string, keysAndValues ...any)
}

// LogLevel represents the severity threshold for logging
type LogLevel int

const (
	// LogLevelDebug enables all log levels
	LogLevelDebug LogLevel = iota

	// LogLevelInfo enables Info, Warn, and Error logs
	LogLevelInfo

	// LogLevelWarn enables Warn and Error logs
	LogLevelWarn

	// LogLevelError enables only Error logs
	LogLevelError

	// LogLevelNone disables all logging
	LogLevelNone
)

// String returns the string representation of a LogLevel
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelNone:
		return "NONE"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", l)
	}
}

// DefaultLogger writes through Go's standard log package
//
// Output format: [LEVEL] message key1=value1 key2=value2
type DefaultLogger struct {
	level LogLevel
}

// NewDefaultLogger creates a DefaultLogger with the specified log level
func NewDefaultLogger(level LogLevel) *DefaultLogger {
	return &DefaultLogger{level: level}
}

// Debug logs a debug message
func (l *DefaultLogger) Debug(_ context.Context, msg string, keysAndValues ...any) {
	l.log(LogLevelDebug, msg, keysAndValues...)
}

// Info logs an informational message
func (l *DefaultLogger) Info(_ context.Context, msg string, keysAndValues ...any) {
	l.log(LogLevelInfo, msg, keysAndValues...)
}

// Warn logs a warning message
func (l *DefaultLogger) Warn(_ context.Context, msg string, keysAndValues ...any) {
	l.log(LogLevelWarn, msg, keysAndValues...)
}

// Error logs an error message
func (l *DefaultLogger) Error(_ context.Context, msg string, keysAndValues ...any) {
	l.log(LogLevelError, msg, keysAndValues...)
}

// log formats and outputs one line. Keys and values are sanitized, the message is not:
// it always comes from this package.
func (l *DefaultLogger) log(level LogLevel, msg string, keysAndValues ...any) {
	if level < l.level {
		return
	}

	var builder strings.Builder
	builder.Grow(len(msg) + 10 + len(keysAndValues)*25)

	builder.WriteString("[")
	builder.WriteString(level.String())
	builder.WriteString("] ")
	builder.WriteString(msg)

	for i := 0; i < len(keysAndValues); i += 2 {
		builder.WriteString(" ")
		builder.WriteString(sanitizeLogValue(keysAndValues[i]))
		if i+1 < len(keysAndValues) {
			builder.WriteString("=")
			builder.WriteString(sanitizeLogValue(keysAndValues[i+1]))
		} else {
			builder.WriteString("=<MISSING>")
		}
	}

	log.Println(builder.String())
}

// sanitizeLogValue renders a log value on a single line
//
// Newlines, tabs and form feeds become spaces, other control characters and ESC become '.',
// zero-width characters are dropped, RTL override becomes a space, invalid UTF-8 becomes '.'.
// Values longer than MaxLogValueLength are truncated.
func sanitizeLogValue(val any) string {
	str := fmt.Sprintf("%v", val)

	if len(str) > MaxLogValueLength {
		str = str[:MaxLogValueLength] + "...[TRUNCATED]"
	}

	var builder strings.Builder
	builder.Grow(len(str))

	for i := 0; i < len(str); {
		r, size := utf8.DecodeRuneInString(str[i:])
		i += size

		if r == utf8.RuneError && size <= 1 {
			builder.WriteRune('.')
			continue
		}

		switch r {
		case '\n', '\r', '\t', 0x0C:
			builder.WriteRune(' ')
		case 0x200B, 0x200C, 0x200D, 0xFEFF:
			// zero-width, dropped
		case 0x202E:
			builder.WriteRune(' ')
		default:
			if r < 32 || r == 127 {
				builder.WriteRune('.')
			} else {
				builder.WriteRune(r)
			}
		}
	}

	return builder.String()
}

// HclogLogger adapts a go-hclog logger to the Logger interface
//
// Example:
//
//	logger := hclog.New(&hclog.LoggerOptions{Name: "cinp", Level: hclog.Debug})
//	client, _ := cinp.NewClient("http://contractor:8888",
//	    cinp.WithLogger(cinp.NewHclogLogger(logger)))
type HclogLogger struct {
	logger hclog.Logger
}

// NewHclogLogger wraps an hclog.Logger. A nil logger yields hclog's null logger.
func NewHclogLogger(logger hclog.Logger) *HclogLogger {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &HclogLogger{logger: logger}
}

// Debug logs a debug message
func (h *HclogLogger) Debug(_ context.Context, msg string, keysAndValues ...any) {
	h.logger.Debug(msg, keysAndValues...)
}

// Info logs an informational message
func (h *HclogLogger) Info(_ context.Context, msg string, keysAndValues ...any) {
	h.logger.Info(msg, keysAndValues...)
}

// Warn logs a warning message
func (h *HclogLogger) Warn(_ context.Context, msg string, keysAndValues ...any) {
	h.logger.Warn(msg, keysAndValues...)
}

// Error logs an error message
func (h *HclogLogger) Error(_ context.Context, msg string, keysAndValues ...any) {
	h.logger.Error(msg, keysAndValues...)
}

// NoOpLogger discards all log messages. It is the default logger.
type NoOpLogger struct{}

// Debug discards the log message
func (n *NoOpLogger) Debug(_ context.Context, _ string, _ ...any) {}

// Info discards the log message
func (n *NoOpLogger) Info(_ context.Context, _ string, _ ...any) {}

// Warn discards the log message
func (n *NoOpLogger) Warn(_ context.Context, _ string, _ ...any) {}

// Error discards the log message
func (n *NoOpLogger) Error(_ context.Context, _ string, _ ...any) {}
