// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger that adds
// convenience constructors and context-aware helpers used throughout the
// vault server and client.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, Fatal, etc.) are available directly on *Logger.
// Application code should pass *Logger by pointer and obtain request-scoped
// loggers via FromContext or FromRequest.
//
// Nothing logged through this package may contain key material, master
// secrets, session tokens, or encrypted payloads.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// NewLogger constructs a *Logger for the given role label (e.g. "vault-server")
// writing JSON to os.Stdout at Debug level.
func NewLogger(role string) *Logger {
	return newLogger(role, os.Stdout, zerolog.DebugLevel)
}

// NewLoggerWithLevel is like [NewLogger] but sets the global level from a
// textual level name ("debug", "info", "warn", ...). Unknown or empty names
// fall back to Info.
func NewLoggerWithLevel(role, level string) *Logger {
	return newLogger(role, os.Stdout, parseLevel(level))
}

// NewClientLogger constructs a logger for the CLI client. Output goes to the
// file at path so that it never interleaves with interactive terminal output;
// when path is empty or cannot be opened, logs are discarded.
func NewClientLogger(role, path string) *Logger {
	var out io.Writer = io.Discard
	if path != "" {
		logFile, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err == nil {
			out = logFile
		}
	}

	return newLogger(role, out, zerolog.DebugLevel)
}

func newLogger(role string, out io.Writer, level zerolog.Level) *Logger {
	zerolog.SetGlobalLevel(level)
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	logger := zerolog.New(out).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

func parseLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return parsed
}

// Nop returns a *Logger that discards all log output.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// WithTraceID returns a child logger carrying the given trace id.
func (l *Logger) WithTraceID(traceID string) *Logger {
	child := l.GetChildLogger()
	child.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", traceID)
	})
	return child
}

// FromRequest extracts the logger attached to the request context by
// zerolog's WithContext.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext extracts the logger stored in ctx. If none was attached, the
// zerolog default (disabled) logger is returned, so the result is never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
