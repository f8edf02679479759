// Package logger provides structured logging for gitship.
package logger

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Logger provides structured logging interface.
type Logger interface {
	// Debug logs debug-level messages with optional key-value pairs.
	Debug(msg string, keysAndValues ...any)

	// Info logs info-level messages with optional key-value pairs.
	Info(msg string, keysAndValues ...any)

	// Error logs error-level messages with optional key-value pairs.
	Error(msg string, keysAndValues ...any)

	// With returns a new logger with additional key-value pairs.
	With(keysAndValues ...any) Logger
}

// Level represents the log level.
type Level string

const (
	// LevelDebug represents debug-level logging.
	LevelDebug Level = "DEBUG"

	// LevelInfo represents info-level logging.
	LevelInfo Level = "INFO"

	// LevelError represents error-level logging.
	LevelError Level = "ERROR"
)

// WriterLogger implements Logger writing plain key-value lines to a writer.
// The CLI points it at stderr so log lines never mix with report output on
// stdout. Info is gated on debug mode, Debug on trace mode; Error always
// writes.
type WriterLogger struct {
	out       io.Writer
	baseKVs   []any
	debugMode bool
	traceMode bool
}

// New creates a WriterLogger writing to the given writer.
func New(out io.Writer, debugMode, traceMode bool) *WriterLogger {
	return &WriterLogger{
		out:       out,
		debugMode: debugMode,
		traceMode: traceMode,
	}
}

// NewNop returns a logger that discards everything. Useful as a default in
// constructors that accept an optional logger.
func NewNop() *WriterLogger {
	return &WriterLogger{out: io.Discard}
}

// Debug logs debug-level messages.
func (l *WriterLogger) Debug(msg string, keysAndValues ...any) {
	if !l.traceMode {
		return
	}

	l.log(LevelDebug, msg, keysAndValues...)
}

// Info logs info-level messages.
func (l *WriterLogger) Info(msg string, keysAndValues ...any) {
	if !l.debugMode && !l.traceMode {
		return
	}

	l.log(LevelInfo, msg, keysAndValues...)
}

// Error logs error-level messages.
func (l *WriterLogger) Error(msg string, keysAndValues ...any) {
	l.log(LevelError, msg, keysAndValues...)
}

// With returns a new logger with additional base key-value pairs.
//
//nolint:ireturn // With is intended to return an interface for chaining
func (l *WriterLogger) With(keysAndValues ...any) Logger {
	newKVs := make([]any, len(l.baseKVs)+len(keysAndValues))
	copy(newKVs, l.baseKVs)
	copy(newKVs[len(l.baseKVs):], keysAndValues)

	return &WriterLogger{
		out:       l.out,
		baseKVs:   newKVs,
		debugMode: l.debugMode,
		traceMode: l.traceMode,
	}
}

func (l *WriterLogger) log(level Level, msg string, keysAndValues ...any) {
	timestamp := time.Now().UTC().Format("2006-01-02T15:04:05Z")

	var builder strings.Builder

	builder.WriteString(timestamp)
	builder.WriteString(" ")
	builder.WriteString(string(level))
	builder.WriteString(" ")
	builder.WriteString(msg)

	if len(l.baseKVs) > 0 {
		writeKeyValues(&builder, l.baseKVs)
	}

	if len(keysAndValues) > 0 {
		writeKeyValues(&builder, keysAndValues)
	}

	builder.WriteString("\n")

	if l.out != nil {
		_, _ = l.out.Write([]byte(builder.String()))
	}
}

// writeKeyValues formats key-value pairs and appends to builder.
func writeKeyValues(builder *strings.Builder, kvs []any) {
	for i := 0; i < len(kvs); i += 2 {
		if i+1 >= len(kvs) {
			// Odd number of arguments, skip the last one
			break
		}

		key := fmt.Sprintf("%v", kvs[i])
		value := fmt.Sprintf("%v", kvs[i+1])

		builder.WriteString(" ")
		builder.WriteString(key)
		builder.WriteString("=")

		if strings.ContainsAny(value, " \t\n\"") {
			builder.WriteString(fmt.Sprintf("%q", value))
		} else {
			builder.WriteString(value)
		}
	}
}

// Ensure WriterLogger implements Logger.
var _ Logger = (*WriterLogger)(nil)
