/*
 * Copyright (c) 2026 NimbusDB Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

/*
Package logging provides structured logging for the nimbusql shell.

Loggers are component-scoped and write key-value structured entries in
text or JSON form. The shell logs to stderr so diagnostic output never
mixes with query results on stdout; at the default WARN level an
interactive session stays quiet unless something goes wrong, and
--debug drops the level to DEBUG for statement tracing.

Usage:

	logger := logging.NewLogger("client")
	logger.Debug("Executing statement", "statement_id", id, "host", addr)
	logger.Warn("Connection lost", "host", addr, "error", err)
*/
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level represents the severity of a log message.
type Level int

const (
	// DEBUG level for statement tracing and wire-level detail.
	DEBUG Level = iota
	// INFO level for general operational information.
	INFO
	// WARN level for warning conditions.
	WARN
	// ERROR level for error conditions.
	ERROR
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a string into a Level.
func ParseLevel(s string) Level {
	switch s {
	case "DEBUG", "debug":
		return DEBUG
	case "INFO", "info":
		return INFO
	case "WARN", "warn", "WARNING", "warning":
		return WARN
	case "ERROR", "error":
		return ERROR
	default:
		return WARN
	}
}

// Entry represents a single log entry with all its metadata.
type Entry struct {
	Timestamp time.Time              `json:"timestamp"`
	Level     string                 `json:"level"`
	Component string                 `json:"component"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// Logger provides structured logging scoped to one shell component.
type Logger struct {
	component string
	mu        sync.Mutex
}

// Config holds logger configuration options.
type Config struct {
	Level    Level
	Output   io.Writer
	JSONMode bool
}

// DefaultConfig returns the default logger configuration. Output goes
// to stderr so stdout stays clean for query results.
func DefaultConfig() Config {
	return Config{
		Level:    WARN,
		Output:   os.Stderr,
		JSONMode: false,
	}
}

var (
	globalConfig = DefaultConfig()
	globalMu     sync.RWMutex
)

// SetGlobalLevel sets the global log level.
func SetGlobalLevel(level Level) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig.Level = level
}

// SetGlobalOutput sets the global log output.
func SetGlobalOutput(w io.Writer) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig.Output = w
}

// SetJSONMode enables or disables JSON output mode.
func SetJSONMode(enabled bool) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig.JSONMode = enabled
}

// NewLogger creates a new Logger for the specified component.
func NewLogger(component string) *Logger {
	return &Logger{component: component}
}

// log writes a log entry at the specified level.
func (l *Logger) log(level Level, msg string, args ...interface{}) {
	globalMu.RLock()
	minLevel := globalConfig.Level
	output := globalConfig.Output
	jsonMode := globalConfig.JSONMode
	globalMu.RUnlock()

	if level < minLevel {
		return
	}

	entry := Entry{
		Timestamp: time.Now().UTC(),
		Level:     level.String(),
		Component: l.component,
		Message:   msg,
	}

	if len(args) > 0 {
		entry.Fields = make(map[string]interface{})
		for i := 0; i < len(args)-1; i += 2 {
			key, ok := args[i].(string)
			if !ok {
				key = fmt.Sprintf("arg%d", i)
			}
			entry.Fields[key] = args[i+1]
		}
		if len(args)%2 != 0 {
			entry.Fields["extra"] = args[len(args)-1]
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if jsonMode {
		l.writeJSON(output, entry)
	} else {
		l.writeText(output, entry)
	}
}

func (l *Logger) writeJSON(w io.Writer, entry Entry) {
	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(w, "ERROR: failed to marshal log entry: %v\n", err)
		return
	}
	fmt.Fprintln(w, string(data))
}

// writeText writes the entry in human-readable text format:
// 2006-01-02T15:04:05.000Z [LEVEL] [component] message key=value ...
func (l *Logger) writeText(w io.Writer, entry Entry) {
	timestamp := entry.Timestamp.Format("2006-01-02T15:04:05.000Z")

	line := fmt.Sprintf("%s [%-5s] [%s] %s",
		timestamp, entry.Level, entry.Component, entry.Message)

	for k, v := range entry.Fields {
		line += fmt.Sprintf(" %s=%v", k, v)
	}

	fmt.Fprintln(w, line)
}

// Debug logs a message at DEBUG level.
func (l *Logger) Debug(msg string, args ...interface{}) {
	l.log(DEBUG, msg, args...)
}

// Info logs a message at INFO level.
func (l *Logger) Info(msg string, args ...interface{}) {
	l.log(INFO, msg, args...)
}

// Warn logs a message at WARN level.
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.log(WARN, msg, args...)
}

// Error logs a message at ERROR level.
func (l *Logger) Error(msg string, args ...interface{}) {
	l.log(ERROR, msg, args...)
}

// With returns a new logger with additional default fields.
func (l *Logger) With(args ...interface{}) *ContextLogger {
	fields := make(map[string]interface{})
	for i := 0; i < len(args)-1; i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprintf("arg%d", i)
		}
		fields[key] = args[i+1]
	}
	return &ContextLogger{
		logger: l,
		fields: fields,
	}
}

// ContextLogger is a logger with pre-set context fields.
type ContextLogger struct {
	logger *Logger
	fields map[string]interface{}
}

// Debug logs a message at DEBUG level with context fields.
func (c *ContextLogger) Debug(msg string, args ...interface{}) {
	c.logger.log(DEBUG, msg, c.mergeArgs(args)...)
}

// Info logs a message at INFO level with context fields.
func (c *ContextLogger) Info(msg string, args ...interface{}) {
	c.logger.log(INFO, msg, c.mergeArgs(args)...)
}

// Warn logs a message at WARN level with context fields.
func (c *ContextLogger) Warn(msg string, args ...interface{}) {
	c.logger.log(WARN, msg, c.mergeArgs(args)...)
}

// Error logs a message at ERROR level with context fields.
func (c *ContextLogger) Error(msg string, args ...interface{}) {
	c.logger.log(ERROR, msg, c.mergeArgs(args)...)
}

func (c *ContextLogger) mergeArgs(args []interface{}) []interface{} {
	result := make([]interface{}, 0, len(c.fields)*2+len(args))
	for k, v := range c.fields {
		result = append(result, k, v)
	}
	result = append(result, args...)
	return result
}

// StatementContext tracks one executed statement for debug tracing and
// the \timing display.
type StatementContext struct {
	ID        string
	StartTime time.Time
	Statement string
}

// NewStatementContext creates a context for one statement execution.
func NewStatementContext(statement string) *StatementContext {
	return &StatementContext{
		ID:        uuid.NewString(),
		StartTime: time.Now(),
		Statement: statement,
	}
}

// Duration returns the elapsed time since the statement started.
func (s *StatementContext) Duration() time.Duration {
	return time.Since(s.StartTime)
}

// DurationMs returns the elapsed time in milliseconds.
func (s *StatementContext) DurationMs() float64 {
	return float64(s.Duration().Microseconds()) / 1000.0
}

// LogComplete logs a completed statement at DEBUG level.
func (s *StatementContext) LogComplete(logger *Logger, status string, args ...interface{}) {
	baseArgs := []interface{}{
		"statement_id", s.ID,
		"status", status,
		"duration_ms", fmt.Sprintf("%.2f", s.DurationMs()),
	}
	baseArgs = append(baseArgs, args...)
	logger.Debug("Statement completed", baseArgs...)
}

// LogError logs a failed statement.
func (s *StatementContext) LogError(logger *Logger, errMsg string, args ...interface{}) {
	baseArgs := []interface{}{
		"statement_id", s.ID,
		"status", "error",
		"error", errMsg,
		"duration_ms", fmt.Sprintf("%.2f", s.DurationMs()),
	}
	baseArgs = append(baseArgs, args...)
	logger.Warn("Statement failed", baseArgs...)
}
