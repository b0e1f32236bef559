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
Package errors provides structured error handling for the nimbusql
shell.

Errors carry a numeric code, a category, and optional detail and hint
text. Categories drive shell behavior: connection errors trigger a
reconnect attempt, syntax and server errors are printed and the loop
continues, usage errors abort startup.
*/
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier.
type ErrorCode int

const (
	// Syntax errors (1000-1999)
	ErrCodeSyntax          ErrorCode = 1000
	ErrCodeUnclosedString  ErrorCode = 1001
	ErrCodeInvalidCommand  ErrorCode = 1002

	// Connection errors (3000-3999)
	ErrCodeConnection        ErrorCode = 3000
	ErrCodeConnectionLost    ErrorCode = 3001
	ErrCodeTimeout           ErrorCode = 3002
	ErrCodeProtocolError     ErrorCode = 3003
	ErrCodeServerUnavailable ErrorCode = 3004

	// Server-reported errors (4000-4999)
	ErrCodeServer        ErrorCode = 4000
	ErrCodeServerRefused ErrorCode = 4001

	// Usage errors (6000-6999)
	ErrCodeUsage         ErrorCode = 6000
	ErrCodeInvalidValue  ErrorCode = 6001
	ErrCodeMissingConfig ErrorCode = 6002

	// Config errors (7000-7999)
	ErrCodeConfig       ErrorCode = 7000
	ErrCodeConfigParse  ErrorCode = 7001
	ErrCodeConfigAccess ErrorCode = 7002
)

// Category represents the error category.
type Category string

const (
	CategorySyntax     Category = "SYNTAX"
	CategoryConnection Category = "CONNECTION"
	CategoryServer     Category = "SERVER"
	CategoryUsage      Category = "USAGE"
	CategoryConfig     Category = "CONFIG"
)

// ShellError represents a structured error in the nimbusql shell.
type ShellError struct {
	Code     ErrorCode
	Category Category
	Message  string
	Detail   string
	Hint     string
	Cause    error
}

// Error implements the error interface.
func (e *ShellError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("ERROR %d (%s): %s - %s", e.Code, e.Category, e.Message, e.Detail)
	}
	return fmt.Sprintf("ERROR %d (%s): %s", e.Code, e.Category, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ShellError) Unwrap() error {
	return e.Cause
}

// UserMessage returns a user-friendly error message.
func (e *ShellError) UserMessage() string {
	msg := fmt.Sprintf("ERROR: %s", e.Message)
	if e.Detail != "" {
		msg += fmt.Sprintf(" (%s)", e.Detail)
	}
	if e.Hint != "" {
		msg += fmt.Sprintf("\nHINT: %s", e.Hint)
	}
	return msg
}

// WithDetail adds detail to the error.
func (e *ShellError) WithDetail(detail string) *ShellError {
	e.Detail = detail
	return e
}

// WithHint adds a hint to the error.
func (e *ShellError) WithHint(hint string) *ShellError {
	e.Hint = hint
	return e
}

// WithCause adds a cause to the error.
func (e *ShellError) WithCause(cause error) *ShellError {
	e.Cause = cause
	return e
}

// NewSyntaxError creates a new syntax error.
func NewSyntaxError(message string) *ShellError {
	return &ShellError{
		Code:     ErrCodeSyntax,
		Category: CategorySyntax,
		Message:  message,
	}
}

// NewConnectionError creates a new connection error.
func NewConnectionError(message string) *ShellError {
	return &ShellError{
		Code:     ErrCodeConnection,
		Category: CategoryConnection,
		Message:  message,
	}
}

// ConnectionLost creates an error for lost connections.
func ConnectionLost(reason string) *ShellError {
	return &ShellError{
		Code:     ErrCodeConnectionLost,
		Category: CategoryConnection,
		Message:  "connection lost",
		Detail:   reason,
		Hint:     "Check network connectivity and try reconnecting",
	}
}

// ProtocolError creates an error for wire protocol violations.
func ProtocolError(detail string) *ShellError {
	return &ShellError{
		Code:     ErrCodeProtocolError,
		Category: CategoryConnection,
		Message:  "protocol error",
		Detail:   detail,
	}
}

// ServerUnavailable creates an error when no contact point answers.
func ServerUnavailable(addrs []string) *ShellError {
	return &ShellError{
		Code:     ErrCodeServerUnavailable,
		Category: CategoryConnection,
		Message:  "no server available",
		Detail:   fmt.Sprintf("tried: %s", strings.Join(addrs, ", ")),
		Hint:     "Check that the server is running and the contact points are correct",
	}
}

// NewServerError wraps an error message reported by the server.
func NewServerError(code int, message string) *ShellError {
	return &ShellError{
		Code:     ErrCodeServer,
		Category: CategoryServer,
		Message:  message,
		Detail:   fmt.Sprintf("server code %d", code),
	}
}

// NewUsageError creates an error for invalid shell invocation.
func NewUsageError(message string) *ShellError {
	return &ShellError{
		Code:     ErrCodeUsage,
		Category: CategoryUsage,
		Message:  message,
	}
}

// NewConfigError creates an error for rc file problems.
func NewConfigError(message string) *ShellError {
	return &ShellError{
		Code:     ErrCodeConfig,
		Category: CategoryConfig,
		Message:  message,
	}
}

// IsConnectionError reports whether err indicates a broken or
// unreachable connection. It matches ShellError categories plus the
// raw network error strings that surface from the net package.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	var shellErr *ShellError
	if stderrors.As(err, &shellErr) {
		return shellErr.Category == CategoryConnection
	}

	msg := err.Error()
	for _, needle := range []string{
		"broken pipe",
		"connection reset",
		"connection refused",
		"use of closed network connection",
		"EOF",
		"i/o timeout",
	} {
		if strings.Contains(msg, needle) {
			return true
		}
	}
	return false
}

// IsSyntaxError checks if an error is a syntax error.
func IsSyntaxError(err error) bool {
	var shellErr *ShellError
	return stderrors.As(err, &shellErr) && shellErr.Category == CategorySyntax
}

// GetCode returns the error code if it's a ShellError, or 0 otherwise.
func GetCode(err error) ErrorCode {
	var shellErr *ShellError
	if stderrors.As(err, &shellErr) {
		return shellErr.Code
	}
	return 0
}

// FormatError formats an error for user display.
func FormatError(err error) string {
	var shellErr *ShellError
	if stderrors.As(err, &shellErr) {
		return shellErr.UserMessage()
	}
	return fmt.Sprintf("ERROR: %v", err)
}
