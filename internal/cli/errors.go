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

package cli

import (
	"fmt"
	"os"
)

// CLIError is a user-facing error with an optional suggestion line and
// an exit code for fatal paths.
type CLIError struct {
	Message    string
	Suggestion string
	Code       int
	Cause      error
}

// NewCLIError creates a CLIError with exit code 1.
func NewCLIError(format string, args ...interface{}) *CLIError {
	return &CLIError{
		Message: fmt.Sprintf(format, args...),
		Code:    1,
	}
}

// WithSuggestion attaches a hint shown below the error message.
func (e *CLIError) WithSuggestion(suggestion string) *CLIError {
	e.Suggestion = suggestion
	return e
}

// WithCause attaches an underlying error.
func (e *CLIError) WithCause(err error) *CLIError {
	e.Cause = err
	return e
}

// WithCode sets the process exit code used by Exit.
func (e *CLIError) WithCode(code int) *CLIError {
	e.Code = code
	return e
}

func (e *CLIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Cause
}

// Print writes the error and any suggestion to stderr.
func (e *CLIError) Print() {
	fmt.Fprintln(os.Stderr, Error("Error: "+e.Error()))
	if e.Suggestion != "" {
		fmt.Fprintln(os.Stderr, Dimmed("  Hint: "+e.Suggestion))
	}
}

// Exit prints the error and terminates the process with its code.
func (e *CLIError) Exit() {
	e.Print()
	os.Exit(e.Code)
}

// ErrMissingArgument reports a local command invoked without a
// required argument.
func ErrMissingArgument(name, usage string) *CLIError {
	return NewCLIError("missing argument: %s", name).
		WithSuggestion("Usage: " + usage)
}

// ErrInvalidCommand reports an unrecognized local command.
func ErrInvalidCommand(cmd string) *CLIError {
	return NewCLIError("unknown command: %s", cmd).
		WithSuggestion("Type \\h for a list of commands")
}

// ErrConnectionFailed reports a failed connection attempt.
func ErrConnectionFailed(addr string, err error) *CLIError {
	return NewCLIError("cannot connect to %s", addr).
		WithCause(err).
		WithSuggestion("Check that the server is running and reachable").
		WithCode(2)
}
