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

// Package cli provides terminal output helpers shared by the nimbusql
// shell: ANSI colors, status printers, CLI errors, output formats and
// a progress spinner.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// ANSI escape codes.
const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiDim    = "\033[2m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
)

var colorsEnabled = true

// SetColorsEnabled globally enables or disables ANSI colors. The shell
// disables them when stdout is not a terminal or NO_COLOR is set.
func SetColorsEnabled(enabled bool) {
	colorsEnabled = enabled
}

// ColorsEnabled reports whether ANSI colors are currently enabled.
func ColorsEnabled() bool {
	return colorsEnabled
}

func colorize(code, s string) string {
	if !colorsEnabled {
		return s
	}
	return code + s + ansiReset
}

// Info renders s in the informational style.
func Info(s string) string { return colorize(ansiCyan, s) }

// Success renders s in the success style.
func Success(s string) string { return colorize(ansiGreen, s) }

// Warning renders s in the warning style.
func Warning(s string) string { return colorize(ansiYellow, s) }

// Error renders s in the error style.
func Error(s string) string { return colorize(ansiRed, s) }

// Highlight renders s emphasized.
func Highlight(s string) string { return colorize(ansiBold, s) }

// Dimmed renders s de-emphasized.
func Dimmed(s string) string { return colorize(ansiDim, s) }

// PrintInfo prints an informational message to stdout.
func PrintInfo(format string, args ...interface{}) {
	fmt.Println(Info(fmt.Sprintf(format, args...)))
}

// PrintSuccess prints a success message to stdout.
func PrintSuccess(format string, args ...interface{}) {
	fmt.Println(Success(fmt.Sprintf(format, args...)))
}

// PrintWarning prints a warning message to stderr so that piped
// query output stays clean.
func PrintWarning(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, Warning(fmt.Sprintf(format, args...)))
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, Error(fmt.Sprintf(format, args...)))
}

// Separator returns a horizontal rule of the given width.
func Separator(width int) string {
	return Dimmed(strings.Repeat("-", width))
}

// KeyValue formats an aligned key/value line, with the key padded to
// keyWidth columns.
func KeyValue(key, value string, keyWidth int) string {
	return fmt.Sprintf("%s %s", Dimmed(fmt.Sprintf("%-*s", keyWidth, key+":")), value)
}
