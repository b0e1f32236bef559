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

package guard

import (
	"fmt"
	"io"
	"strings"
)

// LineReader supplies one line of operator input for the confirmation
// prompt. The interactive shell backs this with its readline instance;
// tests back it with canned answers. A returned error (end of input,
// interrupt) is interpreted as a negative answer, never surfaced.
type LineReader interface {
	ReadLine() (string, error)
}

// LineReaderFunc adapts a plain function to the LineReader interface.
type LineReaderFunc func() (string, error)

// ReadLine calls f.
func (f LineReaderFunc) ReadLine() (string, error) { return f() }

// Options configures a Gate. All state the gate needs is passed in
// explicitly at construction; it holds no ambient or mutable shell
// state.
type Options struct {
	// Enabled is the safe-mode configuration bit, resolved once per
	// session from flags and the rc file.
	Enabled bool

	// Interactive is the session interactivity flag, computed once at
	// session start (true only when reading from an attached terminal).
	Interactive bool

	// Input reads the operator's answer. Only consulted when a prompt
	// is actually shown.
	Input LineReader

	// Output receives the prompt text. Only written when a prompt is
	// actually shown.
	Output io.Writer
}

// Gate decides whether a classified statement may proceed to execution.
// Each Confirm call is self-contained: nothing carries over between
// statements, and every input condition resolves to a definite
// proceed/abort decision. The gate has no error paths.
type Gate struct {
	opts Options
}

// NewGate creates a Gate with the given options.
func NewGate(opts Options) *Gate {
	return &Gate{opts: opts}
}

// Confirm reports whether the statement may be sent to the cluster.
//
// The prompt is shown if and only if safe mode is enabled, the session
// is interactive, and the classification is dangerous. In every other
// case Confirm returns true immediately with no terminal I/O: scripted
// sessions always proceed.
//
// The default answer is no. Only "y" or "yes" (case-insensitive)
// proceed; an empty line, any other text, end of input, or an interrupt
// during the read all abort.
func (g *Gate) Confirm(c Classification) bool {
	if !g.opts.Enabled || !g.opts.Interactive || !c.Dangerous() {
		return true
	}

	if c.Target != "" {
		fmt.Fprintf(g.opts.Output, "Warning: you are about to execute %s on %q.\n", c.Kind, c.Target)
	} else {
		fmt.Fprintf(g.opts.Output, "Warning: you are about to execute a %s statement.\n", c.Kind)
	}
	fmt.Fprint(g.opts.Output, "This operation cannot be undone. Proceed? (y/N) ")

	line, err := g.opts.Input.ReadLine()
	if err != nil {
		// Interrupt or end of input counts as "no".
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
