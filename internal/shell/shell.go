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
Package shell implements the nimbusql read-eval-print loop.

Interactive sessions get readline with history and tab completion;
piped input and -e/-f invocations run through a plain statement
scanner. Every statement, regardless of input mode, passes through the
destructive-statement guard before it reaches the server: in an
interactive session with safe mode on, DROP and TRUNCATE statements
require a typed confirmation.
*/
package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"nimbusql/internal/cli"
	"nimbusql/internal/config"
	"nimbusql/internal/cql"
	"nimbusql/internal/errors"
	"nimbusql/internal/guard"
	"nimbusql/internal/logging"
	"nimbusql/internal/protocol"
)

// Conn is the connection surface the shell drives. *client.Client
// implements it; tests substitute an in-memory fake.
type Conn interface {
	Execute(statement string) (*protocol.ResultMessage, error)
	Use(keyspace string) error
	Ping() error
	Keyspace() string
	CurrentHost() string
	SessionID() string
	Reconnect() error
	Close() error
}

// State holds the session options toggleable from within the shell.
type State struct {
	SafeMode bool
	Timing   bool
	Format   cli.OutputFormat
}

// Shell is one nimbusql session.
type Shell struct {
	cfg         *config.Config
	conn        Conn
	out         io.Writer
	interactive bool
	state       State
	rl          *readline.Instance
	logger      *logging.Logger
}

// New creates a shell over an established connection.
func New(cfg *config.Config, conn Conn, out io.Writer, interactive bool) *Shell {
	return &Shell{
		cfg:         cfg,
		conn:        conn,
		out:         out,
		interactive: interactive,
		state: State{
			SafeMode: cfg.SafeMode,
			Format:   cli.ParseOutputFormat(cfg.Format),
		},
		logger: logging.NewLogger("shell"),
	}
}

// Run starts the interactive loop. It returns when the user quits or
// stdin is closed.
func (s *Shell) Run() error {
	rl, err := s.newReadline()
	if err != nil {
		cli.PrintWarning("Advanced line editing unavailable: %v", err)
		return s.RunPiped(readline.Stdin)
	}
	s.rl = rl
	defer rl.Close()

	var buffer strings.Builder
	inMultiLine := false

	for {
		if inMultiLine {
			rl.SetPrompt(cli.Dimmed("   ... "))
		} else {
			rl.SetPrompt(s.prompt())
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if inMultiLine {
				buffer.Reset()
				inMultiLine = false
				continue
			}
			fmt.Fprintln(s.out, cli.Dimmed("(Use \\q to quit or Ctrl+D to exit)"))
			continue
		}
		if err != nil {
			// EOF or terminal failure, either way the session ends.
			fmt.Fprintln(s.out)
			return nil
		}

		input := strings.TrimSpace(line)
		if input == "" && !inMultiLine {
			continue
		}

		if inMultiLine {
			buffer.WriteString(" ")
			buffer.WriteString(input)
			input = strings.TrimSpace(buffer.String())
		}

		if !inMultiLine && strings.HasPrefix(input, "\\") {
			if exit := s.handleCommand(input); exit {
				return nil
			}
			continue
		}

		if needsTermination(input) && !endsStatement(input) {
			if !inMultiLine {
				buffer.Reset()
				buffer.WriteString(input)
			}
			inMultiLine = true
			continue
		}
		buffer.Reset()
		inMultiLine = false

		for _, stmt := range SplitStatements(input) {
			s.handleStatement(stmt)
		}
	}
}

// RunPiped consumes statements from r without readline. Used for
// piped stdin and file input.
func (s *Shell) RunPiped(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), protocol.MaxMessageSize)

	var buffer strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if buffer.Len() == 0 && strings.HasPrefix(trimmed, "\\") {
			if exit := s.handleCommand(trimmed); exit {
				return nil
			}
			continue
		}

		buffer.WriteString(line)
		buffer.WriteString("\n")

		full := buffer.String()
		if !endsStatement(full) {
			continue
		}
		buffer.Reset()

		for _, stmt := range SplitStatements(full) {
			s.handleStatement(stmt)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	if rest := strings.TrimSpace(buffer.String()); rest != "" {
		s.handleStatement(rest)
	}
	return nil
}

// RunString executes a semicolon-separated batch, as given to -e.
func (s *Shell) RunString(statements string) error {
	for _, stmt := range SplitStatements(statements) {
		s.handleStatement(stmt)
	}
	return nil
}

// handleStatement classifies, confirms, executes, and renders one
// statement.
func (s *Shell) handleStatement(stmt string) {
	stmt = strings.TrimSpace(stmt)
	if stmt == "" || stmt == ";" {
		return
	}

	tokens := cql.Tokenize(stmt)
	classification := guard.Classify(tokens)

	gate := guard.NewGate(guard.Options{
		Enabled:     s.state.SafeMode,
		Interactive: s.interactive,
		Input:       s.confirmReader(),
		Output:      s.out,
	})
	if !gate.Confirm(classification) {
		fmt.Fprintln(s.out, cli.Warning("Cancelled."))
		return
	}

	ctx := logging.NewStatementContext(stmt)

	if keyspace, ok := parseUse(tokens); ok {
		if err := s.conn.Use(keyspace); err != nil {
			ctx.LogError(s.logger, err.Error())
			s.printError(err)
			return
		}
		ctx.LogComplete(s.logger, "ok")
		fmt.Fprintf(s.out, "Now using keyspace %s\n", cli.Highlight(keyspace))
		return
	}

	result, err := s.conn.Execute(stmt)
	if err != nil {
		ctx.LogError(s.logger, err.Error())
		if errors.IsConnectionError(err) {
			s.printError(err)
			cli.PrintWarning("Connection to %s lost", s.conn.CurrentHost())
			return
		}
		s.printError(err)
		return
	}
	ctx.LogComplete(s.logger, "ok", "rows", result.RowCount)

	s.renderResult(result)
	if s.state.Timing {
		fmt.Fprintf(s.out, "%s\n", cli.Dimmed(fmt.Sprintf("(%.2f ms)", ctx.DurationMs())))
	}
}

// confirmReader returns the line reader the guard uses for its
// confirmation prompt. Interactive sessions read through readline so
// Ctrl-C during the prompt aborts cleanly; elsewhere the guard never
// prompts, so a closed reader suffices.
func (s *Shell) confirmReader() guard.LineReader {
	if s.rl != nil {
		return guard.LineReaderFunc(func() (string, error) {
			s.rl.SetPrompt("")
			defer s.rl.SetPrompt(s.prompt())
			line, err := s.rl.Readline()
			if err != nil {
				return "", err
			}
			return line, nil
		})
	}
	return guard.LineReaderFunc(func() (string, error) {
		return "", io.EOF
	})
}

// renderResult writes a query result in the session's output format.
func (s *Shell) renderResult(result *protocol.ResultMessage) {
	if len(result.Columns) > 0 {
		rs := &cli.ResultSet{Columns: result.Columns, Rows: result.Rows}
		fmt.Fprint(s.out, rs.Render(s.state.Format))
		fmt.Fprintf(s.out, "(%d rows)\n", result.RowCount)
		return
	}
	if result.Message != "" {
		fmt.Fprintln(s.out, result.Message)
		return
	}
	if result.Success {
		fmt.Fprintln(s.out, "OK")
	}
}

func (s *Shell) printError(err error) {
	fmt.Fprintln(s.out, cli.Error(errors.FormatError(err)))
}

// prompt builds the readline prompt from the current keyspace.
func (s *Shell) prompt() string {
	p := cli.Info("nimbusql")
	if ks := s.conn.Keyspace(); ks != "" {
		p += cli.Dimmed(":") + cli.Success(ks)
	}
	return p + cli.Dimmed(">") + " "
}

// needsTermination reports whether input must end with a semicolon
// before it is executed. Local commands never do.
func needsTermination(input string) bool {
	if input == "" {
		return false
	}
	return !strings.HasPrefix(input, "\\")
}

// endsStatement reports whether the accumulated input ends with a
// statement-terminating semicolon outside of quotes.
func endsStatement(input string) bool {
	var quote byte
	lastMeaningful := byte(0)

	for i := 0; i < len(input); i++ {
		ch := input[i]
		if quote != 0 {
			if ch == quote {
				if i+1 < len(input) && input[i+1] == quote {
					i++
					continue
				}
				quote = 0
			}
			continue
		}
		switch ch {
		case '\'', '"':
			quote = ch
			lastMeaningful = ch
		case ' ', '\t', '\n', '\r':
		default:
			lastMeaningful = ch
		}
	}

	return quote == 0 && lastMeaningful == ';'
}

// SplitStatements splits a batch into individual statements on
// semicolons, honoring single-quoted strings, double-quoted
// identifiers, and doubled-quote escapes. The trailing fragment after
// the last semicolon is included if non-empty.
func SplitStatements(input string) []string {
	var statements []string
	var current strings.Builder
	var quote byte

	for i := 0; i < len(input); i++ {
		ch := input[i]
		current.WriteByte(ch)

		if quote != 0 {
			if ch == quote {
				// Doubled quote is an escape, stay inside.
				if i+1 < len(input) && input[i+1] == quote {
					current.WriteByte(input[i+1])
					i++
					continue
				}
				quote = 0
			}
			continue
		}

		switch ch {
		case '\'', '"':
			quote = ch
		case ';':
			stmt := strings.TrimSpace(current.String())
			current.Reset()
			if stmt != "" && stmt != ";" {
				statements = append(statements, stmt)
			}
		}
	}

	if rest := strings.TrimSpace(current.String()); rest != "" {
		statements = append(statements, rest)
	}
	return statements
}

// parseUse recognizes a USE statement and extracts the keyspace name.
func parseUse(tokens []cql.Token) (string, bool) {
	if len(tokens) < 2 {
		return "", false
	}
	if tokens[0].Type != cql.TokenKeyword || tokens[0].Value != "USE" {
		return "", false
	}
	switch tokens[1].Type {
	case cql.TokenIdent, cql.TokenQuotedIdent:
		return tokens[1].Value, true
	}
	return "", false
}
