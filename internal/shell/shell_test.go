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

package shell

import (
	"bytes"
	"strings"
	"testing"

	"nimbusql/internal/config"
	"nimbusql/internal/errors"
	"nimbusql/internal/protocol"
)

// fakeConn records executed statements and keyspace switches.
type fakeConn struct {
	executed []string
	keyspace string
	execErr  error
}

func (f *fakeConn) Execute(statement string) (*protocol.ResultMessage, error) {
	f.executed = append(f.executed, statement)
	if f.execErr != nil {
		return nil, f.execErr
	}
	return &protocol.ResultMessage{Success: true, Message: "OK"}, nil
}

func (f *fakeConn) Use(keyspace string) error {
	f.keyspace = keyspace
	return nil
}

func (f *fakeConn) Ping() error           { return nil }
func (f *fakeConn) Keyspace() string      { return f.keyspace }
func (f *fakeConn) CurrentHost() string   { return "localhost:9042" }
func (f *fakeConn) SessionID() string     { return "test-session" }
func (f *fakeConn) Reconnect() error      { return nil }
func (f *fakeConn) Close() error          { return nil }

func newTestShell(conn *fakeConn, interactive bool, safeMode bool) (*Shell, *bytes.Buffer) {
	cfg := config.Default()
	cfg.SafeMode = safeMode
	out := &bytes.Buffer{}
	return New(cfg, conn, out, interactive), out
}

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			"two statements",
			"SELECT 1; SELECT 2;",
			[]string{"SELECT 1;", "SELECT 2;"},
		},
		{
			"semicolon inside string literal",
			"INSERT INTO t (v) VALUES ('a;b'); SELECT 1;",
			[]string{"INSERT INTO t (v) VALUES ('a;b');", "SELECT 1;"},
		},
		{
			"semicolon inside quoted identifier",
			`DROP TABLE "weird;name";`,
			[]string{`DROP TABLE "weird;name";`},
		},
		{
			"doubled quote escape",
			"INSERT INTO t (v) VALUES ('it''s;fine'); SELECT 1;",
			[]string{"INSERT INTO t (v) VALUES ('it''s;fine');", "SELECT 1;"},
		},
		{
			"trailing fragment without semicolon",
			"SELECT 1; SELECT 2",
			[]string{"SELECT 1;", "SELECT 2"},
		},
		{
			"empty statements dropped",
			"; ;;SELECT 1;",
			[]string{"SELECT 1;"},
		},
		{
			"empty input",
			"   ",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitStatements(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitStatements(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Statement %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestEndsStatement(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"SELECT 1;", true},
		{"SELECT 1; ", true},
		{"SELECT 1", false},
		{"SELECT 1;\nSELECT 2", false},
		{"INSERT INTO t (v) VALUES ('a;", false},
		{"INSERT INTO t (v) VALUES ('a;');", true},
		{"", false},
	}
	for _, tt := range tests {
		if got := endsStatement(tt.input); got != tt.want {
			t.Errorf("endsStatement(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNeedsTermination(t *testing.T) {
	if needsTermination("\\safemode on") {
		t.Error("Local commands must not require a semicolon")
	}
	if !needsTermination("SELECT * FROM users") {
		t.Error("Statements must require a semicolon")
	}
	if needsTermination("") {
		t.Error("Empty input must not require a semicolon")
	}
}

func TestRunStringExecutesInOrder(t *testing.T) {
	conn := &fakeConn{}
	sh, _ := newTestShell(conn, false, false)

	if err := sh.RunString("SELECT 1; SELECT 2;"); err != nil {
		t.Fatalf("RunString failed: %v", err)
	}
	if len(conn.executed) != 2 {
		t.Fatalf("Expected 2 executed statements, got %d", len(conn.executed))
	}
	if conn.executed[0] != "SELECT 1;" || conn.executed[1] != "SELECT 2;" {
		t.Errorf("Expected statements in order, got %v", conn.executed)
	}
}

func TestDangerousStatementRunsUnpromptedWhenNotInteractive(t *testing.T) {
	// Safe mode on, but the session is not a terminal: the guard must
	// let the statement through without reading anything.
	conn := &fakeConn{}
	sh, out := newTestShell(conn, false, true)

	sh.handleStatement("DROP KEYSPACE production;")

	if len(conn.executed) != 1 {
		t.Fatalf("Expected statement to execute, got %v", conn.executed)
	}
	if strings.Contains(out.String(), "Proceed?") {
		t.Errorf("Expected no confirmation prompt in non-interactive mode, got:\n%s", out.String())
	}
}

func TestDangerousStatementCancelledOnPromptEOF(t *testing.T) {
	// Interactive with safe mode on but no terminal reader available:
	// the confirmation read fails, which counts as declining.
	conn := &fakeConn{}
	sh, out := newTestShell(conn, true, true)

	sh.handleStatement("DROP TABLE users;")

	if len(conn.executed) != 0 {
		t.Fatalf("Expected statement to be cancelled, but it executed: %v", conn.executed)
	}
	if !strings.Contains(out.String(), "Cancelled.") {
		t.Errorf("Expected cancellation notice, got:\n%s", out.String())
	}
}

func TestSafeStatementSkipsPromptWhenInteractive(t *testing.T) {
	conn := &fakeConn{}
	sh, out := newTestShell(conn, true, true)

	sh.handleStatement("SELECT * FROM users;")

	if len(conn.executed) != 1 {
		t.Fatalf("Expected SELECT to execute, got %v", conn.executed)
	}
	if strings.Contains(out.String(), "Cancelled") {
		t.Errorf("Expected no cancellation for safe statement, got:\n%s", out.String())
	}
}

func TestSafeModeOffSkipsPrompt(t *testing.T) {
	conn := &fakeConn{}
	sh, _ := newTestShell(conn, true, false)

	sh.handleStatement("TRUNCATE events;")

	if len(conn.executed) != 1 {
		t.Fatalf("Expected TRUNCATE to execute with safe mode off, got %v", conn.executed)
	}
}

func TestUseRoutedToConnection(t *testing.T) {
	conn := &fakeConn{}
	sh, out := newTestShell(conn, false, false)

	sh.handleStatement("USE analytics;")

	if conn.keyspace != "analytics" {
		t.Errorf("Expected keyspace switch to 'analytics', got '%s'", conn.keyspace)
	}
	if len(conn.executed) != 0 {
		t.Errorf("Expected USE to bypass Execute, got %v", conn.executed)
	}
	if !strings.Contains(out.String(), "analytics") {
		t.Errorf("Expected keyspace confirmation in output, got:\n%s", out.String())
	}
}

func TestServerErrorKeepsSessionAlive(t *testing.T) {
	conn := &fakeConn{execErr: errors.NewServerError(2200, "keyspace does not exist")}
	sh, out := newTestShell(conn, false, false)

	if err := sh.RunString("SELECT 1; SELECT 2;"); err != nil {
		t.Fatalf("RunString failed: %v", err)
	}
	if len(conn.executed) != 2 {
		t.Errorf("Expected both statements attempted despite errors, got %d", len(conn.executed))
	}
	if !strings.Contains(out.String(), "keyspace does not exist") {
		t.Errorf("Expected server error in output, got:\n%s", out.String())
	}
}

func TestRunPipedMultilineStatement(t *testing.T) {
	conn := &fakeConn{}
	sh, _ := newTestShell(conn, false, false)

	input := "CREATE TABLE users (\n  id uuid PRIMARY KEY,\n  name text\n);\nSELECT * FROM users;\n"
	if err := sh.RunPiped(strings.NewReader(input)); err != nil {
		t.Fatalf("RunPiped failed: %v", err)
	}

	if len(conn.executed) != 2 {
		t.Fatalf("Expected 2 statements, got %v", conn.executed)
	}
	if !strings.Contains(conn.executed[0], "PRIMARY KEY") {
		t.Errorf("Expected multi-line statement joined, got %q", conn.executed[0])
	}
}

func TestRunPipedLocalCommand(t *testing.T) {
	conn := &fakeConn{}
	sh, out := newTestShell(conn, false, true)

	input := "\\safemode off\nDROP KEYSPACE production;\n"
	if err := sh.RunPiped(strings.NewReader(input)); err != nil {
		t.Fatalf("RunPiped failed: %v", err)
	}

	if !strings.Contains(out.String(), "Safe mode is off") {
		t.Errorf("Expected safemode toggle output, got:\n%s", out.String())
	}
	if len(conn.executed) != 1 {
		t.Errorf("Expected DROP to execute, got %v", conn.executed)
	}
}

func TestRunPipedQuitStopsProcessing(t *testing.T) {
	conn := &fakeConn{}
	sh, _ := newTestShell(conn, false, false)

	input := "\\q\nSELECT 1;\n"
	if err := sh.RunPiped(strings.NewReader(input)); err != nil {
		t.Fatalf("RunPiped failed: %v", err)
	}
	if len(conn.executed) != 0 {
		t.Errorf("Expected no statements after \\q, got %v", conn.executed)
	}
}

func TestRunPipedTrailingStatementWithoutSemicolon(t *testing.T) {
	conn := &fakeConn{}
	sh, _ := newTestShell(conn, false, false)

	if err := sh.RunPiped(strings.NewReader("SELECT 1")); err != nil {
		t.Fatalf("RunPiped failed: %v", err)
	}
	if len(conn.executed) != 1 {
		t.Errorf("Expected trailing statement to run, got %v", conn.executed)
	}
}

func TestCommandSafeModeExplicit(t *testing.T) {
	conn := &fakeConn{}
	sh, out := newTestShell(conn, true, false)

	sh.handleCommand("\\safemode on")
	if !sh.state.SafeMode {
		t.Error("Expected safe mode on")
	}
	sh.handleCommand("\\safemode off")
	if sh.state.SafeMode {
		t.Error("Expected safe mode off")
	}
	sh.handleCommand("\\safemode")
	if !sh.state.SafeMode {
		t.Error("Expected bare \\safemode to toggle")
	}
	if !strings.Contains(out.String(), "Safe mode is on") {
		t.Errorf("Expected state echo, got:\n%s", out.String())
	}
}

func TestCommandQuit(t *testing.T) {
	conn := &fakeConn{}
	sh, _ := newTestShell(conn, true, false)

	if exit := sh.handleCommand("\\q"); !exit {
		t.Error("Expected \\q to request exit")
	}
	if exit := sh.handleCommand("\\timing"); exit {
		t.Error("Expected \\timing not to request exit")
	}
}

func TestCommandFormat(t *testing.T) {
	conn := &fakeConn{}
	sh, out := newTestShell(conn, true, false)

	sh.handleCommand("\\format json")
	if string(sh.state.Format) != "json" {
		t.Errorf("Expected format json, got %s", sh.state.Format)
	}
	out.Reset()
	sh.handleCommand("\\format")
	if !strings.Contains(out.String(), "json") {
		t.Errorf("Expected format echo, got:\n%s", out.String())
	}
}
