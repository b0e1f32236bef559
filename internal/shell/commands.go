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
	"context"
	"fmt"
	"strings"

	"nimbusql/internal/banner"
	"nimbusql/internal/cli"
	"nimbusql/internal/config"
	"nimbusql/internal/discovery"
)

// handleCommand processes a local backslash command. Returns true when
// the shell should exit.
func (s *Shell) handleCommand(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "\\q", "\\quit":
		fmt.Fprintln(s.out, cli.Info("Goodbye!"))
		return true

	case "\\h", "\\help":
		s.printHelp()

	case "\\clear":
		fmt.Fprint(s.out, "\033[2J\033[H")

	case "\\s", "\\status":
		s.printStatus()

	case "\\conninfo":
		fmt.Fprintf(s.out, "Connected to %s as session %s\n",
			cli.Highlight(s.conn.CurrentHost()), cli.Dimmed(s.conn.SessionID()))

	case "\\v", "\\version":
		banner.PrintVersion(s.out)

	case "\\safemode":
		s.commandSafeMode(args)

	case "\\format":
		s.commandFormat(args)

	case "\\timing":
		s.state.Timing = !s.state.Timing
		fmt.Fprintf(s.out, "Timing is %s\n", onOff(s.state.Timing))

	case "\\discover":
		s.commandDiscover()

	default:
		cli.ErrInvalidCommand(cmd).Print()
	}
	return false
}

// commandSafeMode shows or changes the destructive-statement guard for
// this session.
func (s *Shell) commandSafeMode(args []string) {
	if len(args) == 0 {
		s.state.SafeMode = !s.state.SafeMode
	} else {
		switch strings.ToLower(args[0]) {
		case "on":
			s.state.SafeMode = true
		case "off":
			s.state.SafeMode = false
		default:
			s.state.SafeMode = config.ParseBool(args[0])
		}
	}
	fmt.Fprintf(s.out, "Safe mode is %s\n", onOff(s.state.SafeMode))
}

func (s *Shell) commandFormat(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(s.out, "Output format is %s\n", cli.Highlight(string(s.state.Format)))
		return
	}
	s.state.Format = cli.ParseOutputFormat(args[0])
	fmt.Fprintf(s.out, "Output format set to %s\n", cli.Highlight(string(s.state.Format)))
}

// commandDiscover queries the local network for NimbusDB nodes.
func (s *Shell) commandDiscover() {
	fmt.Fprintln(s.out, cli.Dimmed("Searching for NimbusDB nodes..."))

	nodes, err := discovery.Discover(context.Background(), discovery.DefaultTimeout)
	if err != nil {
		cli.PrintError("Discovery failed: %v", err)
		return
	}
	if len(nodes) == 0 {
		fmt.Fprintln(s.out, "No nodes found.")
		return
	}

	rs := &cli.ResultSet{Columns: []string{"name", "address", "cluster", "version"}}
	for _, node := range nodes {
		rs.Rows = append(rs.Rows, []string{node.Name, node.Addr, node.ClusterName, node.Version})
	}
	fmt.Fprint(s.out, rs.Render(s.state.Format))
	fmt.Fprintf(s.out, "(%d nodes)\n", len(nodes))
}

func (s *Shell) printStatus() {
	fmt.Fprintln(s.out, cli.Separator(44))
	fmt.Fprintln(s.out, cli.KeyValue("Host", s.conn.CurrentHost(), 12))
	fmt.Fprintln(s.out, cli.KeyValue("Session", s.conn.SessionID(), 12))
	if ks := s.conn.Keyspace(); ks != "" {
		fmt.Fprintln(s.out, cli.KeyValue("Keyspace", ks, 12))
	}
	fmt.Fprintln(s.out, cli.KeyValue("Safe Mode", onOff(s.state.SafeMode), 12))
	fmt.Fprintln(s.out, cli.KeyValue("Format", string(s.state.Format), 12))
	fmt.Fprintln(s.out, cli.KeyValue("Timing", onOff(s.state.Timing), 12))
	if s.cfg.ConfigFile != "" {
		fmt.Fprintln(s.out, cli.KeyValue("RC File", s.cfg.ConfigFile, 12))
	}
	fmt.Fprintln(s.out, cli.Separator(44))
}

func (s *Shell) printHelp() {
	help := `Local commands:
  \q, \quit        Exit the shell
  \h, \help        Show this help
  \s, \status      Show session status
  \conninfo        Show connection information
  \v, \version     Show version information
  \clear           Clear the screen
  \safemode [on|off]
                   Toggle confirmation prompts for DROP and TRUNCATE
  \format [table|json|plain]
                   Show or set the output format
  \timing          Toggle statement timing display
  \discover        Find NimbusDB nodes on the local network

Statements end with a semicolon and may span multiple lines.`
	fmt.Fprintln(s.out, help)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
