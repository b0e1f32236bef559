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

// Package banner provides the interactive startup banner for the
// nimbusql shell. The ASCII art is embedded at compile time so the
// binary has no runtime file dependencies.
package banner

import (
	_ "embed"
	"fmt"
	"io"

	"nimbusql/internal/cli"
)

//go:embed banner.txt
var banner string

// Version information for the nimbusql shell.
const (
	Version   = "1.2.0"
	Copyright = "(c) 2026 NimbusDB Authors"
	License   = "Licensed under Apache 2.0"
)

// Print writes the startup banner to w. Shown only in interactive
// sessions; piped and -e invocations stay silent.
func Print(w io.Writer, serverVersion, host, keyspace string) {
	fmt.Fprintln(w, cli.Info(banner))
	fmt.Fprintf(w, "%s\n", cli.Highlight(fmt.Sprintf(":: nimbusql :: (v%s)", Version)))
	fmt.Fprintf(w, "Connected to %s", cli.Highlight(host))
	if serverVersion != "" {
		fmt.Fprintf(w, " (server %s)", serverVersion)
	}
	fmt.Fprintln(w)
	if keyspace != "" {
		fmt.Fprintf(w, "Using keyspace %s\n", cli.Highlight(keyspace))
	}
	fmt.Fprintln(w, cli.Dimmed("Type \\h for help, \\q to quit."))
	fmt.Fprintln(w)
}

// PrintVersion writes the bare version line used by --version.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "nimbusql %s\n", Version)
	fmt.Fprintln(w, Copyright)
	fmt.Fprintln(w, License)
}
