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
	"github.com/chzyer/readline"
)

// completions lists everything tab completion offers: local commands,
// statement-leading keywords, and common CQL clause keywords.
var completions = []string{
	// Local commands
	"\\q", "\\quit", "\\h", "\\help", "\\clear", "\\s", "\\status",
	"\\v", "\\version", "\\safemode", "\\format", "\\timing",
	"\\discover", "\\conninfo",
	// Statement-leading keywords
	"SELECT", "INSERT", "UPDATE", "DELETE", "BATCH",
	"CREATE", "ALTER", "DROP", "TRUNCATE", "USE",
	"GRANT", "REVOKE", "LIST",
	// Schema objects
	"KEYSPACE", "TABLE", "COLUMNFAMILY", "INDEX", "TYPE", "ROLE", "USER",
	"MATERIALIZED", "VIEW", "SERVICE", "LEVEL", "FUNCTION", "AGGREGATE",
	"TRIGGER", "SCHEMA",
	// Clause keywords
	"FROM", "WHERE", "AND", "OR", "NOT", "IN", "ORDER", "BY", "ASC", "DESC",
	"LIMIT", "ALLOW", "FILTERING", "VALUES", "INTO", "SET", "IF", "EXISTS",
	"PRIMARY", "KEY", "WITH", "USING", "TTL", "TIMESTAMP",
	// Data types
	"INT", "BIGINT", "SMALLINT", "TINYINT", "VARINT", "TEXT", "VARCHAR",
	"ASCII", "BOOLEAN", "FLOAT", "DOUBLE", "DECIMAL", "BLOB", "UUID",
	"TIMEUUID", "INET", "DATE", "TIME", "COUNTER", "LIST", "MAP",
	"FROZEN", "TUPLE",
}

// newCompleter builds the readline prefix completer.
func newCompleter() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(completions))
	for _, word := range completions {
		items = append(items, readline.PcItem(word))
	}
	return readline.NewPrefixCompleter(items...)
}

// newReadline creates the configured readline instance for the
// interactive loop.
func (s *Shell) newReadline() (*readline.Instance, error) {
	return readline.NewEx(&readline.Config{
		Prompt:          s.prompt(),
		HistoryFile:     s.cfg.HistoryFile,
		AutoComplete:    newCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
}

// filterInput disables Ctrl-Z inside readline.
func filterInput(r rune) (rune, bool) {
	if r == readline.CharCtrlZ {
		return r, false
	}
	return r, true
}
