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
Package guard implements the dangerous-statement guard that sits between
statement tokenization and statement execution.

The guard has three parts:

  - Classify: a pure function that decides whether a token stream is one
    of the fixed destructive statement forms (DROP <object>, TRUNCATE).
  - Target extraction: a best-effort attempt to name the object being
    destroyed, used only to make the confirmation prompt readable.
  - Gate: the interactive confirmation step. When safe mode is enabled
    and the session is attached to a terminal, a dangerous statement
    blocks on a yes/no prompt before it is sent to the cluster.

Classification matches the leading keywords of the statement only; it
never inspects the rest. DELETE and UPDATE are intentionally not
classified as dangerous. Scripted sessions (piped input, -f, -e) never
prompt and always proceed, so existing automation keeps working.
*/
package guard

import "nimbusql/internal/cql"

// OperationKind identifies one of the destructive statement forms the
// guard recognizes. The zero value OpNone means "not dangerous".
type OperationKind int

// Destructive operation kinds. This enumeration is closed: statements
// outside it, malformed input included, classify as not dangerous.
const (
	OpNone OperationKind = iota
	OpDropKeyspace
	OpDropTable
	OpDropIndex
	OpDropMaterializedView
	OpDropType
	OpDropFunction
	OpDropAggregate
	OpDropUser
	OpDropRole
	OpDropServiceLevel
	OpDropTrigger
	OpTruncate
)

// String returns the human-readable name of the operation, as shown in
// the confirmation prompt.
func (k OperationKind) String() string {
	switch k {
	case OpDropKeyspace:
		return "DROP KEYSPACE"
	case OpDropTable:
		return "DROP TABLE"
	case OpDropIndex:
		return "DROP INDEX"
	case OpDropMaterializedView:
		return "DROP MATERIALIZED VIEW"
	case OpDropType:
		return "DROP TYPE"
	case OpDropFunction:
		return "DROP FUNCTION"
	case OpDropAggregate:
		return "DROP AGGREGATE"
	case OpDropUser:
		return "DROP USER"
	case OpDropRole:
		return "DROP ROLE"
	case OpDropServiceLevel:
		return "DROP SERVICE LEVEL"
	case OpDropTrigger:
		return "DROP TRIGGER"
	case OpTruncate:
		return "TRUNCATE"
	default:
		return "NONE"
	}
}

// Classification is the result of classifying one statement.
// Target is the best-effort extracted object name; it may be empty even
// for a dangerous statement, in which case the prompt falls back to a
// generic message naming only the operation.
type Classification struct {
	Kind   OperationKind
	Target string
}

// Dangerous reports whether the statement matched a destructive form.
func (c Classification) Dangerous() bool {
	return c.Kind != OpNone
}

// pattern maps a leading keyword sequence to an operation kind.
type pattern struct {
	words []string
	kind  OperationKind
}

// patterns is the finite match table. Longer sequences come before
// shorter ones sharing a prefix, so "TRUNCATE TABLE t" resolves the
// two-keyword form and target extraction starts after "TABLE".
var patterns = []pattern{
	{[]string{"DROP", "MATERIALIZED", "VIEW"}, OpDropMaterializedView},
	{[]string{"DROP", "SERVICE", "LEVEL"}, OpDropServiceLevel},
	{[]string{"DROP", "KEYSPACE"}, OpDropKeyspace},
	{[]string{"DROP", "SCHEMA"}, OpDropKeyspace},
	{[]string{"DROP", "TABLE"}, OpDropTable},
	{[]string{"DROP", "COLUMNFAMILY"}, OpDropTable},
	{[]string{"DROP", "INDEX"}, OpDropIndex},
	{[]string{"DROP", "TYPE"}, OpDropType},
	{[]string{"DROP", "FUNCTION"}, OpDropFunction},
	{[]string{"DROP", "AGGREGATE"}, OpDropAggregate},
	{[]string{"DROP", "USER"}, OpDropUser},
	{[]string{"DROP", "ROLE"}, OpDropRole},
	{[]string{"DROP", "TRIGGER"}, OpDropTrigger},
	{[]string{"TRUNCATE", "TABLE"}, OpTruncate},
	{[]string{"TRUNCATE"}, OpTruncate},
}

// Classify inspects the leading tokens of a statement and reports
// whether it is one of the destructive forms. It is a pure function of
// the token stream: no I/O, no side effects, and it never fails. Any
// stream that does not begin with a known keyword sequence, including
// an empty one, classifies as not dangerous.
func Classify(tokens []cql.Token) Classification {
	for _, p := range patterns {
		if matchesLeading(tokens, p.words) {
			return Classification{
				Kind:   p.kind,
				Target: extractTarget(tokens[len(p.words):]),
			}
		}
	}
	return Classification{}
}

// matchesLeading reports whether the stream starts with the given
// keyword sequence. Only keyword tokens count; an identifier spelled
// like a keyword does not match.
func matchesLeading(tokens []cql.Token, words []string) bool {
	if len(tokens) < len(words) {
		return false
	}
	for i, w := range words {
		if tokens[i].Type != cql.TokenKeyword || tokens[i].Value != w {
			return false
		}
	}
	return true
}
