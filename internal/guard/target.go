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
	"unicode"

	"nimbusql/internal/cql"
)

// extractTarget attempts to name the object a destructive statement
// operates on. rest is the token stream after the matched keyword
// sequence. An optional IF EXISTS clause is skipped.
//
// Extraction is best-effort and display-only: when the name cannot be
// identified cleanly (missing identifier, quoted identifier with
// unprintable characters), it returns "" and the prompt falls back to a
// generic message. Extraction never affects classification.
func extractTarget(rest []cql.Token) string {
	if len(rest) >= 2 &&
		rest[0].Type == cql.TokenKeyword && rest[0].Value == "IF" &&
		rest[1].Type == cql.TokenKeyword && rest[1].Value == "EXISTS" {
		rest = rest[2:]
	}

	if len(rest) == 0 {
		return ""
	}

	switch rest[0].Type {
	case cql.TokenIdent:
		return rest[0].Value
	case cql.TokenQuotedIdent, cql.TokenString:
		// Quoted names can contain anything. Show them only when they
		// render sanely in a one-line prompt.
		if printable(rest[0].Value) {
			return rest[0].Value
		}
	}
	return ""
}

// printable reports whether s is non-empty and free of control
// characters, so it can be embedded in the prompt without mangling the
// terminal.
func printable(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}
