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
Package cql contains the Lexer component for CQL tokenization.

Lexer Overview:
===============

The Lexer transforms one raw CQL statement into a stream of tokens.
The shell feeds these tokens to the dangerous-statement guard before a
statement is sent to the cluster, and uses them for statement
classification in general.

	Input: "DROP TABLE IF EXISTS users"

	Output Tokens:
	  1. {TokenKeyword, "DROP"}
	  2. {TokenKeyword, "TABLE"}
	  3. {TokenKeyword, "IF"}
	  4. {TokenKeyword, "EXISTS"}
	  5. {TokenIdent, "users"}
	  6. {TokenEOF, ""}

Keywords are recognized case-insensitively and normalized to upper case.
Plain identifiers keep their original spelling and may contain dots for
qualified names ("ks.users" lexes as one identifier). Double-quoted
identifiers preserve case and may contain arbitrary characters, with ""
escaping an embedded quote. Single-quoted string literals use '' as the
escape.

The lexer is total: it never fails. Bytes it does not recognize are
skipped, so downstream consumers always receive a well-formed (possibly
empty) token stream.
*/
package cql

import (
	"strings"
	"unicode"
)

// TokenType represents the type of a lexical token.
type TokenType int

// Token type constants.
const (
	TokenEOF         TokenType = iota // End of input
	TokenIdent                        // Plain identifier (table, keyspace, column)
	TokenQuotedIdent                  // Double-quoted identifier ("MyTable")
	TokenString                       // String literal ('hello')
	TokenNumber                       // Numeric literal (123, 3.14)
	TokenKeyword                      // CQL keyword (SELECT, DROP, etc.), upper-cased
	TokenComma                        // Comma (,)
	TokenLParen                       // Left parenthesis (()
	TokenRParen                       // Right parenthesis ())
	TokenEqual                        // Equals sign (=)
	TokenSemicolon                    // Statement terminator (;)
)

// Token represents a single lexical unit from the input.
type Token struct {
	Type  TokenType // The category of this token
	Value string    // The literal value from the input
}

// keywords is the set of words recognized as CQL keywords.
// Everything else that looks like a word lexes as an identifier.
var keywords = map[string]bool{
	// Statement-leading verbs
	"SELECT": true, "INSERT": true, "UPDATE": true, "DELETE": true,
	"CREATE": true, "DROP": true, "ALTER": true, "TRUNCATE": true,
	"USE": true, "GRANT": true, "REVOKE": true, "LIST": true,
	"BEGIN": true, "APPLY": true, "BATCH": true, "DESCRIBE": true,

	// Schema objects
	"KEYSPACE": true, "SCHEMA": true, "TABLE": true, "COLUMNFAMILY": true,
	"INDEX": true, "MATERIALIZED": true, "VIEW": true, "TYPE": true,
	"FUNCTION": true, "AGGREGATE": true, "USER": true, "ROLE": true,
	"SERVICE": true, "LEVEL": true, "TRIGGER": true,

	// Clauses and qualifiers
	"FROM": true, "WHERE": true, "AND": true, "OR": true, "NOT": true,
	"IF": true, "EXISTS": true, "IN": true, "INTO": true, "VALUES": true,
	"SET": true, "WITH": true, "USING": true, "ON": true, "TO": true,
	"OF": true, "BY": true, "ORDER": true, "LIMIT": true, "ASC": true,
	"DESC": true, "ALLOW": true, "FILTERING": true, "CONTAINS": true,
	"PRIMARY": true, "KEY": true, "STATIC": true, "TOKEN": true,
	"TTL": true, "TIMESTAMP": true, "COUNT": true, "AS": true,
	"PER": true, "PARTITION": true, "DISTINCT": true, "JSON": true,
	"NULL": true, "TRUE": true, "FALSE": true,

	// Types
	"ASCII": true, "BIGINT": true, "BLOB": true, "BOOLEAN": true,
	"COUNTER": true, "DATE": true, "DECIMAL": true, "DOUBLE": true,
	"FLOAT": true, "FROZEN": true, "INET": true, "INT": true,
	"MAP": true, "SMALLINT": true, "TEXT": true, "TIME": true,
	"TIMEUUID": true, "TINYINT": true, "TUPLE": true, "UUID": true,
	"VARCHAR": true, "VARINT": true,
}

// Lexer transforms an input string into a stream of tokens.
// Each call to NextToken() advances the position in the input.
type Lexer struct {
	input string // The CQL input string
	pos   int    // Current position in the input
}

// NewLexer creates a new Lexer for the given input string.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize runs the lexer over the whole input and returns every token
// up to (but not including) TokenEOF.
func Tokenize(input string) []Token {
	lx := NewLexer(input)
	var tokens []Token
	for {
		tok := lx.NextToken()
		if tok.Type == TokenEOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// NextToken advances the lexer and returns the next token.
// It skips whitespace, then identifies the next token based on
// the current character. Returns TokenEOF at end of input.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF}
	}

	ch := l.input[l.pos]

	// Word: identifier or keyword.
	// Identifiers can contain letters, digits, underscores, and dots
	// (qualified names like "ks.users" lex as a single identifier).
	if unicode.IsLetter(rune(ch)) || ch == '_' {
		start := l.pos
		for l.pos < len(l.input) && isWordChar(l.input[l.pos]) {
			l.pos++
		}

		lit := l.input[start:l.pos]
		upper := strings.ToUpper(lit)
		if keywords[upper] {
			return Token{Type: TokenKeyword, Value: upper}
		}
		return Token{Type: TokenIdent, Value: lit}
	}

	// Number: integers and decimals (123, 3.14).
	if unicode.IsDigit(rune(ch)) {
		start := l.pos
		for l.pos < len(l.input) && unicode.IsDigit(rune(l.input[l.pos])) {
			l.pos++
		}
		if l.pos+1 < len(l.input) && l.input[l.pos] == '.' && unicode.IsDigit(rune(l.input[l.pos+1])) {
			l.pos++
			for l.pos < len(l.input) && unicode.IsDigit(rune(l.input[l.pos])) {
				l.pos++
			}
		}
		return Token{Type: TokenNumber, Value: l.input[start:l.pos]}
	}

	// Double-quoted identifier: case-preserving, "" escapes a quote.
	if ch == '"' {
		value, ok := l.readQuoted('"')
		if !ok {
			// Unterminated quote: hand back what we have rather than fail.
			return Token{Type: TokenQuotedIdent, Value: value}
		}
		return Token{Type: TokenQuotedIdent, Value: value}
	}

	// String literal: single quotes, '' escapes a quote.
	if ch == '\'' {
		value, _ := l.readQuoted('\'')
		return Token{Type: TokenString, Value: value}
	}

	// Single-character tokens.
	l.pos++
	switch ch {
	case ',':
		return Token{Type: TokenComma, Value: ","}
	case '(':
		return Token{Type: TokenLParen, Value: "("}
	case ')':
		return Token{Type: TokenRParen, Value: ")"}
	case '=':
		return Token{Type: TokenEqual, Value: "="}
	case ';':
		return Token{Type: TokenSemicolon, Value: ";"}
	}

	// Unknown character: skip it and keep lexing. The guard requires a
	// total tokenizer, so malformed input degrades instead of failing.
	return l.NextToken()
}

// readQuoted consumes a quoted region starting at the current position.
// The opening quote must be at l.pos. A doubled quote character is an
// escaped quote. Returns the unescaped contents and whether the closing
// quote was found.
func (l *Lexer) readQuoted(quote byte) (string, bool) {
	l.pos++ // opening quote
	var sb strings.Builder
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == quote {
			// Doubled quote is an escape; single quote closes.
			if l.pos+1 < len(l.input) && l.input[l.pos+1] == quote {
				sb.WriteByte(quote)
				l.pos += 2
				continue
			}
			l.pos++
			return sb.String(), true
		}
		sb.WriteByte(ch)
		l.pos++
	}
	return sb.String(), false
}

// isWordChar reports whether ch can appear inside an identifier.
func isWordChar(ch byte) bool {
	return unicode.IsLetter(rune(ch)) || unicode.IsDigit(rune(ch)) ||
		ch == '_' || ch == '.'
}

// skipWhitespace advances the position past any whitespace characters.
func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(rune(l.input[l.pos])) {
		l.pos++
	}
}
