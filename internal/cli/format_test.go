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

package cli

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input string
		want  OutputFormat
	}{
		{"table", FormatTable},
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"plain", FormatPlain},
		{"text", FormatPlain},
		{"", FormatTable},
		{"bogus", FormatTable},
	}

	for _, tt := range tests {
		if got := ParseOutputFormat(tt.input); got != tt.want {
			t.Errorf("ParseOutputFormat(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func sampleResult() *ResultSet {
	return &ResultSet{
		Columns: []string{"keyspace_name", "durable_writes"},
		Rows: [][]string{
			{"system", "true"},
			{"analytics", "false"},
		},
	}
}

func TestRenderTable(t *testing.T) {
	out := sampleResult().Render(FormatTable)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines (header, rule, 2 rows), got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "keyspace_name") {
		t.Errorf("Expected header with column name, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "-") || !strings.Contains(lines[1], "+") {
		t.Errorf("Expected header rule, got %q", lines[1])
	}
	// All rows padded to the same width.
	if len(lines[0]) != len(lines[2]) {
		t.Errorf("Expected aligned columns, header width %d vs row width %d", len(lines[0]), len(lines[2]))
	}
}

func TestRenderTableEmpty(t *testing.T) {
	rs := &ResultSet{}
	if out := rs.Render(FormatTable); out != "" {
		t.Errorf("Expected empty output for empty result set, got %q", out)
	}
}

func TestRenderJSON(t *testing.T) {
	out := sampleResult().Render(FormatJSON)

	var objs []map[string]string
	if err := json.Unmarshal([]byte(out), &objs); err != nil {
		t.Fatalf("Expected valid JSON, got error %v:\n%s", err, out)
	}
	if len(objs) != 2 {
		t.Fatalf("Expected 2 objects, got %d", len(objs))
	}
	if objs[0]["keyspace_name"] != "system" {
		t.Errorf("Expected first row keyspace 'system', got '%s'", objs[0]["keyspace_name"])
	}
}

func TestRenderPlain(t *testing.T) {
	out := sampleResult().Render(FormatPlain)
	if !strings.HasPrefix(out, "keyspace_name\tdurable_writes\n") {
		t.Errorf("Expected tab-separated header, got %q", out)
	}
	if !strings.Contains(out, "analytics\tfalse") {
		t.Errorf("Expected tab-separated row, got %q", out)
	}
}

func TestColorsDisabled(t *testing.T) {
	SetColorsEnabled(false)
	defer SetColorsEnabled(true)

	if got := Error("boom"); got != "boom" {
		t.Errorf("Expected plain text with colors disabled, got %q", got)
	}
	if got := Highlight("x"); strings.Contains(got, "\033") {
		t.Errorf("Expected no escape codes with colors disabled, got %q", got)
	}
}

func TestCLIError(t *testing.T) {
	err := ErrInvalidCommand("\\bogus")
	if !strings.Contains(err.Error(), "\\bogus") {
		t.Errorf("Expected command name in error, got %q", err.Error())
	}
	if err.Suggestion == "" {
		t.Error("Expected a suggestion on invalid command errors")
	}
	if err.Code != 1 {
		t.Errorf("Expected exit code 1, got %d", err.Code)
	}
}
