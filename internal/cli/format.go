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
	"fmt"
	"strings"
)

// OutputFormat selects how query results are rendered.
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatPlain OutputFormat = "plain"
)

// ParseOutputFormat maps a user-supplied string to an OutputFormat.
// Unrecognized values fall back to table.
func ParseOutputFormat(s string) OutputFormat {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	case "plain", "text":
		return FormatPlain
	default:
		return FormatTable
	}
}

// ResultSet is a rendered-agnostic query result: column names plus
// rows of stringified values.
type ResultSet struct {
	Columns []string
	Rows    [][]string
}

// Render formats the result set in the given format.
func (rs *ResultSet) Render(format OutputFormat) string {
	switch format {
	case FormatJSON:
		return rs.renderJSON()
	case FormatPlain:
		return rs.renderPlain()
	default:
		return rs.renderTable()
	}
}

// renderTable draws an ASCII grid in the style of interactive SQL
// shells.
//
//	 name  | port
//	-------+------
//	 node1 | 9042
func (rs *ResultSet) renderTable() string {
	if len(rs.Columns) == 0 {
		return ""
	}

	widths := make([]int, len(rs.Columns))
	for i, col := range rs.Columns {
		widths[i] = len(col)
	}
	for _, row := range rs.Rows {
		for i, val := range row {
			if i < len(widths) && len(val) > widths[i] {
				widths[i] = len(val)
			}
		}
	}

	var sb strings.Builder

	writeRow := func(cells []string) {
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if i > 0 {
				sb.WriteString("|")
			}
			sb.WriteString(fmt.Sprintf(" %-*s ", w, cell))
		}
		sb.WriteString("\n")
	}

	writeRow(rs.Columns)
	for i, w := range widths {
		if i > 0 {
			sb.WriteString("+")
		}
		sb.WriteString(strings.Repeat("-", w+2))
	}
	sb.WriteString("\n")
	for _, row := range rs.Rows {
		writeRow(row)
	}

	return sb.String()
}

// renderJSON emits one JSON object per row keyed by column name.
func (rs *ResultSet) renderJSON() string {
	objs := make([]map[string]string, 0, len(rs.Rows))
	for _, row := range rs.Rows {
		obj := make(map[string]string, len(rs.Columns))
		for i, col := range rs.Columns {
			if i < len(row) {
				obj[col] = row[i]
			}
		}
		objs = append(objs, obj)
	}
	data, err := json.MarshalIndent(objs, "", "  ")
	if err != nil {
		return fmt.Sprintf("[error rendering json: %v]", err)
	}
	return string(data) + "\n"
}

// renderPlain emits tab-separated values without a header rule.
func (rs *ResultSet) renderPlain() string {
	var sb strings.Builder
	sb.WriteString(strings.Join(rs.Columns, "\t"))
	sb.WriteString("\n")
	for _, row := range rs.Rows {
		sb.WriteString(strings.Join(row, "\t"))
		sb.WriteString("\n")
	}
	return sb.String()
}
