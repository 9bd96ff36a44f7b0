// SPDX-License-Identifier: AGPL-3.0-only

package validator

import "strings"

// Line is one input record: its raw text and its 1-based position in the input.
type Line struct {
	Number int
	Text   string
}

// NewLines numbers raw input lines starting from 1.
func NewLines(raw []string) []Line {
	lines := make([]Line, 0, len(raw))
	for i, text := range raw {
		lines = append(lines, Line{Number: i + 1, Text: text})
	}
	return lines
}

// trimmed returns the text used for pattern matching. Tabs are kept so that
// the invalid character check still sees them.
func (l Line) trimmed() string {
	return strings.TrimRight(l.Text, " \r\n")
}
