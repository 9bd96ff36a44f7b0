// SPDX-License-Identifier: AGPL-3.0-only

package validator

// Group is a run of lines sharing one indentation scope.
type Group struct {
	Lines []Line
}

// GroupLines splits lines into groups. The baseline is the indent of the first
// measurable line; every line indented at or below the baseline starts a new
// group, every other line (including unmeasurable ones) continues the open one.
func GroupLines(lines []Line) []Group {
	baseline := firstIndent(lines)

	var (
		groups []Group
		open   []Line
	)
	for _, l := range lines {
		indent := MeasureIndent(l.Text)
		if indent == Unmeasured || indent > baseline {
			open = append(open, l)
			continue
		}
		if len(open) > 0 {
			groups = append(groups, Group{Lines: open})
		}
		open = []Line{l}
	}
	if len(open) > 0 {
		groups = append(groups, Group{Lines: open})
	}
	return groups
}

func firstIndent(lines []Line) int {
	for _, l := range lines {
		if indent := MeasureIndent(l.Text); indent != Unmeasured {
			return indent
		}
	}
	return Unmeasured
}
