// SPDX-License-Identifier: AGPL-3.0-only

package validator

import (
	"strings"

	"github.com/grafana/regexp"
)

// LineKind identifies the shape a line was recognised as.
type LineKind int

// Kinds are declared in matching priority order.
const (
	InvalidChar LineKind = iota
	Comment
	Mapping
	Sequence
	Value
)

var kindNames = [...]string{
	InvalidChar: "invalid-char",
	Comment:     "comment",
	Mapping:     "mapping",
	Sequence:    "sequence",
	Value:       "value",
}

func (k LineKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// KindSet is a set of line kinds.
type KindSet uint8

func NewKindSet(kinds ...LineKind) KindSet {
	var s KindSet
	return s.With(kinds...)
}

// With returns a copy of s that also contains kinds.
func (s KindSet) With(kinds ...LineKind) KindSet {
	for _, k := range kinds {
		s |= 1 << uint(k)
	}
	return s
}

func (s KindSet) Has(k LineKind) bool {
	return s&(1<<uint(k)) != 0
}

func (s KindSet) String() string {
	names := make([]string, 0, len(kindNames))
	for k := range kindNames {
		if s.Has(LineKind(k)) {
			names = append(names, LineKind(k).String())
		}
	}
	return "[" + strings.Join(names, " ") + "]"
}

var (
	allKinds = NewKindSet(InvalidChar, Comment, Mapping, Sequence, Value)

	// Checked on every line whatever the current transition allows.
	alwaysChecked = NewKindSet(InvalidChar, Comment)

	mappingTransitions  = NewKindSet(Mapping, Sequence, Value)
	sequenceTransitions = NewKindSet(Mapping, Value)
)

// Unmeasured is the indent of a line whose leading structure doesn't match the indent pattern.
const Unmeasured = -1

// Match is the interpretation of a line (or of a remainder) by a pattern.
type Match struct {
	Kind      LineKind
	Indent    int
	Remainder string

	// Open is set on a mapping key with nothing following its colon.
	Open bool
}

// Pattern recognises one line shape. Match has no side effects.
type Pattern struct {
	Kind  LineKind
	Match func(text string) (Match, bool)
}

// Registry is an ordered list of patterns. Earlier patterns win.
type Registry []Pattern

var (
	invalidCharRegexp = regexp.MustCompile(`\t`)
	commentRegexp     = regexp.MustCompile(`---`)
	mappingRegexp     = regexp.MustCompile(`^( *)\w+:(?: (.*)|(\\.*))?$`)
	sequenceRegexp    = regexp.MustCompile(`^( *)-(?: (.*))?$`)

	dashPrefixRegexp     = regexp.MustCompile(`^ *-(?: |$)`)
	trailingColonRegexp  = regexp.MustCompile(`(?:^|[^\\]):$`)
	indentRegexp         = regexp.MustCompile(`^( *)(?:\w|-(?: |$))`)
	sequencePrefixLength = len("- ")
)

// DefaultRegistry returns the patterns of the supported grammar in priority order.
func DefaultRegistry() Registry {
	return Registry{
		{Kind: InvalidChar, Match: matchPresence(InvalidChar, invalidCharRegexp)},
		{Kind: Comment, Match: matchPresence(Comment, commentRegexp)},
		{Kind: Mapping, Match: matchMapping},
		{Kind: Sequence, Match: matchSequence},
		{Kind: Value, Match: matchValue},
	}
}

// Match returns the first pattern in priority order that is in allowed and matches text.
func (r Registry) Match(text string, allowed KindSet) (Match, bool) {
	for _, p := range r {
		if !allowed.Has(p.Kind) {
			continue
		}
		if m, ok := p.Match(text); ok {
			return m, true
		}
	}
	return Match{}, false
}

func matchPresence(kind LineKind, re *regexp.Regexp) func(string) (Match, bool) {
	return func(text string) (Match, bool) {
		if !re.MatchString(text) {
			return Match{}, false
		}
		return Match{Kind: kind, Indent: Unmeasured}, true
	}
}

func matchMapping(text string) (Match, bool) {
	idx := mappingRegexp.FindStringSubmatchIndex(text)
	if idx == nil {
		return Match{}, false
	}
	m := Match{Kind: Mapping, Indent: idx[3] - idx[2]}
	switch {
	case idx[4] >= 0:
		m.Remainder = text[idx[4]:idx[5]]
	case idx[6] >= 0:
		m.Remainder = text[idx[6]:idx[7]]
	default:
		m.Open = true
	}
	return m, true
}

func matchSequence(text string) (Match, bool) {
	sm := sequenceRegexp.FindStringSubmatch(text)
	if sm == nil {
		return Match{}, false
	}
	return Match{Kind: Sequence, Indent: len(sm[1]) + sequencePrefixLength, Remainder: sm[2]}, true
}

func matchValue(text string) (Match, bool) {
	if dashPrefixRegexp.MatchString(text) || trailingColonRegexp.MatchString(text) {
		return Match{}, false
	}
	return Match{Kind: Value, Indent: Unmeasured}, true
}

// MeasureIndent returns the number of leading spaces of text, or Unmeasured
// when text doesn't start with a word or a dash-and-space.
func MeasureIndent(text string) int {
	sm := indentRegexp.FindStringSubmatch(strings.TrimRight(text, " \r\n"))
	if sm == nil {
		return Unmeasured
	}
	return len(sm[1])
}
