// SPDX-License-Identifier: AGPL-3.0-only

package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Match(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		allowed  KindSet
		expected Match
		matched  bool
	}{
		{
			name:     "tab wins over everything",
			text:     "key:\tvalue",
			allowed:  allKinds,
			expected: Match{Kind: InvalidChar, Indent: Unmeasured},
			matched:  true,
		},
		{
			name:     "document separator",
			text:     "---",
			allowed:  allKinds,
			expected: Match{Kind: Comment, Indent: Unmeasured},
			matched:  true,
		},
		{
			name:     "mapping with value",
			text:     "  key: value",
			allowed:  allKinds,
			expected: Match{Kind: Mapping, Indent: 2, Remainder: "value"},
			matched:  true,
		},
		{
			name:     "mapping keeps extra spaces in the remainder",
			text:     "key:   nested: value",
			allowed:  allKinds,
			expected: Match{Kind: Mapping, Indent: 0, Remainder: "  nested: value"},
			matched:  true,
		},
		{
			name:     "mapping opening a block",
			text:     "    key:",
			allowed:  allKinds,
			expected: Match{Kind: Mapping, Indent: 4, Open: true},
			matched:  true,
		},
		{
			name:     "mapping followed by an escape",
			text:     `sample:\n-`,
			allowed:  allKinds,
			expected: Match{Kind: Mapping, Indent: 0, Remainder: `\n-`},
			matched:  true,
		},
		{
			name:     "sequence entry",
			text:     "  - item",
			allowed:  allKinds,
			expected: Match{Kind: Sequence, Indent: 4, Remainder: "item"},
			matched:  true,
		},
		{
			name:     "bare sequence entry",
			text:     "-",
			allowed:  allKinds,
			expected: Match{Kind: Sequence, Indent: 2},
			matched:  true,
		},
		{
			name:     "sequence not allowed falls through to nothing",
			text:     "  - item",
			allowed:  sequenceTransitions,
			expected: Match{},
			matched:  false,
		},
		{
			name:     "plain value",
			text:     "    item 1",
			allowed:  allKinds,
			expected: Match{Kind: Value, Indent: Unmeasured},
			matched:  true,
		},
		{
			name:     "value with dashes inside",
			text:     "2024-01-01",
			allowed:  allKinds,
			expected: Match{Kind: Value, Indent: Unmeasured},
			matched:  true,
		},
		{
			name:     "value with escaped trailing colon",
			text:     `ratio 1\:`,
			allowed:  allKinds,
			expected: Match{Kind: Value, Indent: Unmeasured},
			matched:  true,
		},
		{
			name:    "trailing colon is not a value",
			text:    "file:",
			allowed: NewKindSet(Value),
			matched: false,
		},
		{
			name:    "key without separator",
			text:    "key:value:",
			allowed: allKinds,
			matched: false,
		},
		{
			name:     "mapping filtered out",
			text:     "key: value",
			allowed:  NewKindSet(Sequence, Value),
			expected: Match{Kind: Value, Indent: Unmeasured},
			matched:  true,
		},
	}

	registry := DefaultRegistry()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, ok := registry.Match(tc.text, tc.allowed)
			require.Equal(t, tc.matched, ok)
			assert.Equal(t, tc.expected, m)
		})
	}
}

func TestMeasureIndent(t *testing.T) {
	tests := map[string]int{
		"sample: file":   0,
		"    item 1":     4,
		"  - entry":      2,
		"  -":            2,
		"  - \n":         2,
		"---":            Unmeasured,
		"":               Unmeasured,
		"   ":            Unmeasured,
		"  # comment":    Unmeasured,
		"\tkey: value":   Unmeasured,
		"key: value\r\n": 0,
	}

	for text, expected := range tests {
		assert.Equal(t, expected, MeasureIndent(text), "text: %q", text)
	}
}

func TestKindSet(t *testing.T) {
	s := NewKindSet(Mapping, Value)

	assert.True(t, s.Has(Mapping))
	assert.True(t, s.Has(Value))
	assert.False(t, s.Has(Sequence))
	assert.Equal(t, "[mapping value]", s.String())

	s2 := s.With(Comment)
	assert.True(t, s2.Has(Comment))
	assert.False(t, s.Has(Comment))

	assert.Equal(t, "[invalid-char comment mapping sequence value]", allKinds.String())
}
