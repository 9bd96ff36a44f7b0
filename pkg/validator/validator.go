// SPDX-License-Identifier: AGPL-3.0-only

// Package validator checks the syntax of a restricted YAML-like format line by
// line, without building a document tree.
package validator

import (
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// ResultOK is the result of a validation that found no error.
const ResultOK = "File is valid"

// Result renders the outcome of Validate as text.
func Result(err error) string {
	if err == nil {
		return ResultOK
	}
	return err.Error()
}

// Check validates raw lines and returns the textual result.
func Check(lines []string) string {
	return New(log.NewNopLogger()).Check(lines)
}

// Validator runs the line state machine over each group of its input.
// A Validator holds no per-input state and may be reused.
type Validator struct {
	patterns Registry
	logger   log.Logger
}

func New(logger log.Logger) *Validator {
	return &Validator{
		patterns: DefaultRegistry(),
		logger:   logger,
	}
}

func (v *Validator) Check(lines []string) string {
	return Result(v.Validate(NewLines(lines)))
}

// Validate returns nil if every line is valid, or the first *Error found.
// Validation stops at the first error.
func (v *Validator) Validate(lines []Line) error {
	groups := GroupLines(lines)
	level.Debug(v.logger).Log("msg", "validating lines", "lines", len(lines), "groups", len(groups))

	for i, g := range groups {
		if err := v.validateGroup(g); err != nil {
			level.Debug(v.logger).Log("msg", "validation failed", "group", i+1, "line", err.Line.Number, "kind", err.Kind)
			return err
		}
	}
	return nil
}

// state is the bookkeeping of a single group.
type state struct {
	// scalarIndents holds the mapping column of each nesting step, innermost last.
	// Empty means no mapping column is established.
	scalarIndents      []int
	lastSequenceIndent int
	strictPosition     int
	allowed            KindSet

	// opened is set when the last mapping line introduced a nested block.
	opened bool
}

func newState() *state {
	return &state{
		lastSequenceIndent: Unmeasured,
		strictPosition:     Unmeasured,
		allowed:            allKinds,
	}
}

func (s *state) lastScalarIndent() int {
	if len(s.scalarIndents) == 0 {
		return Unmeasured
	}
	return s.scalarIndents[len(s.scalarIndents)-1]
}

// alignScalar checks col against the established nesting steps, entering or
// leaving steps as needed.
func (s *state) alignScalar(col int) bool {
	last := s.lastScalarIndent()
	switch {
	case col == last:
		return true
	case col > last:
		if !s.opened {
			return false
		}
		s.scalarIndents = append(s.scalarIndents, col)
		return true
	}
	for len(s.scalarIndents) > 0 && s.lastScalarIndent() > col {
		s.scalarIndents = s.scalarIndents[:len(s.scalarIndents)-1]
	}
	return s.lastScalarIndent() == col
}

// enclosingSteps returns a copy of the steps left of col.
func (s *state) enclosingSteps(col int) []int {
	steps := make([]int, 0, len(s.scalarIndents)+1)
	for _, step := range s.scalarIndents {
		if step < col {
			steps = append(steps, step)
		}
	}
	return steps
}

func (v *Validator) validateGroup(g Group) *Error {
	s := newState()
	for _, l := range g.Lines {
		if err := v.validateLine(s, l); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) validateLine(s *state, l Line) *Error {
	m, ok := v.patterns.Match(l.trimmed(), s.allowed|alwaysChecked)
	if !ok {
		return newError(ParsingError, l)
	}

	switch m.Kind {
	case InvalidChar:
		return newError(InvalidCharacter, l)

	case Comment:
		return nil

	case Mapping:
		s.strictPosition = m.Indent
		established := len(s.scalarIndents) > 0
		if !established {
			s.scalarIndents = append(s.scalarIndents, s.strictPosition)
		}
		if !v.validRemainder(s, mappingTransitions, m.Remainder) {
			return &Error{Kind: MappingSyntaxError, Line: l, Remainder: m.Remainder}
		}
		if established && !s.alignScalar(s.strictPosition) {
			return newError(IndentationError, l)
		}
		s.opened = m.Open
		s.allowed = mappingTransitions

	case Sequence:
		s.strictPosition = m.Indent
		established := s.lastSequenceIndent != Unmeasured
		if !established {
			s.lastSequenceIndent = s.strictPosition
		}
		// An entry may start its own mapping at a fresh column: only the steps
		// enclosing the entry are kept.
		outer := s.enclosingSteps(s.strictPosition)
		s.scalarIndents = nil
		if !v.validRemainder(s, sequenceTransitions, m.Remainder) {
			return &Error{Kind: SequenceSyntaxError, Line: l, Remainder: m.Remainder}
		}
		if established && s.lastSequenceIndent != s.strictPosition {
			return newError(IndentationError, l)
		}
		s.opened = len(s.scalarIndents) == 0
		s.scalarIndents = append(outer, s.scalarIndents...)
		s.allowed = sequenceTransitions

	case Value:
		return nil

	default:
		panic(&Error{Kind: InternalInconsistency, Line: l, Remainder: fmt.Sprintf("unhandled line kind %s", m.Kind)})
	}
	return nil
}

// validRemainder reports whether text is a valid continuation of a mapping or
// sequence line. A nested mapping moves the strict position by its own indent
// and its remainder is checked in turn.
func (v *Validator) validRemainder(s *state, allowed KindSet, text string) bool {
	if text == "" {
		return true
	}
	m, ok := v.patterns.Match(text, allowed)
	if !ok {
		return false
	}
	if m.Kind != Mapping {
		return true
	}
	if m.Open {
		return false
	}
	s.strictPosition += m.Indent
	if len(s.scalarIndents) == 0 {
		s.scalarIndents = append(s.scalarIndents, s.strictPosition)
	}
	return v.validRemainder(s, mappingTransitions, m.Remainder)
}
