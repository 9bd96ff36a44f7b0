// SPDX-License-Identifier: AGPL-3.0-only

package validator

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a validation failure.
type ErrorKind int

const (
	InvalidCharacter ErrorKind = iota
	MappingSyntaxError
	SequenceSyntaxError
	IndentationError
	ParsingError

	// InternalInconsistency is a matched pattern without a handling branch.
	// It is raised as a panic and never reported as a validation result.
	InternalInconsistency
)

var errorKindNames = [...]string{
	InvalidCharacter:      "invalid character",
	MappingSyntaxError:    "mapping error",
	SequenceSyntaxError:   "sequence error",
	IndentationError:      "indentation error",
	ParsingError:          "parsing error",
	InternalInconsistency: "internal inconsistency",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(errorKindNames) {
		return fmt.Sprintf("unknown error kind %d", int(k))
	}
	return errorKindNames[k]
}

// Error is the first failure found by the Validator.
type Error struct {
	Kind ErrorKind
	Line Line

	// Remainder is the inline text rejected by a mapping or sequence error.
	Remainder string
}

func newError(kind ErrorKind, line Line) *Error {
	return &Error{Kind: kind, Line: line}
}

func (e *Error) Error() string {
	text := e.Line.trimmed()
	switch e.Kind {
	case InvalidCharacter:
		return fmt.Sprintf("not allowed %q character in line %d", "\t", e.Line.Number)
	case MappingSyntaxError, SequenceSyntaxError:
		return fmt.Sprintf("%s: %q in line %d: %s", e.Kind, e.Remainder, e.Line.Number, text)
	case InternalInconsistency:
		return fmt.Sprintf("%s in line %d: %s", e.Kind, e.Line.Number, e.Remainder)
	default:
		return fmt.Sprintf("%s in line %d: %s", e.Kind, e.Line.Number, text)
	}
}

// KindOf returns the kind of a validation error, and false when err isn't one.
func KindOf(err error) (ErrorKind, bool) {
	var verr *Error
	if !errors.As(err, &verr) {
		return 0, false
	}
	return verr.Kind, true
}
