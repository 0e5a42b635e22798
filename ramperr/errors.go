// Package ramperr defines the coded error model shared by the framer,
// flattener and query generator: every error carries a numeric code, a
// message, and an ordered shape stack for debugging.
package ramperr

import (
	"fmt"
	"strings"

	"github.com/cayleygraph/ramp/term"
)

// Code identifies the kind of failure.
type Code int

const (
	_ Code = iota

	// General.
	MissingShape

	// Framing / flattening: term matching.
	NonMatchingTermType
	NonMatchingLiteralDatatype
	NonMatchingLiteralLanguage
	NonMatchingTermValue

	// Framing / flattening: structural.
	ShapeMismatch
	NoPropertyMatches
	NoListHeadMatches
	MultipleListHeadMatches
	NoListTailMatches
	MultipleListTailMatches
	CompositeMapKey
	CyclicMatch
	MinCountNotMet
	MaxCountExceeded

	// Synthesis.
	CannotSynthesizeSubject
	CannotSynthesizeValue

	// Flatten-specific.
	FailedToMatchProperty
	CannotUseLiteralAsSubject
)

func (c Code) String() string {
	switch c {
	case MissingShape:
		return "MissingShape"
	case NonMatchingTermType:
		return "NonMatchingTermType"
	case NonMatchingLiteralDatatype:
		return "NonMatchingLiteralDatatype"
	case NonMatchingLiteralLanguage:
		return "NonMatchingLiteralLanguage"
	case NonMatchingTermValue:
		return "NonMatchingTermValue"
	case ShapeMismatch:
		return "ShapeMismatch"
	case NoPropertyMatches:
		return "NoPropertyMatches"
	case NoListHeadMatches:
		return "NoListHeadMatches"
	case MultipleListHeadMatches:
		return "MultipleListHeadMatches"
	case NoListTailMatches:
		return "NoListTailMatches"
	case MultipleListTailMatches:
		return "MultipleListTailMatches"
	case CompositeMapKey:
		return "CompositeMapKey"
	case CyclicMatch:
		return "CyclicMatch"
	case MinCountNotMet:
		return "MinCountNotMet"
	case MaxCountExceeded:
		return "MaxCountExceeded"
	case CannotSynthesizeSubject:
		return "CannotSynthesizeSubject"
	case CannotSynthesizeValue:
		return "CannotSynthesizeValue"
	case FailedToMatchProperty:
		return "FailedToMatchProperty"
	case CannotUseLiteralAsSubject:
		return "CannotUseLiteralAsSubject"
	default:
		return fmt.Sprintf("Code(%d)", int(c))
	}
}

// Frame is one entry of the shape stack: the shape being evaluated, the
// edge it was entered through (a property name string, or a list index
// int), and the RDF term under inspection, when meaningful.
type Frame struct {
	ShapeID string
	Edge    interface{} // string (property name) | int (list index) | nil
	Focus   term.Term
}

func (f Frame) String() string {
	switch e := f.Edge.(type) {
	case string:
		return fmt.Sprintf("%s.%s", f.ShapeID, e)
	case int:
		return fmt.Sprintf("%s[%d]", f.ShapeID, e)
	default:
		return f.ShapeID
	}
}

// Error is the coded error raised by frame, flatten and querygen.
type Error struct {
	Code    Code
	Message string
	Stack   []Frame
}

func New(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Push returns a copy of e with fr prepended to the shape stack, the way
// each traversal level annotates the error as it propagates back up:
// frames pushed innermost first leave the outermost frame first.
func (e *Error) Push(fr Frame) *Error {
	cp := *e
	cp.Stack = append([]Frame{fr}, e.Stack...)
	return &cp
}

// Error implements the error interface, formatting the message prefixed
// with RAMP<code>: and the shape stack.
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "RAMP%d: %s", int(e.Code), e.Message)
	for _, fr := range e.Stack {
		b.WriteString("\n  at ")
		b.WriteString(fr.String())
	}
	return b.String()
}

// As reports whether err is a *Error with the given code.
func As(err error, code Code) bool {
	re, ok := err.(*Error)
	return ok && re.Code == code
}
