// Package ramp is a bidirectional mapping engine between RDF graphs and
// structured native values, driven by a declarative shape schema.
//
// A shape (see package shape) describes how a fragment of RDF
// corresponds to a record, set, list, map, optional or union of native
// values. Frame walks a Dataset against a shape and enumerates every
// value that satisfies it. Flatten is the inverse: it turns a native
// value back into RDF quads. GenerateQuery derives the abstract
// CONSTRUCT/WHERE query pattern a shape implies, for callers that want
// to fetch exactly the RDF a Frame call would need.
package ramp

import (
	"github.com/cayleygraph/ramp/flatten"
	"github.com/cayleygraph/ramp/frame"
	"github.com/cayleygraph/ramp/querygen"
	"github.com/cayleygraph/ramp/shape"
	"github.com/cayleygraph/ramp/term"
	"github.com/cayleygraph/ramp/value"
)

// Re-exported so callers need only import this package for everyday
// use; package shape remains the canonical home of the algebra.
type (
	Builder        = shape.Builder
	Set            = shape.Set
	Shape          = shape.Shape
	ShapeID        = shape.ShapeID
	ObjectProperty = shape.ObjectProperty
	Value          = value.Value
	Dataset        = term.Dataset
	Solutions      = frame.Solutions
	Solution       = frame.Solution
	Query          = querygen.Query
)

// NewBuilder returns a Builder for constructing a shape.Set.
func NewBuilder() *Builder { return shape.NewBuilder() }

// Frame walks rootID within shapes against ds, starting from focus (or
// every distinct subject in ds if focus is empty), and enumerates every
// native value that satisfies the shape.
func Frame(shapes *Set, rootID ShapeID, ds *Dataset, focus ...term.Term) (*Solutions, error) {
	return frame.Frame(shapes, rootID, ds, focus...)
}

// Flatten turns v into RDF quads matching rootID within shapes,
// returning the dataset produced and the subject term v was rooted at.
func Flatten(shapes *Set, rootID ShapeID, v Value) (*Dataset, term.Term, error) {
	return flatten.Flatten(shapes, rootID, v)
}

// GenerateQuery derives the abstract CONSTRUCT/WHERE query pattern that
// reconstructs every RDF fragment rootID's shape can match.
func GenerateQuery(shapes *Set, rootID ShapeID) (*Query, error) {
	return querygen.GenerateQuery(shapes, rootID)
}
