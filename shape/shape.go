// Package shape implements the shape algebra: the declarative
// description of how a fragment of RDF corresponds to a piece of
// structured data.
//
// Shapes are immutable values once built; ShapeID cross-references are
// resolved against a Set. Cyclic shape graphs are expected and
// supported (record fields may reference their own shape, directly or
// transitively) — consumers walk a Set by ID rather than by following
// Go pointers through a tree, so a cycle in the shape graph is just
// another ID lookup rather than an infinite structure.
package shape

import (
	"fmt"

	"github.com/cayleygraph/ramp/term"
)

// ShapeID is a stable identifier for a Shape: either a named IRI or a
// blank (synthetic) id.
type ShapeID string

// Variant tags the eight shape kinds.
type Variant int

const (
	VariantInvalid Variant = iota
	VariantResource
	VariantLiteral
	VariantRecord
	VariantUnion
	VariantSet
	VariantOptional
	VariantList
	VariantMap
)

func (v Variant) String() string {
	switch v {
	case VariantResource:
		return "resource"
	case VariantLiteral:
		return "literal"
	case VariantRecord:
		return "record"
	case VariantUnion:
		return "union"
	case VariantSet:
		return "set"
	case VariantOptional:
		return "optional"
	case VariantList:
		return "list"
	case VariantMap:
		return "map"
	default:
		return "invalid"
	}
}

// Part selects which facet of a matched term a ShapeReference extracts.
type Part int

const (
	PartWhole Part = iota
	PartValue
	PartDatatype
	PartLanguage
)

// Reference points to another shape and optionally selects a part of
// the term it matches. Used by map shapes to
// compute keys, and by record transient properties to synthesise values
// from sibling matches.
type Reference struct {
	Target ShapeID
	Part   Part
}

// ObjectProperty is a named edge out of a record shape: (name, path,
// valueShape, transient?).
type ObjectProperty struct {
	Name       string
	Path       PropertyPath
	ValueShape ShapeID
	Transient bool
	// SynthesizeFrom lists sibling references a transient property is
	// computed from; only meaningful when Transient is true.
	SynthesizeFrom []Reference
}

// Vocabulary is a bijection between string keys and named terms;
// resource shapes carrying one present matched terms to callers as
// enum-like strings.
type Vocabulary struct {
	keyToTerm map[string]term.NamedNode
	termToKey map[term.NamedNode]string
}

// NewVocabulary builds a Vocabulary from a key -> IRI mapping. Panics if
// the mapping is not a bijection (duplicate IRI bound to two keys),
// since that is a static authoring error in the shape, not a runtime one.
func NewVocabulary(pairs map[string]term.NamedNode) *Vocabulary {
	v := &Vocabulary{
		keyToTerm: make(map[string]term.NamedNode, len(pairs)),
		termToKey: make(map[term.NamedNode]string, len(pairs)),
	}
	for k, iri := range pairs {
		if other, ok := v.termToKey[iri]; ok {
			panic(fmt.Sprintf("shape: vocabulary is not a bijection: %q and %q both bind %s", other, k, iri))
		}
		v.keyToTerm[k] = iri
		v.termToKey[iri] = k
	}
	return v
}

// KeyFor returns the vocabulary key bound to iri, if any.
func (v *Vocabulary) KeyFor(iri term.NamedNode) (string, bool) {
	k, ok := v.termToKey[iri]
	return k, ok
}

// TermFor returns the IRI bound to key, if any.
func (v *Vocabulary) TermFor(key string) (term.NamedNode, bool) {
	t, ok := v.keyToTerm[key]
	return t, ok
}

// Shape is a tagged sum over the eight shape variants. Which
// fields are meaningful depends on Variant; see the per-variant
// constructors in builder.go for the supported combinations.
type Shape struct {
	ID      ShapeID
	Variant Variant

	// resource / literal
	FixedValue term.Term // nil unless a fixed value is required
	OnlyNamed  bool      // resource only
	KeepAsTerm bool
	Vocabulary *Vocabulary // resource only
	Datatype   term.NamedNode // literal only; empty means unconstrained
	Lang       string         // literal only; empty means unconstrained

	// record
	TypeProperties []ObjectProperty
	Properties     []ObjectProperty

	// union
	Variants []ShapeID

	// set / optional / list / map
	Item ShapeID

	// set
	MinCount int
	MaxCount int // 0 means unbounded

	// optional: the native value substituted for "no match". Stored as
	// interface{} (rather than a value.Value) to avoid an import cycle
	// between shape and value; frame/flatten compare it structurally.
	EmptyValue interface{}

	// list
	HeadPath PropertyPath
	TailPath PropertyPath
	Nil      term.Term

	// map
	Key   Reference
	Value *Reference // nil means the item shape's own match is the value
}

// IsRequired reports whether a shape variant always demands a match: an
// optional or a set with no minimum can recover from zero candidates on
// its own (substituting EmptyValue or an empty array); every other
// variant, including union (whose own variants separately decide
// whether a mismatch is fatal once there is at least one candidate to
// try them against), needs something to work with.
func (s *Shape) IsRequired() bool {
	switch s.Variant {
	case VariantOptional:
		return false
	case VariantSet:
		return s.MinCount > 0
	default:
		return true
	}
}
