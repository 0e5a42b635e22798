// Package term defines the RDF term and quad value types shared by every
// other package in this module: named nodes, blank nodes, literals,
// variables and the default graph, plus the Quad they compose into.
package term

import (
	"fmt"

	"github.com/cayleygraph/ramp/voc/rdf"
	"github.com/cayleygraph/ramp/voc/xsd"
)

// Kind tags the five RDF term variants.
type Kind byte

const (
	KindInvalid Kind = iota
	KindNamedNode
	KindBlankNode
	KindLiteral
	KindVariable
	KindDefaultGraph
)

func (k Kind) String() string {
	switch k {
	case KindNamedNode:
		return "NamedNode"
	case KindBlankNode:
		return "BlankNode"
	case KindLiteral:
		return "Literal"
	case KindVariable:
		return "Variable"
	case KindDefaultGraph:
		return "DefaultGraph"
	default:
		return "Invalid"
	}
}

// Term is an RDF atom: a named node, blank node, literal, variable, or
// the default graph marker.
type Term interface {
	fmt.Stringer
	// TermKind reports which of the five term variants this value is.
	TermKind() Kind
	// Equal reports structural equality: literals compare value,
	// datatype IRI and language; other kinds compare their id.
	Equal(other Term) bool
	// Hash is a deterministic 32-bit FNV-1a digest, suitable for use as
	// a map key alongside Equal.
	Hash() uint32
}

// NamedNode is an RDF IRI term.
type NamedNode string

func (n NamedNode) TermKind() Kind        { return KindNamedNode }
func (n NamedNode) String() string        { return string(n) }
func (n NamedNode) Equal(o Term) bool     { return equalSimple(n, o) }
func (n NamedNode) Hash() uint32          { return hashString(string(n)) }

// BlankNode is an RDF blank node, identified by an opaque label whose
// scope is the Dataset (or flatten call) it was produced within.
type BlankNode string

func (b BlankNode) TermKind() Kind    { return KindBlankNode }
func (b BlankNode) String() string    { return "_:" + string(b) }
func (b BlankNode) Equal(o Term) bool { return equalSimple(b, o) }
func (b BlankNode) Hash() uint32      { return hashString(string(b)) }

// Variable is a SPARQL-style variable term, used internally by the query
// generator and never present in a Dataset.
type Variable string

func (v Variable) TermKind() Kind    { return KindVariable }
func (v Variable) String() string    { return "?" + string(v) }
func (v Variable) Equal(o Term) bool { return equalSimple(v, o) }
func (v Variable) Hash() uint32      { return hashString(string(v)) }

// DefaultGraph is the marker term for triples outside any named graph.
type DefaultGraph struct{}

func (DefaultGraph) TermKind() Kind    { return KindDefaultGraph }
func (DefaultGraph) String() string    { return "" }
func (DefaultGraph) Equal(o Term) bool { _, ok := o.(DefaultGraph); return ok }
func (DefaultGraph) Hash() uint32      { return hashString("") }

// Literal is an RDF literal: a lexical value, a datatype IRI, and an
// optional language tag.
//
// Invariant: if Lang is non-empty, Datatype must be rdf:langString;
// otherwise Datatype defaults to xsd:string when empty.
// NewLiteral and NewLangLiteral enforce this; constructing a Literal
// struct literal directly bypasses the invariant and should be avoided
// outside this package.
type Literal struct {
	Value    string
	Datatype NamedNode
	Lang     string
}

// NewLiteral builds a plain or typed literal, defaulting Datatype to
// xsd:string when dt is empty.
func NewLiteral(value string, dt NamedNode) Literal {
	if dt == "" {
		dt = NamedNode(xsd.String)
	}
	return Literal{Value: value, Datatype: dt}
}

// NewLangLiteral builds a language-tagged literal (datatype forced to
// rdf:langString).
func NewLangLiteral(value, lang string) Literal {
	return Literal{Value: value, Datatype: NamedNode(rdf.LangString), Lang: lang}
}

func (l Literal) TermKind() Kind { return KindLiteral }

func (l Literal) String() string {
	s := `"` + l.Value + `"`
	if l.Lang != "" {
		return s + "@" + l.Lang
	}
	if l.Datatype != "" && l.Datatype != NamedNode(xsd.String) {
		return s + "^^<" + string(l.Datatype) + ">"
	}
	return s
}

func (l Literal) Equal(o Term) bool {
	ol, ok := o.(Literal)
	if !ok {
		return false
	}
	return l.Value == ol.Value && l.Datatype == ol.Datatype && l.Lang == ol.Lang
}

func (l Literal) Hash() uint32 {
	h := fnvOffset
	h = fnvWrite(h, l.Value)
	h = fnvWrite(h, "\x00")
	h = fnvWrite(h, string(l.Datatype))
	h = fnvWrite(h, "\x00")
	h = fnvWrite(h, l.Lang)
	return h
}

func equalSimple(a Term, b Term) bool {
	if b == nil {
		return false
	}
	if a.TermKind() != b.TermKind() {
		return false
	}
	return a.String() == b.String()
}

// IsResource reports whether t is a NamedNode or BlankNode, the two term
// kinds that may stand as a Quad subject alongside Variable.
func IsResource(t Term) bool {
	switch t.TermKind() {
	case KindNamedNode, KindBlankNode:
		return true
	default:
		return false
	}
}
