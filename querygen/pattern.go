// Package querygen implements GenerateQuery: shape -> query pattern, an
// abstract CONSTRUCT template plus a WHERE pattern tree. Deliberately
// not a string of concrete SPARQL syntax: callers render Query into
// whatever query language/API they target.
package querygen

import (
	"github.com/cayleygraph/ramp/shape"
	"github.com/cayleygraph/ramp/term"
)

// PatternKind tags the WHERE pattern tree's node kinds.
type PatternKind int

const (
	PatternGroup PatternKind = iota
	PatternTriple
	PatternOptional
	PatternUnion
)

// PathTriple is a WHERE-clause triple whose predicate position may be
// an arbitrary property path, matching SPARQL 1.1's allowance of
// property paths inside triple patterns (unlike CONSTRUCT templates,
// which may only contain plain predicates).
type PathTriple struct {
	Subject term.Term
	Path    shape.PropertyPath
	Object  term.Term
}

// Pattern is one node of the WHERE pattern tree: a single triple, a
// conjunction (Group), a disjunction (Union, one arm per union shape
// variant), or an OPTIONAL wrapper (one arm, for optional shapes).
type Pattern struct {
	Kind   PatternKind
	Triple *PathTriple
	Parts  []Pattern
	Inner  *Pattern
}

func triple(t PathTriple) Pattern          { return Pattern{Kind: PatternTriple, Triple: &t} }
func group(parts ...Pattern) Pattern       { return Pattern{Kind: PatternGroup, Parts: parts} }
func optionalWrap(inner Pattern) Pattern   { return Pattern{Kind: PatternOptional, Inner: &inner} }
func unionOf(parts ...Pattern) Pattern     { return Pattern{Kind: PatternUnion, Parts: parts} }

func isEmptyPattern(p Pattern) bool {
	return p.Kind == PatternGroup && len(p.Parts) == 0
}

// ConstructTriple is one triple of the CONSTRUCT template: always a
// plain predicate, never a property path.
type ConstructTriple struct {
	Subject   term.Term
	Predicate term.NamedNode
	Object    term.Term
}

// Query is the generated abstract query: a CONSTRUCT template plus the
// WHERE pattern that binds its variables.
type Query struct {
	Construct []ConstructTriple
	Where     Pattern
}
