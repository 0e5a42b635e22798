package term

import "fmt"

// Quad is a single RDF statement, optionally scoped to a named graph:
// (subject, predicate, object, graph).
type Quad struct {
	Subject   Term
	Predicate Term
	Object    Term
	Graph     Term // nil or DefaultGraph{} means the default graph
}

// Direction names one of the four fields of a Quad, mirroring the
// teacher's quad.Direction enum (graph/quad packages consult it when
// indexing).
type Direction byte

const (
	Any Direction = iota
	Subject
	Predicate
	Object
	Graph
)

func (d Direction) String() string {
	switch d {
	case Subject:
		return "subject"
	case Predicate:
		return "predicate"
	case Object:
		return "object"
	case Graph:
		return "graph"
	default:
		return "any"
	}
}

// Get returns the term bound to the given direction of q.
func (q Quad) Get(d Direction) Term {
	switch d {
	case Subject:
		return q.Subject
	case Predicate:
		return q.Predicate
	case Object:
		return q.Object
	case Graph:
		return q.Graph
	default:
		panic("term: Any is not a valid direction for Get")
	}
}

// Validate checks a quad's domain restrictions:
//
//	subject   ∈ {named, blank, variable}
//	predicate ∈ {named, variable}
//	object    any term
//	graph     ∈ {default, named, blank, variable}
func (q Quad) Validate() error {
	if q.Subject == nil || q.Predicate == nil || q.Object == nil {
		return fmt.Errorf("term: incomplete quad: %s", q)
	}
	switch q.Subject.TermKind() {
	case KindNamedNode, KindBlankNode, KindVariable:
	default:
		return fmt.Errorf("term: invalid subject kind %v", q.Subject.TermKind())
	}
	switch q.Predicate.TermKind() {
	case KindNamedNode, KindVariable:
	default:
		return fmt.Errorf("term: invalid predicate kind %v", q.Predicate.TermKind())
	}
	if q.Graph != nil {
		switch q.Graph.TermKind() {
		case KindDefaultGraph, KindNamedNode, KindBlankNode, KindVariable:
		default:
			return fmt.Errorf("term: invalid graph kind %v", q.Graph.TermKind())
		}
	}
	return nil
}

// GraphOrDefault returns q.Graph, or DefaultGraph{} when it is nil, for
// comparisons, since a nil Graph field is equivalent to the default graph.
func (q Quad) GraphOrDefault() Term {
	if q.Graph == nil {
		return DefaultGraph{}
	}
	return q.Graph
}

func (q Quad) String() string {
	return fmt.Sprintf("%v %v %v %v .", q.Subject, q.Predicate, q.Object, q.GraphOrDefault())
}

// Equal reports whether two quads are structurally identical (all four
// terms equal, graph defaulted).
func (q Quad) Equal(o Quad) bool {
	return termsEqual(q.Subject, o.Subject) &&
		termsEqual(q.Predicate, o.Predicate) &&
		termsEqual(q.Object, o.Object) &&
		q.GraphOrDefault().Equal(o.GraphOrDefault())
}

func termsEqual(a, b Term) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}
