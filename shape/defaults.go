package shape

import (
	"github.com/cayleygraph/ramp/term"
	"github.com/cayleygraph/ramp/voc/rdf"
)

// Default list encoding: rdf:first, rdf:rest, rdf:nil.
var (
	rdfFirst        = term.NamedNode(rdf.First)
	rdfRest         = term.NamedNode(rdf.Rest)
	rdfNil   term.Term = term.NamedNode(rdf.Nil)
)
