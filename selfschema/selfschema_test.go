package selfschema_test

import (
	"testing"

	"github.com/cayleygraph/ramp/flatten"
	"github.com/cayleygraph/ramp/frame"
	"github.com/cayleygraph/ramp/selfschema"
	"github.com/cayleygraph/ramp/term"
	"github.com/cayleygraph/ramp/value"
	"github.com/cayleygraph/ramp/voc/rdf"
	"github.com/cayleygraph/ramp/voc/ramp"
	"github.com/cayleygraph/ramp/voc/xsd"
	"github.com/stretchr/testify/require"
)

func TestSchemaValidates(t *testing.T) {
	s := selfschema.Build()
	require.NoError(t, s.Set.Validate())
}

// A literal shape description, encoded as RDF, frames into a record
// naming its own datatype — the bootstrap schema describing one of its
// own eight variants.
func TestFrameLiteralDescription(t *testing.T) {
	s := selfschema.Build()

	subj := term.BlankNode("lit1")
	ds := term.NewDatasetFromQuads([]term.Quad{
		{Subject: subj, Predicate: term.NamedNode(rdf.Type), Object: term.NamedNode(ramp.Literal)},
		{Subject: subj, Predicate: term.NamedNode(ramp.TermDatatype), Object: term.NamedNode(xsd.String)},
	})

	sols, err := frame.Frame(s.Set, s.Literal, ds, subj)
	require.NoError(t, err)
	require.Equal(t, 1, sols.Len())

	rec := sols.All()[0].Value
	require.Equal(t, value.KindRecord, rec.Kind)
	dt := rec.Record()["datatype"]
	require.Equal(t, value.KindTerm, dt.Kind)
	require.Equal(t, term.NamedNode(xsd.String), dt.Term())
}

// Framing the root union against a resource-shape description and
// flattening the resulting value reproduces the same triples.
func TestFrameAndFlattenResourceDescriptionRoundTrips(t *testing.T) {
	s := selfschema.Build()

	subj := term.BlankNode("res1")
	ds := term.NewDatasetFromQuads([]term.Quad{
		{Subject: subj, Predicate: term.NamedNode(rdf.Type), Object: term.NamedNode(ramp.Resource)},
	})

	sols, err := frame.Frame(s.Set, s.Root, ds, subj)
	require.NoError(t, err)
	require.Equal(t, 1, sols.Len())

	out, flatSubj, err := flatten.Flatten(s.Set, s.Resource, sols.All()[0].Value)
	require.NoError(t, err)
	require.NotNil(t, flatSubj)

	again, err := frame.Frame(s.Set, s.Resource, out, flatSubj)
	require.NoError(t, err)
	require.Equal(t, 1, again.Len())
	require.True(t, sols.All()[0].Value.Equal(again.All()[0].Value))
}
