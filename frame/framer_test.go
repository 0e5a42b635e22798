package frame_test

import (
	"testing"

	"github.com/cayleygraph/ramp/frame"
	"github.com/cayleygraph/ramp/shape"
	"github.com/cayleygraph/ramp/term"
	"github.com/cayleygraph/ramp/voc/rdf"
	"github.com/cayleygraph/ramp/voc/xsd"
	"github.com/stretchr/testify/require"
)

const (
	exName = term.NamedNode("http://example.org/name")
	exAge  = term.NamedNode("http://example.org/age")
	exNext = term.NamedNode("http://example.org/next")
)

func TestFrameRecordBasic(t *testing.T) {
	b := shape.NewBuilder()
	nameSh := b.Literal()
	ageSh := b.Literal(shape.WithDatatype(xsd.Integer))
	person := b.Record("person",
		nil,
		[]shape.ObjectProperty{
			shape.Property("name", exName, nameSh.ID),
			shape.Property("age", exAge, ageSh.ID),
		},
	)
	shapes := b.Build()
	require.NoError(t, shapes.Validate())

	alice := term.NamedNode("http://example.org/alice")
	ds := term.NewDatasetFromQuads([]term.Quad{
		{Subject: alice, Predicate: exName, Object: term.NewLiteral("Alice", "")},
		{Subject: alice, Predicate: exAge, Object: term.NewLiteral("30", xsd.Integer)},
	})

	sols, err := frame.Frame(shapes, person.ID, ds, alice)
	require.NoError(t, err)
	require.Equal(t, 1, sols.Len())

	rec := sols.All()[0].Value.Record()
	require.Equal(t, "Alice", rec["name"].String())
	require.Equal(t, float64(30), rec["age"].Number())
}

func TestFrameRecordMissingRequiredPropertyIsFatal(t *testing.T) {
	b := shape.NewBuilder()
	nameSh := b.Literal()
	person := b.Record("person", nil, []shape.ObjectProperty{
		shape.Property("name", exName, nameSh.ID),
	})
	shapes := b.Build()

	alice := term.NamedNode("http://example.org/alice")
	ds := term.NewDatasetFromQuads(nil)

	_, err := frame.Frame(shapes, person.ID, ds, alice)
	require.Error(t, err)
}

func TestFrameRecordOptionalPropertyWithNoCandidatesSubstitutesEmptyValue(t *testing.T) {
	b := shape.NewBuilder()
	nameSh := b.Literal()
	nicknameSh := b.Literal()
	nickname := b.Optional("", nicknameSh.ID, nil)
	person := b.Record("person", nil, []shape.ObjectProperty{
		shape.Property("name", exName, nameSh.ID),
		shape.Property("nickname", exNext, nickname.ID),
	})
	shapes := b.Build()

	alice := term.NamedNode("http://example.org/alice")
	ds := term.NewDatasetFromQuads([]term.Quad{
		{Subject: alice, Predicate: exName, Object: term.NewLiteral("Alice", "")},
	})

	sols, err := frame.Frame(shapes, person.ID, ds, alice)
	require.NoError(t, err)
	require.Equal(t, 1, sols.Len())

	rec := sols.All()[0].Value.Record()
	require.Equal(t, "Alice", rec["name"].String())
	require.True(t, rec["nickname"].IsNull())
}

func TestFrameRecordMinZeroSetPropertyWithNoCandidatesYieldsEmptyArray(t *testing.T) {
	b := shape.NewBuilder()
	nameSh := b.Literal()
	tagSh := b.Literal()
	tags := b.Set("", tagSh.ID) // MinCount defaults to 0
	person := b.Record("person", nil, []shape.ObjectProperty{
		shape.Property("name", exName, nameSh.ID),
		shape.Property("tags", exNext, tags.ID),
	})
	shapes := b.Build()

	alice := term.NamedNode("http://example.org/alice")
	ds := term.NewDatasetFromQuads([]term.Quad{
		{Subject: alice, Predicate: exName, Object: term.NewLiteral("Alice", "")},
	})

	sols, err := frame.Frame(shapes, person.ID, ds, alice)
	require.NoError(t, err)
	require.Equal(t, 1, sols.Len())

	rec := sols.All()[0].Value.Record()
	require.Empty(t, rec["tags"].Array())
}

func TestFrameOptionalSubstitutesEmptyValue(t *testing.T) {
	b := shape.NewBuilder()
	nicknameSh := b.Literal()
	opt := b.Optional("opt", nicknameSh.ID, nil)
	shapes := b.Build()

	alice := term.NamedNode("http://example.org/alice")
	ds := term.NewDatasetFromQuads(nil)

	sols, err := frame.Frame(shapes, opt.ID, ds, alice)
	require.NoError(t, err)
	require.Equal(t, 1, sols.Len())
	require.True(t, sols.All()[0].Value.IsNull())
}

func TestFrameSetCollectsAllMatches(t *testing.T) {
	b := shape.NewBuilder()
	tagSh := b.Literal()
	set := b.Set("tags", tagSh.ID)
	shapes := b.Build()

	red := term.NewLiteral("red", "")
	blue := term.NewLiteral("blue", "")

	sols, err := frame.Frame(shapes, set.ID, term.NewDataset(), red, blue)
	require.NoError(t, err)
	require.Equal(t, 1, sols.Len())
	require.Len(t, sols.All()[0].Value.Array(), 2)
}

func TestFrameListWalksRDFList(t *testing.T) {
	b := shape.NewBuilder()
	itemSh := b.Literal()
	list := b.List("list", itemSh.ID)
	shapes := b.Build()

	first := term.NamedNode(rdf.First)
	rest := term.NamedNode(rdf.Rest)
	nilNode := term.NamedNode(rdf.Nil)
	n0 := term.BlankNode("n0")
	n1 := term.BlankNode("n1")
	ds := term.NewDatasetFromQuads([]term.Quad{
		{Subject: n0, Predicate: first, Object: term.NewLiteral("a", "")},
		{Subject: n0, Predicate: rest, Object: n1},
		{Subject: n1, Predicate: first, Object: term.NewLiteral("b", "")},
		{Subject: n1, Predicate: rest, Object: nilNode},
	})

	sols, err := frame.Frame(shapes, list.ID, ds, n0)
	require.NoError(t, err)
	require.Equal(t, 1, sols.Len())
	items := sols.All()[0].Value.Array()
	require.Len(t, items, 2)
	require.Equal(t, "a", items[0].String())
	require.Equal(t, "b", items[1].String())
}
