package flatten_test

import (
	"testing"

	"github.com/cayleygraph/ramp/flatten"
	"github.com/cayleygraph/ramp/frame"
	"github.com/cayleygraph/ramp/ramperr"
	"github.com/cayleygraph/ramp/shape"
	"github.com/cayleygraph/ramp/term"
	"github.com/cayleygraph/ramp/value"
	"github.com/cayleygraph/ramp/voc/xsd"
	"github.com/stretchr/testify/require"
)

var (
	exName = term.NamedNode("http://example.org/name")
	exAge  = term.NamedNode("http://example.org/age")
	exNext = term.NamedNode("http://example.org/next")
)

func TestFlattenRecordBasic(t *testing.T) {
	b := shape.NewBuilder()
	nameSh := b.Literal()
	ageSh := b.Literal(shape.WithDatatype(xsd.Integer))
	person := b.Record("person", nil, []shape.ObjectProperty{
		shape.Property("name", exName, nameSh.ID),
		shape.Property("age", exAge, ageSh.ID),
	})
	shapes := b.Build()

	v := value.Record(map[string]value.Value{
		"name": value.String("Alice"),
		"age":  value.Number(30),
	})

	ds, subj, err := flatten.Flatten(shapes, person.ID, v)
	require.NoError(t, err)
	require.NotNil(t, subj)
	require.Equal(t, 2, ds.Size())

	matches := ds.Match(subj, exName, term.NewLiteral("Alice", ""), nil)
	require.Len(t, matches, 1)
}

func TestFlattenRoundTripsThroughFrame(t *testing.T) {
	b := shape.NewBuilder()
	nameSh := b.Literal()
	person := b.Record("person", nil, []shape.ObjectProperty{
		shape.Property("name", exName, nameSh.ID),
	})
	shapes := b.Build()

	v := value.Record(map[string]value.Value{"name": value.String("Bob")})
	ds, subj, err := flatten.Flatten(shapes, person.ID, v)
	require.NoError(t, err)
	require.NotNil(t, subj)
	require.Equal(t, 1, ds.Size())

	sols, err := frame.Frame(shapes, person.ID, ds, subj)
	require.NoError(t, err)
	require.Equal(t, 1, sols.Len())
	require.True(t, v.Equal(sols.All()[0].Value))
}

func TestFlattenBareSetEmitsNoQuads(t *testing.T) {
	b := shape.NewBuilder()
	tagSh := b.Literal()
	tags := b.Set("tags", tagSh.ID)
	shapes := b.Build()

	v := value.Array(value.String("red"), value.String("blue"))
	ds, _, err := flatten.Flatten(shapes, tags.ID, v)
	require.NoError(t, err)
	require.Equal(t, 0, ds.Size()) // a bare set has no enclosing edge of its own
}

func TestFlattenCyclicValueRaisesCyclicMatch(t *testing.T) {
	b := shape.NewBuilder()
	nodeID := shape.ShapeID("node")
	b.Record(nodeID, nil, []shape.ObjectProperty{
		shape.Property("next", exNext, nodeID),
	})
	shapes := b.Build()

	rec := map[string]value.Value{}
	self := value.Record(rec)
	rec["next"] = self // a native value that genuinely contains itself

	_, _, err := flatten.Flatten(shapes, nodeID, self)
	require.Error(t, err)
	require.True(t, ramperr.As(err, ramperr.CyclicMatch), "expected CyclicMatch, got %v", err)
}

func TestFlattenOptionalSkipsEmptyValue(t *testing.T) {
	b := shape.NewBuilder()
	nicknameSh := b.Literal()
	opt := b.Optional("opt", nicknameSh.ID, nil)
	shapes := b.Build()

	_, subj, err := flatten.Flatten(shapes, opt.ID, value.Null())
	require.Error(t, err) // no subject produced: optional absent at the root has nothing to flatten
	require.Nil(t, subj)
}
