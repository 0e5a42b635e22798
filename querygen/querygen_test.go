package querygen_test

import (
	"testing"

	"github.com/cayleygraph/ramp/querygen"
	"github.com/cayleygraph/ramp/shape"
	"github.com/cayleygraph/ramp/term"
	"github.com/stretchr/testify/require"
)

var (
	exName   = term.NamedNode("http://example.org/name")
	exFriend = term.NamedNode("http://example.org/friend")
)

func TestGenerateQuerySimpleRecord(t *testing.T) {
	b := shape.NewBuilder()
	nameSh := b.Literal()
	person := b.Record("person", nil, []shape.ObjectProperty{
		shape.Property("name", exName, nameSh.ID),
	})
	shapes := b.Build()

	q, err := querygen.GenerateQuery(shapes, person.ID)
	require.NoError(t, err)
	require.Len(t, q.Construct, 1)
	require.Equal(t, exName, q.Construct[0].Predicate)
	require.Equal(t, querygen.PatternGroup, q.Where.Kind)
	require.Len(t, q.Where.Parts, 1)
	require.Equal(t, querygen.PatternTriple, q.Where.Parts[0].Kind)
}

func TestGenerateQueryRecursiveRecordTerminates(t *testing.T) {
	b := shape.NewBuilder()
	person := b.Record("person", nil, nil)
	// a self-referencing "friend" property makes the shape recursive.
	person.Properties = []shape.ObjectProperty{
		shape.Property("friend", exFriend, person.ID),
	}
	shapes := b.Build()

	q, err := querygen.GenerateQuery(shapes, person.ID)
	require.NoError(t, err)
	require.Len(t, q.Construct, 1)
	// the second visit to "person" breaks recursion: it yields an empty
	// pattern, so WHERE holds only the friend triple, not an infinite
	// expansion.
	require.Equal(t, querygen.PatternTriple, q.Where.Parts[0].Kind)
}

func TestGenerateQueryOptionalPropertyWrapsEdgeInOptional(t *testing.T) {
	b := shape.NewBuilder()
	labelSh := b.Literal()
	label := b.Optional("", labelSh.ID, nil)
	person := b.Record("person", nil, []shape.ObjectProperty{
		shape.Property("label", exName, label.ID),
	})
	shapes := b.Build()

	q, err := querygen.GenerateQuery(shapes, person.ID)
	require.NoError(t, err)
	require.Len(t, q.Construct, 1) // same CONSTRUCT template as a required property
	require.Len(t, q.Where.Parts, 1)
	require.Equal(t, querygen.PatternOptional, q.Where.Parts[0].Kind)
}

func TestGenerateQueryMinZeroSetPropertyWrapsEdgeInOptional(t *testing.T) {
	b := shape.NewBuilder()
	tagSh := b.Literal()
	tags := b.Set("", tagSh.ID) // MinCount defaults to 0
	person := b.Record("person", nil, []shape.ObjectProperty{
		shape.Property("tags", exFriend, tags.ID),
	})
	shapes := b.Build()

	q, err := querygen.GenerateQuery(shapes, person.ID)
	require.NoError(t, err)
	require.Len(t, q.Where.Parts, 1)
	require.Equal(t, querygen.PatternOptional, q.Where.Parts[0].Kind)
}

func TestGenerateQueryMinOneSetPropertyIsRequired(t *testing.T) {
	b := shape.NewBuilder()
	tagSh := b.Literal()
	tags := b.Set("", tagSh.ID, shape.MinCount(1))
	person := b.Record("person", nil, []shape.ObjectProperty{
		shape.Property("tags", exFriend, tags.ID),
	})
	shapes := b.Build()

	q, err := querygen.GenerateQuery(shapes, person.ID)
	require.NoError(t, err)
	require.Len(t, q.Where.Parts, 1)
	require.Equal(t, querygen.PatternTriple, q.Where.Parts[0].Kind)
}

func TestGenerateQueryUnion(t *testing.T) {
	b := shape.NewBuilder()
	a := b.Literal(shape.WithDatatype(""))
	c := b.Resource()
	union := b.AnyOf("u", a.ID, c.ID)
	shapes := b.Build()

	q, err := querygen.GenerateQuery(shapes, union.ID)
	require.NoError(t, err)
	require.Equal(t, querygen.PatternUnion, q.Where.Kind)
	require.Len(t, q.Where.Parts, 2)
}
