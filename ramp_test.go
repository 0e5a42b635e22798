package ramp_test

import (
	"testing"

	ramp "github.com/cayleygraph/ramp"
	"github.com/cayleygraph/ramp/shape"
	"github.com/cayleygraph/ramp/term"
	"github.com/cayleygraph/ramp/value"
	"github.com/stretchr/testify/require"
)

var exName = term.NamedNode("http://example.org/name")

func TestTopLevelFrameFlattenGenerateQuery(t *testing.T) {
	b := ramp.NewBuilder()
	nameSh := b.Literal()
	person := b.Record("person", nil, []shape.ObjectProperty{
		shape.Property("name", exName, nameSh.ID),
	})
	shapes := b.Build()

	v := value.Record(map[string]value.Value{"name": value.String("Ada")})
	ds, subj, err := ramp.Flatten(shapes, person.ID, v)
	require.NoError(t, err)

	sols, err := ramp.Frame(shapes, person.ID, ds, subj)
	require.NoError(t, err)
	require.Equal(t, 1, sols.Len())
	require.True(t, v.Equal(sols.All()[0].Value))

	q, err := ramp.GenerateQuery(shapes, person.ID)
	require.NoError(t, err)
	require.Len(t, q.Construct, 1)
}
