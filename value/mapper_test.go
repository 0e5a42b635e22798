package value_test

import (
	"testing"

	"github.com/cayleygraph/ramp/shape"
	"github.com/cayleygraph/ramp/term"
	"github.com/cayleygraph/ramp/value"
	"github.com/cayleygraph/ramp/voc/xsd"
	"github.com/stretchr/testify/require"
)

func TestLiteralRoundTripScalarTypes(t *testing.T) {
	b := shape.NewBuilder()
	intShape := b.Literal(shape.WithDatatype(xsd.Integer))
	boolShape := b.Literal(shape.WithDatatype(xsd.Boolean))
	strShape := b.Literal()

	lit := term.NewLiteral("42", xsd.Integer)
	v, err := value.FromRDF(lit, intShape)
	require.NoError(t, err)
	require.Equal(t, value.KindNumber, v.Kind)
	require.Equal(t, float64(42), v.Number())

	back, err := value.ToRDF(v, intShape)
	require.NoError(t, err)
	require.True(t, back.Equal(lit))

	boolLit := term.NewLiteral("false", xsd.Boolean)
	bv, err := value.FromRDF(boolLit, boolShape)
	require.NoError(t, err)
	require.False(t, bv.Bool())

	sv, err := value.FromRDF(term.NewLiteral("hello", ""), strShape)
	require.NoError(t, err)
	require.Equal(t, "hello", sv.String())
}

func TestVocabularyMapping(t *testing.T) {
	voc := shape.NewVocabulary(map[string]term.NamedNode{
		"red": "http://example.org/Red",
	})
	b := shape.NewBuilder()
	sh := b.Resource(shape.WithVocabulary(voc))

	v, err := value.FromRDF(term.NamedNode("http://example.org/Red"), sh)
	require.NoError(t, err)
	require.Equal(t, "red", v.String())

	back, err := value.ToRDF(v, sh)
	require.NoError(t, err)
	require.Equal(t, term.NamedNode("http://example.org/Red"), back)

	_, err = value.FromRDF(term.NamedNode("http://example.org/Unknown"), sh)
	require.Error(t, err)
}

func TestKeepAsTerm(t *testing.T) {
	b := shape.NewBuilder()
	sh := b.Resource(shape.KeepAsTerm())

	nn := term.NamedNode("http://example.org/x")
	v, err := value.FromRDF(nn, sh)
	require.NoError(t, err)
	require.Equal(t, value.KindTerm, v.Kind)

	back, err := value.ToRDF(v, sh)
	require.NoError(t, err)
	require.True(t, back.Equal(nn))
}
