package term_test

import (
	"testing"

	"github.com/cayleygraph/ramp/term"
	"github.com/cayleygraph/ramp/voc/rdf"
	"github.com/stretchr/testify/require"
)

func TestLiteralInvariant(t *testing.T) {
	lit := term.NewLangLiteral("bonjour", "fr")
	require.Equal(t, term.NamedNode(rdf.LangString), lit.Datatype)
	require.Equal(t, "fr", lit.Lang)

	plain := term.NewLiteral("42", "")
	require.NotEmpty(t, plain.Datatype)
}

func TestTermEqualImpliesHashEqual(t *testing.T) {
	pairs := []term.Term{
		term.NamedNode("http://example.org/a"),
		term.BlankNode("b1"),
		term.NewLiteral("hi", ""),
		term.NewLangLiteral("hi", "en"),
		term.Variable("x"),
		term.DefaultGraph{},
	}
	for _, a := range pairs {
		b := a // copies of value types are equal to themselves
		require.True(t, a.Equal(b), "%v should equal itself", a)
		require.Equal(t, a.Hash(), b.Hash(), "equal terms must hash equal: %v", a)
	}
}

func TestLiteralEqualityConsidersDatatypeAndLanguage(t *testing.T) {
	a := term.NewLiteral("1", "http://example.org/int")
	b := term.NewLiteral("1", "http://example.org/other")
	require.False(t, a.Equal(b))

	c := term.NewLangLiteral("hi", "en")
	d := term.NewLangLiteral("hi", "fr")
	require.False(t, c.Equal(d))
}

func TestQuadValidate(t *testing.T) {
	q := term.Quad{
		Subject:   term.NamedNode("s"),
		Predicate: term.NamedNode("p"),
		Object:    term.NewLiteral("o", ""),
	}
	require.NoError(t, q.Validate())

	bad := q
	bad.Subject = term.NewLiteral("not-a-subject", "")
	require.Error(t, bad.Validate())
}
