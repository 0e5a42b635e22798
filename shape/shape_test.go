package shape_test

import (
	"testing"

	"github.com/cayleygraph/ramp/shape"
	"github.com/cayleygraph/ramp/term"
	"github.com/stretchr/testify/require"
)

func TestBuilderAssignsUniqueBlankIDs(t *testing.T) {
	b1 := shape.NewBuilder()
	b2 := shape.NewBuilder()

	s1 := b1.Literal()
	s2 := b2.Literal()
	require.NotEqual(t, s1.ID, s2.ID)
}

func TestRecordDuplicatePropertyNameIsInvalid(t *testing.T) {
	b := shape.NewBuilder()
	lit := b.Literal()
	rec := b.Record("", nil, []shape.ObjectProperty{
		shape.Property("name", "http://example.org/p", lit.ID),
		shape.Property("name", "http://example.org/q", lit.ID),
	})
	_ = rec
	set := b.Build()
	require.Error(t, set.Validate())
}

func TestSetValidateResolvesReferences(t *testing.T) {
	b := shape.NewBuilder()
	lit := b.Literal()
	rec := b.Record("", nil, []shape.ObjectProperty{
		shape.Property("n", "http://example.org/p", lit.ID),
	})
	_ = rec
	set := b.Build()
	require.NoError(t, set.Validate())
}

func TestSetValidateRejectsUnresolvedReference(t *testing.T) {
	b := shape.NewBuilder()
	rec := b.Record("", nil, []shape.ObjectProperty{
		shape.Property("n", "http://example.org/p", "_:missing"),
	})
	_ = rec
	set := b.Build()
	require.Error(t, set.Validate())
}

func TestVocabularyBijection(t *testing.T) {
	v := shape.NewVocabulary(map[string]term.NamedNode{
		"xpath": "http://www.w3.org/ns/oa#XPathSelector",
	})
	iri, ok := v.TermFor("xpath")
	require.True(t, ok)
	key, ok := v.KeyFor(iri)
	require.True(t, ok)
	require.Equal(t, "xpath", key)
}
