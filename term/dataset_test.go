package term_test

import (
	"testing"

	"github.com/cayleygraph/ramp/term"
	"github.com/stretchr/testify/require"
)

func TestDatasetMatchUsesIndices(t *testing.T) {
	s1, s2 := term.NamedNode("s1"), term.NamedNode("s2")
	p1, p2 := term.NamedNode("p1"), term.NamedNode("p2")
	o1, o2 := term.NewLiteral("o1", ""), term.NewLiteral("o2", "")

	d := term.NewDataset()
	d.Add(term.Quad{Subject: s1, Predicate: p1, Object: o1})
	d.Add(term.Quad{Subject: s1, Predicate: p2, Object: o2})
	d.Add(term.Quad{Subject: s2, Predicate: p1, Object: o1})

	require.Equal(t, 3, d.Size())

	bySP := d.Match(s1, p1, nil, nil)
	require.Len(t, bySP, 1)
	require.True(t, bySP[0].Object.Equal(o1))

	byPO := d.Match(nil, p1, o1, nil)
	require.Len(t, byPO, 2)

	all := d.Match(nil, nil, nil, nil)
	require.Len(t, all, 3)
}

func TestDatasetGraphFilterAppliedLast(t *testing.T) {
	g1 := term.NamedNode("g1")
	s, p, o := term.NamedNode("s"), term.NamedNode("p"), term.NewLiteral("v", "")

	d := term.NewDataset()
	d.Add(term.Quad{Subject: s, Predicate: p, Object: o, Graph: g1})
	d.Add(term.Quad{Subject: s, Predicate: p, Object: o})

	require.Len(t, d.Match(s, p, nil, nil), 2)
	require.Len(t, d.Match(s, p, nil, g1), 1)
	require.Len(t, d.Match(s, p, nil, term.DefaultGraph{}), 1)
}

func TestDatasetAddDeleteHas(t *testing.T) {
	q := term.Quad{Subject: term.NamedNode("s"), Predicate: term.NamedNode("p"), Object: term.NewLiteral("o", "")}
	d := term.NewDataset()
	require.False(t, d.Has(q))
	d.Add(q)
	require.True(t, d.Has(q))
	require.True(t, d.Delete(q))
	require.False(t, d.Has(q))
}
