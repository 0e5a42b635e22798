package shape_test

import (
	"testing"

	"github.com/cayleygraph/ramp/shape"
	"github.com/cayleygraph/ramp/term"
	"github.com/stretchr/testify/require"
)

func TestEvalSequenceAndInverse(t *testing.T) {
	a, b, c := term.NamedNode("a"), term.NamedNode("b"), term.NamedNode("c")
	knows := term.NamedNode("knows")

	ds := term.NewDataset()
	ds.Add(term.Quad{Subject: a, Predicate: knows, Object: b})
	ds.Add(term.Quad{Subject: b, Predicate: knows, Object: c})

	seq := shape.Sequence(shape.Predicate(knows), shape.Predicate(knows))
	got := shape.Eval(ds, seq, []term.Term{a})
	require.Len(t, got, 1)
	require.True(t, got[0].Equal(c))

	inv := shape.Inverse(shape.Predicate(knows))
	back := shape.Eval(ds, inv, []term.Term{b})
	require.Len(t, back, 1)
	require.True(t, back[0].Equal(a))
}

func TestEvalStarPlusDedup(t *testing.T) {
	a, b, c := term.NamedNode("a"), term.NamedNode("b"), term.NamedNode("c")
	next := term.NamedNode("next")

	ds := term.NewDataset()
	ds.Add(term.Quad{Subject: a, Predicate: next, Object: b})
	ds.Add(term.Quad{Subject: b, Predicate: next, Object: c})
	ds.Add(term.Quad{Subject: c, Predicate: next, Object: a}) // cycle

	star := shape.ZeroOrMore(shape.Predicate(next))
	got := shape.Eval(ds, star, []term.Term{a})
	// must include a itself (zero case), terminate despite the cycle, and
	// deduplicate.
	require.Len(t, got, 3)

	plus := shape.OneOrMore(shape.Predicate(next))
	gotPlus := shape.Eval(ds, plus, []term.Term{a})
	require.Len(t, gotPlus, 3)
}

func TestEvalAlternative(t *testing.T) {
	a, b, c := term.NamedNode("a"), term.NamedNode("b"), term.NamedNode("c")
	p1, p2 := term.NamedNode("p1"), term.NamedNode("p2")

	ds := term.NewDataset()
	ds.Add(term.Quad{Subject: a, Predicate: p1, Object: b})
	ds.Add(term.Quad{Subject: a, Predicate: p2, Object: c})

	alt := shape.Alternative(shape.Predicate(p1), shape.Predicate(p2))
	got := shape.Eval(ds, alt, []term.Term{a})
	require.Len(t, got, 2)
}
