package shape

import "github.com/cayleygraph/ramp/term"

// PathKind tags the property path expressions, with SPARQL 1.1
// property path semantics.
type PathKind int

const (
	PathInvalid PathKind = iota
	PathSelf             // the empty path: the matched term is the subject itself
	PathPredicate
	PathSequence
	PathInverse
	PathAlternative
	PathZeroOrMore
	PathZeroOrOne
	PathOneOrMore
)

// PropertyPath is a recursive property path expression.
//
// The zero value is PathInvalid; use the Self/Predicate/Sequence/...
// constructors below, or shape.Builder's helpers, to build one.
type PropertyPath struct {
	Kind  PathKind
	Pred  term.NamedNode  // PathPredicate
	Parts []PropertyPath  // PathSequence, PathAlternative
	Inner *PropertyPath   // PathInverse, PathZeroOrMore, PathZeroOrOne, PathOneOrMore
}

func Self() PropertyPath                        { return PropertyPath{Kind: PathSelf} }
func Predicate(p term.NamedNode) PropertyPath    { return PropertyPath{Kind: PathPredicate, Pred: p} }
func Sequence(parts ...PropertyPath) PropertyPath {
	return PropertyPath{Kind: PathSequence, Parts: parts}
}
func Inverse(p PropertyPath) PropertyPath { return PropertyPath{Kind: PathInverse, Inner: &p} }
func Alternative(parts ...PropertyPath) PropertyPath {
	return PropertyPath{Kind: PathAlternative, Parts: parts}
}
func ZeroOrMore(p PropertyPath) PropertyPath { return PropertyPath{Kind: PathZeroOrMore, Inner: &p} }
func ZeroOrOne(p PropertyPath) PropertyPath  { return PropertyPath{Kind: PathZeroOrOne, Inner: &p} }
func OneOrMore(p PropertyPath) PropertyPath  { return PropertyPath{Kind: PathOneOrMore, Inner: &p} }

// IsSelf reports whether p is the empty (self) path.
func (p PropertyPath) IsSelf() bool { return p.Kind == PathSelf }

// termSet is a deduplicated, order-preserving collection of terms keyed
// by their exact string form; every evaluation step deduplicates terms
// before continuing.
type termSet struct {
	order []term.Term
	seen  map[string]bool
}

func newTermSet() *termSet { return &termSet{seen: make(map[string]bool)} }

func (s *termSet) add(t term.Term) {
	k := t.String()
	if s.seen[k] {
		return
	}
	s.seen[k] = true
	s.order = append(s.order, t)
}

func (s *termSet) addAll(ts []term.Term) {
	for _, t := range ts {
		s.add(t)
	}
}

func (s *termSet) slice() []term.Term { return s.order }

// Eval evaluates path starting from the given set of subject terms
// against ds, returning the deduplicated set of terms reached, in
// SPARQL 1.1 property path semantics:
//
//	sequence    composes left to right
//	inverse     swaps subject/object
//	alternative unions branches
//	*, +, ?     evaluated via fixed point over the dataset index
func Eval(ds *term.Dataset, path PropertyPath, starts []term.Term) []term.Term {
	switch path.Kind {
	case PathSelf:
		out := newTermSet()
		out.addAll(starts)
		return out.slice()

	case PathPredicate:
		out := newTermSet()
		for _, s := range starts {
			for _, q := range ds.Match(s, path.Pred, nil, nil) {
				out.add(q.Object)
			}
		}
		return out.slice()

	case PathInverse:
		out := newTermSet()
		for _, s := range starts {
			for _, q := range evalReverse(ds, *path.Inner, s) {
				out.add(q)
			}
		}
		return out.slice()

	case PathSequence:
		cur := starts
		for _, part := range path.Parts {
			cur = Eval(ds, part, cur)
		}
		return cur

	case PathAlternative:
		out := newTermSet()
		for _, part := range path.Parts {
			out.addAll(Eval(ds, part, starts))
		}
		return out.slice()

	case PathZeroOrOne:
		out := newTermSet()
		out.addAll(starts)
		out.addAll(Eval(ds, *path.Inner, starts))
		return out.slice()

	case PathZeroOrMore:
		out := newTermSet()
		out.addAll(starts)
		fixedPoint(ds, *path.Inner, out)
		return out.slice()

	case PathOneOrMore:
		out := newTermSet()
		frontier := newTermSet()
		frontier.addAll(Eval(ds, *path.Inner, starts))
		out.addAll(frontier.slice())
		fixedPointFrom(ds, *path.Inner, frontier, out)
		return out.slice()

	default:
		return nil
	}
}

// evalReverse evaluates path treating obj as the *object* side, i.e.
// subject/object swapped, which is what PathInverse needs without
// double-negating nested inverses.
func evalReverse(ds *term.Dataset, path PropertyPath, obj term.Term) []term.Term {
	switch path.Kind {
	case PathSelf:
		return []term.Term{obj}
	case PathPredicate:
		out := newTermSet()
		for _, q := range ds.Match(nil, path.Pred, obj, nil) {
			out.add(q.Subject)
		}
		return out.slice()
	case PathInverse:
		return Eval(ds, *path.Inner, []term.Term{obj})
	case PathSequence:
		// reverse a sequence by walking its parts back to front
		cur := []term.Term{obj}
		for i := len(path.Parts) - 1; i >= 0; i-- {
			cur = evalReverseMulti(ds, path.Parts[i], cur)
		}
		return cur
	case PathAlternative:
		out := newTermSet()
		for _, part := range path.Parts {
			out.addAll(evalReverse(ds, part, obj))
		}
		return out.slice()
	case PathZeroOrOne:
		out := newTermSet()
		out.add(obj)
		out.addAll(evalReverse(ds, *path.Inner, obj))
		return out.slice()
	case PathZeroOrMore:
		out := newTermSet()
		out.add(obj)
		fixedPointReverse(ds, *path.Inner, out)
		return out.slice()
	case PathOneOrMore:
		out := newTermSet()
		frontier := newTermSet()
		frontier.addAll(evalReverse(ds, *path.Inner, obj))
		out.addAll(frontier.slice())
		fixedPointReverseFrom(ds, *path.Inner, frontier, out)
		return out.slice()
	default:
		return nil
	}
}

func evalReverseMulti(ds *term.Dataset, path PropertyPath, objs []term.Term) []term.Term {
	out := newTermSet()
	for _, o := range objs {
		out.addAll(evalReverse(ds, path, o))
	}
	return out.slice()
}

func fixedPoint(ds *term.Dataset, step PropertyPath, acc *termSet) {
	frontier := newTermSet()
	frontier.addAll(acc.slice())
	fixedPointFrom(ds, step, frontier, acc)
}

func fixedPointFrom(ds *term.Dataset, step PropertyPath, frontier *termSet, acc *termSet) {
	for len(frontier.slice()) > 0 {
		next := newTermSet()
		for _, t := range Eval(ds, step, frontier.slice()) {
			if !acc.seen[t.String()] {
				acc.add(t)
				next.add(t)
			}
		}
		frontier = next
	}
}

func fixedPointReverse(ds *term.Dataset, step PropertyPath, acc *termSet) {
	frontier := newTermSet()
	frontier.addAll(acc.slice())
	fixedPointReverseFrom(ds, step, frontier, acc)
}

func fixedPointReverseFrom(ds *term.Dataset, step PropertyPath, frontier *termSet, acc *termSet) {
	for len(frontier.slice()) > 0 {
		next := newTermSet()
		for _, seed := range frontier.slice() {
			for _, t := range evalReverse(ds, step, seed) {
				if !acc.seen[t.String()] {
					acc.add(t)
					next.add(t)
				}
			}
		}
		frontier = next
	}
}
