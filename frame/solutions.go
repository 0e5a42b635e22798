package frame

import (
	"github.com/cayleygraph/ramp/shape"
	"github.com/cayleygraph/ramp/term"
	"github.com/cayleygraph/ramp/value"
)

// Solution is one native value the root shape produced, plus the vars
// map that was current when it was yielded: the most recent native
// value bound to every shape ID visited along the way, keyed by the
// shape that produced it. Callers use Vars to pull out intermediate
// matches (e.g. a record field framed deep inside a union).
type Solution struct {
	Value value.Value
	Vars  map[shape.ShapeID]value.Value
}

// Solutions is the enumerated result of a Frame call. It is built
// eagerly: Frame drains the underlying backtracking generator fully
// before returning, trading the generator's laziness for a result any
// caller can range over without holding traversal state open.
type Solutions struct {
	items []Solution
}

func (s *Solutions) All() []Solution { return s.items }
func (s *Solutions) Len() int        { return len(s.items) }

// Frame enumerates every native value satisfying the shape named rootID
// against ds, starting from focus. If focus is empty, every distinct
// resource term appearing as a subject in ds is tried as a candidate.
func Frame(shapes *shape.Set, rootID shape.ShapeID, ds *term.Dataset, focus ...term.Term) (*Solutions, error) {
	root, ok := shapes.Get(rootID)
	if !ok {
		return nil, ramperrMissingShape(rootID)
	}
	candidates := focus
	if len(candidates) == 0 {
		candidates = distinctSubjects(ds)
	}
	ctx := newContext(shapes, ds)
	var out []Solution
	_, err := ctx.frameShape(root, candidates, true, func(v value.Value) bool {
		out = append(out, Solution{Value: v, Vars: cloneVars(ctx.vars)})
		return true
	})
	if err != nil {
		return nil, err
	}
	return &Solutions{items: out}, nil
}

func distinctSubjects(ds *term.Dataset) []term.Term {
	seen := make(map[string]bool)
	var out []term.Term
	for _, q := range ds.All() {
		k := q.Subject.String()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, q.Subject)
	}
	return out
}

func cloneVars(vars map[shape.ShapeID]value.Value) map[shape.ShapeID]value.Value {
	cp := make(map[shape.ShapeID]value.Value, len(vars))
	for k, v := range vars {
		cp[k] = v
	}
	return cp
}
