package querygen

import (
	"fmt"

	"github.com/cayleygraph/ramp/ramperr"
	"github.com/cayleygraph/ramp/shape"
	"github.com/cayleygraph/ramp/term"
)

// context is per-call state: the variable generator and the set of
// record and list shapes currently on the recursion stack, which is exactly the
// set whose further expansion must be cut off to guarantee
// termination over a cyclic shape graph.
type context struct {
	shapes   *shape.Set
	varSeq   int
	visiting map[shape.ShapeID]bool
	query    *Query
}

func (ctx *context) freshVar() term.Variable {
	ctx.varSeq++
	return term.Variable(fmt.Sprintf("v%d", ctx.varSeq))
}

// GenerateQuery builds the abstract CONSTRUCT/WHERE query pattern that
// reconstructs every RDF fragment rootID's shape can match.
func GenerateQuery(shapes *shape.Set, rootID shape.ShapeID) (*Query, error) {
	root, ok := shapes.Get(rootID)
	if !ok {
		return nil, ramperr.New(ramperr.MissingShape, "no shape named %s in the given set", rootID)
	}
	ctx := &context{shapes: shapes, visiting: make(map[shape.ShapeID]bool), query: &Query{}}
	subj := ctx.freshVar()
	where, err := ctx.genShape(root, subj)
	if err != nil {
		return nil, err
	}
	ctx.query.Where = where
	return ctx.query, nil
}

// genShape produces the WHERE pattern binding sh's match starting from
// subj, appending to ctx.query.Construct as it discovers emittable
// edges.
func (ctx *context) genShape(sh *shape.Shape, subj term.Term) (Pattern, error) {
	switch sh.Variant {
	case shape.VariantResource, shape.VariantLiteral:
		// the edge that bound subj already constrains it; a fixed-value
		// resource/literal shape would add an equality filter here, left
		// unrepresented since Pattern has no filter node yet.
		return group(), nil
	case shape.VariantRecord:
		return ctx.genRecord(sh, subj)
	case shape.VariantUnion:
		return ctx.genUnion(sh, subj)
	case shape.VariantSet:
		return ctx.genPassthrough(sh.Item, subj)
	case shape.VariantOptional:
		return ctx.genOptional(sh, subj)
	case shape.VariantList:
		return ctx.genList(sh, subj)
	case shape.VariantMap:
		item := sh.Item
		if sh.Value != nil {
			item = sh.Value.Target
		}
		return ctx.genPassthrough(item, subj)
	default:
		return Pattern{}, ramperr.New(ramperr.ShapeMismatch, "shape %s has no variant set", sh.ID)
	}
}

func (ctx *context) genPassthrough(id shape.ShapeID, subj term.Term) (Pattern, error) {
	sh, ok := ctx.shapes.Get(id)
	if !ok {
		return Pattern{}, ramperr.New(ramperr.MissingShape, "reference to unknown shape %s", id)
	}
	return ctx.genShape(sh, subj)
}

// genRecord is the recursion-breaking point: a record (or a list,
// handled in genList) that recurses into its own shape, directly or
// transitively, stops expanding the second time it is entered. The
// resulting WHERE pattern leaves that branch's variable otherwise
// unconstrained rather than looping forever.
func (ctx *context) genRecord(sh *shape.Shape, subj term.Term) (Pattern, error) {
	if ctx.visiting[sh.ID] {
		return group(), nil
	}
	ctx.visiting[sh.ID] = true
	defer delete(ctx.visiting, sh.ID)

	var parts []Pattern
	all := append(append([]shape.ObjectProperty{}, sh.TypeProperties...), sh.Properties...)
	for _, p := range all {
		if p.Transient {
			continue
		}
		valueSh, ok := ctx.shapes.Get(p.ValueShape)
		if !ok {
			return Pattern{}, ramperr.New(ramperr.MissingShape, "shape %s references unknown shape %s", sh.ID, p.ValueShape)
		}

		objVar := term.Term(subj)
		var propParts []Pattern
		hasEdge := !p.Path.IsSelf()
		if hasEdge {
			objVar = ctx.freshVar()
			propParts = append(propParts, triple(PathTriple{Subject: subj, Path: p.Path, Object: objVar}))
			ctx.emitConstruct(subj, p.Path, objVar)
		}

		inner, err := ctx.genShape(valueSh, objVar)
		if err != nil {
			return Pattern{}, err
		}
		if !isEmptyPattern(inner) {
			propParts = append(propParts, inner)
		}
		if len(propParts) == 0 {
			continue
		}

		if hasEdge && isOptionalEdge(valueSh) {
			parts = append(parts, optionalWrap(group(propParts...)))
		} else {
			parts = append(parts, propParts...)
		}
	}
	return group(parts...), nil
}

// isOptionalEdge reports whether a record property's edge to sh may be
// absent from a matching graph: an optional or map value shape, or a
// set whose MinCount allows zero items. Such edges are wrapped in
// PatternOptional so WHERE doesn't require what the shape doesn't.
func isOptionalEdge(sh *shape.Shape) bool {
	switch sh.Variant {
	case shape.VariantOptional, shape.VariantMap:
		return true
	case shape.VariantSet:
		return sh.MinCount <= 0
	default:
		return false
	}
}

// emitConstruct appends the CONSTRUCT triple(s) a plain predicate or
// single-inverse path reconstructs; a richer path (sequence,
// alternative, or a starred path) has no unique single-triple inverse
// and is left out of the template. Flatten's emitAlongPath has the same
// limit except that it does generate a sequence of plain predicates.
func (ctx *context) emitConstruct(subj term.Term, path shape.PropertyPath, obj term.Term) {
	switch path.Kind {
	case shape.PathPredicate:
		ctx.query.Construct = append(ctx.query.Construct, ConstructTriple{Subject: subj, Predicate: path.Pred, Object: obj})
	case shape.PathInverse:
		if path.Inner != nil && path.Inner.Kind == shape.PathPredicate {
			ctx.query.Construct = append(ctx.query.Construct, ConstructTriple{Subject: obj, Predicate: path.Inner.Pred, Object: subj})
		}
	}
}

func (ctx *context) genUnion(sh *shape.Shape, subj term.Term) (Pattern, error) {
	branches := make([]Pattern, 0, len(sh.Variants))
	for _, vid := range sh.Variants {
		vsh, ok := ctx.shapes.Get(vid)
		if !ok {
			return Pattern{}, ramperr.New(ramperr.MissingShape, "union %s references unknown shape %s", sh.ID, vid)
		}
		p, err := ctx.genShape(vsh, subj)
		if err != nil {
			return Pattern{}, err
		}
		branches = append(branches, p)
	}
	return unionOf(branches...), nil
}

func (ctx *context) genOptional(sh *shape.Shape, subj term.Term) (Pattern, error) {
	inner, err := ctx.genPassthrough(sh.Item, subj)
	if err != nil {
		return Pattern{}, err
	}
	if isEmptyPattern(inner) {
		return group(), nil
	}
	return optionalWrap(inner), nil
}

// genList expands a list shape's fixed point: any node reachable from
// subj via zero or more TailPath hops carries one HeadPath edge to an
// item. Expressed directly as a SPARQL 1.1 zero-or-more property path
// rather than as unrolled per-hop triples.
func (ctx *context) genList(sh *shape.Shape, subj term.Term) (Pattern, error) {
	if ctx.visiting[sh.ID] {
		return group(), nil
	}
	ctx.visiting[sh.ID] = true
	defer delete(ctx.visiting, sh.ID)

	itemSh, ok := ctx.shapes.Get(sh.Item)
	if !ok {
		return Pattern{}, ramperr.New(ramperr.MissingShape, "list %s references unknown shape %s", sh.ID, sh.Item)
	}
	anyNode := ctx.freshVar()
	itemVar := ctx.freshVar()
	parts := []Pattern{
		triple(PathTriple{Subject: subj, Path: shape.ZeroOrMore(sh.TailPath), Object: anyNode}),
		triple(PathTriple{Subject: anyNode, Path: sh.HeadPath, Object: itemVar}),
	}
	if sh.HeadPath.Kind == shape.PathPredicate {
		ctx.query.Construct = append(ctx.query.Construct, ConstructTriple{Subject: anyNode, Predicate: sh.HeadPath.Pred, Object: itemVar})
	}
	inner, err := ctx.genShape(itemSh, itemVar)
	if err != nil {
		return Pattern{}, err
	}
	if !isEmptyPattern(inner) {
		parts = append(parts, inner)
	}
	return group(parts...), nil
}
