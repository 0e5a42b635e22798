package frame

import (
	"github.com/cayleygraph/ramp/ramperr"
	"github.com/cayleygraph/ramp/shape"
	"github.com/cayleygraph/ramp/term"
	"github.com/cayleygraph/ramp/value"
)

func ramperrMissingShape(id shape.ShapeID) error {
	return ramperr.New(ramperr.MissingShape, "no shape named %s in the given set", id)
}

// frameShape is the central dispatcher: given a shape, a list of
// candidate terms, whether a failure to produce any value is fatal, and
// a yield callback, it walks every variant's framing rule.
//
// yield is called once per native value produced; returning false from
// yield asks the traversal to stop early, which frameShape propagates
// as stopped=true all the way up the call stack without treating it as
// an error.
func (ctx *Context) frameShape(sh *shape.Shape, candidates []term.Term, required bool, yield func(value.Value) bool) (stopped bool, err error) {
	switch sh.Variant {
	case shape.VariantResource, shape.VariantLiteral:
		return ctx.frameTerminal(sh, candidates, required, yield)
	case shape.VariantRecord:
		return ctx.frameRecord(sh, candidates, required, yield)
	case shape.VariantUnion:
		return ctx.frameUnion(sh, candidates, required, yield)
	case shape.VariantSet:
		return ctx.frameSet(sh, candidates, required, yield)
	case shape.VariantOptional:
		return ctx.frameOptional(sh, candidates, required, yield)
	case shape.VariantList:
		return ctx.frameList(sh, candidates, required, yield)
	case shape.VariantMap:
		return ctx.frameMap(sh, candidates, required, yield)
	default:
		return false, ctx.wrap(ramperr.New(ramperr.ShapeMismatch, "shape %s has no variant set", sh.ID))
	}
}

func (ctx *Context) frameTerminal(sh *shape.Shape, candidates []term.Term, required bool, yield func(value.Value) bool) (bool, error) {
	matched := false
	for _, t := range candidates {
		ok, err := shape.Matches(sh, t, false)
		if err != nil {
			return false, ctx.wrap(err)
		}
		if !ok {
			continue
		}
		matched = true
		v, err := value.FromRDF(t, sh)
		if err != nil {
			return false, ctx.wrap(err)
		}
		ctx.vars[sh.ID] = v
		if !yield(v) {
			return true, nil
		}
	}
	if !matched && required {
		return false, ctx.wrap(ramperr.New(ramperr.ShapeMismatch, "no candidate term matched shape %s", sh.ID))
	}
	return false, nil
}

// frameRecord tries every candidate resource as the record's subject.
// The "visiting" guard makes a cyclic RDF graph (a record shape that
// recurses into itself through the same node) terminate by silently
// declining to re-enter a (shape, subject) pair already on the stack,
// rather than raising an error: a cycle simply produces no further
// solutions at that point, which an enclosing optional/set/union can
// recover from.
func (ctx *Context) frameRecord(sh *shape.Shape, candidates []term.Term, required bool, yield func(value.Value) bool) (bool, error) {
	for _, cand := range candidates {
		if !term.IsResource(cand) {
			continue
		}
		key := visitKey(sh.ID, cand)
		if ctx.visiting[key] {
			continue
		}
		ctx.visiting[key] = true
		stopped, err := ctx.frameRecordCandidate(sh, cand, required, yield)
		delete(ctx.visiting, key)
		if err != nil {
			return false, err
		}
		if stopped {
			return true, nil
		}
	}
	return false, nil
}

func (ctx *Context) frameRecordCandidate(sh *shape.Shape, subject term.Term, required bool, yield func(value.Value) bool) (bool, error) {
	ctx.push(ramperr.Frame{ShapeID: string(sh.ID), Focus: subject})
	defer ctx.pop()

	matchedAnyType := false
	typeValues := map[string]value.Value{}
	for _, tp := range sh.TypeProperties {
		tv, ok, err := ctx.matchTypeProperty(sh, subject, tp)
		if err != nil {
			return false, err
		}
		if !ok {
			// a discriminator failed: this candidate is not an instance
			// of this record shape, rejected without error.
			return false, nil
		}
		matchedAnyType = true
		typeValues[tp.Name] = tv
	}

	var nonTransient, transient []shape.ObjectProperty
	for _, p := range sh.Properties {
		if p.Transient {
			transient = append(transient, p)
		} else {
			nonTransient = append(nonTransient, p)
		}
	}

	requiredProps := matchedAnyType || required
	return ctx.frameRecordProperties(sh, subject, nonTransient, transient, 0, typeValues, requiredProps, yield)
}

// matchTypeProperty reports whether subject satisfies the discriminator
// tp, returning the first value tp's value shape framed.
func (ctx *Context) matchTypeProperty(sh *shape.Shape, subject term.Term, tp shape.ObjectProperty) (value.Value, bool, error) {
	valueSh, ok := ctx.Shapes.Get(tp.ValueShape)
	if !ok {
		return value.Value{}, false, ctx.wrap(ramperr.New(ramperr.MissingShape, "shape %s references unknown shape %s", sh.ID, tp.ValueShape))
	}
	candidates := shape.Eval(ctx.Dataset, tp.Path, []term.Term{subject})
	if len(candidates) == 0 {
		return value.Value{}, false, nil
	}
	var got value.Value
	found := false
	_, err := ctx.frameShape(valueSh, candidates, false, func(v value.Value) bool {
		got = v
		found = true
		return false
	})
	if err != nil {
		return value.Value{}, false, err
	}
	return got, found, nil
}

// frameRecordProperties enumerates the cross product of every
// non-transient property's candidate bindings, recursing one property
// at a time, then synthesizes transient properties once every sibling
// is bound and yields the assembled record.
func (ctx *Context) frameRecordProperties(sh *shape.Shape, subject term.Term, props, transient []shape.ObjectProperty, idx int, partial map[string]value.Value, required bool, yield func(value.Value) bool) (bool, error) {
	if idx == len(props) {
		final := make(map[string]value.Value, len(partial)+len(transient))
		for k, v := range partial {
			final[k] = v
		}
		for _, tp := range transient {
			v, err := ctx.synthesize(tp)
			if err != nil {
				return false, ctx.wrap(err)
			}
			final[tp.Name] = v
		}
		rv := value.Record(final)
		ctx.vars[sh.ID] = rv
		if !yield(rv) {
			return true, nil
		}
		return false, nil
	}

	p := props[idx]
	valueSh, ok := ctx.Shapes.Get(p.ValueShape)
	if !ok {
		return false, ctx.wrap(ramperr.New(ramperr.MissingShape, "shape %s references unknown shape %s", sh.ID, p.ValueShape))
	}
	candidates := shape.Eval(ctx.Dataset, p.Path, []term.Term{subject})
	// A property with no matching candidates only fails the record if
	// its value shape actually demands one; an optional or a set with
	// no minimum still frames here (to its empty/absent value) and the
	// cross product continues.
	if len(candidates) == 0 && valueSh.IsRequired() {
		if required {
			return false, ctx.wrap(ramperr.New(ramperr.NoPropertyMatches, "property %q of shape %s has no matches for subject %s", p.Name, sh.ID, subject))
		}
		return false, nil
	}

	var stopped bool
	var inner error
	_, err := ctx.frameShape(valueSh, candidates, required, func(v value.Value) bool {
		ctx.vars[p.ValueShape] = v
		next := make(map[string]value.Value, len(partial)+1)
		for k, vv := range partial {
			next[k] = vv
		}
		next[p.Name] = v
		st, e := ctx.frameRecordProperties(sh, subject, props, transient, idx+1, next, required, yield)
		if e != nil {
			inner = e
			return false
		}
		if st {
			stopped = true
			return false
		}
		return true
	})
	if err != nil {
		return false, err
	}
	if inner != nil {
		return false, inner
	}
	return stopped, nil
}

func (ctx *Context) synthesize(tp shape.ObjectProperty) (value.Value, error) {
	if len(tp.SynthesizeFrom) == 0 {
		return value.Null(), nil
	}
	if len(tp.SynthesizeFrom) == 1 {
		return ctx.refValue(tp.SynthesizeFrom[0])
	}
	items := make([]value.Value, 0, len(tp.SynthesizeFrom))
	for _, ref := range tp.SynthesizeFrom {
		v, err := ctx.refValue(ref)
		if err != nil {
			return value.Value{}, err
		}
		items = append(items, v)
	}
	return value.Array(items...), nil
}

func (ctx *Context) refValue(ref shape.Reference) (value.Value, error) {
	v, ok := ctx.vars[ref.Target]
	if !ok {
		return value.Value{}, ramperr.New(ramperr.CannotSynthesizeValue, "no bound value for shape %s to synthesize from", ref.Target)
	}
	if ref.Part == shape.PartWhole {
		return v, nil
	}
	if v.Kind != value.KindTerm {
		return value.Value{}, ramperr.New(ramperr.CannotSynthesizeValue, "shape %s did not keep its term; cannot extract a term facet", ref.Target)
	}
	return extractPart(v.Term(), ref.Part)
}

// frameUnion tries each variant, in declared order, over the same
// candidates, yielding from every variant that matches rather than
// stopping at the first: a union's ambiguity is exposed to the caller,
// not resolved here.
func (ctx *Context) frameUnion(sh *shape.Shape, candidates []term.Term, required bool, yield func(value.Value) bool) (bool, error) {
	anyMatched := false
	for _, vid := range sh.Variants {
		vsh, ok := ctx.Shapes.Get(vid)
		if !ok {
			return false, ctx.wrap(ramperr.New(ramperr.MissingShape, "union %s references unknown shape %s", sh.ID, vid))
		}
		matchedHere := false
		stopped, err := ctx.frameShape(vsh, candidates, false, func(v value.Value) bool {
			matchedHere = true
			return yield(v)
		})
		if err != nil {
			return false, err
		}
		if matchedHere {
			anyMatched = true
		}
		if stopped {
			return true, nil
		}
	}
	if !anyMatched && required {
		return false, ctx.wrap(ramperr.New(ramperr.ShapeMismatch, "no variant of union %s matched", sh.ID))
	}
	return false, nil
}

// frameSet collects every candidate that matches the item shape into a
// single array value. Each candidate contributes at most its first
// matching value; a set of non-terminal, internally ambiguous items
// (e.g. a set of unions) is collapsed to one interpretation per
// candidate rather than exploded into every combination, unlike record
// properties, which do explode (see DESIGN.md).
func (ctx *Context) frameSet(sh *shape.Shape, candidates []term.Term, required bool, yield func(value.Value) bool) (bool, error) {
	itemSh, ok := ctx.Shapes.Get(sh.Item)
	if !ok {
		return false, ctx.wrap(ramperr.New(ramperr.MissingShape, "set %s references unknown shape %s", sh.ID, sh.Item))
	}
	var items []value.Value
	for _, cand := range candidates {
		var got value.Value
		matched := false
		_, err := ctx.frameShape(itemSh, []term.Term{cand}, false, func(v value.Value) bool {
			got = v
			matched = true
			return false
		})
		if err != nil {
			return false, err
		}
		if matched {
			items = append(items, got)
		}
	}
	if len(items) < sh.MinCount {
		return false, ctx.wrap(ramperr.New(ramperr.MinCountNotMet, "set %s matched %d items, need at least %d", sh.ID, len(items), sh.MinCount))
	}
	if sh.MaxCount > 0 && len(items) > sh.MaxCount {
		return false, ctx.wrap(ramperr.New(ramperr.MaxCountExceeded, "set %s matched %d items, at most %d allowed", sh.ID, len(items), sh.MaxCount))
	}
	v := value.Array(items...)
	ctx.vars[sh.ID] = v
	if !yield(v) {
		return true, nil
	}
	return false, nil
}

func (ctx *Context) frameOptional(sh *shape.Shape, candidates []term.Term, required bool, yield func(value.Value) bool) (bool, error) {
	itemSh, ok := ctx.Shapes.Get(sh.Item)
	if !ok {
		return false, ctx.wrap(ramperr.New(ramperr.MissingShape, "optional %s references unknown shape %s", sh.ID, sh.Item))
	}
	produced := false
	stopped, err := ctx.frameShape(itemSh, candidates, false, func(v value.Value) bool {
		produced = true
		return yield(v)
	})
	if err != nil {
		return false, err
	}
	if stopped {
		return true, nil
	}
	if !produced {
		v := nativeToValue(sh.EmptyValue)
		ctx.vars[sh.ID] = v
		if !yield(v) {
			return true, nil
		}
	}
	return false, nil
}

func (ctx *Context) frameList(sh *shape.Shape, candidates []term.Term, required bool, yield func(value.Value) bool) (bool, error) {
	itemSh, ok := ctx.Shapes.Get(sh.Item)
	if !ok {
		return false, ctx.wrap(ramperr.New(ramperr.MissingShape, "list %s references unknown shape %s", sh.ID, sh.Item))
	}
	matched := false
	for _, cand := range candidates {
		if !term.IsResource(cand) && !cand.Equal(sh.Nil) {
			continue
		}
		items, err := ctx.walkList(sh, itemSh, cand)
		if err != nil {
			return false, err
		}
		matched = true
		v := value.Array(items...)
		ctx.vars[sh.ID] = v
		if !yield(v) {
			return true, nil
		}
	}
	if !matched && required {
		return false, ctx.wrap(ramperr.New(ramperr.ShapeMismatch, "no candidate matched list shape %s", sh.ID))
	}
	return false, nil
}

// walkList follows HeadPath/TailPath from start to Nil, requiring
// exactly one head and one tail match at each node. A node revisited
// during the same walk means a cyclic RDF list, reported as
// CyclicMatch rather than looping forever.
func (ctx *Context) walkList(sh *shape.Shape, itemSh *shape.Shape, start term.Term) ([]value.Value, error) {
	var items []value.Value
	cur := start
	seen := map[string]bool{}
	for !cur.Equal(sh.Nil) {
		k := cur.String()
		if seen[k] {
			return nil, ctx.wrap(ramperr.New(ramperr.CyclicMatch, "list traversal revisited node %s", cur))
		}
		seen[k] = true

		heads := shape.Eval(ctx.Dataset, sh.HeadPath, []term.Term{cur})
		if len(heads) == 0 {
			return nil, ctx.wrap(ramperr.New(ramperr.NoListHeadMatches, "list node %s has no head", cur))
		}
		if len(heads) > 1 {
			return nil, ctx.wrap(ramperr.New(ramperr.MultipleListHeadMatches, "list node %s has %d heads", cur, len(heads)))
		}

		var headVal value.Value
		found := false
		_, err := ctx.frameShape(itemSh, heads, true, func(v value.Value) bool {
			headVal = v
			found = true
			return false
		})
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, ctx.wrap(ramperr.New(ramperr.ShapeMismatch, "list node %s head did not match item shape", cur))
		}
		items = append(items, headVal)

		tails := shape.Eval(ctx.Dataset, sh.TailPath, []term.Term{cur})
		if len(tails) == 0 {
			return nil, ctx.wrap(ramperr.New(ramperr.NoListTailMatches, "list node %s has no tail", cur))
		}
		if len(tails) > 1 {
			return nil, ctx.wrap(ramperr.New(ramperr.MultipleListTailMatches, "list node %s has %d tails", cur, len(tails)))
		}
		cur = tails[0]
	}
	return items, nil
}

// frameMap treats each candidate as one entry: Key resolves and
// extracts the map key directly from the candidate term, and Value (or,
// absent that, Item) frames the candidate into the entry's value.
func (ctx *Context) frameMap(sh *shape.Shape, candidates []term.Term, required bool, yield func(value.Value) bool) (bool, error) {
	itemSh, ok := ctx.Shapes.Get(sh.Item)
	if !ok {
		return false, ctx.wrap(ramperr.New(ramperr.MissingShape, "map %s references unknown shape %s", sh.ID, sh.Item))
	}
	keySh, ok := ctx.Shapes.Get(sh.Key.Target)
	if !ok {
		return false, ctx.wrap(ramperr.New(ramperr.MissingShape, "map %s key references unknown shape %s", sh.ID, sh.Key.Target))
	}
	var valueSh *shape.Shape
	if sh.Value != nil {
		valueSh, ok = ctx.Shapes.Get(sh.Value.Target)
		if !ok {
			return false, ctx.wrap(ramperr.New(ramperr.MissingShape, "map %s value references unknown shape %s", sh.ID, sh.Value.Target))
		}
	}

	fields := map[string]value.Value{}
	for _, cand := range candidates {
		keyOK, err := shape.Matches(keySh, cand, false)
		if err != nil {
			return false, ctx.wrap(err)
		}
		if !keyOK {
			continue
		}
		kv, err := extractPart(cand, sh.Key.Part)
		if err != nil {
			return false, ctx.wrap(err)
		}
		k := kv.String()
		if _, exists := fields[k]; exists {
			return false, ctx.wrap(ramperr.New(ramperr.CompositeMapKey, "map %s: duplicate key %q", sh.ID, k))
		}

		entryShape := itemSh
		if valueSh != nil {
			entryShape = valueSh
		}
		var v value.Value
		found := false
		_, err = ctx.frameShape(entryShape, []term.Term{cand}, false, func(vv value.Value) bool {
			v = vv
			found = true
			return false
		})
		if err != nil {
			return false, err
		}
		if !found {
			continue
		}
		fields[k] = v
	}
	mv := value.Record(fields)
	ctx.vars[sh.ID] = mv
	if !yield(mv) {
		return true, nil
	}
	return false, nil
}

func extractPart(t term.Term, part shape.Part) (value.Value, error) {
	switch part {
	case shape.PartWhole:
		return value.FromTerm(t), nil
	case shape.PartValue, shape.PartDatatype, shape.PartLanguage:
		lit, ok := t.(term.Literal)
		if !ok {
			return value.Value{}, ramperr.New(ramperr.ShapeMismatch, "cannot extract a literal facet from non-literal term %s", t)
		}
		switch part {
		case shape.PartValue:
			return value.String(lit.Value), nil
		case shape.PartDatatype:
			return value.String(string(lit.Datatype)), nil
		default:
			return value.String(lit.Lang), nil
		}
	default:
		return value.Value{}, ramperr.New(ramperr.ShapeMismatch, "unknown reference part")
	}
}

// nativeToValue converts the raw interface{} stored in Shape.EmptyValue
// (kept untyped to avoid an import cycle between shape and value) back
// into a Value.
func nativeToValue(raw interface{}) value.Value {
	switch x := raw.(type) {
	case nil:
		return value.Null()
	case value.Value:
		return x
	case bool:
		return value.Bool(x)
	case float64:
		return value.Number(x)
	case int:
		return value.Number(float64(x))
	case string:
		return value.String(x)
	case []interface{}:
		items := make([]value.Value, len(x))
		for i, e := range x {
			items[i] = nativeToValue(e)
		}
		return value.Array(items...)
	case map[string]interface{}:
		fields := make(map[string]value.Value, len(x))
		for k, e := range x {
			fields[k] = nativeToValue(e)
		}
		return value.Record(fields)
	default:
		return value.Null()
	}
}
