package flatten

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/cayleygraph/ramp/ramperr"
	"github.com/cayleygraph/ramp/shape"
	"github.com/cayleygraph/ramp/term"
	"github.com/cayleygraph/ramp/value"
)

// Flatten converts v into quads per the shape named rootID, returning
// the dataset written and the root's own subject/term.
func Flatten(shapes *shape.Set, rootID shape.ShapeID, v value.Value) (*term.Dataset, term.Term, error) {
	root, ok := shapes.Get(rootID)
	if !ok {
		return nil, nil, ramperr.New(ramperr.MissingShape, "no shape named %s in the given set", rootID)
	}
	ctx := newContext(shapes)
	ts, err := ctx.flattenShape(root, v)
	if err != nil {
		return nil, nil, err
	}
	if len(ts) == 0 {
		return nil, nil, ramperr.New(ramperr.CannotSynthesizeSubject, "root shape %s produced no subject for the given value", rootID)
	}
	return term.NewDatasetFromQuads(ctx.quads), ts[0], nil
}

// flattenShape is the generative counterpart to frame's frameShape: it
// returns the object terms that connect to v's enclosing edge, which is
// exactly one term for every variant except set/map (zero or more) and
// optional (zero or one).
func (ctx *Context) flattenShape(sh *shape.Shape, v value.Value) ([]term.Term, error) {
	switch sh.Variant {
	case shape.VariantResource, shape.VariantLiteral:
		return ctx.flattenTerminal(sh, v)
	case shape.VariantRecord:
		return ctx.flattenRecord(sh, v)
	case shape.VariantUnion:
		return ctx.flattenUnion(sh, v)
	case shape.VariantSet:
		return ctx.flattenSet(sh, v)
	case shape.VariantOptional:
		return ctx.flattenOptional(sh, v)
	case shape.VariantList:
		return ctx.flattenList(sh, v)
	case shape.VariantMap:
		return ctx.flattenMap(sh, v)
	default:
		return nil, ctx.wrap(ramperr.New(ramperr.ShapeMismatch, "shape %s has no variant set", sh.ID))
	}
}

func (ctx *Context) flattenTerminal(sh *shape.Shape, v value.Value) ([]term.Term, error) {
	t, err := value.ToRDF(v, sh)
	if err != nil {
		return nil, ctx.wrap(err)
	}
	if ok, err := shape.Matches(sh, t, true); !ok {
		return nil, ctx.wrap(err)
	}
	return []term.Term{t}, nil
}

func (ctx *Context) flattenRecord(sh *shape.Shape, v value.Value) ([]term.Term, error) {
	if v.Kind != value.KindRecord {
		return nil, ctx.wrap(ramperr.New(ramperr.ShapeMismatch, "shape %s requires a record value", sh.ID))
	}
	subj, err := ctx.subjectFor(sh, v)
	if err != nil {
		return nil, err
	}

	vkey := string(sh.ID) + "|" + subj.String()
	if ctx.visiting[vkey] {
		return nil, ctx.wrap(ramperr.New(ramperr.CyclicMatch, "shape %s revisited subject %s before its generation completed", sh.ID, subj))
	}
	ctx.visiting[vkey] = true
	defer delete(ctx.visiting, vkey)

	ctx.push(ramperr.Frame{ShapeID: string(sh.ID), Focus: subj})
	defer ctx.pop()

	rec := v.Record()
	all := append(append([]shape.ObjectProperty{}, sh.TypeProperties...), sh.Properties...)
	for _, p := range all {
		if p.Transient || p.Path.IsSelf() {
			continue
		}
		fv, ok := rec[p.Name]
		if !ok {
			continue
		}
		valueSh, ok := ctx.Shapes.Get(p.ValueShape)
		if !ok {
			return nil, ctx.wrap(ramperr.New(ramperr.MissingShape, "shape %s references unknown shape %s", sh.ID, p.ValueShape))
		}
		objs, err := ctx.flattenShape(valueSh, fv)
		if err != nil {
			return nil, err
		}
		for _, obj := range objs {
			ctx.emitAlongPath(subj, p.Path, obj)
		}
	}
	return []term.Term{subj}, nil
}

// subjectFor resolves a record's own subject node, memoized by
// (shape, value) so repeated appearances of the same value in the
// native tree flatten to the same node. When the record has one or
// more self-path properties, their flattened terms decide the subject:
// a named node wins outright (it must be unique); otherwise the last
// blank node found is used; failing either, a fresh blank node is
// synthesized.
func (ctx *Context) subjectFor(sh *shape.Shape, v value.Value) (term.Term, error) {
	key := string(sh.ID) + "#" + valueKey(v)
	if t, ok := ctx.cache[key]; ok {
		return t, nil
	}
	if ctx.resolvingSubject[key] {
		return nil, ctx.wrap(ramperr.New(ramperr.CyclicMatch, "shape %s's subject depends on itself through a self-path property", sh.ID))
	}
	ctx.resolvingSubject[key] = true
	defer delete(ctx.resolvingSubject, key)

	rec := v.Record()
	var named, lastBlank term.Term
	all := append(append([]shape.ObjectProperty{}, sh.TypeProperties...), sh.Properties...)
	for _, p := range all {
		if !p.Path.IsSelf() {
			continue
		}
		fv, ok := rec[p.Name]
		if !ok {
			continue
		}
		valueSh, ok := ctx.Shapes.Get(p.ValueShape)
		if !ok {
			continue
		}
		ts, err := ctx.flattenShape(valueSh, fv)
		if err != nil {
			return nil, err
		}
		if len(ts) == 0 {
			continue
		}
		t := ts[0]
		if t.TermKind() == term.KindNamedNode {
			if named != nil && !named.Equal(t) {
				return nil, ctx.wrap(ramperr.New(ramperr.CannotSynthesizeSubject, "shape %s has conflicting named subjects %s and %s", sh.ID, named, t))
			}
			named = t
		} else if term.IsResource(t) {
			lastBlank = t
		}
	}

	var subj term.Term
	switch {
	case named != nil:
		subj = named
	case lastBlank != nil:
		subj = lastBlank
	default:
		subj = ctx.freshBlank()
	}
	ctx.cache[key] = subj
	return subj, nil
}

func (ctx *Context) flattenUnion(sh *shape.Shape, v value.Value) ([]term.Term, error) {
	var lastErr error
	for _, vid := range sh.Variants {
		vsh, ok := ctx.Shapes.Get(vid)
		if !ok {
			return nil, ctx.wrap(ramperr.New(ramperr.MissingShape, "union %s references unknown shape %s", sh.ID, vid))
		}
		ts, err := ctx.attempt(func() ([]term.Term, error) { return ctx.flattenShape(vsh, v) })
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return nil, ctx.wrap(ramperr.New(ramperr.ShapeMismatch, "no variant of union %s accepted the value (last: %v)", sh.ID, lastErr))
}

func (ctx *Context) flattenSet(sh *shape.Shape, v value.Value) ([]term.Term, error) {
	if v.Kind != value.KindArray {
		return nil, ctx.wrap(ramperr.New(ramperr.ShapeMismatch, "set shape %s requires an array value", sh.ID))
	}
	itemSh, ok := ctx.Shapes.Get(sh.Item)
	if !ok {
		return nil, ctx.wrap(ramperr.New(ramperr.MissingShape, "set %s references unknown shape %s", sh.ID, sh.Item))
	}
	var out []term.Term
	for _, item := range v.Array() {
		ts, err := ctx.flattenShape(itemSh, item)
		if err != nil {
			return nil, err
		}
		out = append(out, ts...)
	}
	if len(out) < sh.MinCount {
		return nil, ctx.wrap(ramperr.New(ramperr.MinCountNotMet, "set %s has %d items, need at least %d", sh.ID, len(out), sh.MinCount))
	}
	if sh.MaxCount > 0 && len(out) > sh.MaxCount {
		return nil, ctx.wrap(ramperr.New(ramperr.MaxCountExceeded, "set %s has %d items, at most %d allowed", sh.ID, len(out), sh.MaxCount))
	}
	return out, nil
}

func (ctx *Context) flattenOptional(sh *shape.Shape, v value.Value) ([]term.Term, error) {
	if valueEqualsEmpty(v, sh.EmptyValue) {
		return nil, nil
	}
	itemSh, ok := ctx.Shapes.Get(sh.Item)
	if !ok {
		return nil, ctx.wrap(ramperr.New(ramperr.MissingShape, "optional %s references unknown shape %s", sh.ID, sh.Item))
	}
	ts, err := ctx.attempt(func() ([]term.Term, error) { return ctx.flattenShape(itemSh, v) })
	if err != nil {
		// the value didn't fit the item shape either: treat it the same
		// as the empty case rather than failing the whole record.
		return nil, nil
	}
	return ts, nil
}

func valueEqualsEmpty(v value.Value, empty interface{}) bool {
	return v.Equal(nativeToValue(empty))
}

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

// flattenList builds an RDF-linked-list chain of blank nodes via
// HeadPath/TailPath, terminating at Nil. Only plain predicate head/tail
// paths are supported for generation (the common rdf:first/rdf:rest
// case and any shape built the same way); a HeadPath/TailPath built
// from a richer path expression cannot be mechanically inverted and is
// rejected.
func (ctx *Context) flattenList(sh *shape.Shape, v value.Value) ([]term.Term, error) {
	if v.Kind != value.KindArray {
		return nil, ctx.wrap(ramperr.New(ramperr.ShapeMismatch, "list shape %s requires an array value", sh.ID))
	}
	if sh.HeadPath.Kind != shape.PathPredicate || sh.TailPath.Kind != shape.PathPredicate {
		return nil, ctx.wrap(ramperr.New(ramperr.ShapeMismatch, "list shape %s has a head/tail path flatten cannot generate", sh.ID))
	}
	itemSh, ok := ctx.Shapes.Get(sh.Item)
	if !ok {
		return nil, ctx.wrap(ramperr.New(ramperr.MissingShape, "list %s references unknown shape %s", sh.ID, sh.Item))
	}
	items := v.Array()
	if len(items) == 0 {
		return []term.Term{sh.Nil}, nil
	}
	nodes := make([]term.BlankNode, len(items))
	for i := range items {
		nodes[i] = ctx.freshBlank()
	}
	for i, item := range items {
		ts, err := ctx.flattenShape(itemSh, item)
		if err != nil {
			return nil, err
		}
		if len(ts) == 0 {
			return nil, ctx.wrap(ramperr.New(ramperr.ShapeMismatch, "list %s item %d produced no term", sh.ID, i))
		}
		ctx.quads = append(ctx.quads, term.Quad{Subject: nodes[i], Predicate: sh.HeadPath.Pred, Object: ts[0]})
		var tail term.Term = sh.Nil
		if i+1 < len(nodes) {
			tail = nodes[i+1]
		}
		ctx.quads = append(ctx.quads, term.Quad{Subject: nodes[i], Predicate: sh.TailPath.Pred, Object: tail})
	}
	return []term.Term{nodes[0]}, nil
}

// flattenMap handles the common case where the map's Value reference is
// nil: the item shape alone, applied to each entry's value, already
// produces the correct term (e.g. a vocabulary-keyed resource whose key
// equals the map key). When Value is set, the value shape is flattened
// for each entry and the key is not separately re-emitted, since
// reconstructing a term from a bare Part (PartValue/Datatype/Language)
// without its sibling facets is not generally invertible.
func (ctx *Context) flattenMap(sh *shape.Shape, v value.Value) ([]term.Term, error) {
	if v.Kind != value.KindRecord {
		return nil, ctx.wrap(ramperr.New(ramperr.ShapeMismatch, "map shape %s requires a record value", sh.ID))
	}
	entrySh := sh.Item
	if sh.Value != nil {
		entrySh = sh.Value.Target
	}
	valueSh, ok := ctx.Shapes.Get(entrySh)
	if !ok {
		return nil, ctx.wrap(ramperr.New(ramperr.MissingShape, "map %s references unknown shape %s", sh.ID, entrySh))
	}
	var out []term.Term
	for _, k := range v.SortedKeys() {
		ts, err := ctx.flattenShape(valueSh, v.Record()[k])
		if err != nil {
			return nil, err
		}
		out = append(out, ts...)
	}
	return out, nil
}

// emitAlongPath writes the quad(s) connecting subj to obj along path.
// Plain predicate and single-inverse paths translate directly; a
// sequence of plain predicates synthesizes the intermediate blank
// nodes; alternative/star/plus paths have no single inverse and are not
// generated (a shape author who wants flatten to write through such a
// path should give the property a plain predicate path instead).
func (ctx *Context) emitAlongPath(subj term.Term, path shape.PropertyPath, obj term.Term) {
	switch path.Kind {
	case shape.PathPredicate:
		ctx.quads = append(ctx.quads, term.Quad{Subject: subj, Predicate: path.Pred, Object: obj})
	case shape.PathInverse:
		if path.Inner != nil && path.Inner.Kind == shape.PathPredicate {
			ctx.quads = append(ctx.quads, term.Quad{Subject: obj, Predicate: path.Inner.Pred, Object: subj})
		}
	case shape.PathSequence:
		cur := subj
		for i, part := range path.Parts {
			if i == len(path.Parts)-1 {
				ctx.emitAlongPath(cur, part, obj)
				return
			}
			if part.Kind != shape.PathPredicate {
				return
			}
			mid := ctx.freshBlank()
			ctx.quads = append(ctx.quads, term.Quad{Subject: cur, Predicate: part.Pred, Object: mid})
			cur = mid
		}
	}
}

// valueKey serializes v into a content-addressed string for the subject
// memo cache, keyed on structure rather than pointer identity (Value is
// a plain Go value, not a handle). Arrays and records are Go reference
// types under the hood, so a caller can construct a native value that
// genuinely contains itself (a map holding a Value built from that same
// map); seen guards against walking such a cycle forever by collapsing
// a revisited array/record into a fixed marker instead of recursing
// into it again.
func valueKey(v value.Value) string {
	var b strings.Builder
	writeValueKey(&b, v, map[uintptr]bool{})
	return b.String()
}

func writeValueKey(b *strings.Builder, v value.Value, seen map[uintptr]bool) {
	switch v.Kind {
	case value.KindNull:
		b.WriteString("n")
	case value.KindBool:
		if v.Bool() {
			b.WriteString("b1")
		} else {
			b.WriteString("b0")
		}
	case value.KindNumber:
		b.WriteString("d")
		b.WriteString(strconv.FormatFloat(v.Number(), 'g', -1, 64))
	case value.KindString:
		b.WriteString("s:")
		b.WriteString(v.String())
	case value.KindTerm:
		b.WriteString("t:")
		if t := v.Term(); t != nil {
			b.WriteString(t.String())
		}
	case value.KindArray:
		arr := v.Array()
		if len(arr) == 0 {
			b.WriteString("a[]")
			return
		}
		p := reflect.ValueOf(arr).Pointer()
		if seen[p] {
			b.WriteString("a<cycle>")
			return
		}
		seen[p] = true
		defer delete(seen, p)
		b.WriteString("a[")
		for _, e := range arr {
			writeValueKey(b, e, seen)
			b.WriteByte(',')
		}
		b.WriteByte(']')
	case value.KindRecord:
		rec := v.Record()
		if len(rec) == 0 {
			b.WriteString("r{}")
			return
		}
		p := reflect.ValueOf(rec).Pointer()
		if seen[p] {
			b.WriteString("r<cycle>")
			return
		}
		seen[p] = true
		defer delete(seen, p)
		b.WriteString("r{")
		for _, k := range v.SortedKeys() {
			b.WriteString(k)
			b.WriteByte('=')
			writeValueKey(b, rec[k], seen)
			b.WriteByte(';')
		}
		b.WriteByte('}')
	}
}
