package term

// Dataset is a logical, in-memory set of quads. It supports
// add/delete/has/size and match queries against any combination of
// (subject?, predicate?, object?, graph?).
//
// Two secondary indices are maintained because property-path traversal
// (frame, querygen) dominates lookup cost: (subject,predicate) ->
// quads and (object,predicate) -> quads. Both are built lazily on
// first Match call that can use them.
//
// Dataset is not safe for concurrent modification; concurrent reads by
// multiple framer/flattener traversals are fine since framing never
// mutates the dataset.
type Dataset struct {
	quads []Quad

	spIndex map[spKey][]int
	poIndex map[poKey][]int
	built   bool
}

type spKey struct {
	s, p uint32
	sStr string
	pStr string
}

type poKey struct {
	p, o uint32
	pStr string
	oStr string
}

// NewDataset returns an empty Dataset.
func NewDataset() *Dataset {
	return &Dataset{}
}

// NewDatasetFromQuads returns a Dataset seeded with the given quads.
func NewDatasetFromQuads(qs []Quad) *Dataset {
	d := NewDataset()
	for _, q := range qs {
		d.Add(q)
	}
	return d
}

// Add inserts a quad into the dataset. Duplicate quads are not
// deduplicated at insert time; callers that need deduplicated results
// dedupe after Match.
func (d *Dataset) Add(q Quad) {
	d.quads = append(d.quads, q)
	d.built = false
}

// Delete removes the first quad structurally equal to q, if present.
// Reports whether a quad was removed.
func (d *Dataset) Delete(q Quad) bool {
	for i, e := range d.quads {
		if e.Equal(q) {
			d.quads = append(d.quads[:i], d.quads[i+1:]...)
			d.built = false
			return true
		}
	}
	return false
}

// Has reports whether a quad structurally equal to q is in the dataset.
func (d *Dataset) Has(q Quad) bool {
	for _, e := range d.quads {
		if e.Equal(q) {
			return true
		}
	}
	return false
}

// Size returns the number of quads in the dataset.
func (d *Dataset) Size() int { return len(d.quads) }

// All returns every quad in the dataset, in insertion order. Callers
// must not mutate the returned slice.
func (d *Dataset) All() []Quad { return d.quads }

func (d *Dataset) ensureIndex() {
	if d.built {
		return
	}
	d.spIndex = make(map[spKey][]int, len(d.quads))
	d.poIndex = make(map[poKey][]int, len(d.quads))
	for i, q := range d.quads {
		if q.Subject != nil && q.Predicate != nil {
			k := spKey{s: q.Subject.Hash(), p: q.Predicate.Hash(), sStr: q.Subject.String(), pStr: q.Predicate.String()}
			d.spIndex[k] = append(d.spIndex[k], i)
		}
		if q.Predicate != nil && q.Object != nil {
			k := poKey{p: q.Predicate.Hash(), o: q.Object.Hash(), pStr: q.Predicate.String(), oStr: q.Object.String()}
			d.poIndex[k] = append(d.poIndex[k], i)
		}
	}
	d.built = true
}

// Match returns every quad matching the given constraints; a nil term
// for a position means "any". Graph filtering, when graph is non-nil,
// is applied last.
//
// Index selection: if both subject and predicate are given, use the
// sp-index; else if both predicate and object are given, use the
// po-index; otherwise a linear scan.
func (d *Dataset) Match(subject, predicate, object, graph Term) []Quad {
	var candidates []Quad
	switch {
	case subject != nil && predicate != nil:
		d.ensureIndex()
		k := spKey{s: subject.Hash(), p: predicate.Hash(), sStr: subject.String(), pStr: predicate.String()}
		for _, i := range d.spIndex[k] {
			candidates = append(candidates, d.quads[i])
		}
	case predicate != nil && object != nil:
		d.ensureIndex()
		k := poKey{p: predicate.Hash(), o: object.Hash(), pStr: predicate.String(), oStr: object.String()}
		for _, i := range d.poIndex[k] {
			candidates = append(candidates, d.quads[i])
		}
	default:
		candidates = d.quads
	}

	out := make([]Quad, 0, len(candidates))
	for _, q := range candidates {
		if subject != nil && !termsEqual(q.Subject, subject) {
			continue
		}
		if predicate != nil && !termsEqual(q.Predicate, predicate) {
			continue
		}
		if object != nil && !termsEqual(q.Object, object) {
			continue
		}
		if graph != nil && !q.GraphOrDefault().Equal(graph) {
			continue
		}
		out = append(out, q)
	}
	return out
}
