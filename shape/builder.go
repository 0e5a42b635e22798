package shape

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"

	"github.com/cayleygraph/ramp/term"
)

// Builder constructs shapes with auto-assigned blank IDs. It is a
// convenience on top of the canonical Shape/Set representation; the
// algebra itself is the canonical form a Builder produces.
//
// Blank IDs are sequence-keyed by a random string generated per Builder,
// so that shapes produced by two independent builders never collide.
type Builder struct {
	prefix string
	seq    uint64
	shapes []*Shape
}

// NewBuilder returns a Builder seeded with a fresh random prefix.
func NewBuilder() *Builder {
	return &Builder{prefix: randomPrefix()}
}

func randomPrefix() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand failing is effectively unrecoverable, but a
		// fixed fallback keeps the builder usable in degraded sandboxes
		// rather than panicking on every shape built.
		return "fallback"
	}
	return hex.EncodeToString(b[:])
}

func (b *Builder) freshID() ShapeID {
	n := atomic.AddUint64(&b.seq, 1)
	return ShapeID(fmt.Sprintf("_:b%s_%d", b.prefix, n))
}

func (b *Builder) add(sh *Shape) *Shape {
	b.shapes = append(b.shapes, sh)
	return sh
}

func (b *Builder) idOrFresh(id ShapeID) ShapeID {
	if id == "" {
		return b.freshID()
	}
	return id
}

// ResourceOpt configures a Resource shape.
type ResourceOpt func(*Shape)

func WithID(id ShapeID) ResourceOpt       { return func(s *Shape) { s.ID = id } }
func OnlyNamed() ResourceOpt              { return func(s *Shape) { s.OnlyNamed = true } }
func KeepAsTerm() ResourceOpt             { return func(s *Shape) { s.KeepAsTerm = true } }
func WithVocabulary(v *Vocabulary) ResourceOpt {
	return func(s *Shape) { s.Vocabulary = v }
}
func FixedResource(t term.Term) ResourceOpt {
	return func(s *Shape) { s.FixedValue = t }
}

// Resource builds a resource shape.
func (b *Builder) Resource(opts ...ResourceOpt) *Shape {
	s := &Shape{Variant: VariantResource}
	for _, o := range opts {
		o(s)
	}
	s.ID = b.idOrFresh(s.ID)
	return b.add(s)
}

// LiteralOpt configures a Literal shape.
type LiteralOpt func(*Shape)

func WithDatatype(dt term.NamedNode) LiteralOpt { return func(s *Shape) { s.Datatype = dt } }
func WithLang(lang string) LiteralOpt           { return func(s *Shape) { s.Lang = lang } }
func FixedLiteral(lit term.Literal) LiteralOpt {
	return func(s *Shape) { s.FixedValue = lit }
}
func KeepLiteralAsTerm() LiteralOpt { return func(s *Shape) { s.KeepAsTerm = true } }
func WithLiteralID(id ShapeID) LiteralOpt { return func(s *Shape) { s.ID = id } }

// Literal builds a literal shape.
func (b *Builder) Literal(opts ...LiteralOpt) *Shape {
	s := &Shape{Variant: VariantLiteral}
	for _, o := range opts {
		o(s)
	}
	s.ID = b.idOrFresh(s.ID)
	return b.add(s)
}

// Constant builds a terminal shape that only matches t: a resource
// shape if t is a named/blank node, or a literal shape if t is a
// literal.
func (b *Builder) Constant(t term.Term) *Shape {
	switch t.TermKind() {
	case term.KindLiteral:
		return b.Literal(FixedLiteral(t.(term.Literal)))
	default:
		return b.Resource(FixedResource(t))
	}
}

// Record builds a record shape with the given ID (or a fresh blank ID
// if empty), discriminator ("type") properties, and regular properties.
func (b *Builder) Record(id ShapeID, typeProps, props []ObjectProperty) *Shape {
	s := &Shape{
		ID:             b.idOrFresh(id),
		Variant:        VariantRecord,
		TypeProperties: typeProps,
		Properties:     props,
	}
	return b.add(s)
}

// AnyOf builds a union shape over the given variants, tried in order:
// it yields from each variant in declared order.
func (b *Builder) AnyOf(id ShapeID, variants ...ShapeID) *Shape {
	s := &Shape{ID: b.idOrFresh(id), Variant: VariantUnion, Variants: variants}
	return b.add(s)
}

// SetOpt configures a Set shape.
type SetOpt func(*Shape)

func MinCount(n int) SetOpt { return func(s *Shape) { s.MinCount = n } }
func MaxCount(n int) SetOpt { return func(s *Shape) { s.MaxCount = n } }

// Set builds an unordered-collection shape over item.
func (b *Builder) Set(id ShapeID, item ShapeID, opts ...SetOpt) *Shape {
	s := &Shape{ID: b.idOrFresh(id), Variant: VariantSet, Item: item}
	for _, o := range opts {
		o(s)
	}
	return b.add(s)
}

// Optional builds a zero-or-one shape over item, substituting emptyValue
// when there is no match.
func (b *Builder) Optional(id ShapeID, item ShapeID, emptyValue interface{}) *Shape {
	s := &Shape{ID: b.idOrFresh(id), Variant: VariantOptional, Item: item, EmptyValue: emptyValue}
	return b.add(s)
}

// ListOpt configures a List shape.
type ListOpt func(*Shape)

func WithHeadPath(p PropertyPath) ListOpt { return func(s *Shape) { s.HeadPath = p } }
func WithTailPath(p PropertyPath) ListOpt { return func(s *Shape) { s.TailPath = p } }
func WithNil(t term.Term) ListOpt         { return func(s *Shape) { s.Nil = t } }

// List builds an RDF-linked-list shape over item, defaulting to
// rdf:first/rdf:rest/rdf:nil.
func (b *Builder) List(id ShapeID, item ShapeID, opts ...ListOpt) *Shape {
	s := &Shape{
		ID:       b.idOrFresh(id),
		Variant:  VariantList,
		Item:     item,
		HeadPath: Predicate(rdfFirst),
		TailPath: Predicate(rdfRest),
		Nil:      rdfNil,
	}
	for _, o := range opts {
		o(s)
	}
	return b.add(s)
}

// Map builds a keyed-collection shape over item, keyed by key and
// optionally re-deriving each item's value from value.
func (b *Builder) Map(id ShapeID, item ShapeID, key Reference, value *Reference) *Shape {
	s := &Shape{ID: b.idOrFresh(id), Variant: VariantMap, Item: item, Key: key, Value: value}
	return b.add(s)
}

// Build finalizes every shape the builder has produced into a Set.
func (b *Builder) Build() *Set {
	return NewSet(b.shapes...)
}

// Property returns an ObjectProperty reading/writing name via a single
// forward predicate p into valueShape.
func Property(name string, p term.NamedNode, valueShape ShapeID) ObjectProperty {
	return ObjectProperty{Name: name, Path: Predicate(p), ValueShape: valueShape}
}

// InverseProperty returns an ObjectProperty reading/writing name via the
// inverse of predicate p.
func InverseProperty(name string, p term.NamedNode, valueShape ShapeID) ObjectProperty {
	return ObjectProperty{Name: name, Path: Inverse(Predicate(p)), ValueShape: valueShape}
}

// PropertyPathProp returns an ObjectProperty over an arbitrary path.
func PropertyPathProp(name string, path PropertyPath, valueShape ShapeID) ObjectProperty {
	return ObjectProperty{Name: name, Path: path, ValueShape: valueShape}
}

// SelfProperty returns an ObjectProperty whose path is the self path:
// the matched term is the record's own subject.
func SelfProperty(name string, valueShape ShapeID) ObjectProperty {
	return ObjectProperty{Name: name, Path: Self(), ValueShape: valueShape}
}
