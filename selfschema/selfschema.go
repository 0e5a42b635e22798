// Package selfschema builds the bootstrap shape set that describes the
// shape algebra itself as RDF, using the ramp: vocabulary: framing an
// RDF encoding of a Shape against Build()'s root shape yields a native
// record describing that shape, and flattening such a record
// regenerates the RDF encoding. This is what lets a shape schema
// describe itself rather than needing an external meta-schema.
//
// Property paths are represented by the IRI of the predicate they
// traverse (a resource reference), not by a recursive encoding of
// shape.PropertyPath itself; round-tripping the full path algebra as
// RDF would need a second, nested bootstrap layer, which this package
// does not attempt.
package selfschema

import (
	"github.com/cayleygraph/ramp/shape"
	"github.com/cayleygraph/ramp/term"
	"github.com/cayleygraph/ramp/voc/rdf"
	"github.com/cayleygraph/ramp/voc/ramp"
	"github.com/cayleygraph/ramp/voc/xsd"
)

// Schema is every shape Build produced, plus the ShapeID of each
// per-variant descriptor, for callers that want to frame/flatten one
// kind of shape description directly instead of through the root union.
type Schema struct {
	Set *shape.Set

	Root     shape.ShapeID
	Resource shape.ShapeID
	Literal  shape.ShapeID
	Record   shape.ShapeID
	Union    shape.ShapeID
	Set_     shape.ShapeID
	Optional shape.ShapeID
	List     shape.ShapeID
	Map      shape.ShapeID
}

// Build constructs the shapes-for-shapes bootstrap schema.
func Build() *Schema {
	b := shape.NewBuilder()

	str := b.Literal(shape.WithDatatype(xsd.String))
	boolean := b.Literal(shape.WithDatatype(xsd.Boolean))
	integer := b.Literal(shape.WithDatatype(xsd.Integer))
	ref := b.Resource(shape.KeepAsTerm()) // a bare reference to another shape, by IRI or blank id

	optBool := b.Optional("", boolean.ID, false)
	optInt := b.Optional("", integer.ID, 0)
	optRef := b.Optional("", ref.ID, nil)
	optStr := b.Optional("", str.ID, "")

	marker := func(iri string) shape.ShapeID {
		return b.Resource(shape.FixedResource(term.NamedNode(iri))).ID
	}
	typeProp := func(iri string) shape.ObjectProperty {
		return shape.Property("variant", term.NamedNode(rdf.Type), marker(iri))
	}

	property := b.Record("", nil, []shape.ObjectProperty{
		shape.Property("name", term.NamedNode(ramp.Name), str.ID),
		shape.Property("path", term.NamedNode(ramp.Path), ref.ID),
		shape.Property("value", term.NamedNode(ramp.Item), ref.ID),
		shape.Property("transient", term.NamedNode(ramp.Transient), optBool.ID),
	})

	literalDesc := b.Record("", []shape.ObjectProperty{typeProp(ramp.Literal)}, []shape.ObjectProperty{
		shape.Property("datatype", term.NamedNode(ramp.TermDatatype), optRef.ID),
		shape.Property("lang", term.NamedNode(ramp.TermLanguage), optStr.ID),
		shape.Property("keepAsTerm", term.NamedNode(ramp.KeepAsTerm), optBool.ID),
	})

	resourceDesc := b.Record("", []shape.ObjectProperty{typeProp(ramp.Resource)}, []shape.ObjectProperty{
		shape.Property("onlyNamed", term.NamedNode(ramp.OnlyNamed), optBool.ID),
		shape.Property("keepAsTerm", term.NamedNode(ramp.KeepAsTerm), optBool.ID),
	})

	propertySet := b.Set("", property.ID)
	recordDesc := b.Record("", []shape.ObjectProperty{typeProp(ramp.Record)}, []shape.ObjectProperty{
		shape.Property("properties", term.NamedNode(ramp.Property), propertySet.ID),
		shape.Property("typeProperties", term.NamedNode(ramp.TypeProperty), propertySet.ID),
	})

	variantSet := b.Set("", ref.ID)
	unionDesc := b.Record("", []shape.ObjectProperty{typeProp(ramp.AnyOf)}, []shape.ObjectProperty{
		shape.Property("variants", term.NamedNode(ramp.Variant), variantSet.ID),
	})

	setDesc := b.Record("", []shape.ObjectProperty{typeProp(ramp.Set)}, []shape.ObjectProperty{
		shape.Property("item", term.NamedNode(ramp.Item), ref.ID),
		shape.Property("minCount", term.NamedNode(ramp.MinCount), optInt.ID),
		shape.Property("maxCount", term.NamedNode(ramp.MaxCount), optInt.ID),
	})

	optionalDesc := b.Record("", []shape.ObjectProperty{typeProp(ramp.Optional)}, []shape.ObjectProperty{
		shape.Property("item", term.NamedNode(ramp.Item), ref.ID),
	})

	listDesc := b.Record("", []shape.ObjectProperty{typeProp(ramp.List)}, []shape.ObjectProperty{
		shape.Property("item", term.NamedNode(ramp.Item), ref.ID),
		shape.Property("headPath", term.NamedNode(ramp.HeadPath), optRef.ID),
		shape.Property("tailPath", term.NamedNode(ramp.TailPath), optRef.ID),
		shape.Property("nilValue", term.NamedNode(ramp.Nil), optRef.ID),
	})

	mapDesc := b.Record("", []shape.ObjectProperty{typeProp(ramp.Map)}, []shape.ObjectProperty{
		shape.Property("item", term.NamedNode(ramp.Item), ref.ID),
		shape.Property("mapKey", term.NamedNode(ramp.MapKey), ref.ID),
		shape.Property("mapValue", term.NamedNode(ramp.MapValue), optRef.ID),
	})

	root := b.AnyOf("",
		resourceDesc.ID, literalDesc.ID, recordDesc.ID, unionDesc.ID,
		setDesc.ID, optionalDesc.ID, listDesc.ID, mapDesc.ID,
	)

	return &Schema{
		Set:      b.Build(),
		Root:     root.ID,
		Resource: resourceDesc.ID,
		Literal:  literalDesc.ID,
		Record:   recordDesc.ID,
		Union:    unionDesc.ID,
		Set_:     setDesc.ID,
		Optional: optionalDesc.ID,
		List:     listDesc.ID,
		Map:      mapDesc.ID,
	}
}
