// Package ramp contains constants of the shapes-for-shapes bootstrap
// vocabulary: the canonical IRIs used to describe a shape schema itself
// as RDF, so that the shape algebra can be framed and flattened against
// its own encoding.
package ramp

import "github.com/cayleygraph/ramp/voc"

func init() {
	voc.RegisterPrefix(Prefix, NS)
}

const (
	NS     = `http://cayleygraph.org/ramp#`
	Prefix = `ramp:`
)

const (
	// Shape variant classes.
	Shape    = Prefix + `Shape`
	Record   = Prefix + `Record`
	AnyOf    = Prefix + `AnyOf`
	Set      = Prefix + `Set`
	Optional = Prefix + `Optional`
	Resource = Prefix + `Resource`
	Literal  = Prefix + `Literal`
	List     = Prefix + `List`
	Map      = Prefix + `Map`

	// Properties.
	Property     = Prefix + `property`
	TypeProperty = Prefix + `typeProperty`
	Item         = Prefix + `item`
	MinCount     = Prefix + `minCount`
	MaxCount     = Prefix + `maxCount`
	HeadPath     = Prefix + `headPath`
	TailPath     = Prefix + `tailPath`
	Nil          = Prefix + `nil`
	MapKey       = Prefix + `mapKey`
	MapValue     = Prefix + `mapValue`
	TermValue    = Prefix + `termValue`
	TermDatatype = Prefix + `termDatatype`
	TermLanguage = Prefix + `termLanguage`
	Vocabulary   = Prefix + `vocabulary`
	KeepAsTerm   = Prefix + `keepAsTerm`
	Name         = Prefix + `name`
	Path         = Prefix + `path`
	Transient    = Prefix + `transient`
	OnlyNamed    = Prefix + `onlyNamed`
	Variant      = Prefix + `variant`
)
