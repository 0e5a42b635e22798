// Package xsd contains constants of the XML Schema Datatypes vocabulary (XSD)
// used by the term and value packages to recognize native scalar types.
package xsd

import "github.com/cayleygraph/ramp/voc"

func init() {
	voc.RegisterPrefix(Prefix, NS)
}

const (
	NS     = `http://www.w3.org/2001/XMLSchema#`
	Prefix = `xsd:`
)

const (
	String             = Prefix + `string`
	Boolean            = Prefix + `boolean`
	Integer            = Prefix + `integer`
	NonNegativeInteger = Prefix + `nonNegativeInteger`
	Decimal            = Prefix + `decimal`
	Double             = Prefix + `double`
)
