package value

import (
	"strconv"
	"strings"

	"github.com/cayleygraph/ramp/ramperr"
	"github.com/cayleygraph/ramp/shape"
	"github.com/cayleygraph/ramp/term"
	"github.com/cayleygraph/ramp/voc/xsd"
)

// FromRDF converts an RDF term matched by sh into a native Value. sh
// must be a terminal shape (resource or literal); the caller (the
// frame package) is responsible for having already confirmed the term
// matches sh via shape.Matches.
//
// The default mapper composes right-to-left: vocabulary resolution (for
// resource shapes carrying a Vocabulary) then native-type conversion
// (for literal shapes).
func FromRDF(t term.Term, sh *shape.Shape) (Value, error) {
	if sh.KeepAsTerm {
		return FromTerm(t), nil
	}
	switch sh.Variant {
	case shape.VariantResource:
		return resourceFromRDF(t, sh)
	case shape.VariantLiteral:
		return literalFromRDF(t, sh)
	default:
		return Value{}, ramperr.New(ramperr.ShapeMismatch, "FromRDF called on non-terminal shape %s", sh.ID)
	}
}

func resourceFromRDF(t term.Term, sh *shape.Shape) (Value, error) {
	if sh.Vocabulary != nil {
		nn, ok := t.(term.NamedNode)
		if !ok {
			return Value{}, ramperr.New(ramperr.NonMatchingTermType, "vocabulary resource shape requires a named node, got %s", t.TermKind())
		}
		key, ok := sh.Vocabulary.KeyFor(nn)
		if !ok {
			return Value{}, ramperr.New(ramperr.CannotSynthesizeValue, "term %s is not a member of the shape's vocabulary", t)
		}
		return String(key), nil
	}
	switch n := t.(type) {
	case term.NamedNode:
		return String(string(n)), nil
	case term.BlankNode:
		return String("_:" + string(n)), nil
	default:
		return Value{}, ramperr.New(ramperr.NonMatchingTermType, "expected a named or blank node, got %s", t.TermKind())
	}
}

func literalFromRDF(t term.Term, sh *shape.Shape) (Value, error) {
	lit, ok := t.(term.Literal)
	if !ok {
		return Value{}, ramperr.New(ramperr.NonMatchingTermType, "expected a literal, got %s", t.TermKind())
	}
	switch string(lit.Datatype) {
	case xsd.Boolean:
		return Bool(lit.Value != "false"), nil
	case xsd.Integer, xsd.NonNegativeInteger:
		n, err := strconv.ParseInt(lit.Value, 10, 64)
		if err != nil {
			return Value{}, ramperr.New(ramperr.CannotSynthesizeValue, "invalid %s lexical form %q", lit.Datatype, lit.Value)
		}
		return Number(float64(n)), nil
	case xsd.Decimal, xsd.Double:
		n, err := strconv.ParseFloat(lit.Value, 64)
		if err != nil {
			return Value{}, ramperr.New(ramperr.CannotSynthesizeValue, "invalid %s lexical form %q", lit.Datatype, lit.Value)
		}
		return Number(n), nil
	default:
		// xsd:string, rdf:langString (any lang-tagged literal), or an
		// unrecognized datatype: fall back to the lexical value.
		return String(lit.Value), nil
	}
}

// ToRDF converts a native Value back into an RDF term per sh, the
// inverse of FromRDF. When sh carries a FixedValue, ToRDF
// still re-derives the term from v rather than short-circuiting to
// FixedValue, so that a caller passing an inconsistent v is told so
// rather than silently ignored; shape.Matches on the result catches the
// mismatch.
func ToRDF(v Value, sh *shape.Shape) (term.Term, error) {
	if sh.KeepAsTerm {
		if v.Kind != KindTerm {
			return nil, ramperr.New(ramperr.ShapeMismatch, "shape %s keeps terms as-is but value is not a term", sh.ID)
		}
		return v.Term(), nil
	}
	switch sh.Variant {
	case shape.VariantResource:
		return resourceToRDF(v, sh)
	case shape.VariantLiteral:
		return literalToRDF(v, sh)
	default:
		return nil, ramperr.New(ramperr.ShapeMismatch, "ToRDF called on non-terminal shape %s", sh.ID)
	}
}

func resourceToRDF(v Value, sh *shape.Shape) (term.Term, error) {
	if sh.Vocabulary != nil {
		if v.Kind != KindString {
			return nil, ramperr.New(ramperr.ShapeMismatch, "vocabulary resource shape requires a string value")
		}
		iri, ok := sh.Vocabulary.TermFor(v.String())
		if !ok {
			return nil, ramperr.New(ramperr.CannotSynthesizeValue, "key %q is not a member of the shape's vocabulary", v.String())
		}
		return iri, nil
	}
	if v.Kind != KindString {
		return nil, ramperr.New(ramperr.ShapeMismatch, "resource shape requires a string value")
	}
	s := v.String()
	if strings.HasPrefix(s, "_:") {
		return term.BlankNode(s[2:]), nil
	}
	return term.NamedNode(s), nil
}

func literalToRDF(v Value, sh *shape.Shape) (term.Term, error) {
	if sh.Lang != "" {
		if v.Kind != KindString {
			return nil, ramperr.New(ramperr.ShapeMismatch, "language-tagged literal shape requires a string value")
		}
		return term.NewLangLiteral(v.String(), sh.Lang), nil
	}
	switch string(sh.Datatype) {
	case xsd.Boolean:
		if v.Kind != KindBool {
			return nil, ramperr.New(ramperr.ShapeMismatch, "literal shape %s requires a bool value", sh.ID)
		}
		if v.Bool() {
			return term.NewLiteral("true", sh.Datatype), nil
		}
		return term.NewLiteral("false", sh.Datatype), nil
	case xsd.Integer, xsd.NonNegativeInteger:
		if v.Kind != KindNumber {
			return nil, ramperr.New(ramperr.ShapeMismatch, "literal shape %s requires a numeric value", sh.ID)
		}
		return term.NewLiteral(strconv.FormatInt(int64(v.Number()), 10), sh.Datatype), nil
	case xsd.Decimal, xsd.Double:
		if v.Kind != KindNumber {
			return nil, ramperr.New(ramperr.ShapeMismatch, "literal shape %s requires a numeric value", sh.ID)
		}
		return term.NewLiteral(strconv.FormatFloat(v.Number(), 'g', -1, 64), sh.Datatype), nil
	default:
		if v.Kind != KindString {
			return nil, ramperr.New(ramperr.ShapeMismatch, "literal shape %s requires a string value", sh.ID)
		}
		return term.NewLiteral(v.String(), sh.Datatype), nil
	}
}
