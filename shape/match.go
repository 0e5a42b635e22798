package shape

import (
	"github.com/cayleygraph/ramp/ramperr"
	"github.com/cayleygraph/ramp/term"
)

// Matches is the primitive tested at resource/literal leaves. When
// required is true, a mismatch returns a coded *ramperr.Error instead
// of (false, nil). Flatten checks every term it generates in required
// mode; frame calls Matches in non-required mode and reports a required
// shape that no candidate matched itself, as ShapeMismatch.
func Matches(sh *Shape, t term.Term, required bool) (bool, error) {
	switch sh.Variant {
	case VariantResource:
		return matchesResource(sh, t, required)
	case VariantLiteral:
		return matchesLiteral(sh, t, required)
	default:
		// non-terminal shapes are matched structurally elsewhere; asking
		// Matches of them is a programmer error in frame/flatten.
		return false, ramperr.New(ramperr.ShapeMismatch, "Matches called on non-terminal shape %s (%s)", sh.ID, sh.Variant)
	}
}

func fail(required bool, code ramperr.Code, format string, args ...interface{}) (bool, error) {
	if !required {
		return false, nil
	}
	return false, ramperr.New(code, format, args...)
}

func matchesResource(sh *Shape, t term.Term, required bool) (bool, error) {
	if !term.IsResource(t) {
		return fail(required, ramperr.NonMatchingTermType, "expected a named or blank node, got %s", t.TermKind())
	}
	if sh.OnlyNamed && t.TermKind() != term.KindNamedNode {
		return fail(required, ramperr.NonMatchingTermType, "expected a named node, got %s", t.TermKind())
	}
	if sh.FixedValue != nil && !sh.FixedValue.Equal(t) {
		return fail(required, ramperr.NonMatchingTermValue, "expected term %s, got %s", sh.FixedValue, t)
	}
	return true, nil
}

func matchesLiteral(sh *Shape, t term.Term, required bool) (bool, error) {
	lit, ok := t.(term.Literal)
	if !ok {
		return fail(required, ramperr.NonMatchingTermType, "expected a literal, got %s", t.TermKind())
	}
	if sh.Datatype != "" && lit.Datatype != sh.Datatype {
		return fail(required, ramperr.NonMatchingLiteralDatatype, "expected datatype %s, got %s", sh.Datatype, lit.Datatype)
	}
	if sh.Lang != "" && lit.Lang != sh.Lang {
		return fail(required, ramperr.NonMatchingLiteralLanguage, "expected language %q, got %q", sh.Lang, lit.Lang)
	}
	if sh.FixedValue != nil && !sh.FixedValue.Equal(t) {
		return fail(required, ramperr.NonMatchingTermValue, "expected term %s, got %s", sh.FixedValue, t)
	}
	return true, nil
}
