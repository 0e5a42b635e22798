// Package value defines the dynamic, JSON-like native value tree that
// framing produces and flattening consumes: null, bool, number, string,
// array, record (string-keyed), plus opaque kept-as-term wrappers.
package value

import (
	"fmt"
	"sort"

	"github.com/cayleygraph/ramp/term"
)

// Kind tags the arms of the tagged-sum native value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindRecord
	KindTerm
)

// Value is the tagged dynamic value produced by frame and consumed by
// flatten. Only the field matching Kind is meaningful.
type Value struct {
	Kind Kind

	bool   bool
	num    float64
	str    string
	arr    []Value
	rec    map[string]Value
	term   term.Term
}

func Null() Value                 { return Value{Kind: KindNull} }
func Bool(b bool) Value           { return Value{Kind: KindBool, bool: b} }
func Number(n float64) Value      { return Value{Kind: KindNumber, num: n} }
func String(s string) Value       { return Value{Kind: KindString, str: s} }
func Array(items ...Value) Value  { return Value{Kind: KindArray, arr: items} }
func Record(fields map[string]Value) Value {
	return Value{Kind: KindRecord, rec: fields}
}
func FromTerm(t term.Term) Value { return Value{Kind: KindTerm, term: t} }

func (v Value) IsNull() bool { return v.Kind == KindNull }
func (v Value) Bool() bool   { return v.bool }
func (v Value) Number() float64 { return v.num }
func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return v.str
	case KindTerm:
		if v.term == nil {
			return "<nil term>"
		}
		return v.term.String()
	default:
		return fmt.Sprintf("%v", v.Native())
	}
}
func (v Value) Array() []Value          { return v.arr }
func (v Value) Record() map[string]Value { return v.rec }
func (v Value) Term() term.Term          { return v.term }

// Native converts v to the closest plain-Go representation
// (nil/bool/float64/string/[]interface{}/map[string]interface{}), with
// kept-as-term values returned as their term.Term.
func (v Value) Native() interface{} {
	switch v.Kind {
	case KindNull:
		return nil
	case KindBool:
		return v.bool
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	case KindArray:
		out := make([]interface{}, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Native()
		}
		return out
	case KindRecord:
		out := make(map[string]interface{}, len(v.rec))
		for k, e := range v.rec {
			out[k] = e.Native()
		}
		return out
	case KindTerm:
		return v.term
	default:
		return nil
	}
}

// Equal reports structural equality up to blank-node identity: two
// KindTerm values that are both blank nodes are considered equal
// regardless of their label, so framed/flattened values round-trip by
// structural comparison rather than by blank-node label.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNull:
		return true
	case KindBool:
		return v.bool == o.bool
	case KindNumber:
		return v.num == o.num
	case KindString:
		return v.str == o.str
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindRecord:
		if len(v.rec) != len(o.rec) {
			return false
		}
		for k, e := range v.rec {
			oe, ok := o.rec[k]
			if !ok || !e.Equal(oe) {
				return false
			}
		}
		return true
	case KindTerm:
		if v.term == nil || o.term == nil {
			return v.term == nil && o.term == nil
		}
		if v.term.TermKind() == term.KindBlankNode && o.term.TermKind() == term.KindBlankNode {
			return true
		}
		return v.term.Equal(o.term)
	default:
		return false
	}
}

// SortedKeys returns a record's keys in sorted order, used by flatten for
// a deterministic map-entry order and value key; map-key order is
// otherwise unspecified.
func (v Value) SortedKeys() []string {
	keys := make([]string, 0, len(v.rec))
	for k := range v.rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
