package shape

import (
	"fmt"

	"github.com/cayleygraph/ramp/term"
)

// Set is the canonical representation of a shape graph: every Shape the
// traversal packages need to resolve a ShapeReference against. Every
// referenced ShapeID must resolve within the set. Sets are immutable
// once built.
type Set struct {
	shapes map[ShapeID]*Shape
}

// NewSet collects shapes into a resolvable Set.
func NewSet(shapes ...*Shape) *Set {
	s := &Set{shapes: make(map[ShapeID]*Shape, len(shapes))}
	for _, sh := range shapes {
		s.shapes[sh.ID] = sh
	}
	return s
}

// Get resolves id within the set.
func (s *Set) Get(id ShapeID) (*Shape, bool) {
	sh, ok := s.shapes[id]
	return sh, ok
}

// All returns every shape in the set. The order is unspecified.
func (s *Set) All() []*Shape {
	out := make([]*Shape, 0, len(s.shapes))
	for _, sh := range s.shapes {
		out = append(out, sh)
	}
	return out
}

// Validate checks the shape graph's global invariants:
//
//   - every referenced ShapeID resolves within the set
//   - property names are unique within a record
//   - fixed values on resource/literal are of a compatible term kind
func (s *Set) Validate() error {
	for _, sh := range s.shapes {
		if err := s.validateShape(sh); err != nil {
			return fmt.Errorf("shape %s: %w", sh.ID, err)
		}
	}
	return nil
}

func (s *Set) resolve(id ShapeID) error {
	if _, ok := s.shapes[id]; !ok {
		return fmt.Errorf("unresolved shape reference %q", id)
	}
	return nil
}

func (s *Set) validateShape(sh *Shape) error {
	switch sh.Variant {
	case VariantResource:
		if sh.FixedValue != nil && !term.IsResource(sh.FixedValue) {
			return fmt.Errorf("fixed value of a resource shape must be a named or blank node")
		}
	case VariantLiteral:
		if sh.FixedValue != nil && sh.FixedValue.TermKind() != term.KindLiteral {
			return fmt.Errorf("fixed value of a literal shape must be a literal")
		}
	case VariantRecord:
		seen := make(map[string]bool)
		for _, p := range append(append([]ObjectProperty{}, sh.TypeProperties...), sh.Properties...) {
			if seen[p.Name] {
				return fmt.Errorf("duplicate property name %q", p.Name)
			}
			seen[p.Name] = true
			if err := s.resolve(p.ValueShape); err != nil {
				return fmt.Errorf("property %q: %w", p.Name, err)
			}
		}
	case VariantUnion:
		for _, v := range sh.Variants {
			if err := s.resolve(v); err != nil {
				return err
			}
		}
	case VariantSet, VariantOptional, VariantList, VariantMap:
		if err := s.resolve(sh.Item); err != nil {
			return err
		}
		if sh.Variant == VariantMap {
			if err := s.resolve(sh.Key.Target); err != nil {
				return fmt.Errorf("map key: %w", err)
			}
			if sh.Value != nil {
				if err := s.resolve(sh.Value.Target); err != nil {
					return fmt.Errorf("map value: %w", err)
				}
			}
		}
	}
	return nil
}
