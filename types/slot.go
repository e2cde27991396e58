package types

import (
	"slices"
)

// SlotKind discriminates the variants of a Slot
type SlotKind uint8

const (
	// ConcreteSlot holds a type argument such as String or List<T>
	ConcreteSlot SlotKind = iota
	// PlaceholderSlot holds a type parameter, optionally with upper bounds (T extends A & B)
	PlaceholderSlot
	// WildcardSlot holds an unnamed argument, optionally bounded (? extends A, ? super B)
	WildcardSlot
)

func (k SlotKind) String() string {
	switch k {
	case ConcreteSlot:
		return "concrete"
	case PlaceholderSlot:
		return "placeholder"
	case WildcardSlot:
		return "wildcard"
	}
	return "unknown"
}

// Slot is one generic argument or declared type parameter (a GenericsSlot)
type Slot struct {
	kind SlotKind
	name string
	typ  *TypeRef

	// lower is the contravariant bound of a wildcard (? super X)
	lower *TypeRef
	// upper are the conjunctive covariant bounds (? extends A & B, T extends A & B)
	upper []*TypeRef

	// resolved marks a placeholder slot that has been bound to an exact type
	resolved bool
}

func (s *Slot) Kind() SlotKind      { return s.kind }
func (s *Slot) Name() string        { return s.name }
func (s *Slot) Type() *TypeRef      { return s.typ }
func (s *Slot) Lower() *TypeRef     { return s.lower }
func (s *Slot) Upper() []*TypeRef   { return s.upper }
func (s *Slot) IsPlaceholder() bool { return s.kind == PlaceholderSlot }
func (s *Slot) IsWildcard() bool    { return s.kind == WildcardSlot }
func (s *Slot) IsResolved() bool    { return s.resolved }

// Concrete returns a slot holding t. A placeholder t yields a placeholder slot.
func Concrete(t *TypeRef) *Slot {
	if t.IsPlaceholder() {
		return &Slot{kind: PlaceholderSlot, name: t.name, typ: t, upper: t.bounds}
	}
	return &Slot{kind: ConcreteSlot, name: t.name, typ: t}
}

// PlaceholderOf returns a placeholder slot named name with optional upper bounds
func PlaceholderOf(name string, bounds ...*TypeRef) *Slot {
	p := NewPlaceholder(name, bounds...)
	return &Slot{kind: PlaceholderSlot, name: name, typ: p, upper: p.bounds}
}

// Wildcard returns an unbounded wildcard, equivalent to ? extends Object
func Wildcard() *Slot {
	return &Slot{kind: WildcardSlot, name: "?", typ: Object}
}

// WildcardExtends returns ? extends bounds[0] & bounds[1] ...
func WildcardExtends(bounds ...*TypeRef) *Slot {
	if len(bounds) == 0 {
		return Wildcard()
	}
	return &Slot{kind: WildcardSlot, name: "?", typ: bounds[0], upper: slices.Clone(bounds)}
}

// WildcardSuper returns ? super lower
func WildcardSuper(lower *TypeRef) *Slot {
	return &Slot{kind: WildcardSlot, name: "?", typ: Object, lower: lower}
}

// AsResolved returns a copy of s marked as bound to an exact type
func (s *Slot) AsResolved() *Slot {
	c := *s
	c.resolved = true
	return &c
}

// WithBounds returns a copy of the wildcard or placeholder s with its bounds replaced,
// keeping its kind and display name
func (s *Slot) WithBounds(lower *TypeRef, upper []*TypeRef) *Slot {
	c := *s
	c.lower = lower
	c.upper = upper
	switch {
	case s.kind == PlaceholderSlot:
		c.typ = NewPlaceholder(s.name, upper...)
	case len(upper) > 0:
		c.typ = upper[0]
	default:
		c.typ = Object
	}
	return &c
}

// Erasure returns the single type a slot stands for when its kind is ignored
func (s *Slot) Erasure() *TypeRef {
	if s.kind != WildcardSlot {
		return s.typ
	}
	if len(s.upper) > 0 {
		return s.upper[0]
	}
	return Object
}
