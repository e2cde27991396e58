package types

import (
	"slices"
)

// Equal reports whether a and b are structurally the same type: same
// declaration, and pairwise equal arguments.
func Equal(a, b *TypeRef) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Array:
		return Equal(a.elem, b.elem)
	case Placeholder:
		return a.name == b.name
	}
	if a.Declaration() != b.Declaration() {
		return false
	}
	if (a.generics == nil) != (b.generics == nil) {
		return false
	}
	return slices.EqualFunc(a.generics, b.generics, SlotEqual)
}

// SlotEqual reports whether a and b are structurally the same slot
func SlotEqual(a, b *Slot) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.kind != b.kind {
		return false
	}
	switch a.kind {
	case PlaceholderSlot:
		return a.name == b.name
	case WildcardSlot:
		return Equal(a.lower, b.lower) && slices.EqualFunc(a.upper, b.upper, Equal)
	}
	return Equal(a.typ, b.typ)
}

// HasPlaceholders reports whether t mentions a type parameter anywhere
func HasPlaceholders(t *TypeRef) bool {
	switch t.kind {
	case Placeholder:
		return true
	case Array:
		return HasPlaceholders(t.elem)
	}
	for _, s := range t.generics {
		if SlotHasPlaceholders(s) {
			return true
		}
	}
	return false
}

// SlotHasPlaceholders reports whether s is, or mentions, a type parameter
func SlotHasPlaceholders(s *Slot) bool {
	switch s.kind {
	case PlaceholderSlot:
		return true
	case WildcardSlot:
		if s.lower != nil && HasPlaceholders(s.lower) {
			return true
		}
		return slices.ContainsFunc(s.upper, HasPlaceholders)
	}
	return HasPlaceholders(s.typ)
}
