package generics

import (
	"github.com/cottand/jgenerics/types"
)

// extractPlaceholders maps each type parameter of t's declaration to the
// argument t supplies for it, then does the same for the arguments themselves,
// so that Map<String, List<Integer>> yields {K:String, V:List<Integer>, E:Integer}.
// The first binding of a name wins.
func extractPlaceholders(t *types.TypeRef) map[string]*types.Slot {
	ret := make(map[string]*types.Slot)
	extractPlaceholdersInto(t, ret)
	return ret
}

func extractPlaceholdersInto(t *types.TypeRef, into map[string]*types.Slot) {
	if t == nil {
		return
	}
	if t.IsArray() {
		extractPlaceholdersInto(t.Elem(), into)
		return
	}
	if !t.IsRedirect() {
		return
	}
	supplied := t.Generics()
	if len(supplied) == 0 {
		return
	}
	declared := t.Declaration().Generics()
	if len(declared) != len(supplied) {
		fail(ArityMismatch, t.Declaration(), t,
			"expected earlier checking to detect generics arity mismatch: %s declares %d parameters, %d supplied",
			t.Name(), len(declared), len(supplied))
	}
	zipPlaceholders(declared, supplied, into)
}

// zipPlaceholders binds declared placeholders to supplied slots, positionally
func zipPlaceholders(declared, supplied []*types.Slot, into map[string]*types.Slot) {
	var bound []*types.Slot
	for i, d := range declared {
		if !d.IsPlaceholder() {
			continue
		}
		if _, seen := into[d.Name()]; seen {
			continue
		}
		into[d.Name()] = supplied[i]
		bound = append(bound, supplied[i])
	}
	for _, value := range bound {
		extractFromSlot(value, into)
	}
}

func extractFromSlot(value *types.Slot, into map[string]*types.Slot) {
	switch value.Kind() {
	case types.WildcardSlot:
		if value.Lower() != nil {
			extractPlaceholdersInto(value.Lower(), into)
			return
		}
		for _, upper := range value.Upper() {
			extractPlaceholdersInto(upper, into)
		}
	case types.ConcreteSlot:
		extractPlaceholdersInto(value.Type(), into)
	}
}

// extractConnections binds the placeholders mentioned by pattern to the
// matching parts of actual, as when relating an argument of type
// Map<String, List<Integer>> to a parameter declared Map<K, List<V>>:
// the result is {K:String, V:Integer}.
//
// When actual is a subtype of pattern's declaration, actual is first
// re-parameterised as that declaration. The first binding of a name wins.
func (e *Engine) extractConnections(actual, pattern *types.TypeRef, into map[string]*types.Slot) {
	if actual == nil || pattern == nil {
		return
	}
	switch {
	case pattern.IsPlaceholder():
		if _, seen := into[pattern.Name()]; !seen {
			into[pattern.Name()] = types.Concrete(actual)
		}
		return
	case pattern.IsArray():
		if actual.IsArray() {
			e.extractConnections(actual.Elem(), pattern.Elem(), into)
		}
		return
	case len(pattern.Generics()) == 0 || actual.IsArray():
		return
	}
	if actual.IsPlaceholder() {
		actual = actual.Erasure()
	}
	if !actual.Is(pattern) {
		if !e.implementsInterfaceOrIsSubclassOf(actual, pattern.Declaration()) {
			return
		}
		actual = e.parameterizeType(actual, pattern.Declaration())
	}
	supplied := actual.Generics()
	if len(supplied) != len(pattern.Generics()) {
		// raw or diamond use-sites carry nothing to connect
		return
	}
	for i, p := range pattern.Generics() {
		e.extractSlotConnections(supplied[i], p, into)
	}
}

func (e *Engine) extractSlotConnections(actual, pattern *types.Slot, into map[string]*types.Slot) {
	switch pattern.Kind() {
	case types.PlaceholderSlot:
		if _, seen := into[pattern.Name()]; !seen {
			into[pattern.Name()] = actual
		}
	case types.WildcardSlot:
		if pattern.Lower() != nil {
			e.extractConnections(slotBoundOrType(actual, true), pattern.Lower(), into)
		}
		for _, upper := range pattern.Upper() {
			e.extractConnections(slotBoundOrType(actual, false), upper, into)
		}
	default:
		e.extractConnections(actual.Type(), pattern.Type(), into)
	}
}

// slotBoundOrType returns the type a slot contributes when matched against a
// wildcard bound: its lower or first upper bound when it is itself a wildcard.
func slotBoundOrType(s *types.Slot, lower bool) *types.TypeRef {
	if !s.IsWildcard() {
		return s.Type()
	}
	if lower && s.Lower() != nil {
		return s.Lower()
	}
	if len(s.Upper()) > 0 {
		return s.Upper()[0]
	}
	return nil
}
