package generics

import (
	"github.com/cottand/jgenerics/types"
)

// compareGenericsWithBound reports whether the arguments of candidate match
// those of bound, once candidate has been walked up to bound's declaration.
//
// The caller has already established that candidate is, extends or
// implements bound; only the arguments are compared here.
func (e *Engine) compareGenericsWithBound(candidate, bound *types.TypeRef) bool {
	if bound.IsArray() {
		if candidate.IsArray() {
			return e.compareGenericsWithBound(candidate.Elem(), bound.Elem())
		}
		return true
	}
	if len(bound.Generics()) == 0 || candidate.IsRaw() {
		// erasure compatibility
		return true
	}
	if candidate.IsPlaceholder() {
		for _, b := range candidate.PlaceholderBounds() {
			if !b.IsPlaceholder() && e.implementsInterfaceOrIsSubclassOf(b, bound) {
				return e.compareGenericsWithBound(b, bound)
			}
		}
		candidate = types.Object
	}
	if candidate.IsArray() {
		return false
	}
	if !candidate.Is(bound) {
		return e.compareWithAncestor(candidate, bound)
	}

	supplied := candidate.Generics()
	if len(supplied) == 0 {
		return true
	}
	declared := bound.Declaration().Generics()
	if len(declared) != len(supplied) {
		fail(ArityMismatch, bound.Declaration(), candidate,
			"%s declares %d type parameters but %d were supplied", bound.Name(), len(declared), len(supplied))
	}
	boundPlaceholders := extractPlaceholders(bound)
	candidatePlaceholders := extractPlaceholders(candidate)
	for i, decl := range declared {
		if !e.compareArgument(supplied[i], decl, boundPlaceholders, candidatePlaceholders) {
			return false
		}
	}
	return true
}

// compareWithAncestor climbs from candidate towards the declaration of bound
func (e *Engine) compareWithAncestor(candidate, bound *types.TypeRef) bool {
	if bound.IsInterface() {
		if candidate.IsRoot() {
			return false
		}
		for _, iface := range allInterfaces(candidate) {
			if iface.Is(bound) {
				// the interface as declared is not parameterised by candidate's arguments yet
				node := e.parameterizeType(candidate, iface)
				return e.compareGenericsWithBound(node, bound)
			}
		}
	}
	if bound.IsUnion() {
		success := e.compareGenericsWithBound(candidate, bound.Superclass())
		for _, iface := range bound.Interfaces() {
			if !success {
				break
			}
			success = e.compareGenericsWithBound(candidate, iface)
		}
		if success {
			return true
		}
	}
	if candidate.IsRoot() {
		return false
	}
	super := candidate.Superclass()
	if super == nil {
		fail(NoHierarchyPath, candidate, bound, "expected a superclass for %s", candidate.Name())
	}
	if len(super.Generics()) > 0 {
		super = e.parameterizeType(candidate, super)
	}
	return e.compareGenericsWithBound(super, bound)
}

// compareArgument compares the argument candidate supplies for the declared
// parameter decl with what bound supplies for it, read from boundPlaceholders.
func (e *Engine) compareArgument(supplied, decl *types.Slot, boundPlaceholders, candidatePlaceholders map[string]*types.Slot) bool {
	if supplied.IsPlaceholder() {
		if supplied.Name() == decl.Name() {
			return true
		}
		expected, ok := boundPlaceholders[decl.Name()]
		if !ok {
			return false
		}
		switch expected.Kind() {
		case types.PlaceholderSlot:
			return true
		case types.WildcardSlot:
			if expected.Lower() != nil {
				return e.isCompatibleWith(decl, expected.Lower())
			}
			for _, upper := range expected.Upper() {
				if e.isCompatibleWith(decl, upper) {
					return true
				}
			}
			return false
		}
		if actual, ok := candidatePlaceholders[supplied.Name()]; ok {
			supplied = actual
		}
		return e.isCompatibleWith(supplied, expected.Type())
	}

	expected, ok := boundPlaceholders[decl.Name()]
	if !ok {
		expected = decl
	}
	switch expected.Kind() {
	case types.WildcardSlot:
		return e.compareWithWildcard(supplied, expected, candidatePlaceholders)
	case types.PlaceholderSlot:
		// placeholder aliases, like Map<U,V> against Map<K,V>
		if actual, ok := candidatePlaceholders[expected.Name()]; ok && !actual.IsPlaceholder() {
			expected = actual
		}
	}
	return e.isCompatibleWith(expected, supplied.Type())
}

// compareWithWildcard checks Comparable<Integer> against Comparable<? super T> and the like.
// Placeholders in the wildcard's bounds are looked up in the candidate's own
// placeholders, to handle recursive declarations such as <T extends Comparable<? super T>>.
// Nested arguments are compared through isCompatibleWith, so
// HashMap<String, ArrayList<Long>> does not match Map<String, ? extends List<Integer>>.
func (e *Engine) compareWithWildcard(supplied, wildcard *types.Slot, candidatePlaceholders map[string]*types.Slot) bool {
	resolve := func(t *types.TypeRef) *types.TypeRef {
		if t != nil && t.IsPlaceholder() {
			if actual, ok := candidatePlaceholders[t.Name()]; ok {
				return actual.Type()
			}
		}
		return t
	}
	var upper []*types.TypeRef
	for _, u := range wildcard.Upper() {
		upper = append(upper, resolve(u))
	}
	wildcard = wildcard.WithBounds(resolve(wildcard.Lower()), upper)

	if !supplied.IsWildcard() {
		return e.isCompatibleWith(wildcard, supplied.Type())
	}
	// wildcard containment: List<? extends Integer> fits List<? extends Number>
	switch {
	case supplied.Lower() != nil:
		if wildcard.Lower() != nil {
			return e.isCompatibleWith(wildcard, supplied.Lower())
		}
		return unbounded(wildcard)
	case wildcard.Lower() != nil:
		return false
	case len(supplied.Upper()) == 0:
		return unbounded(wildcard)
	}
	for _, u := range supplied.Upper() {
		if e.isCompatibleWith(wildcard, u) {
			return true
		}
	}
	return false
}

// unbounded reports whether s accepts anything, as ? and ? extends Object do
func unbounded(s *types.Slot) bool {
	if s.Lower() != nil {
		return false
	}
	for _, u := range s.Upper() {
		if !u.IsRoot() {
			return false
		}
	}
	return true
}
