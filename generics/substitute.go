package generics

import (
	"slices"

	"github.com/cottand/jgenerics/types"
)

// createGenericsSpec resolves every argument t supplies through outer, then
// re-keys the result by the parameter names of t's declaration.
// Placeholders outer does not map are kept as they are.
//
// For
//
//	class A<V, W, X> {}
//	class B<T> extends A<T, Long, String> {}
//
// createGenericsSpec(A<T, Long, String>, {T:Integer}) is {V:Integer, W:Long, X:String}.
func (e *Engine) createGenericsSpec(t *types.TypeRef, outer Spec) Spec {
	if t.IsArray() {
		return e.createGenericsSpec(t.Elem(), outer)
	}
	args := t.Generics()
	if t.IsPlaceholder() || len(args) == 0 {
		return outer
	}
	declared := t.Declaration().Generics()
	if len(declared) != len(args) {
		fail(ArityMismatch, t.Declaration(), t,
			"%s declares %d type parameters but %d were supplied", t.Name(), len(declared), len(args))
	}
	ret := NewSpec()
	for i, arg := range args {
		ret = ret.With(declared[i].Name(), correctSlot(outer, arg, unmappedNames(outer, arg)))
	}
	return ret
}

// unmappedNames lists the placeholders mentioned by s that spec does not map
func unmappedNames(spec Spec, s *types.Slot) []string {
	var names []string
	check := func(name string) {
		if _, ok := spec.Get(name); !ok && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	var visitType func(t *types.TypeRef)
	var visitSlot func(s *types.Slot)
	visitType = func(t *types.TypeRef) {
		switch t.Kind() {
		case types.Placeholder:
			check(t.Name())
		case types.Array:
			visitType(t.Elem())
		default:
			for _, arg := range t.Generics() {
				visitSlot(arg)
			}
		}
	}
	visitSlot = func(s *types.Slot) {
		switch s.Kind() {
		case types.PlaceholderSlot:
			check(s.Name())
		case types.WildcardSlot:
			if s.Lower() != nil {
				visitType(s.Lower())
			}
			for _, bound := range s.Upper() {
				visitType(bound)
			}
		default:
			visitType(s.Type())
		}
	}
	visitSlot(s)
	return names
}

// correctToGenericsSpecRecurse substitutes the placeholders of t according to
// spec, rebuilding every node on the way. Names in exclusions are left untouched.
//
// Placeholders missing from spec become Object so that the result is always
// defined. An argument that is an unbounded placeholder keeps its identity.
func correctToGenericsSpecRecurse(spec Spec, t *types.TypeRef, exclusions []string) *types.TypeRef {
	switch t.Kind() {
	case types.Array:
		return types.ArrayOf(correctToGenericsSpecRecurse(spec, t.Elem(), exclusions))
	case types.Placeholder:
		return correctPlaceholder(spec, t, exclusions)
	}
	args := t.Generics()
	if len(args) == 0 {
		return t
	}
	corrected := make([]*types.Slot, len(args))
	for i, arg := range args {
		corrected[i] = correctSlot(spec, arg, exclusions)
	}
	return types.Parameterized(t, corrected...)
}

func correctPlaceholder(spec Spec, t *types.TypeRef, exclusions []string) *types.TypeRef {
	name := t.Name()
	if slices.Contains(exclusions, name) {
		return t
	}
	mapped, ok := spec.Get(name)
	if !ok {
		return types.Object
	}
	ret := mapped.Erasure()
	if mapped.IsWildcard() || !ret.IsPlaceholder() {
		return ret
	}
	if len(ret.PlaceholderBounds()) == 0 {
		return types.NewPlaceholder(ret.Name(), ret)
	}
	if _, further := spec.Get(ret.Name()); further && ret.Name() != name {
		// aliases like T -> U -> T terminate because T is now excluded
		return correctToGenericsSpecRecurse(spec, ret, append(slices.Clone(exclusions), name))
	}
	return ret
}

func correctSlot(spec Spec, s *types.Slot, exclusions []string) *types.Slot {
	switch s.Kind() {
	case types.PlaceholderSlot:
		if slices.Contains(exclusions, s.Name()) {
			return s
		}
		if mapped, ok := spec.Get(s.Name()); ok {
			return mapped
		}
		return types.Concrete(types.Object)
	case types.WildcardSlot:
		var lower *types.TypeRef
		if s.Lower() != nil {
			lower = correctToGenericsSpecRecurse(spec, s.Lower(), exclusions)
		}
		var upper []*types.TypeRef
		if s.Upper() != nil {
			upper = make([]*types.TypeRef, len(s.Upper()))
			for i, bound := range s.Upper() {
				upper[i] = correctToGenericsSpecRecurse(spec, bound, exclusions)
			}
		}
		return s.WithBounds(lower, upper)
	}
	return types.Concrete(correctToGenericsSpecRecurse(spec, s.Type(), exclusions))
}

// addMethodGenerics extends spec with the type parameters a method declares,
// which shadow class-level entries of the same name.
//
// Each parameter maps to a placeholder of its own name, bounded by Object
// when it declares no bound. Concrete bounds are substituted through spec; a
// bound that is itself a placeholder (T extends U) is kept as is so that U is
// not resolved eagerly.
func addMethodGenerics(spec Spec, params []*types.Slot) Spec {
	own := make([]string, 0, len(params))
	for _, p := range params {
		own = append(own, p.Name())
	}
	ret := spec
	for _, p := range params {
		if !p.IsPlaceholder() {
			ret = ret.With(p.Name(), p)
			continue
		}
		bounds := p.Upper()
		if len(bounds) > 0 && bounds[0].IsPlaceholder() {
			ret = ret.With(p.Name(), types.PlaceholderOf(p.Name(), bounds...))
			continue
		}
		corrected := []*types.TypeRef{types.Object}
		if len(bounds) > 0 {
			corrected = make([]*types.TypeRef, len(bounds))
			for i, bound := range bounds {
				corrected[i] = correctToGenericsSpecRecurse(spec, bound, own)
			}
		}
		ret = ret.With(p.Name(), types.PlaceholderOf(p.Name(), corrected...))
	}
	return ret
}
