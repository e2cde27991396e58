package generics

import (
	"slices"

	set "github.com/hashicorp/go-set/v3"

	"github.com/cottand/jgenerics/types"
	"github.com/cottand/jgenerics/util"
)

// isCompatibleWith reports whether candidate may stand where spec is expected.
//
// Concrete slots are invariant: the candidate must be the very same
// declaration. Wildcards and placeholders are checked against their bounds.
func (e *Engine) isCompatibleWith(spec *types.Slot, candidate *types.TypeRef) bool {
	if candidate.IsDiamond() {
		return true
	}
	if candidate.IsPlaceholder() {
		name := candidate.Name()
		if !spec.IsWildcard() {
			return name == spec.Name()
		}
		if lower := spec.Lower(); lower != nil && name == lower.Name() {
			return true
		}
		if upper := spec.Upper(); spec.Lower() == nil && len(upper) > 0 && name == upper[0].Name() {
			return true
		}
		// otherwise the placeholder is checked through its own bounds
	}
	switch spec.Kind() {
	case types.WildcardSlot, types.PlaceholderSlot:
		if lower := spec.Lower(); lower != nil {
			// ? super X accepts the supertypes of X, so X is matched against candidate
			return e.implementsInterfaceOrIsSubclassOf(lower, candidate) && e.compareGenericsWithBound(lower, candidate)
		}
		for _, upper := range spec.Upper() {
			if !e.implementsInterfaceOrIsSubclassOf(candidate, upper) {
				return false
			}
		}
		return e.checkBounds(spec, candidate)
	}
	return candidate.Is(spec.Type()) && e.compareGenericsWithBound(candidate, spec.Type())
}

// checkBounds structurally matches candidate against the bounds of spec
func (e *Engine) checkBounds(spec *types.Slot, candidate *types.TypeRef) bool {
	if lower := spec.Lower(); lower != nil {
		return e.compareGenericsWithBound(lower, candidate)
	}
	for _, upper := range spec.Upper() {
		if !e.compareGenericsWithBound(candidate, upper) {
			return false
		}
	}
	return true
}

// implementsInterfaceOrIsSubclassOf reports whether t is, extends or implements
// the declaration of super. Generics are not considered.
func (e *Engine) implementsInterfaceOrIsSubclassOf(t, super *types.TypeRef) bool {
	if t.Is(super) || super.IsRoot() {
		return true
	}
	if t.IsArray() || super.IsArray() {
		return t.IsArray() && super.IsArray() && e.implementsInterfaceOrIsSubclassOf(t.Elem(), super.Elem())
	}
	if t.IsPlaceholder() {
		return e.placeholderSatisfies(t, super)
	}
	if super.IsPlaceholder() {
		// a type parameter stands for its bounds here
		for _, bound := range super.PlaceholderBounds() {
			if !e.implementsInterfaceOrIsSubclassOf(t, bound) {
				return false
			}
		}
		return true
	}
	if isDerivedFrom(t, super) || implementsInterface(t, super) {
		return true
	}
	if e.settings.ImplicitMarker != "" && super.Name() == e.settings.ImplicitMarker && t.InCompilation() {
		// the class is being compiled and will implement the marker once it is
		return true
	}
	if super.IsUnion() {
		if !e.implementsInterfaceOrIsSubclassOf(t, super.Superclass()) {
			return false
		}
		for _, iface := range super.Interfaces() {
			if !e.implementsInterfaceOrIsSubclassOf(t, iface) {
				return false
			}
		}
		return true
	}
	return false
}

// placeholderSatisfies checks a type parameter use-site through its bounds
func (e *Engine) placeholderSatisfies(t, super *types.TypeRef) bool {
	return slices.ContainsFunc(t.PlaceholderBounds(), func(bound *types.TypeRef) bool {
		return !bound.IsPlaceholder() && e.implementsInterfaceOrIsSubclassOf(bound, super)
	})
}

// isDerivedFrom walks the superclass chain of t looking for super
func isDerivedFrom(t, super *types.TypeRef) bool {
	for sc := t.Superclass(); sc != nil; sc = sc.Superclass() {
		if sc.Is(super) {
			return true
		}
	}
	return false
}

func implementsInterface(t, iface *types.TypeRef) bool {
	if !iface.IsInterface() {
		return false
	}
	return slices.ContainsFunc(allInterfaces(t), iface.Is)
}

// allInterfaces returns the declarations of every interface t implements,
// directly or through its superclasses and super-interfaces, each once.
func allInterfaces(t *types.TypeRef) []*types.TypeRef {
	seen := set.New[*types.TypeRef](8)
	var ret []*types.TypeRef
	queue := util.NewQueue[*types.TypeRef]()
	for c := t; c != nil; c = c.Superclass() {
		queue.Push(c.Interfaces()...)
	}
	for queue.Len() > 0 {
		iface, _ := queue.Pop()
		d := iface.Declaration()
		if !seen.Insert(d) {
			continue
		}
		ret = append(ret, d)
		queue.Push(d.Interfaces()...)
	}
	return ret
}
