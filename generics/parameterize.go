package generics

import (
	"github.com/cottand/jgenerics/types"
)

// parameterizeType returns target parameterised with the arguments implied by
// hint, which must be target or one of its subtypes.
//
// For ArrayList<String> and Collection the result is Collection<String>:
// each step up the hierarchy substitutes the arguments of the current type
// into the supertype as declared (ArrayList<E> extends AbstractList<E>),
// until target is reached. Canonical declarations are never modified.
func (e *Engine) parameterizeType(hint, target *types.TypeRef) *types.TypeRef {
	if hint.IsArray() {
		if target.IsArray() {
			return types.ArrayOf(e.parameterizeType(hint.Elem(), target.Elem()))
		}
		return target
	}
	if target.IsArray() {
		fail(NoHierarchyPath, hint, target, "%s is not an array", hint.Name())
	}
	if hint.IsPlaceholder() {
		for _, bound := range hint.PlaceholderBounds() {
			if !bound.IsPlaceholder() && e.implementsInterfaceOrIsSubclassOf(bound, target) {
				return e.parameterizeType(bound, target)
			}
		}
		hint = types.Object
	}
	if hint.Is(target) {
		return hint
	}
	decl := target.Declaration()
	if hint.IsRaw() || hint.IsDiamond() {
		return erasedUseSite(hint, decl)
	}

	next := e.nextSuperClass(hint, decl)
	if next == nil {
		fail(NoHierarchyPath, hint, target, "%s does not extend or implement %s", hint.Name(), target.Name())
	}
	spec := e.createGenericsSpec(hint, NewSpec())
	parent := correctToGenericsSpecRecurse(spec, next, nil)
	e.logger.Debug("parameterize: next supertype", "hint", hint, "next", parent, "target", decl.Name())
	return e.parameterizeType(parent, target)
}

// erasedUseSite is how decl is seen from a raw or diamond use-site: raw, or
// diamond, when decl is generic.
func erasedUseSite(from, decl *types.TypeRef) *types.TypeRef {
	switch {
	case !decl.IsGeneric():
		return decl
	case from.IsDiamond():
		return types.Diamond(decl)
	}
	return types.Raw(decl)
}

// nextSuperClass returns the direct supertype of t, as written in t's
// declaration, on a path from t to goal; or nil when there is none.
// Interfaces are preferred when goal is an interface.
func (e *Engine) nextSuperClass(t, goal *types.TypeRef) *types.TypeRef {
	if t.IsRoot() {
		return nil
	}
	if goal.IsInterface() {
		for _, iface := range t.Interfaces() {
			if e.implementsInterfaceOrIsSubclassOf(iface, goal) {
				return iface
			}
		}
	}
	super := t.Superclass()
	if super == nil || !e.implementsInterfaceOrIsSubclassOf(super, goal) {
		return nil
	}
	return super
}
