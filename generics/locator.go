package generics

import (
	set "github.com/hashicorp/go-set/v3"

	"github.com/cottand/jgenerics/types"
	"github.com/cottand/jgenerics/util"
)

// findParameterizedType returns the instantiation of decl that receiver
// inherits, such as Collection<String> for Collection and ArrayList<String>,
// or nil when receiver does not reach a parameterised decl.
func (e *Engine) findParameterizedType(decl, receiver *types.TypeRef) *types.TypeRef {
	decl = decl.Declaration()
	if !decl.IsGeneric() {
		return nil
	}
	if e.cache == nil {
		return e.locate(decl, receiver)
	}
	key := util.NewPair(decl, receiver)
	if found, ok := e.cache.get(key); ok {
		e.logger.Debug("locator: cache hit", "declaration", decl.Name(), "receiver", receiver)
		return found
	}
	found := e.locate(decl, receiver)
	e.cache.put(key, found)
	return found
}

// locate walks the hierarchy of receiver breadth-first, interfaces before the
// superclass, parameterising every supertype from the type below it.
// Each declaration is visited once, so diamond-shaped interface hierarchies
// are walked through their first path only.
func (e *Engine) locate(decl, receiver *types.TypeRef) *types.TypeRef {
	visited := set.New[*types.TypeRef](16)
	queue := util.NewQueue(receiver)
	for queue.Len() > 0 {
		current, _ := queue.Pop()
		if current.IsPlaceholder() {
			queue.Push(current.PlaceholderBounds()...)
			continue
		}
		if current.IsArray() || !visited.Insert(current.Declaration()) {
			continue
		}
		if current != decl && current.Is(decl) {
			switch len(current.Generics()) {
			case 0:
				// reached through a raw or diamond use-site
				return nil
			case len(decl.Generics()):
				return current
			}
			fail(ArityMismatch, decl, current,
				"%s declares %d type parameters but %d were supplied", decl.Name(), len(decl.Generics()), len(current.Generics()))
		}
		for _, iface := range current.Interfaces() {
			queue.Push(e.supertypeOf(current, iface))
		}
		if super := current.Superclass(); super != nil {
			queue.Push(e.supertypeOf(current, super))
		}
	}
	return nil
}

// supertypeOf parameterises super, a direct supertype as written in the
// declaration of t, with the arguments of t
func (e *Engine) supertypeOf(t, super *types.TypeRef) *types.TypeRef {
	if !types.HasPlaceholders(super) {
		return super
	}
	if t.IsRaw() || t.IsDiamond() {
		return erasedUseSite(t, super.Declaration())
	}
	return correctToGenericsSpecRecurse(e.createGenericsSpec(t, NewSpec()), super, nil)
}
