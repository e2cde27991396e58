package generics

import (
	set "github.com/hashicorp/go-set/v3"

	"github.com/cottand/jgenerics/types"
)

// Binding pairs a type parameter of a declaration with the argument a receiver supplies for it
type Binding struct {
	Declared *types.Slot
	Actual   *types.Slot
}

// Bindings are ordered as the declared parameters
type Bindings []Binding

// Get returns the argument bound to the declared parameter name
func (b Bindings) Get(name string) (*types.Slot, bool) {
	for _, binding := range b {
		if binding.Declared.Name() == name {
			return binding.Actual, true
		}
	}
	return nil, false
}

// Spec converts b into a generics spec keyed by the declared names
func (b Bindings) Spec() Spec {
	s := NewSpec()
	for _, binding := range b {
		s = s.With(binding.Declared.Name(), binding.Actual)
	}
	return s
}

// makeDeclaringAndActualGenericsTypeMap zips the declared parameters of decl
// with the arguments of the instantiation of decl that receiver inherits.
// The result is empty when receiver does not reach a parameterised decl.
func (e *Engine) makeDeclaringAndActualGenericsTypeMap(decl, receiver *types.TypeRef) Bindings {
	decl = decl.Declaration()
	located := e.findParameterizedType(decl, receiver)
	if located == nil {
		return nil
	}
	declared := decl.Generics()
	actual := located.Generics()
	if len(declared) != len(actual) {
		fail(ArityMismatch, decl, located,
			"%s declares %d type parameters but %d were supplied", decl.Name(), len(declared), len(actual))
	}
	ret := make(Bindings, len(declared))
	for i := range declared {
		ret[i] = Binding{Declared: declared[i], Actual: actual[i]}
	}
	return ret
}

// makeDeclaringAndActualGenericsTypeMapOfExactType is the strict variant of
// makeDeclaringAndActualGenericsTypeMap: arguments that are still placeholders
// are connected to other entries or to the receiver's own arguments, and
// whatever remains is resolved to its erasure and marked resolved.
func (e *Engine) makeDeclaringAndActualGenericsTypeMapOfExactType(decl, receiver *types.TypeRef) Bindings {
	bindings := e.makeDeclaringAndActualGenericsTypeMap(decl, receiver)
	if bindings == nil {
		return nil
	}
	receiverPlaceholders := extractPlaceholders(receiver)
	ret := make(Bindings, len(bindings))
	for i, b := range bindings {
		ret[i] = Binding{Declared: b.Declared, Actual: connect(b.Actual, bindings, receiverPlaceholders)}
	}
	return ret
}

// connect follows a placeholder argument through the other bindings and the
// receiver's placeholders until it reaches a non-placeholder
func connect(actual *types.Slot, bindings Bindings, receiverPlaceholders map[string]*types.Slot) *types.Slot {
	seen := set.New[string](4)
	for actual.IsPlaceholder() && seen.Insert(actual.Name()) {
		if next, ok := bindings.Get(actual.Name()); ok && next != actual {
			actual = next
			continue
		}
		if next, ok := receiverPlaceholders[actual.Name()]; ok {
			actual = next
			continue
		}
		break
	}
	if actual.IsPlaceholder() {
		return types.Concrete(actual.Type().Erasure()).AsResolved()
	}
	return actual
}
