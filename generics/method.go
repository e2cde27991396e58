package generics

import (
	"github.com/cottand/jgenerics/types"
)

// ResolvedMethod is a method signature as seen from a particular receiver
type ResolvedMethod struct {
	Method *types.Method
	// Spec is the substitution that produced Params and Return
	Spec   Spec
	Params []*types.TypeRef
	Return *types.TypeRef
}

// resolveMethod substitutes the arguments receiver supplies for the method's
// owner, directly or through its supertypes, into the method's signature.
// The method's own type parameters shadow the owner's.
func (e *Engine) resolveMethod(receiver *types.TypeRef, m *types.Method) *ResolvedMethod {
	owner := m.Owner.Declaration()
	if !e.implementsInterfaceOrIsSubclassOf(receiver, owner) {
		fail(NoHierarchyPath, receiver, owner, "%s does not declare or inherit %s", receiver.Name(), m.Name)
	}
	spec := NewSpec()
	if located := e.findParameterizedType(owner, receiver); located != nil {
		spec = e.createGenericsSpec(located, spec)
	}
	spec = addMethodGenerics(spec, m.TypeParams)

	ret := &ResolvedMethod{Method: m, Spec: spec, Params: make([]*types.TypeRef, len(m.Params))}
	for i, p := range m.Params {
		ret.Params[i] = correctToGenericsSpecRecurse(spec, p, nil)
	}
	if m.Return != nil {
		ret.Return = correctToGenericsSpecRecurse(spec, m.Return, nil)
	}
	e.logger.Debug("resolved method", "method", m.Name, "receiver", receiver, "spec", spec)
	return ret
}

// String renders the resolved signature, with the method's own type parameters as declared
func (m *ResolvedMethod) String() string {
	return (&types.Method{
		Name:       m.Method.Name,
		Owner:      m.Method.Owner,
		TypeParams: m.Method.TypeParams,
		Params:     m.Params,
		Return:     m.Return,
	}).String()
}
