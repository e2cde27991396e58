// Package generics decides whether types satisfy parameterised type
// specifications and re-derives type arguments along the class hierarchy.
//
// An Engine is scoped to a compilation session. It is safe for concurrent use
// as long as the types it is given are not modified, which types.TypeRef
// guarantees once published. Mismatches are reported as false; an
// *InvariantError is returned only when the engine is handed malformed input.
package generics

import (
	"log/slog"

	"github.com/cottand/jgenerics/internal/log"
	"github.com/cottand/jgenerics/types"
)

const defaultCacheSize = 4096

// Settings configures an Engine
type Settings struct {
	// CacheSize bounds the number of memoized parameterised-type lookups.
	// Zero or less disables the cache.
	CacheSize int
	// ImplicitMarker names an interface every class implements once compiled.
	// Classes still in compilation are treated as implementing it already.
	ImplicitMarker string
	// Logger defaults to the generics section of log.DefaultLogger
	Logger *slog.Logger
}

func DefaultSettings() Settings {
	return Settings{
		CacheSize:      defaultCacheSize,
		ImplicitMarker: "GroovyObject",
	}
}

type Engine struct {
	settings Settings
	// cache is nil when disabled
	cache  *locatorCache
	logger *slog.Logger
}

func NewEngine(settings Settings) *Engine {
	logger := settings.Logger
	if logger == nil {
		logger = log.DefaultLogger
	}
	e := &Engine{
		settings: settings,
		logger:   logger.With("section", "generics"),
	}
	if settings.CacheSize > 0 {
		e.cache = newLocatorCache(settings.CacheSize)
	}
	return e
}

// Invalidate drops every memoized lookup. It must be called whenever the
// class model the engine has seen is edited.
func (e *Engine) Invalidate() {
	if e.cache == nil {
		return
	}
	e.cache.invalidate()
	e.logger.Debug("locator cache invalidated")
}

// CacheStats reports usage of the locator cache; it is zero when the cache is disabled
func (e *Engine) CacheStats() CacheStats {
	if e.cache == nil {
		return CacheStats{}
	}
	return e.cache.stats()
}

// IsCompatibleWith reports whether candidate satisfies the slot specification spec:
// ? extends Number accepts Integer, ? super Integer accepts Number, and a
// concrete String accepts only String.
func (e *Engine) IsCompatibleWith(spec *types.Slot, candidate *types.TypeRef) (ok bool, err error) {
	defer e.recoverInvariant(&err)
	return e.isCompatibleWith(spec, candidate), nil
}

// CompareGenericsWithBound reports whether the arguments of candidate match
// those of bound, walking candidate up to bound's declaration first.
// Whether candidate extends bound at all is not checked.
func (e *Engine) CompareGenericsWithBound(candidate, bound *types.TypeRef) (ok bool, err error) {
	defer e.recoverInvariant(&err)
	return e.compareGenericsWithBound(candidate, bound), nil
}

// ImplementsInterfaceOrIsSubclassOf reports whether t is, extends or
// implements super, ignoring type arguments
func (e *Engine) ImplementsInterfaceOrIsSubclassOf(t, super *types.TypeRef) bool {
	return e.implementsInterfaceOrIsSubclassOf(t, super)
}

// ExtractPlaceholders maps the type parameters of t's declaration, and
// those of its nested arguments, to the arguments t supplies
func (e *Engine) ExtractPlaceholders(t *types.TypeRef) (placeholders map[string]*types.Slot, err error) {
	defer e.recoverInvariant(&err)
	return extractPlaceholders(t), nil
}

// ExtractConnections binds the placeholders mentioned in pattern to the
// corresponding parts of actual
func (e *Engine) ExtractConnections(actual, pattern *types.TypeRef) (connections map[string]*types.Slot, err error) {
	defer e.recoverInvariant(&err)
	connections = make(map[string]*types.Slot)
	e.extractConnections(actual, pattern, connections)
	return connections, nil
}

// ParameterizeType returns target parameterised as inherited by hint
func (e *Engine) ParameterizeType(hint, target *types.TypeRef) (t *types.TypeRef, err error) {
	defer e.recoverInvariant(&err)
	return e.parameterizeType(hint, target), nil
}

// CreateSpec resolves the arguments of t through outer and keys them by the
// parameter names of t's declaration
func (e *Engine) CreateSpec(t *types.TypeRef, outer Spec) (spec Spec, err error) {
	defer e.recoverInvariant(&err)
	return e.createGenericsSpec(t, outer), nil
}

// FindParameterizedType returns the instantiation of decl that receiver
// inherits, or nil when there is none
func (e *Engine) FindParameterizedType(decl, receiver *types.TypeRef) (t *types.TypeRef, err error) {
	defer e.recoverInvariant(&err)
	return e.findParameterizedType(decl, receiver), nil
}

// DeclaringActualMap pairs the declared parameters of decl with the
// arguments receiver supplies for them
func (e *Engine) DeclaringActualMap(decl, receiver *types.TypeRef) (b Bindings, err error) {
	defer e.recoverInvariant(&err)
	return e.makeDeclaringAndActualGenericsTypeMap(decl, receiver), nil
}

// DeclaringActualMapExact is DeclaringActualMap where no argument is left a placeholder
func (e *Engine) DeclaringActualMapExact(decl, receiver *types.TypeRef) (b Bindings, err error) {
	defer e.recoverInvariant(&err)
	return e.makeDeclaringAndActualGenericsTypeMapOfExactType(decl, receiver), nil
}

// ResolveMethod returns the signature of m as seen from receiver
func (e *Engine) ResolveMethod(receiver *types.TypeRef, m *types.Method) (r *ResolvedMethod, err error) {
	defer e.recoverInvariant(&err)
	return e.resolveMethod(receiver, m), nil
}

// ApplySpec substitutes the placeholders of t according to spec, leaving the
// names in exclusions untouched. Placeholders spec does not know become Object.
func ApplySpec(spec Spec, t *types.TypeRef, exclusions ...string) *types.TypeRef {
	return correctToGenericsSpecRecurse(spec, t, exclusions)
}

// AddMethodGenerics extends spec with a method's own type parameters
func AddMethodGenerics(spec Spec, params []*types.Slot) Spec {
	return addMethodGenerics(spec, params)
}
