// Package classmodel builds canonical declarations for the generics engine
// from YAML descriptions and parses type expressions against them.
package classmodel

import (
	"maps"
	"slices"
	"sort"

	"github.com/pkg/errors"
	xset "github.com/xtgo/set"

	"github.com/cottand/jgenerics/internal/log"
	"github.com/cottand/jgenerics/types"
	"github.com/cottand/jgenerics/util"
)

var logger = log.DefaultLogger.With("section", "classmodel")

// Registry holds canonical declarations by name.
// It is not safe for concurrent modification; once loaded it may be read concurrently.
type Registry struct {
	decls   map[string]*types.TypeRef
	methods map[string][]*types.Method
}

// NewRegistry returns a registry knowing only the root type Object
func NewRegistry() *Registry {
	return &Registry{
		decls:   map[string]*types.TypeRef{types.Object.Name(): types.Object},
		methods: map[string][]*types.Method{},
	}
}

// Clone returns a registry with the same declarations, which can be extended independently
func (r *Registry) Clone() *Registry {
	return &Registry{decls: maps.Clone(r.decls), methods: maps.Clone(r.methods)}
}

// Define adds a published declaration
func (r *Registry) Define(decl *types.TypeRef) error {
	if decl.IsRedirect() || decl.Kind() != types.Class {
		return errors.Errorf("%s is not a class or interface declaration", decl)
	}
	if _, ok := r.decls[decl.Name()]; ok {
		return errors.Errorf("type %s is already defined", decl.Name())
	}
	r.decls[decl.Name()] = decl
	return nil
}

func (r *Registry) Lookup(name string) (*types.TypeRef, bool) {
	decl, ok := r.decls[name]
	return decl, ok
}

// DefineMethod adds a method signature to its owner declaration
func (r *Registry) DefineMethod(m *types.Method) error {
	owner := m.Owner.Declaration().Name()
	if _, ok := r.decls[owner]; !ok {
		return errors.Errorf("method %s is declared on unknown type %s", m.Name, owner)
	}
	// the slice may be shared with a clone
	r.methods[owner] = append(slices.Clip(r.methods[owner]), m)
	return nil
}

// Methods returns the methods declared directly on the declaration named owner
func (r *Registry) Methods(owner string) []*types.Method {
	return r.methods[owner]
}

// FindMethod returns the first method called name declared on t's
// declaration or, failing that, on one of its ancestors
func (r *Registry) FindMethod(t *types.TypeRef, name string) (*types.Method, bool) {
	owners := append([]string{t.Declaration().Name()}, r.AncestorNames(t)...)
	for _, owner := range owners {
		for _, m := range r.methods[owner] {
			if m.Name == name {
				return m, true
			}
		}
	}
	return nil, false
}

// MustLookup is Lookup for names known to exist
func (r *Registry) MustLookup(name string) *types.TypeRef {
	decl, ok := r.decls[name]
	if !ok {
		panic("classmodel: unknown type " + name)
	}
	return decl
}

// Names returns the names of every declaration, sorted
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.decls))
}

// AncestorNames returns the sorted names of every proper supertype of t's declaration
func (r *Registry) AncestorNames(t *types.TypeRef) []string {
	var names []string
	pending := &util.Stack[*types.TypeRef]{}
	pending.Push(t.Declaration())
	for pending.Len() > 0 {
		current, _ := pending.Pop()
		supers := current.Interfaces()
		if super := current.Superclass(); super != nil {
			supers = append([]*types.TypeRef{super}, supers...)
		}
		for _, s := range supers {
			names = append(names, s.Declaration().Name())
			pending.Push(s.Declaration())
		}
	}
	// diamond hierarchies list the same interface more than once
	sort.Strings(names)
	n := xset.Uniq(sort.StringSlice(names))
	return names[:n]
}

// Parse parses a type expression such as Map<String, List<? extends Number>>
// where every name refers to a declaration of r
func (r *Registry) Parse(expr string) (*types.TypeRef, error) {
	return r.ParseIn(expr, nil)
}

// MustParse is Parse for expressions known to be valid
func (r *Registry) MustParse(expr string) *types.TypeRef {
	t, err := r.Parse(expr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseIn parses a type expression where the names in scope are type parameters
func (r *Registry) ParseIn(expr string, scope Scope) (*types.TypeRef, error) {
	p := newParser(r, expr, scope)
	t, err := parseWhole(p, p.parseType)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse type '%s'", expr)
	}
	return t, nil
}

// ParseSlot parses a generic argument such as '? super Integer' or 'List<T>'
func (r *Registry) ParseSlot(expr string, scope Scope) (*types.Slot, error) {
	p := newParser(r, expr, scope)
	s, err := parseWhole(p, p.parseArg)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse generic argument '%s'", expr)
	}
	return s, nil
}

// ParseParams parses type parameter declarations such as 'T extends Comparable<? super T>'.
// Bounds may refer to any of the parameters being declared and to outer.
func (r *Registry) ParseParams(decls []string, outer Scope) ([]*types.Slot, Scope, error) {
	bare := outer.Clone()
	for _, d := range decls {
		name, err := paramName(d)
		if err != nil {
			return nil, nil, err
		}
		bare[name] = types.NewPlaceholder(name)
	}
	params := make([]*types.Slot, 0, len(decls))
	scope := outer.Clone()
	for _, d := range decls {
		p := newParser(r, d, bare)
		param, err := parseWhole(p, p.parseParam)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "could not parse type parameter '%s'", d)
		}
		params = append(params, param)
		scope[param.Name()] = param.Type()
	}
	return params, scope, nil
}

// Scope maps type parameter names to their placeholder
type Scope map[string]*types.TypeRef

// ScopeOf returns the scope made of the declared parameters of decl
func ScopeOf(decl *types.TypeRef) Scope {
	s := Scope{}
	for _, p := range decl.Declaration().Generics() {
		s[p.Name()] = p.Type()
	}
	return s
}

func (s Scope) Clone() Scope {
	if s == nil {
		return Scope{}
	}
	return maps.Clone(s)
}
