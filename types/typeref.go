// Package types holds the nominal type model consumed by the generics engine.
//
// TypeRef and Slot values are immutable once published. Canonical declarations
// are shared by identity across every use-site that refers to them, so every
// derivation (parameterisation, substitution) produces fresh nodes.
package types

import (
	"slices"
)

// Kind discriminates the variants of a TypeRef
type Kind uint8

const (
	// Class is a class or interface, either a canonical declaration or a use-site of one
	Class Kind = iota
	// Placeholder is a use-site of a type parameter such as T
	Placeholder
	// Array is an array of its element type
	Array
)

func (k Kind) String() string {
	switch k {
	case Class:
		return "class"
	case Placeholder:
		return "placeholder"
	case Array:
		return "array"
	}
	return "unknown"
}

// TypeRef is a node of the type model.
//
// A TypeRef is either a canonical declaration (decl == nil) or a use-site
// pointing to exactly one canonical declaration. Only declarations carry a
// superclass and interfaces; use-sites delegate to their declaration.
type TypeRef struct {
	kind Kind
	name string

	// generics is nil when the node is not parameterised and empty for a diamond.
	// For a declaration it is the declared (unbound) parameter list.
	generics []*Slot

	// elem is the element type of an Array
	elem *TypeRef
	// bounds are the upper bounds of a Placeholder
	bounds []*TypeRef

	iface bool
	// union marks a synthesised least-upper-bound type
	union bool
	// pending marks a declaration that is still being compiled
	pending bool

	super      *TypeRef
	interfaces []*TypeRef

	decl *TypeRef
}

func (t *TypeRef) Kind() Kind          { return t.kind }
func (t *TypeRef) Name() string        { return t.name }
func (t *TypeRef) IsPlaceholder() bool { return t.kind == Placeholder }
func (t *TypeRef) IsArray() bool       { return t.kind == Array }
func (t *TypeRef) Elem() *TypeRef      { return t.elem }
func (t *TypeRef) IsInterface() bool   { return t.Declaration().iface }
func (t *TypeRef) IsUnion() bool       { return t.Declaration().union }
func (t *TypeRef) InCompilation() bool { return t.Declaration().pending }

// PlaceholderBounds returns the upper bounds of a placeholder, if any
func (t *TypeRef) PlaceholderBounds() []*TypeRef { return t.bounds }

// Generics returns the node's own slots: the declared parameters of a
// declaration, or the supplied arguments of a use-site.
// The result must not be modified.
func (t *TypeRef) Generics() []*Slot {
	return t.generics
}

// Declaration returns the canonical declaration of t.
// Declarations, placeholders and arrays are their own declaration.
func (t *TypeRef) Declaration() *TypeRef {
	if t.decl == nil {
		return t
	}
	return t.decl
}

// IsRedirect reports whether t is a use-site of some other canonical declaration
func (t *TypeRef) IsRedirect() bool {
	return t.decl != nil
}

// IsGeneric reports whether the declaration of t declares type parameters
func (t *TypeRef) IsGeneric() bool {
	return t.kind == Class && len(t.Declaration().generics) > 0
}

// IsRaw reports whether t is a use-site of a generic declaration that supplies no arguments
func (t *TypeRef) IsRaw() bool {
	return t.IsRedirect() && t.generics == nil && t.IsGeneric()
}

// IsDiamond reports whether t was parameterised with zero arguments, as in new ArrayList<>()
func (t *TypeRef) IsDiamond() bool {
	return t.IsRedirect() && t.generics != nil && len(t.generics) == 0
}

// IsParameterized reports whether t is a use-site carrying supplied arguments
func (t *TypeRef) IsParameterized() bool {
	return t.IsRedirect() && len(t.generics) > 0
}

// IsRoot reports whether t is the universal root type
func (t *TypeRef) IsRoot() bool {
	return t.Declaration() == Object
}

// Superclass returns the declared superclass of t, as written in the
// declaration and therefore expressed in terms of the declaration's own
// parameters. It is nil only for the root type.
func (t *TypeRef) Superclass() *TypeRef {
	switch t.kind {
	case Array:
		return Object
	case Placeholder:
		if len(t.bounds) > 0 && !t.bounds[0].IsInterface() {
			return t.bounds[0]
		}
		return Object
	}
	d := t.Declaration()
	if d == Object {
		return nil
	}
	if d.super == nil {
		return Object
	}
	return d.super
}

// Interfaces returns the interfaces directly implemented (or, for an
// interface, extended) by the declaration of t, as written in the declaration.
// The result must not be modified.
func (t *TypeRef) Interfaces() []*TypeRef {
	if t.kind == Placeholder {
		var ifaces []*TypeRef
		for _, b := range t.bounds {
			if b.IsInterface() {
				ifaces = append(ifaces, b)
			}
		}
		return ifaces
	}
	return t.Declaration().interfaces
}

// Erasure returns the type t stands for once generics are erased
func (t *TypeRef) Erasure() *TypeRef {
	switch t.kind {
	case Placeholder:
		if len(t.bounds) > 0 {
			return t.bounds[0].Erasure()
		}
		return Object
	case Array:
		return ArrayOf(t.elem.Erasure())
	}
	return t.Declaration()
}

// Is reports whether t and other denote the same declaration, ignoring generics.
// Arrays compare their element types and placeholders compare their names.
func (t *TypeRef) Is(other *TypeRef) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case Array:
		return t.elem.Is(other.elem)
	case Placeholder:
		return t.name == other.name
	}
	return t.Declaration() == other.Declaration()
}

// Object is the universal root type
var Object = &TypeRef{kind: Class, name: "Object"}

// Builder assembles a canonical declaration.
//
// Ref may be used before Build so that parameter bounds and supertypes can
// refer to the declaration being built (as in Enum<E extends Enum<E>>).
// The declaration must not be used by the engine before Build returns.
type Builder struct {
	t     *TypeRef
	built bool
}

// NewClass starts the declaration of a class
func NewClass(name string) *Builder {
	return &Builder{t: &TypeRef{kind: Class, name: name}}
}

// NewInterface starts the declaration of an interface
func NewInterface(name string) *Builder {
	return &Builder{t: &TypeRef{kind: Class, name: name, iface: true}}
}

func (b *Builder) Ref() *TypeRef { return b.t }

// Params declares the type parameters. Every slot must be a placeholder.
func (b *Builder) Params(params ...*Slot) *Builder {
	b.mustNotBeBuilt()
	for _, p := range params {
		if !p.IsPlaceholder() {
			panic("types: declared parameter " + p.String() + " of " + b.t.name + " is not a placeholder")
		}
	}
	// no parameters means not generic, never a diamond
	b.t.generics = nil
	if len(params) > 0 {
		b.t.generics = slices.Clone(params)
	}
	return b
}

func (b *Builder) Extends(super *TypeRef) *Builder {
	b.mustNotBeBuilt()
	b.t.super = super
	return b
}

func (b *Builder) Implements(ifaces ...*TypeRef) *Builder {
	b.mustNotBeBuilt()
	b.t.interfaces = append(b.t.interfaces, ifaces...)
	return b
}

func (b *Builder) InCompilation() *Builder {
	b.mustNotBeBuilt()
	b.t.pending = true
	return b
}

func (b *Builder) Build() *TypeRef {
	b.mustNotBeBuilt()
	b.built = true
	return b.t
}

func (b *Builder) mustNotBeBuilt() {
	if b.built {
		panic("types: declaration " + b.t.name + " is already published")
	}
}

// Parameterized returns a fresh use-site of decl supplying args.
// With no args the result is a diamond use-site.
func Parameterized(decl *TypeRef, args ...*Slot) *TypeRef {
	d := decl.Declaration()
	if args == nil {
		args = []*Slot{}
	}
	return &TypeRef{kind: Class, name: d.name, generics: slices.Clone(args), decl: d}
}

// Raw returns a use-site of decl that supplies no arguments
func Raw(decl *TypeRef) *TypeRef {
	d := decl.Declaration()
	return &TypeRef{kind: Class, name: d.name, decl: d}
}

// Diamond returns a use-site of decl parameterised with zero arguments
func Diamond(decl *TypeRef) *TypeRef {
	return Parameterized(decl)
}

// NewPlaceholder returns a use-site of the type parameter name with optional upper bounds
func NewPlaceholder(name string, bounds ...*TypeRef) *TypeRef {
	return &TypeRef{kind: Placeholder, name: name, bounds: slices.Clone(bounds)}
}

// ArrayOf returns the array type of elem
func ArrayOf(elem *TypeRef) *TypeRef {
	return &TypeRef{kind: Array, name: elem.name + "[]", elem: elem}
}

// NewUnion returns a virtual least-upper-bound type with the given synthesised
// superclass and interfaces, which must be fully parameterised.
func NewUnion(name string, super *TypeRef, ifaces ...*TypeRef) *TypeRef {
	if super == nil {
		super = Object
	}
	return &TypeRef{kind: Class, name: name, union: true, super: super, interfaces: slices.Clone(ifaces)}
}
