package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fixture is a tiny hand-built hierarchy:
//
//	interface Comparable<T>
//	interface List<E>
//	class Number
//	class Integer extends Number implements Comparable<Integer>
//	class ArrayList<E> implements List<E>
type fixture struct {
	comparable, list, number, integer, arrayList *TypeRef
}

func newFixture() fixture {
	var f fixture
	f.comparable = NewInterface("Comparable").Params(PlaceholderOf("T")).Build()
	f.list = NewInterface("List").Params(PlaceholderOf("E")).Build()
	f.number = NewClass("Number").Build()

	integer := NewClass("Integer")
	integer.Extends(f.number).Implements(Parameterized(f.comparable, Concrete(integer.Ref())))
	f.integer = integer.Build()

	e := PlaceholderOf("E")
	f.arrayList = NewClass("ArrayList").Params(e).Implements(Parameterized(f.list, e)).Build()
	return f
}

func TestUseSites(t *testing.T) {
	f := newFixture()

	raw := Raw(f.arrayList)
	diamond := Diamond(f.arrayList)
	param := Parameterized(f.arrayList, Concrete(f.integer))

	assert.True(t, raw.IsRaw())
	assert.False(t, raw.IsDiamond())
	assert.False(t, raw.IsParameterized())

	assert.True(t, diamond.IsDiamond())
	assert.False(t, diamond.IsRaw())

	assert.True(t, param.IsParameterized())
	assert.False(t, param.IsRaw())

	for _, use := range []*TypeRef{raw, diamond, param} {
		assert.True(t, use.IsRedirect())
		assert.Same(t, f.arrayList, use.Declaration())
		assert.True(t, use.Is(f.arrayList))
		assert.Equal(t, f.arrayList.Interfaces(), use.Interfaces())
	}

	// a non generic declaration is never raw
	assert.False(t, Raw(f.number).IsRaw())
	assert.False(t, f.arrayList.IsRedirect())
}

func TestSuperclass(t *testing.T) {
	f := newFixture()

	assert.Nil(t, Object.Superclass())
	assert.Same(t, Object, f.number.Superclass())
	assert.Same(t, f.number, f.integer.Superclass())
	assert.Same(t, Object, ArrayOf(f.integer).Superclass())

	bounded := NewPlaceholder("T", f.integer, f.comparable)
	assert.Same(t, f.integer, bounded.Superclass())
	assert.Equal(t, []*TypeRef{f.comparable}, bounded.Interfaces())
	assert.Same(t, Object, NewPlaceholder("T", f.list).Superclass())
}

func TestErasure(t *testing.T) {
	f := newFixture()

	assert.Same(t, Object, NewPlaceholder("T").Erasure())
	assert.Same(t, f.number, NewPlaceholder("T", NewPlaceholder("U", f.number)).Erasure())
	assert.Same(t, f.arrayList, Parameterized(f.arrayList, Concrete(f.integer)).Erasure())
	erased := ArrayOf(Parameterized(f.arrayList, Wildcard())).Erasure()
	assert.True(t, erased.IsArray())
	assert.Same(t, f.arrayList, erased.Elem())

	assert.Same(t, f.number, WildcardExtends(f.number, f.comparable).Erasure())
	assert.Same(t, Object, WildcardSuper(f.integer).Erasure())
}

func TestString(t *testing.T) {
	f := newFixture()
	t.Run("use sites", func(t *testing.T) {
		assert.Equal(t, "ArrayList", Raw(f.arrayList).String())
		assert.Equal(t, "ArrayList<>", Diamond(f.arrayList).String())
		assert.Equal(t, "ArrayList<Integer>[][]", ArrayOf(ArrayOf(Parameterized(f.arrayList, Concrete(f.integer)))).String())
		assert.Equal(t, "List<?>", Parameterized(f.list, Wildcard()).String())
		assert.Equal(t, "List<? super Integer>", Parameterized(f.list, WildcardSuper(f.integer)).String())
		assert.Equal(t, "List<? extends Number & Comparable<Integer>>",
			Parameterized(f.list, WildcardExtends(f.number, Parameterized(f.comparable, Concrete(f.integer)))).String())
	})
	t.Run("bounded placeholders", func(t *testing.T) {
		// T extends Comparable<? super T>
		bound := Parameterized(f.comparable, WildcardSuper(NewPlaceholder("T")))
		p := NewPlaceholder("T", bound)
		assert.Equal(t, "T", p.String())
		assert.Equal(t, "T extends Comparable<? super T>", ShowBounded(p))
		assert.Equal(t, "List<T extends Comparable<? super T>>", ShowBounded(Parameterized(f.list, Concrete(p))))
		assert.Equal(t, "T", ShowBounded(NewPlaceholder("T", Object)))
	})
	t.Run("declarations", func(t *testing.T) {
		assert.Equal(t, "class Integer extends Number implements Comparable<Integer>", Describe(f.integer))
		assert.Equal(t, "class ArrayList<E> implements List<E>", Describe(Parameterized(f.arrayList, Concrete(f.integer))))
		assert.Equal(t, "interface List<E>", Describe(f.list))
		assert.Equal(t, "class Object", Describe(Object))

		union := NewUnion("Number & Comparable", f.number, f.comparable)
		assert.Equal(t, "union Number & Comparable extends Number implements Comparable<T>", Describe(union))
		assert.True(t, union.IsUnion())
		assert.False(t, union.IsInterface())
	})
}

func TestEqual(t *testing.T) {
	f := newFixture()
	intList := func() *TypeRef { return Parameterized(f.list, Concrete(f.integer)) }

	assert.True(t, Equal(intList(), intList()))
	assert.False(t, Equal(intList(), Parameterized(f.list, Concrete(f.number))))
	assert.False(t, Equal(Raw(f.list), Diamond(f.list)))
	assert.False(t, Equal(intList(), Parameterized(f.arrayList, Concrete(f.integer))))
	assert.True(t, Equal(ArrayOf(intList()), ArrayOf(intList())))
	assert.True(t, Equal(NewPlaceholder("T", f.number), NewPlaceholder("T")))
	assert.True(t, SlotEqual(WildcardExtends(f.number), WildcardExtends(f.number)))
	assert.False(t, SlotEqual(WildcardExtends(f.number), WildcardSuper(f.number)))
	assert.False(t, SlotEqual(Wildcard(), Concrete(Object)))
}

func TestHasPlaceholders(t *testing.T) {
	f := newFixture()

	assert.False(t, HasPlaceholders(Parameterized(f.list, Concrete(f.integer))))
	assert.True(t, HasPlaceholders(Parameterized(f.list, PlaceholderOf("E"))))
	assert.True(t, HasPlaceholders(ArrayOf(NewPlaceholder("T"))))
	assert.True(t, HasPlaceholders(Parameterized(f.list, WildcardSuper(NewPlaceholder("T")))))
	assert.False(t, HasPlaceholders(Parameterized(f.list, Wildcard())))
}

func TestSlots(t *testing.T) {
	f := newFixture()

	s := Concrete(NewPlaceholder("T", f.number))
	assert.Equal(t, PlaceholderSlot, s.Kind())
	assert.Equal(t, []*TypeRef{f.number}, s.Upper())

	w := WildcardSuper(f.integer).WithBounds(f.number, nil)
	assert.True(t, w.IsWildcard())
	assert.Same(t, f.number, w.Lower())
	assert.Equal(t, "? super Number", w.String())

	p := PlaceholderOf("T", f.number).WithBounds(nil, []*TypeRef{f.integer})
	assert.Equal(t, "T", p.Name())
	assert.Equal(t, []*TypeRef{f.integer}, p.Type().PlaceholderBounds())

	resolved := Concrete(f.integer).AsResolved()
	assert.True(t, resolved.IsResolved())
	assert.False(t, Concrete(f.integer).IsResolved())

	assert.Equal(t, "concrete", ConcreteSlot.String())
	assert.Equal(t, "array", Array.String())
}

func TestBuilder(t *testing.T) {
	b := NewClass("Node")
	b.Params(PlaceholderOf("T", NewPlaceholder("U")))
	node := b.Build()
	assert.True(t, node.IsGeneric())

	assert.Panics(t, func() { b.Extends(Object) })
	assert.Panics(t, func() { b.Build() })
	assert.Panics(t, func() { NewClass("Bad").Params(Concrete(Object)) })

	plain := NewClass("Plain").Params().Build()
	assert.False(t, plain.IsGeneric())
	assert.False(t, plain.IsDiamond(), "a declaration without parameters is not a diamond")
	assert.Nil(t, plain.Generics())
	assert.False(t, Raw(plain).IsDiamond())

	pending := NewClass("Script").InCompilation().Build()
	assert.True(t, pending.InCompilation())
	assert.True(t, Raw(pending).InCompilation())
}

func TestMethodString(t *testing.T) {
	f := newFixture()
	m := &Method{
		Name:       "max",
		Owner:      f.arrayList,
		TypeParams: []*Slot{PlaceholderOf("T", f.number)},
		Params:     []*TypeRef{Parameterized(f.list, WildcardExtends(NewPlaceholder("T"))), f.integer},
		Return:     NewPlaceholder("T"),
	}
	assert.Equal(t, "<T extends Number> T ArrayList.max(List<? extends T>, Integer)", m.String())

	m = &Method{Name: "clear", Owner: Parameterized(f.list, Concrete(f.integer))}
	assert.Equal(t, "void List.clear()", m.String())
}
