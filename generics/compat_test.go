package generics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cottand/jgenerics/types"
)

func TestIsCompatibleWith(t *testing.T) {
	r := testRegistry(t)
	e := testEngine()

	tests := []struct {
		slot      string
		candidate string
		params    []string
		expected  bool
	}{
		{"? extends Number", "Integer", nil, true},
		{"? extends Number", "Long", nil, true},
		{"? extends Number", "Number", nil, true},
		{"? extends Number", "String", nil, false},
		{"? extends Number", "Object", nil, false},
		{"? super Integer", "Number", nil, true},
		{"? super Integer", "Object", nil, true},
		{"? super Integer", "Integer", nil, true},
		{"? super Integer", "Comparable<Integer>", nil, true},
		{"? super Integer", "Short", nil, false},
		{"?", "String", nil, true},
		{"String", "String", nil, true},
		{"Number", "Integer", nil, false},
		{"List<String>", "List<String>", nil, true},
		{"List<String>", "List<Integer>", nil, false},
		{"List<String>", "ArrayList<String>", nil, false},
		{"List<? extends Number>", "List<Integer>", nil, true},
		{"List<? extends Number>", "List<String>", nil, false},
		{"? extends Collection<String>", "ArrayList<String>", nil, true},
		{"? extends Collection<String>", "ArrayList<Integer>", nil, false},
		{"? extends Map<String, ? extends Number>", "HashMap<String, Long>", nil, true},
		{"? extends Number & Comparable<Integer>", "Integer", nil, true},
		{"? extends Number & Comparable<Integer>", "Long", nil, false},
		{"String", "Integer", nil, false},
		{"? super Integer", "Comparable<String>", nil, false},
		{"? super ArrayList<String>", "List<String>", nil, true},
		{"? super ArrayList<String>", "List<Integer>", nil, false},
		{"? extends Map<String, ? extends List<Integer>>", "HashMap<String, ArrayList<Integer>>", nil, true},
		{"? extends Map<String, ? extends List<Integer>>", "HashMap<String, ArrayList<Long>>", nil, false},
		{"Map<String, ? extends List<Integer>>", "Map<String, LinkedList<Integer>>", nil, true},
		{"Map<String, ? extends List<Integer>>", "Map<String, HashSet<Integer>>", nil, false},
		{"? extends Collection<? super List<Integer>>", "ArrayList<Collection<Integer>>", nil, true},
		{"? extends Collection<? super List<Integer>>", "ArrayList<Object>", nil, true},
		{"? extends Collection<? super List<Integer>>", "ArrayList<Collection<Long>>", nil, false},
		{"? extends Collection<? super List<Integer>>", "ArrayList<ArrayList<Integer>>", nil, false},
		{"T", "T", []string{"T"}, true},
		{"T", "U", []string{"T", "U"}, false},
		{"? extends T", "T", []string{"T"}, true},
		{"? super T", "T", []string{"T"}, true},
		{"? extends Number", "T", []string{"T extends Integer"}, true},
		{"? extends Number", "T", []string{"T extends CharSequence"}, false},
	}

	for _, test := range tests {
		t.Run(test.slot+" <- "+test.candidate, func(t *testing.T) {
			slot := parseSlot(t, r, test.slot, test.params...)
			candidate := parseIn(t, r, test.candidate, test.params...)
			ok, err := e.IsCompatibleWith(slot, candidate)
			require.NoError(t, err)
			assert.Equal(t, test.expected, ok)
		})
	}
}

func TestDiamondAndRawAreCompatible(t *testing.T) {
	r := testRegistry(t)
	e := testEngine()

	slots := []string{"String", "List<String>", "? extends Number", "? super Integer"}
	for _, s := range slots {
		ok, err := e.IsCompatibleWith(parseSlot(t, r, s), r.MustParse("ArrayList<>"))
		require.NoError(t, err)
		assert.True(t, ok, "diamond against %s", s)
	}

	// a raw use-site still needs the right declaration
	for _, s := range []string{"List<String>", "? extends Collection<Integer>", "? extends Iterable<? extends Number>"} {
		ok, err := e.IsCompatibleWith(parseSlot(t, r, s), r.MustParse("List"))
		require.NoError(t, err)
		assert.True(t, ok, "raw against %s", s)
	}
}

func TestImplementsInterfaceOrIsSubclassOf(t *testing.T) {
	r := testRegistry(t)
	e := testEngine()

	tests := []struct {
		t, super string
		expected bool
	}{
		{"Integer", "Number", true},
		{"Integer", "Serializable", true},
		{"Integer", "Comparable", true},
		{"Integer", "Object", true},
		{"Number", "Integer", false},
		{"ArrayList<String>", "Iterable", true},
		{"ArrayList<String>", "Deque", false},
		{"LinkedList<String>", "Queue", true},
		{"LinkedList<String>", "AbstractCollection", true},
		{"Integer[]", "Number[]", true},
		{"Integer[]", "Number", false},
		{"Integer[]", "Object", true},
		{"Color", "Comparable", true},
		{"Compiled", "GroovyObject", false},
		{"Script", "GroovyObject", true},
	}
	for _, test := range tests {
		t.Run(test.t+" <: "+test.super, func(t *testing.T) {
			assert.Equal(t, test.expected, e.ImplementsInterfaceOrIsSubclassOf(r.MustParse(test.t), r.MustParse(test.super)))
		})
	}
}

func TestImplicitMarkerCanBeDisabled(t *testing.T) {
	r := testRegistry(t)
	settings := DefaultSettings()
	settings.ImplicitMarker = ""
	e := NewEngine(settings)

	marker := types.WildcardExtends(r.MustLookup("GroovyObject"))
	ok, err := e.IsCompatibleWith(marker, r.MustParse("Script"))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = testEngine().IsCompatibleWith(marker, r.MustParse("Script"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUnionSupertype(t *testing.T) {
	r := testRegistry(t)
	e := testEngine()
	union := types.NewUnion("Number & Comparable<?>", r.MustLookup("Number"), r.MustParse("Comparable<?>"))

	assert.True(t, e.ImplementsInterfaceOrIsSubclassOf(r.MustParse("Integer"), union))
	assert.True(t, e.ImplementsInterfaceOrIsSubclassOf(r.MustParse("Double"), union))
	assert.False(t, e.ImplementsInterfaceOrIsSubclassOf(r.MustParse("String"), union))
	assert.False(t, e.ImplementsInterfaceOrIsSubclassOf(r.MustParse("Number"), union))

	ok, err := e.IsCompatibleWith(types.WildcardExtends(union), r.MustParse("Long"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsCompatibleWithArityMismatch(t *testing.T) {
	r := testRegistry(t)
	e := testEngine()
	malformed := types.Parameterized(r.MustLookup("Map"), types.Concrete(r.MustParse("String")))

	ok, err := e.IsCompatibleWith(types.Concrete(r.MustParse("Map<String, Integer>")), malformed)
	var invariant *InvariantError
	require.ErrorAs(t, err, &invariant)
	assert.Equal(t, ArityMismatch, invariant.Code)
	assert.False(t, ok)
}
