package generics

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cottand/jgenerics/types"
)

func TestCreateSpecRekeysBySuperDeclaration(t *testing.T) {
	r := testRegistry(t)
	e := testEngine()

	receiver, err := e.CreateSpec(r.MustParse("B<Integer>"), NewSpec())
	require.NoError(t, err)
	assert.Equal(t, "{T:Integer}", receiver.String())

	super := r.MustLookup("B").Superclass()
	spec, err := e.CreateSpec(super, receiver)
	require.NoError(t, err)

	expected := map[string]string{"V": "Integer", "W": "Long", "X": "String"}
	if diff := cmp.Diff(expected, show(spec.ToMap())); diff != "" {
		t.Errorf("spec mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateSpecOfUnparameterizedIsOuter(t *testing.T) {
	r := testRegistry(t)
	e := testEngine()
	outer := SpecOf(map[string]*types.TypeRef{"T": r.MustParse("String")})

	for _, expr := range []string{"String", "ArrayList", "ArrayList<>"} {
		spec, err := e.CreateSpec(r.MustParse(expr), outer)
		require.NoError(t, err)
		assert.Equal(t, outer.String(), spec.String(), expr)
	}
}

func TestCreateSpecArityMismatch(t *testing.T) {
	r := testRegistry(t)
	e := testEngine()
	malformed := types.Parameterized(r.MustLookup("Map"), types.Concrete(r.MustParse("String")))

	_, err := e.CreateSpec(malformed, NewSpec())
	var invariant *InvariantError
	require.ErrorAs(t, err, &invariant)
	assert.Equal(t, ArityMismatch, invariant.Code)
	assert.Contains(t, FormatWithCode(invariant), "(G001)")
}

func TestApplySpec(t *testing.T) {
	r := testRegistry(t)
	spec := SpecFromMap(map[string]*types.Slot{
		"E": types.Concrete(r.MustParse("Number")),
		"K": types.Concrete(r.MustParse("String")),
		"W": types.WildcardExtends(r.MustParse("CharSequence")),
	})

	tests := []struct {
		expr     string
		expected string
	}{
		{"E", "Number"},
		{"List<E>", "List<Number>"},
		{"Map<K, List<E>>", "Map<String, List<Number>>"},
		{"List<? extends E>", "List<? extends Number>"},
		{"List<? super E>", "List<? super Number>"},
		{"E[]", "Number[]"},
		{"List<W>", "List<? extends CharSequence>"},
		{"W", "CharSequence"},
		// placeholders the spec does not know
		{"U", "Object"},
		{"List<U>", "List<Object>"},
		{"String", "String"},
	}
	for _, test := range tests {
		t.Run(test.expr, func(t *testing.T) {
			ret := ApplySpec(spec, parseIn(t, r, test.expr, "E", "K", "W", "U"))
			assert.Equal(t, test.expected, ret.String())
		})
	}
}

func TestApplySpecMultipleWildcardBounds(t *testing.T) {
	r := testRegistry(t)
	spec := SpecOf(map[string]*types.TypeRef{"E": r.MustParse("Integer")})
	e := parseIn(t, r, "E", "E")
	list := types.Parameterized(r.MustLookup("List"),
		types.WildcardExtends(e, types.Parameterized(r.MustLookup("Comparable"), types.Concrete(e))))

	assert.Equal(t, "List<? extends Integer & Comparable<Integer>>", ApplySpec(spec, list).String())
}

func TestApplySpecIsIdempotent(t *testing.T) {
	r := testRegistry(t)
	spec := SpecOf(map[string]*types.TypeRef{
		"K": r.MustParse("String"),
		"V": r.MustParse("Integer"),
	})

	for _, expr := range []string{
		"Map<String, List<Integer>>",
		"List<? super Integer>[]",
		"HashMap<K, ? extends Comparable<V>>",
	} {
		once := ApplySpec(spec, parseIn(t, r, expr, "K", "V"))
		twice := ApplySpec(spec, once)
		assert.True(t, types.Equal(once, twice), "%s: %s then %s", expr, once, twice)
		assert.False(t, types.HasPlaceholders(once), expr)
	}
}

func TestApplySpecExclusions(t *testing.T) {
	r := testRegistry(t)
	spec := SpecOf(map[string]*types.TypeRef{"E": r.MustParse("String")})
	list := parseIn(t, r, "Map<E, List<E>>", "E")

	assert.Equal(t, "Map<E, List<E>>", ApplySpec(spec, list, "E").String())
	assert.Equal(t, "Map<String, List<String>>", ApplySpec(spec, list).String())
}

func TestApplySpecPlaceholderMappings(t *testing.T) {
	r := testRegistry(t)
	number := r.MustParse("Number")
	integer := r.MustParse("Integer")
	t.Run("unbounded placeholder keeps its identity", func(t *testing.T) {
		spec := SpecFromMap(map[string]*types.Slot{"T": types.PlaceholderOf("U")})
		ret := ApplySpec(spec, types.NewPlaceholder("T"))
		require.True(t, ret.IsPlaceholder())
		assert.Equal(t, "U", ret.Name())
		require.Len(t, ret.PlaceholderBounds(), 1)
		assert.Equal(t, "U", ret.PlaceholderBounds()[0].Name())
	})
	t.Run("alias is followed", func(t *testing.T) {
		spec := SpecFromMap(map[string]*types.Slot{
			"T": types.PlaceholderOf("U", number),
			"U": types.Concrete(integer),
		})
		assert.Equal(t, "Integer", ApplySpec(spec, types.NewPlaceholder("T")).String())
	})
	t.Run("self mapping terminates", func(t *testing.T) {
		spec := SpecFromMap(map[string]*types.Slot{"T": types.PlaceholderOf("T", number)})
		ret := ApplySpec(spec, types.NewPlaceholder("T"))
		assert.Equal(t, "T extends Number", types.ShowBounded(ret))
	})
	t.Run("alias cycle terminates", func(t *testing.T) {
		spec := SpecFromMap(map[string]*types.Slot{
			"T": types.PlaceholderOf("U", types.Object),
			"U": types.PlaceholderOf("T", types.Object),
		})
		ret := ApplySpec(spec, types.NewPlaceholder("T"))
		require.True(t, ret.IsPlaceholder())
		assert.Equal(t, "T", ret.Name())
	})
}

func TestAddMethodGenerics(t *testing.T) {
	r := testRegistry(t)
	class := SpecOf(map[string]*types.TypeRef{
		"E": r.MustParse("String"),
		"T": r.MustParse("Long"),
	})
	params, _, err := r.ParseParams([]string{"T", "R extends List<E>", "S extends T"}, scopeOf(t, r, "E"))
	require.NoError(t, err)

	spec := AddMethodGenerics(class, params)

	expected := map[string]string{
		"E": "String",
		"T": "T",
		"R": "R extends List<String>",
		"S": "S extends T",
	}
	got := make(map[string]string)
	for name, s := range spec.All() {
		got[name] = types.ShowBounded(s.Type())
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("spec mismatch (-want +got):\n%s", diff)
	}

	// the method's own T shadows the class-level one
	assert.Equal(t, "List<T>", ApplySpec(spec, parseIn(t, r, "List<T>", "T")).String())
}
