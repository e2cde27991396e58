package generics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMethod(t *testing.T) {
	r := testRegistry(t)
	e := testEngine()

	tests := []struct {
		receiver, method string
		expected         string
	}{
		{"ArrayList<String>", "get", "String List.get(Integer)"},
		{"ArrayList<String>", "add", "Boolean Collection.add(String)"},
		{"ArrayList<String>", "addAll", "Boolean Collection.addAll(Collection<? extends String>)"},
		{"ArrayList<String>", "iterator", "Iterator<String> Iterable.iterator()"},
		{"ArrayList<String>", "toArray", "<T> T[] Collection.toArray(T[])"},
		{"LinkedList<Long>", "sort", "void List.sort(Comparator<? super Long>)"},
		{"HashMap<String, Integer>", "getOrDefault", "Integer Map.getOrDefault(Object, Integer)"},
		{"HashMap<String, Integer>", "keySet", "Set<String> Map.keySet()"},
		{"Integer", "compareTo", "Integer Comparable.compareTo(Integer)"},
		{"Box<Long>", "unwrap", "Long Box.unwrap()"},
		{"Box<Long>", "map", "<R extends Number> Box<R> Box.map(Comparator<? super Long>)"},
		{"Collections", "max", "<T extends Object & Comparable<? super T>> T Collections.max(Collection<? extends T>)"},
		// raw receivers see Object
		{"ArrayList", "get", "Object List.get(Integer)"},
	}

	for _, test := range tests {
		t.Run(test.receiver+"."+test.method, func(t *testing.T) {
			receiver := r.MustParse(test.receiver)
			m, ok := r.FindMethod(receiver, test.method)
			require.True(t, ok)

			resolved, err := e.ResolveMethod(receiver, m)
			require.NoError(t, err)
			assert.Equal(t, test.expected, resolved.String())
		})
	}
}

func TestResolveMethodOnUnrelatedReceiver(t *testing.T) {
	r := testRegistry(t)
	e := testEngine()
	get, ok := r.FindMethod(r.MustParse("List<String>"), "get")
	require.True(t, ok)

	_, err := e.ResolveMethod(r.MustParse("String"), get)
	var invariant *InvariantError
	require.ErrorAs(t, err, &invariant)
	assert.Equal(t, NoHierarchyPath, invariant.Code)
}
