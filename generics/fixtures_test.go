package generics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cottand/jgenerics/classmodel"
	"github.com/cottand/jgenerics/types"
)

const testModel = `
types:
  - name: A
    params: [V, W, X]
  - name: B
    params: [T]
    extends: A<T, Long, String>
  - name: Color
    extends: Enum<Color>
  - name: Script
    inCompilation: true
  - name: Compiled
  - name: Box
    params: ["T extends Number"]
    implements: Comparable<Box<T>>
    methods:
      - name: unwrap
        returns: T
      - name: map
        typeParams: ["R extends Number"]
        params: Comparator<? super T>
        returns: Box<R>
`

func testRegistry(t *testing.T) *classmodel.Registry {
	t.Helper()
	r := classmodel.NewCoreRegistry()
	require.NoError(t, r.Load("test.yaml", []byte(testModel)))
	return r
}

func testEngine() *Engine {
	return NewEngine(DefaultSettings())
}

// scopeOf declares the type parameters params
func scopeOf(t *testing.T, r *classmodel.Registry, params ...string) classmodel.Scope {
	t.Helper()
	_, scope, err := r.ParseParams(params, nil)
	require.NoError(t, err)
	return scope
}

// parseIn parses expr where params declares the type parameters it may mention
func parseIn(t *testing.T, r *classmodel.Registry, expr string, params ...string) *types.TypeRef {
	t.Helper()
	ret, err := r.ParseIn(expr, scopeOf(t, r, params...))
	require.NoError(t, err)
	return ret
}

func parseSlot(t *testing.T, r *classmodel.Registry, expr string, params ...string) *types.Slot {
	t.Helper()
	ret, err := r.ParseSlot(expr, scopeOf(t, r, params...))
	require.NoError(t, err)
	return ret
}

// show renders slot maps for readable diffs
func show(m map[string]*types.Slot) map[string]string {
	ret := make(map[string]string, len(m))
	for name, s := range m {
		ret[name] = s.String()
	}
	return ret
}
