package classmodel

import (
	_ "embed"
	"sync"
)

//go:embed core.yaml
var coreModel []byte

var core = sync.OnceValues(func() (*Registry, error) {
	r := NewRegistry()
	if err := r.Load("core.yaml", coreModel); err != nil {
		return nil, err
	}
	return r, nil
})

// NewCoreRegistry returns a registry holding the core library: boxed
// primitives, String, Enum, and the collection interfaces and classes.
//
// The core declarations are shared by every registry it returns, so types
// parsed from different registries agree on their identity.
func NewCoreRegistry() *Registry {
	r, err := core()
	if err != nil {
		panic(err)
	}
	return r.Clone()
}
