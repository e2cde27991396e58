package generics

import (
	"iter"
	"strings"

	"github.com/benbjohnson/immutable"
	"github.com/cottand/jgenerics/types"
)

// Spec is a generics spec: an immutable substitution map from type parameter
// names to the slot they stand for. The zero value is an empty Spec.
//
// Values are slots rather than plain types so that wildcard arguments survive
// substitution (ArrayList<? extends Number> gives Collection<? extends Number>).
type Spec struct {
	m *immutable.SortedMap[string, *types.Slot]
}

func NewSpec() Spec {
	return Spec{m: immutable.NewSortedMap[string, *types.Slot](nil)}
}

// SpecFromMap builds a Spec holding the entries of m
func SpecFromMap(m map[string]*types.Slot) Spec {
	s := NewSpec()
	for name, slot := range m {
		s = s.With(name, slot)
	}
	return s
}

// SpecOf builds a Spec mapping each name to a concrete slot of the corresponding type
func SpecOf(pairs map[string]*types.TypeRef) Spec {
	s := NewSpec()
	for name, t := range pairs {
		s = s.With(name, types.Concrete(t))
	}
	return s
}

func (s Spec) Get(name string) (*types.Slot, bool) {
	if s.m == nil {
		return nil, false
	}
	return s.m.Get(name)
}

// With returns a copy of s where name maps to slot
func (s Spec) With(name string, slot *types.Slot) Spec {
	m := s.m
	if m == nil {
		m = immutable.NewSortedMap[string, *types.Slot](nil)
	}
	return Spec{m: m.Set(name, slot)}
}

func (s Spec) Len() int {
	if s.m == nil {
		return 0
	}
	return s.m.Len()
}

// All iterates over the entries of s in name order
func (s Spec) All() iter.Seq2[string, *types.Slot] {
	return func(yield func(string, *types.Slot) bool) {
		if s.m == nil {
			return
		}
		itr := s.m.Iterator()
		for !itr.Done() {
			name, slot, _ := itr.Next()
			if !yield(name, slot) {
				return
			}
		}
	}
}

// ToMap returns the entries of s as a fresh Go map
func (s Spec) ToMap() map[string]*types.Slot {
	ret := make(map[string]*types.Slot, s.Len())
	for name, slot := range s.All() {
		ret[name] = slot
	}
	return ret
}

func (s Spec) String() string {
	sb := &strings.Builder{}
	sb.WriteString("{")
	first := true
	for name, slot := range s.All() {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(name)
		sb.WriteString(":")
		sb.WriteString(slot.String())
	}
	sb.WriteString("}")
	return sb.String()
}
