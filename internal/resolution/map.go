// Package resolution holds type-parameter resolution maps and the
// combinator that composes them along a call chain.
package resolution

import (
	"slices"
	"strings"

	"specgraph/internal/names"
	"specgraph/internal/types"
)

// Map assigns resolved types to type parameters. Values are stored without
// source positions. Iteration order carries no meaning.
type Map map[names.TypeParameterKey]types.ResolvedType

// Of builds a Map from pairs.
func Of(pairs ...Pair) Map {
	m := make(Map, len(pairs))
	for _, p := range pairs {
		m.Set(p.Param, p.Type)
	}
	return m
}

// Pair is one binding, used by Of and Sorted.
type Pair struct {
	Param names.TypeParameterKey
	Type  types.ResolvedType
}

// Set binds key to a position-free copy of t.
func (m Map) Set(key names.TypeParameterKey, t types.ResolvedType) {
	m[key] = t.Strip()
}

// Clone returns a shallow copy; a nil map clones to an empty one.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Strip re-strips every value in place.
func (m Map) Strip() Map {
	for k, v := range m {
		m[k] = v.Strip()
	}
	return m
}

// Keys returns the bound parameters in canonical order.
func (m Map) Keys() []names.TypeParameterKey {
	keys := make([]names.TypeParameterKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, names.TypeParameterKey.Compare)
	return keys
}

// Sorted returns the bindings in canonical key order.
func (m Map) Sorted() []Pair {
	keys := m.Keys()
	out := make([]Pair, len(keys))
	for i, k := range keys {
		out[i] = Pair{Param: k, Type: m[k]}
	}
	return out
}

// Equal compares content only; insertion order is irrelevant.
func (m Map) Equal(other Map) bool {
	if len(m) != len(other) {
		return false
	}
	for k, v := range m {
		ov, ok := other[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Key is a canonical encoding: equal maps have equal keys.
func (m Map) Key() string {
	if len(m) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range m.Sorted() {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(p.Param.Key())
		b.WriteByte('=')
		b.WriteString(p.Type.Key())
	}
	return b.String()
}

// String renders the map as {'A: Int, 'B: Bool} in canonical order.
func (m Map) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, p := range m.Sorted() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Param.String())
		b.WriteString(": ")
		b.WriteString(p.Type.String())
	}
	b.WriteByte('}')
	return b.String()
}

// OwnedBy keeps only the bindings of target's own parameters.
func (m Map) OwnedBy(target names.QualifiedName) Map {
	out := make(Map)
	for k, v := range m {
		if k.Owner == target {
			out[k] = v
		}
	}
	return out
}

// Apply substitutes binding into every value of m (deep, single pass).
func (m Map) Apply(binding Map) Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v.Substitute(binding.Lookup)
	}
	return out
}

// Lookup adapts m to types.Lookup.
func (m Map) Lookup(key names.TypeParameterKey) (types.ResolvedType, bool) {
	v, ok := m[key]
	return v, ok
}

// IsConcrete reports whether no value mentions a type parameter.
func (m Map) IsConcrete() bool {
	for _, v := range m {
		if v.ContainsTypeParameters() {
			return false
		}
	}
	return true
}
