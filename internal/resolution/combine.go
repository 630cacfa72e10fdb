package resolution

import (
	"fmt"

	"specgraph/internal/names"
	"specgraph/internal/types"
)

// ViolationKind classifies why a combination failed.
type ViolationKind uint8

const (
	// Constrictive: a parameter resolves to a different parameter of the
	// same callable.
	Constrictive ViolationKind = iota + 1
	// Conflict: a parameter already holds a different non-self binding.
	Conflict
)

func (k ViolationKind) String() string {
	switch k {
	case Constrictive:
		return "constrictive"
	case Conflict:
		return "conflict"
	}
	return "unknown"
}

// Violation is one rejected binding encountered while combining.
type Violation struct {
	Kind     ViolationKind
	Param    names.TypeParameterKey
	Value    types.ResolvedType
	Existing types.ResolvedType // Conflict only
	Step     int                // index of the input map
}

func (v Violation) String() string {
	switch v.Kind {
	case Constrictive:
		return fmt.Sprintf("%s resolves to %s of the same callable", v.Param, v.Value)
	case Conflict:
		return fmt.Sprintf("%s is resolved to both %s and %s", v.Param, v.Existing, v.Value)
	}
	return v.Param.String()
}

// Result is the outcome of CombineDetailed. Map holds the partial result
// even when OK is false.
type Result struct {
	Map        Map
	OK         bool
	Violations []Violation
}

// Combine merges resolution maps ordered innermost first: map i may bind a
// parameter to a reference that map i+1 resolves further. It reports false
// on any constrictive or conflicting binding.
func Combine(maps ...Map) (Map, bool) {
	res := CombineDetailed(maps...)
	return res.Map, res.OK
}

// CombineForTarget is Combine restricted to the parameters owned by target.
func CombineForTarget(target names.QualifiedName, maps ...Map) (Map, bool) {
	res := CombineDetailed(maps...)
	return res.Map.OwnedBy(target), res.OK
}

// CombineDetailed is Combine that also lists every violation. Processing
// never stops early so all violations surface.
func CombineDetailed(maps ...Map) Result {
	acc := make(Map)
	res := Result{OK: true}
	reject := func(v Violation) {
		res.OK = false
		res.Violations = append(res.Violations, v)
	}

	for step, m := range maps {
		// accumulator entries whose value is a bare parameter, by that parameter
		pointing := make(map[names.TypeParameterKey][]names.TypeParameterKey)
		for _, k := range acc.Keys() {
			if p, ok := acc[k].TypeParameter(); ok {
				pointing[p] = append(pointing[p], k)
			}
		}

		for _, param := range m.Keys() {
			value := m[param].Strip()
			for _, k := range pointing[param] {
				if isConstrictive(k, value) {
					reject(Violation{Kind: Constrictive, Param: k, Value: value, Step: step})
				}
				acc[k] = value
			}
		}

		for _, param := range m.Keys() {
			value := m[param].Strip()
			if isConstrictive(param, value) {
				reject(Violation{Kind: Constrictive, Param: param, Value: value, Step: step})
				continue
			}
			if cur, ok := acc[param]; ok && !cur.Refers(param) && !cur.Equal(value) {
				reject(Violation{Kind: Conflict, Param: param, Value: value, Existing: cur, Step: step})
				continue
			}
			acc[param] = value
		}
	}

	res.Map = acc
	return res
}

// isConstrictive: value is a different parameter of key's own callable.
// Self-resolution is always safe.
func isConstrictive(key names.TypeParameterKey, value types.ResolvedType) bool {
	p, ok := value.TypeParameter()
	return ok && p.SameOwner(key) && p != key
}
