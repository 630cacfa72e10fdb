package types

import "specgraph/internal/names"

// Lookup answers the replacement for a type parameter, if any.
type Lookup func(names.TypeParameterKey) (ResolvedType, bool)

// Substitute replaces every type-parameter reference in t for which lookup
// has an answer. Replacements are not substituted again, so a binding of
// 'A to Array<'A> applies once.
func (t ResolvedType) Substitute(lookup Lookup) ResolvedType {
	if lookup == nil {
		return t
	}
	if t.Kind == KindTypeParameter {
		if repl, ok := lookup(t.Param); ok {
			return repl.Strip()
		}
		return t
	}
	if len(t.Elems) == 0 {
		return t
	}
	var elems []ResolvedType
	for i, e := range t.Elems {
		ne := e.Substitute(lookup)
		if elems == nil && ne.Equal(e) {
			continue
		}
		if elems == nil {
			elems = make([]ResolvedType, len(t.Elems))
			copy(elems, t.Elems[:i])
		}
		elems[i] = ne
	}
	if elems != nil {
		t.Elems = elems
	}
	return t
}
