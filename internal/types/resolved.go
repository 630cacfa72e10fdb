// Package types models resolved types as seen by the call-graph engine.
//
// A ResolvedType is inert payload except for one question the engine asks:
// is this value a reference to a type parameter, and if so which one.
// Source positions ride along in Range and are dropped by Strip before a
// type is stored in a resolution map or used in a node or edge key.
package types

import (
	"strings"

	"specgraph/internal/names"
	"specgraph/internal/source"
)

// ResolvedType is a tagged variant. Which fields are meaningful depends on
// Kind:
//
//	KindUserDefined   Name, Elems = type arguments
//	KindTypeParameter Param
//	KindArray         Elems[0] = element
//	KindTuple         Elems
//	KindFunction      Elems[0] -> Elems[1]
//	KindOperation     Elems[0] => Elems[1]
type ResolvedType struct {
	Kind  Kind
	Name  names.QualifiedName
	Param names.TypeParameterKey
	Elems []ResolvedType
	Range source.Span
}

func Prim(k Kind) ResolvedType {
	if !k.IsPrimitive() {
		return ResolvedType{Kind: KindInvalid}
	}
	return ResolvedType{Kind: k}
}

var (
	Unit   = Prim(KindUnit)
	Int    = Prim(KindInt)
	BigInt = Prim(KindBigInt)
	Double = Prim(KindDouble)
	Bool   = Prim(KindBool)
	String = Prim(KindString)
	Qubit  = Prim(KindQubit)
	Result = Prim(KindResult)
	Pauli  = Prim(KindPauli)
	Range  = Prim(KindRange)
)

func UserDefined(name names.QualifiedName, args ...ResolvedType) ResolvedType {
	return ResolvedType{Kind: KindUserDefined, Name: name, Elems: args}
}

func TypeParam(key names.TypeParameterKey) ResolvedType {
	return ResolvedType{Kind: KindTypeParameter, Param: key}
}

func ArrayOf(elem ResolvedType) ResolvedType {
	return ResolvedType{Kind: KindArray, Elems: []ResolvedType{elem}}
}

func TupleOf(items ...ResolvedType) ResolvedType {
	return ResolvedType{Kind: KindTuple, Elems: items}
}

func FunctionOf(in, out ResolvedType) ResolvedType {
	return ResolvedType{Kind: KindFunction, Elems: []ResolvedType{in, out}}
}

func OperationOf(in, out ResolvedType) ResolvedType {
	return ResolvedType{Kind: KindOperation, Elems: []ResolvedType{in, out}}
}

// TypeParameter reports whether t itself is a reference to a type parameter.
// Nested references (Array<'T>) do not count.
func (t ResolvedType) TypeParameter() (names.TypeParameterKey, bool) {
	if t.Kind != KindTypeParameter {
		return names.TypeParameterKey{}, false
	}
	return t.Param, true
}

// Refers reports whether t is exactly a reference to key.
func (t ResolvedType) Refers(key names.TypeParameterKey) bool {
	p, ok := t.TypeParameter()
	return ok && p == key
}

func (t ResolvedType) IsValid() bool {
	return t.Kind != KindInvalid
}

// WithRange returns t located at sp.
func (t ResolvedType) WithRange(sp source.Span) ResolvedType {
	t.Range = sp
	return t
}

// Strip returns a copy of t with every Range cleared, recursively.
func (t ResolvedType) Strip() ResolvedType {
	t.Range = source.NoSpan
	if len(t.Elems) == 0 {
		t.Elems = nil
		return t
	}
	elems := make([]ResolvedType, len(t.Elems))
	for i, e := range t.Elems {
		elems[i] = e.Strip()
	}
	t.Elems = elems
	return t
}

// Equal is structural equality ignoring source positions.
func (t ResolvedType) Equal(other ResolvedType) bool {
	if t.Kind != other.Kind || t.Name != other.Name || t.Param != other.Param || len(t.Elems) != len(other.Elems) {
		return false
	}
	for i := range t.Elems {
		if !t.Elems[i].Equal(other.Elems[i]) {
			return false
		}
	}
	return true
}

// Key is a canonical, position independent encoding of t. Two types have
// the same key iff they are Equal.
func (t ResolvedType) Key() string {
	var b strings.Builder
	t.writeKey(&b)
	return b.String()
}

func (t ResolvedType) writeKey(b *strings.Builder) {
	switch t.Kind {
	case KindUserDefined:
		b.WriteString("U:")
		b.WriteString(t.Name.Key())
	case KindTypeParameter:
		b.WriteString(t.Param.Key())
		return
	case KindArray:
		b.WriteString("A")
	case KindTuple:
		b.WriteString("T")
	case KindFunction:
		b.WriteString("F")
	case KindOperation:
		b.WriteString("O")
	default:
		b.WriteString(t.Kind.String())
		return
	}
	b.WriteByte('(')
	for i, e := range t.Elems {
		if i > 0 {
			b.WriteByte(',')
		}
		e.writeKey(b)
	}
	b.WriteByte(')')
}

// ContainsTypeParameters reports whether any type-parameter reference
// occurs anywhere inside t.
func (t ResolvedType) ContainsTypeParameters() bool {
	found := false
	t.Walk(func(n ResolvedType) bool {
		if n.Kind == KindTypeParameter {
			found = true
		}
		return !found
	})
	return found
}

// Walk visits t and its components depth first until fn returns false.
func (t ResolvedType) Walk(fn func(ResolvedType) bool) bool {
	if !fn(t) {
		return false
	}
	for _, e := range t.Elems {
		if !e.Walk(fn) {
			return false
		}
	}
	return true
}
