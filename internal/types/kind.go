package types

import "fmt"

// Kind enumerates the shapes a ResolvedType can take.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUnit
	KindInt
	KindBigInt
	KindDouble
	KindBool
	KindString
	KindQubit
	KindResult
	KindPauli
	KindRange
	KindUserDefined
	KindTypeParameter
	KindArray
	KindTuple
	KindFunction
	KindOperation
)

var primitiveNames = map[string]Kind{
	"Unit":   KindUnit,
	"Int":    KindInt,
	"BigInt": KindBigInt,
	"Double": KindDouble,
	"Bool":   KindBool,
	"String": KindString,
	"Qubit":  KindQubit,
	"Result": KindResult,
	"Pauli":  KindPauli,
	"Range":  KindRange,
}

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnit:
		return "Unit"
	case KindInt:
		return "Int"
	case KindBigInt:
		return "BigInt"
	case KindDouble:
		return "Double"
	case KindBool:
		return "Bool"
	case KindString:
		return "String"
	case KindQubit:
		return "Qubit"
	case KindResult:
		return "Result"
	case KindPauli:
		return "Pauli"
	case KindRange:
		return "Range"
	case KindUserDefined:
		return "user-defined"
	case KindTypeParameter:
		return "type-parameter"
	case KindArray:
		return "array"
	case KindTuple:
		return "tuple"
	case KindFunction:
		return "function"
	case KindOperation:
		return "operation"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsPrimitive reports whether the kind carries no payload.
func (k Kind) IsPrimitive() bool {
	return k >= KindUnit && k <= KindRange
}
