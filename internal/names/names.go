// Package names holds the identity model of the call graph: qualified
// callable names, type-parameter keys and specialization kinds.
package names

import (
	"cmp"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalidName is returned by the parsers for malformed identifiers.
var ErrInvalidName = errors.New("invalid name")

// QualifiedName identifies a callable: namespace plus simple name.
// The zero value is not a valid name.
type QualifiedName struct {
	Namespace string
	Name      string
}

// Q builds a QualifiedName with NFC-normalised parts.
func Q(namespace, name string) QualifiedName {
	return QualifiedName{Namespace: norm.NFC.String(namespace), Name: norm.NFC.String(name)}
}

func (q QualifiedName) IsValid() bool {
	return q.Name != ""
}

func (q QualifiedName) String() string {
	if q.Namespace == "" {
		return q.Name
	}
	return q.Namespace + "." + q.Name
}

// Key encodes q without the dotted ambiguity of String: "A.B"+"C" and
// "A"+"B.C" get different keys.
func (q QualifiedName) Key() string {
	return lengthPrefixed(q.Namespace) + lengthPrefixed(q.Name)
}

func lengthPrefixed(s string) string {
	return strconv.Itoa(len(s)) + ":" + s
}

// Compare gives the total order used for dense index assignment.
func (q QualifiedName) Compare(other QualifiedName) int {
	if c := cmp.Compare(q.Namespace, other.Namespace); c != 0 {
		return c
	}
	return cmp.Compare(q.Name, other.Name)
}

// ParseQualifiedName splits dotted text; the last segment is the name.
func ParseQualifiedName(text string) (QualifiedName, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return QualifiedName{}, fmt.Errorf("%w: empty qualified name", ErrInvalidName)
	}
	segs := strings.Split(text, ".")
	for _, s := range segs {
		if !isIdent(s) {
			return QualifiedName{}, fmt.Errorf("%w: %q", ErrInvalidName, text)
		}
	}
	last := len(segs) - 1
	return Q(strings.Join(segs[:last], "."), segs[last]), nil
}

// MustParse is ParseQualifiedName for literals known to be valid.
func MustParse(text string) QualifiedName {
	q, err := ParseQualifiedName(text)
	if err != nil {
		panic(err)
	}
	return q
}

// TypeParameterKey identifies one generic slot: the owning callable and
// the parameter name.
type TypeParameterKey struct {
	Owner QualifiedName
	Name  string
}

// P builds a TypeParameterKey.
func P(owner QualifiedName, name string) TypeParameterKey {
	return TypeParameterKey{Owner: owner, Name: norm.NFC.String(name)}
}

func (k TypeParameterKey) IsValid() bool {
	return k.Owner.IsValid() && k.Name != ""
}

// String renders the key as 'Owner.Name.
func (k TypeParameterKey) String() string {
	return "'" + k.Owner.String() + "." + k.Name
}

// Key is the unambiguous counterpart of String.
func (k TypeParameterKey) Key() string {
	return "'" + k.Owner.Key() + lengthPrefixed(k.Name)
}

func (k TypeParameterKey) Compare(other TypeParameterKey) int {
	if c := k.Owner.Compare(other.Owner); c != 0 {
		return c
	}
	return cmp.Compare(k.Name, other.Name)
}

// SameOwner reports whether both keys belong to the same callable.
func (k TypeParameterKey) SameOwner(other TypeParameterKey) bool {
	return k.Owner == other.Owner
}

// ParseTypeParameter accepts 'NS.Callable.Param (the apostrophe is optional).
func ParseTypeParameter(text string) (TypeParameterKey, error) {
	text = strings.TrimPrefix(strings.TrimSpace(text), "'")
	idx := strings.LastIndexByte(text, '.')
	if idx <= 0 {
		return TypeParameterKey{}, fmt.Errorf("%w: type parameter %q needs an owner", ErrInvalidName, text)
	}
	owner, err := ParseQualifiedName(text[:idx])
	if err != nil {
		return TypeParameterKey{}, err
	}
	param := text[idx+1:]
	if !isIdent(param) {
		return TypeParameterKey{}, fmt.Errorf("%w: type parameter name %q", ErrInvalidName, param)
	}
	return P(owner, param), nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		case r > 0x7f:
		default:
			return false
		}
	}
	return true
}
