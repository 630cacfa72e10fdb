package types

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"specgraph/internal/names"
)

// ErrSyntax is wrapped by every Parse error.
var ErrSyntax = errors.New("type syntax error")

// Parse reads the textual type syntax used by fact documents:
//
//	Int  BigInt  Double  Bool  String  Unit  Qubit  Result  Pauli  Range
//	'NS.Callable.Param              type parameter reference
//	NS.Name  NS.Name<T1, T2>        user defined type
//	T[]                             array
//	(T1, T2)  (T,)  ()              tuple, one-tuple, Unit
//	(In -> Out)  (In => Out)        function, operation
func Parse(text string) (ResolvedType, error) {
	p := &typeParser{src: text}
	t, err := p.parseType()
	if err != nil {
		return ResolvedType{}, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return ResolvedType{}, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return t, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(text string) ResolvedType {
	t, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return t
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at offset %d in %q: %s", ErrSyntax, p.pos, p.src, fmt.Sprintf(format, args...))
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *typeParser) accept(tok string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *typeParser) parseType() (ResolvedType, error) {
	t, err := p.parsePrimary()
	if err != nil {
		return ResolvedType{}, err
	}
	for p.accept("[]") {
		t = ArrayOf(t)
	}
	return t, nil
}

func (p *typeParser) parsePrimary() (ResolvedType, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return ResolvedType{}, p.errorf("expected a type")
	}
	switch p.src[p.pos] {
	case '\'':
		p.pos++
		dotted := p.dotted()
		key, err := names.ParseTypeParameter(dotted)
		if err != nil {
			return ResolvedType{}, p.errorf("%v", err)
		}
		return TypeParam(key), nil
	case '(':
		p.pos++
		return p.parseParen()
	}

	dotted := p.dotted()
	if dotted == "" {
		return ResolvedType{}, p.errorf("expected a type name")
	}
	if k, ok := primitiveNames[dotted]; ok {
		return Prim(k), nil
	}
	q, err := names.ParseQualifiedName(dotted)
	if err != nil {
		return ResolvedType{}, p.errorf("%v", err)
	}
	udt := UserDefined(q)
	if p.accept("<") {
		args, err := p.parseList(">")
		if err != nil {
			return ResolvedType{}, err
		}
		udt.Elems = args
	}
	return udt, nil
}

// parseParen runs after "(".
func (p *typeParser) parseParen() (ResolvedType, error) {
	if p.accept(")") {
		return Unit, nil
	}
	first, err := p.parseType()
	if err != nil {
		return ResolvedType{}, err
	}
	switch {
	case p.accept("->"), p.accept("=>"):
		arrow := p.src[p.pos-2 : p.pos]
		out, err := p.parseType()
		if err != nil {
			return ResolvedType{}, err
		}
		if !p.accept(")") {
			return ResolvedType{}, p.errorf("expected )")
		}
		if arrow == "=>" {
			return OperationOf(first, out), nil
		}
		return FunctionOf(first, out), nil
	case p.accept(")"):
		return first, nil
	case p.accept(","):
		if p.accept(")") {
			return TupleOf(first), nil
		}
		rest, err := p.parseList(")")
		if err != nil {
			return ResolvedType{}, err
		}
		return TupleOf(append([]ResolvedType{first}, rest...)...), nil
	}
	return ResolvedType{}, p.errorf("expected ',', ')' or an arrow")
}

// parseList reads "T {, T} close" after the opening delimiter.
func (p *typeParser) parseList(close string) ([]ResolvedType, error) {
	var out []ResolvedType
	for {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
		if p.accept(close) {
			return out, nil
		}
		if !p.accept(",") {
			return nil, p.errorf("expected ',' or %q", close)
		}
	}
}

func (p *typeParser) dotted() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		r := rune(p.src[p.pos])
		if r == '.' || r == '_' || r >= 0x80 || unicode.IsLetter(r) || unicode.IsDigit(r) {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}
