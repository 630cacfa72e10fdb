package types

import "strings"

// String renders t in the type syntax accepted by Parse.
func (t ResolvedType) String() string {
	var b strings.Builder
	t.format(&b)
	return b.String()
}

func (t ResolvedType) format(b *strings.Builder) {
	switch t.Kind {
	case KindInvalid:
		b.WriteString("<invalid>")
	case KindUserDefined:
		b.WriteString(t.Name.String())
		if len(t.Elems) > 0 {
			b.WriteByte('<')
			formatList(b, t.Elems)
			b.WriteByte('>')
		}
	case KindTypeParameter:
		b.WriteString(t.Param.String())
	case KindArray:
		if len(t.Elems) == 1 {
			t.Elems[0].format(b)
		}
		b.WriteString("[]")
	case KindTuple:
		b.WriteByte('(')
		formatList(b, t.Elems)
		if len(t.Elems) == 1 {
			b.WriteByte(',')
		}
		b.WriteByte(')')
	case KindFunction, KindOperation:
		arrow := " -> "
		if t.Kind == KindOperation {
			arrow = " => "
		}
		b.WriteByte('(')
		if len(t.Elems) == 2 {
			t.Elems[0].format(b)
			b.WriteString(arrow)
			t.Elems[1].format(b)
		}
		b.WriteByte(')')
	default:
		b.WriteString(t.Kind.String())
	}
}

func formatList(b *strings.Builder, items []ResolvedType) {
	for i, it := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		it.format(b)
	}
}
