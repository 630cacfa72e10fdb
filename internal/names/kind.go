package names

import (
	"fmt"
	"strings"
)

// SpecKind distinguishes the specializations of one callable.
type SpecKind uint8

const (
	Body SpecKind = iota
	Adjoint
	Controlled
	ControlledAdjoint
)

func (k SpecKind) String() string {
	switch k {
	case Body:
		return "body"
	case Adjoint:
		return "adjoint"
	case Controlled:
		return "controlled"
	case ControlledAdjoint:
		return "controlled-adjoint"
	}
	return "unknown"
}

// ParseSpecKind accepts the String forms; "" means Body.
func ParseSpecKind(s string) (SpecKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "body":
		return Body, nil
	case "adjoint", "adj":
		return Adjoint, nil
	case "controlled", "ctl":
		return Controlled, nil
	case "controlled-adjoint", "controlled adjoint", "ctladj":
		return ControlledAdjoint, nil
	}
	return Body, fmt.Errorf("%w: unknown specialization kind %q (expected body|adjoint|controlled|controlled-adjoint)", ErrInvalidName, s)
}
