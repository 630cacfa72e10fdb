package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// fact documents
	FctInfo              Code = 4000
	FctUnreadable        Code = 4001
	FctSyntax            Code = 4002
	FctInvalidName       Code = 4003
	FctInvalidType       Code = 4004
	FctUnknownCallable   Code = 4005
	FctDuplicateCallable Code = 4006
	FctBadRange          Code = 4007
	FctSnapshotVersion   Code = 4008

	// generic resolution and monomorphization
	MonoInfo                    Code = 9000
	MonoInvalidCyclicResolution Code = 9001
	MonoConflictingResolution   Code = 9002
	MonoUnresolvedParameter     Code = 9003
	MonoDepthExceeded           Code = 9004
	MonoUnknownEntry            Code = 9005
	MonoGenericEntry            Code = 9006
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		FctInfo:                     "Fact information",
		FctUnreadable:               "Fact document cannot be read",
		FctSyntax:                   "Fact document is malformed",
		FctInvalidName:              "Invalid qualified name",
		FctInvalidType:              "Invalid type expression",
		FctUnknownCallable:          "Call refers to an undeclared callable",
		FctDuplicateCallable:        "Callable declared twice",
		FctBadRange:                 "Invalid source range",
		FctSnapshotVersion:          "Unsupported snapshot version",
		MonoInfo:                    "Monomorphization information",
		MonoInvalidCyclicResolution: "Invalid cyclic type parameter resolution",
		MonoConflictingResolution:   "Conflicting type parameter resolution",
		MonoUnresolvedParameter:     "Type parameter left unresolved",
		MonoDepthExceeded:           "Instantiation depth limit exceeded",
		MonoUnknownEntry:            "Entry point not found in call graph",
		MonoGenericEntry:            "Entry point must not be generic",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("FCT%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("MON%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
