package callgraph

import (
	"specgraph/internal/names"
	"specgraph/internal/resolution"
	"specgraph/internal/source"
)

// ConcreteNode is a callable specialization together with the concrete
// binding of every one of its type parameters.
type ConcreteNode struct {
	Callable names.QualifiedName
	Kind     names.SpecKind
	TypeArgs resolution.Map
}

// NewConcreteNode copies args without positions.
func NewConcreteNode(callable names.QualifiedName, kind names.SpecKind, args resolution.Map) ConcreteNode {
	return ConcreteNode{Callable: callable, Kind: kind, TypeArgs: args.Clone().Strip()}
}

// Generic drops the type arguments.
func (n ConcreteNode) Generic() GenericNode {
	return GenericNode{Callable: n.Callable, Kind: n.Kind}
}

// ID ignores the ordering of TypeArgs.
func (n ConcreteNode) ID() string {
	id := n.Generic().ID()
	if len(n.TypeArgs) == 0 {
		return id
	}
	return id + "{" + n.TypeArgs.Key() + "}"
}

func (n ConcreteNode) IsValid() bool {
	return n.Callable.IsValid()
}

func (n ConcreteNode) String() string {
	if len(n.TypeArgs) == 0 {
		return n.Generic().String()
	}
	return n.Generic().String() + n.TypeArgs.String()
}

// ConcreteEdge carries no payload beyond the reference range.
type ConcreteEdge struct {
	From  ConcreteNode
	To    ConcreteNode
	Range source.Span
}

func (e ConcreteEdge) Source() ConcreteNode { return e.From }
func (e ConcreteEdge) Target() ConcreteNode { return e.To }

func (e ConcreteEdge) Key() string {
	return e.Range.String()
}

// ConcreteGraph is the call graph of instantiated specializations.
type ConcreteGraph struct {
	*Graph[ConcreteNode, ConcreteEdge]
}

func NewConcreteGraph() *ConcreteGraph {
	return &ConcreteGraph{Graph: New[ConcreteNode, ConcreteEdge]()}
}

// AddCall records caller -> callee at sp.
func (g *ConcreteGraph) AddCall(caller, callee ConcreteNode, sp source.Span) bool {
	return g.AddDependency(caller, callee, ConcreteEdge{From: caller, To: callee, Range: sp})
}

// AllDependencies returns every specialization transitively referenced by
// root. Each returned edge runs from root to the reached node and carries
// the range of the first hop out of root.
func (g *ConcreteGraph) AllDependencies(root ConcreteNode) []Dependency[ConcreteNode, ConcreteEdge] {
	return g.Graph.AllDependencies(root, spliceConcrete)
}

func spliceConcrete(acc, next ConcreteEdge) ConcreteEdge {
	return ConcreteEdge{From: acc.From, To: next.To, Range: acc.Range}
}
