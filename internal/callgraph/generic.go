package callgraph

import (
	"specgraph/internal/names"
	"specgraph/internal/resolution"
	"specgraph/internal/source"
)

// GenericNode is a callable specialization before instantiation.
type GenericNode struct {
	Callable names.QualifiedName
	Kind     names.SpecKind
}

// G is shorthand for the body specialization of callable.
func G(callable names.QualifiedName) GenericNode {
	return GenericNode{Callable: callable}
}

// ID is the graph key; String is for display only.
func (n GenericNode) ID() string {
	return n.Callable.Key() + "/" + n.Kind.String()
}

func (n GenericNode) IsValid() bool {
	return n.Callable.IsValid()
}

func (n GenericNode) String() string {
	if n.Kind == names.Body {
		return n.Callable.String()
	}
	return n.Callable.String() + "/" + n.Kind.String()
}

// GenericEdge is one reference site together with how it binds the
// callee's type parameters in terms of the caller's types.
type GenericEdge struct {
	From        GenericNode
	To          GenericNode
	Resolutions resolution.Map
	Range       source.Span
}

// NewGenericEdge builds an edge, copying res without source positions.
func NewGenericEdge(from, to GenericNode, res resolution.Map, sp source.Span) GenericEdge {
	return GenericEdge{From: from, To: to, Resolutions: res.Clone().Strip(), Range: sp}
}

func (e GenericEdge) Source() GenericNode { return e.From }
func (e GenericEdge) Target() GenericNode { return e.To }

// Key ignores resolution ordering; endpoints are implied by the bucket.
func (e GenericEdge) Key() string {
	return e.Resolutions.Key() + "@" + e.Range.String()
}

// GenericGraph is the call graph keyed by callable identity only.
type GenericGraph struct {
	*Graph[GenericNode, GenericEdge]
}

func NewGenericGraph() *GenericGraph {
	return &GenericGraph{Graph: New[GenericNode, GenericEdge]()}
}

// AddCall records a reference fact from a tree walker. The resolution map
// is stripped of positions before it is stored.
func (g *GenericGraph) AddCall(caller, callee GenericNode, res resolution.Map, sp source.Span) bool {
	return g.AddDependency(caller, callee, NewGenericEdge(caller, callee, res, sp))
}
