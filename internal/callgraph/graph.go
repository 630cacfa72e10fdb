// Package callgraph stores which callable specializations reference which,
// with one generic store shared by the generic (resolution carrying) and
// the concrete (fully instantiated) flavours.
//
// The graph is filled during a single traversal of the program and is
// read-only afterwards. It is not safe for concurrent mutation; once built
// it may be read from several goroutines.
package callgraph

import (
	"errors"
	"fmt"
)

// ErrMisuse marks a bug in the collaborator feeding the graph (invalid
// nodes, edges whose endpoints disagree with the call). Such errors are
// raised as panics: the analysis pass must abort.
var ErrMisuse = errors.New("call graph misuse")

// Node is the capability set a node flavour provides.
type Node interface {
	// ID is the identity of the node; equal nodes have equal IDs.
	ID() string
	IsValid() bool
	String() string
}

// Edge is the capability set an edge flavour provides.
type Edge[N Node] interface {
	// Key is the payload identity used for structural deduplication. The
	// endpoints are implied by the bucket the edge lives in.
	Key() string
	Source() N
	Target() N
}

// Dependency is the bucket of parallel edges from one caller to one callee.
type Dependency[N Node, E Edge[N]] struct {
	To    N
	Edges []E
}

type vertex[N Node, E Edge[N]] struct {
	node     N
	deps     map[string]*Dependency[N, E]
	depOrder []string
}

// Graph is an adjacency map. Every node that is the target of an edge is
// also a key of the graph, possibly without outgoing edges.
type Graph[N Node, E Edge[N]] struct {
	vertices map[string]*vertex[N, E]
	order    []string
	edges    int
}

// New returns an empty graph.
func New[N Node, E Edge[N]]() *Graph[N, E] {
	return &Graph[N, E]{vertices: make(map[string]*vertex[N, E])}
}

func misuse(format string, args ...any) {
	panic(fmt.Errorf("%w: %s", ErrMisuse, fmt.Sprintf(format, args...)))
}

// AddNode inserts n if it is not present yet.
func (g *Graph[N, E]) AddNode(n N) {
	if !n.IsValid() {
		misuse("invalid node %q", n.String())
	}
	g.vertex(n)
}

func (g *Graph[N, E]) vertex(n N) *vertex[N, E] {
	id := n.ID()
	if v, ok := g.vertices[id]; ok {
		return v
	}
	v := &vertex[N, E]{node: n, deps: make(map[string]*Dependency[N, E])}
	g.vertices[id] = v
	g.order = append(g.order, id)
	return v
}

// AddDependency records that from references to through edge. The callee
// is inserted before the caller; an edge structurally equal to one already
// in the (from, to) bucket is dropped. It reports whether edge was new.
func (g *Graph[N, E]) AddDependency(from, to N, edge E) bool {
	if !from.IsValid() || !to.IsValid() {
		misuse("dependency %q -> %q has an invalid endpoint", from.String(), to.String())
	}
	if edge.Source().ID() != from.ID() || edge.Target().ID() != to.ID() {
		misuse("edge %q -> %q recorded under %q -> %q", edge.Source().String(), edge.Target().String(), from.String(), to.String())
	}
	g.vertex(to)
	v := g.vertex(from)

	toID := to.ID()
	dep, ok := v.deps[toID]
	if !ok {
		dep = &Dependency[N, E]{To: to}
		v.deps[toID] = dep
		v.depOrder = append(v.depOrder, toID)
	}
	key := edge.Key()
	for _, e := range dep.Edges {
		if e.Key() == key {
			return false
		}
	}
	dep.Edges = append(dep.Edges, edge)
	g.edges++
	return true
}

// ContainsNode reports whether n was ever inserted, directly or as a callee.
func (g *Graph[N, E]) ContainsNode(n N) bool {
	_, ok := g.vertices[n.ID()]
	return ok
}

// Len is the number of nodes.
func (g *Graph[N, E]) Len() int {
	return len(g.order)
}

// EdgeCount is the number of stored (deduplicated) edges.
func (g *Graph[N, E]) EdgeCount() int {
	return g.edges
}

// Nodes lists every node in insertion order.
func (g *Graph[N, E]) Nodes() []N {
	out := make([]N, len(g.order))
	for i, id := range g.order {
		out[i] = g.vertices[id].node
	}
	return out
}

// DirectDependencies returns the callees of caller with their edges, in
// insertion order. The result is never nil; an unknown caller and a caller
// without references both yield an empty slice (see ContainsNode).
func (g *Graph[N, E]) DirectDependencies(caller N) []Dependency[N, E] {
	v, ok := g.vertices[caller.ID()]
	if !ok {
		return []Dependency[N, E]{}
	}
	out := make([]Dependency[N, E], 0, len(v.depOrder))
	for _, id := range v.depOrder {
		dep := v.deps[id]
		out = append(out, Dependency[N, E]{To: dep.To, Edges: append([]E(nil), dep.Edges...)})
	}
	return out
}

// Edges returns the parallel edges from -> to, or nil.
func (g *Graph[N, E]) Edges(from, to N) []E {
	v, ok := g.vertices[from.ID()]
	if !ok {
		return nil
	}
	dep, ok := v.deps[to.ID()]
	if !ok {
		return nil
	}
	return append([]E(nil), dep.Edges...)
}

// Successors lists the distinct callees of n, ignoring edge multiplicity.
func (g *Graph[N, E]) Successors(n N) []N {
	v, ok := g.vertices[n.ID()]
	if !ok {
		return nil
	}
	out := make([]N, len(v.depOrder))
	for i, id := range v.depOrder {
		out[i] = v.deps[id].To
	}
	return out
}

// Splice joins the edge accumulated so far with the next hop.
type Splice[E any] func(acc, next E) E

// AllDependencies walks everything reachable from root. For every reached
// node it keeps the spliced edges of the paths taken to reach it, one per
// structurally distinct splice. The walk only continues through newly
// added edges, so it terminates on cyclic graphs provided splice yields
// finitely many distinct keys.
func (g *Graph[N, E]) AllDependencies(root N, splice Splice[E]) []Dependency[N, E] {
	type step struct {
		at   N
		edge E
	}
	acc := make(map[string]*Dependency[N, E])
	var order []string
	var work []step

	add := func(to N, e E) {
		id := to.ID()
		dep, ok := acc[id]
		if !ok {
			dep = &Dependency[N, E]{To: to}
			acc[id] = dep
			order = append(order, id)
		}
		key := e.Key()
		for _, have := range dep.Edges {
			if have.Key() == key {
				return
			}
		}
		dep.Edges = append(dep.Edges, e)
		work = append(work, step{at: to, edge: e})
	}

	for _, dep := range g.DirectDependencies(root) {
		for _, e := range dep.Edges {
			add(dep.To, e)
		}
	}
	for len(work) > 0 {
		cur := work[0]
		work = work[1:]
		for _, dep := range g.DirectDependencies(cur.at) {
			for _, e := range dep.Edges {
				add(dep.To, splice(cur.edge, e))
			}
		}
	}

	out := make([]Dependency[N, E], len(order))
	for i, id := range order {
		out[i] = *acc[id]
	}
	return out
}
