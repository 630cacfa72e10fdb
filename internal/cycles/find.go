package cycles

// Graph is what the cycle finder needs from a call graph.
type Graph[N any] interface {
	Nodes() []N
	Successors(N) []N
}

// Identified nodes expose a stable identity.
type Identified interface {
	ID() string
}

// Index maps graph nodes to dense indices 0..N-1 in node order, with an
// adjacency list that ignores edge multiplicity.
type Index[N Identified] struct {
	Nodes []N
	Adj   [][]int
	ids   map[string]int
}

// NewIndex assigns indices in g.Nodes() order.
func NewIndex[N Identified](g Graph[N]) *Index[N] {
	nodes := g.Nodes()
	ix := &Index[N]{
		Nodes: nodes,
		Adj:   make([][]int, len(nodes)),
		ids:   make(map[string]int, len(nodes)),
	}
	for i, n := range nodes {
		ix.ids[n.ID()] = i
	}
	for i, n := range nodes {
		seen := make(map[int]bool)
		for _, succ := range g.Successors(n) {
			j, ok := ix.ids[succ.ID()]
			if !ok || seen[j] {
				continue
			}
			seen[j] = true
			ix.Adj[i] = append(ix.Adj[i], j)
		}
	}
	return ix
}

// Of returns the index of n.
func (ix *Index[N]) Of(n N) (int, bool) {
	i, ok := ix.ids[n.ID()]
	return i, ok
}

func (ix *Index[N]) resolve(idx []int) []N {
	out := make([]N, len(idx))
	for i, v := range idx {
		out[i] = ix.Nodes[v]
	}
	return out
}

// Find returns every elementary cycle of g as node lists in traversal
// order. Rotation and direction are not normalised.
func Find[N Identified](g Graph[N]) [][]N {
	ix := NewIndex(g)
	raw := Elementary(ix.Adj)
	out := make([][]N, len(raw))
	for i, c := range raw {
		out[i] = ix.resolve(c)
	}
	return out
}

// Components returns the strongly connected components of g with more
// than one node or a self loop, members in node order.
func Components[N Identified](g Graph[N]) [][]N {
	ix := NewIndex(g)
	var out [][]N
	for _, comp := range Tarjan(ix.Adj, nil) {
		if len(comp.Members) == 1 && !selfLoop(ix.Adj, comp.Min) {
			continue
		}
		out = append(out, ix.resolve(comp.Members.Sorted()))
	}
	return out
}

func selfLoop(adj [][]int, v int) bool {
	for _, w := range adj[v] {
		if w == v {
			return true
		}
	}
	return false
}
