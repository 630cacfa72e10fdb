// Package cycles finds strongly connected components (Tarjan) and every
// elementary cycle (Johnson) of a call graph.
//
// The algorithms run on dense integer indices. Both are written with
// explicit stacks, so recursion depth does not grow with the graph.
package cycles

import "slices"

// Set is a set of node indices.
type Set map[int]struct{}

func (s Set) Has(v int) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the members in ascending order.
func (s Set) Sorted() []int {
	out := make([]int, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Component is one strongly connected component and its smallest member.
type Component struct {
	Members Set
	Min     int
}

// Tarjan decomposes the subgraph induced by filter into strongly connected
// components, returned in reverse topological order. Edges leaving filter
// are ignored. A nil filter means every node.
func Tarjan(adj [][]int, filter Set) []Component {
	in := func(v int) bool { return filter == nil || filter.Has(v) }
	var roots []int
	if filter == nil {
		roots = make([]int, len(adj))
		for i := range roots {
			roots[i] = i
		}
	} else {
		roots = filter.Sorted()
	}

	index := make(map[int]int, len(roots))
	low := make(map[int]int, len(roots))
	onStack := make(map[int]bool, len(roots))
	var stack []int
	next := 0

	type frame struct {
		v    int
		edge int
	}
	var out []Component

	visit := func(v int) {
		index[v] = next
		low[v] = next
		next++
		stack = append(stack, v)
		onStack[v] = true
	}

	for _, root := range roots {
		if _, done := index[root]; done {
			continue
		}
		visit(root)
		calls := []frame{{v: root}}
		for len(calls) > 0 {
			top := &calls[len(calls)-1]
			v := top.v
			if top.edge < len(adj[v]) {
				w := adj[v][top.edge]
				top.edge++
				if !in(w) {
					continue
				}
				if _, seen := index[w]; !seen {
					visit(w)
					calls = append(calls, frame{v: w})
					continue
				}
				if onStack[w] && index[w] < low[v] {
					low[v] = index[w]
				}
				continue
			}

			calls = calls[:len(calls)-1]
			if len(calls) > 0 {
				parent := calls[len(calls)-1].v
				if low[v] < low[parent] {
					low[parent] = low[v]
				}
			}
			if low[v] != index[v] {
				continue
			}
			comp := Component{Members: make(Set), Min: v}
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				comp.Members[w] = struct{}{}
				if w < comp.Min {
					comp.Min = w
				}
				if w == v {
					break
				}
			}
			out = append(out, comp)
		}
	}
	return out
}
