package cycles

import "slices"

// Elementary enumerates every elementary cycle of adj with Johnson's
// algorithm in O((V+E)(C+1)). Each cycle lists its nodes in traversal
// order starting at its smallest index; a self loop is a one-node cycle.
// Parallel edges must already be collapsed in adj.
func Elementary(adj [][]int) [][]int {
	var found [][]int
	work := pushComponents(nil, Tarjan(adj, nil))
	for len(work) > 0 {
		comp := work[len(work)-1]
		work = work[:len(work)-1]

		found = append(found, sccCycles(adj, comp.Members, comp.Min)...)

		rest := make(Set, len(comp.Members)-1)
		for v := range comp.Members {
			if v != comp.Min {
				rest[v] = struct{}{}
			}
		}
		if len(rest) > 0 {
			work = pushComponents(work, Tarjan(adj, rest))
		}
	}
	return found
}

// pushComponents stacks comps so the one with the smallest Min is popped
// first.
func pushComponents(work, comps []Component) []Component {
	slices.SortFunc(comps, func(a, b Component) int { return b.Min - a.Min })
	return append(work, comps...)
}

// sccCycles enumerates the cycles through start inside members with the
// blocked DFS: a node that led to no cycle stays blocked until one of its
// successors is unblocked.
func sccCycles(adj [][]int, members Set, start int) [][]int {
	blocked := map[int]bool{start: true}
	blockedOn := make(map[int]Set)
	path := []int{start}
	var out [][]int

	unblock := func(u int) {
		pending := []int{u}
		for len(pending) > 0 {
			x := pending[len(pending)-1]
			pending = pending[:len(pending)-1]
			blocked[x] = false
			for w := range blockedOn[x] {
				if blocked[w] {
					pending = append(pending, w)
				}
			}
			delete(blockedOn, x)
		}
	}

	type frame struct {
		v     int
		edge  int
		found bool
	}
	calls := []frame{{v: start}}
	for len(calls) > 0 {
		top := &calls[len(calls)-1]
		v := top.v
		if top.edge < len(adj[v]) {
			w := adj[v][top.edge]
			top.edge++
			switch {
			case !members.Has(w):
			case w == start:
				out = append(out, slices.Clone(path))
				top.found = true
			case !blocked[w]:
				blocked[w] = true
				path = append(path, w)
				calls = append(calls, frame{v: w})
			}
			continue
		}

		found := top.found
		if found {
			unblock(v)
		} else {
			for _, w := range adj[v] {
				if !members.Has(w) {
					continue
				}
				if blockedOn[w] == nil {
					blockedOn[w] = make(Set)
				}
				blockedOn[w][v] = struct{}{}
			}
		}
		path = path[:len(path)-1]
		calls = calls[:len(calls)-1]
		if found && len(calls) > 0 {
			calls[len(calls)-1].found = true
		}
	}
	return out
}
