package callgraph

import (
	"fmt"

	"specgraph/internal/resolution"
)

// Options tune Instantiate.
type Options struct {
	// MaxDepth bounds the length of instantiation chains; 0 means 64.
	MaxDepth int
}

// IssueKind classifies why a reference could not be instantiated.
type IssueKind uint8

const (
	// IssueInvalidResolution: the reference's bindings do not combine.
	IssueInvalidResolution IssueKind = iota + 1
	// IssueUnresolved: a callee parameter is still generic after substitution.
	IssueUnresolved
	// IssueDepthExceeded: instantiation keeps producing new specializations.
	IssueDepthExceeded
)

func (k IssueKind) String() string {
	switch k {
	case IssueInvalidResolution:
		return "invalid-resolution"
	case IssueUnresolved:
		return "unresolved"
	case IssueDepthExceeded:
		return "depth-exceeded"
	}
	return "unknown"
}

// InstantiationIssue records one reference Instantiate skipped.
type InstantiationIssue struct {
	Kind       IssueKind
	Caller     ConcreteNode
	Edge       GenericEdge
	Binding    resolution.Map
	Violations []resolution.Violation
}

// Instantiate derives the concrete graph reachable from entries, which must
// be non-generic nodes of g. Each callee's parameters are resolved by
// combining the reference's resolutions with the caller's binding and then
// substituting the caller's binding into what remains.
func Instantiate(g *GenericGraph, entries []GenericNode, opt Options) (*ConcreteGraph, []InstantiationIssue, error) {
	if opt.MaxDepth <= 0 {
		opt.MaxDepth = 64
	}
	type item struct {
		node  ConcreteNode
		depth int
	}

	cg := NewConcreteGraph()
	seen := make(map[string]bool)
	var queue []item
	for _, e := range entries {
		if !g.ContainsNode(e) {
			return nil, nil, fmt.Errorf("instantiate: unknown entry %s", e)
		}
		n := NewConcreteNode(e.Callable, e.Kind, nil)
		cg.AddNode(n)
		if !seen[n.ID()] {
			seen[n.ID()] = true
			queue = append(queue, item{node: n})
		}
	}

	var issues []InstantiationIssue
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, dep := range g.DirectDependencies(cur.node.Generic()) {
			for _, edge := range dep.Edges {
				maps := []resolution.Map{edge.Resolutions}
				// a recursive reference rebinds the caller's own parameters,
				// so the caller's arguments are substituted, not combined
				if dep.To.Callable != cur.node.Callable {
					maps = append(maps, cur.node.TypeArgs)
				}
				res := resolution.CombineDetailed(maps...)
				binding := res.Map.OwnedBy(dep.To.Callable).Apply(cur.node.TypeArgs)
				issue := InstantiationIssue{Caller: cur.node, Edge: edge, Binding: binding, Violations: res.Violations}
				switch {
				case !res.OK:
					issue.Kind = IssueInvalidResolution
				case !binding.IsConcrete():
					issue.Kind = IssueUnresolved
				}
				if issue.Kind != 0 {
					issues = append(issues, issue)
					continue
				}

				callee := NewConcreteNode(dep.To.Callable, dep.To.Kind, binding)
				if !seen[callee.ID()] && cur.depth+1 > opt.MaxDepth {
					issue.Kind = IssueDepthExceeded
					issues = append(issues, issue)
					continue
				}
				cg.AddCall(cur.node, callee, edge.Range)
				if !seen[callee.ID()] {
					seen[callee.ID()] = true
					queue = append(queue, item{node: callee, depth: cur.depth + 1})
				}
			}
		}
	}
	return cg, issues, nil
}
