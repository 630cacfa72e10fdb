// Package verify checks that the type parameter resolutions along every
// cycle of a generic call graph compose without constrictive or conflicting
// bindings.
package verify

import (
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"specgraph/internal/callgraph"
	"specgraph/internal/cycles"
	"specgraph/internal/diag"
	"specgraph/internal/names"
	"specgraph/internal/resolution"
	"specgraph/internal/source"
)

// Options tunes VerifyAllCycles.
type Options struct {
	// Jobs bounds the number of cycles checked concurrently; zero means
	// GOMAXPROCS.
	Jobs int
}

// Finding pins one edge of a failing combination. Callable is the caller
// the edge originates from and Range the reference site.
type Finding struct {
	Code       diag.Code
	Callable   names.QualifiedName
	Kind       names.SpecKind
	Range      source.Span
	Cycle      []callgraph.GenericNode
	Path       []callgraph.GenericEdge
	Violations []resolution.Violation
}

// VerifyAllCycles enumerates the elementary cycles of g and validates every
// combination of parallel edges around each of them. g must not be
// modified while this runs. Findings are ordered by cycle, then by
// combination, then by position of the edge in the cycle.
func VerifyAllCycles(g *callgraph.GenericGraph, opts Options) []Finding {
	return VerifyCycles(g, cycles.Find[callgraph.GenericNode](g), opts)
}

// VerifyCycles is VerifyAllCycles over cycles already enumerated.
func VerifyCycles(g *callgraph.GenericGraph, found [][]callgraph.GenericNode, opts Options) []Finding {
	if len(found) == 0 {
		return nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	perCycle := make([][]Finding, len(found))
	var eg errgroup.Group
	eg.SetLimit(jobs)
	for i, cycle := range found {
		eg.Go(func() error {
			perCycle[i] = VerifyCycle(g, cycle)
			return nil
		})
	}
	_ = eg.Wait() // workers never fail

	var out []Finding
	for _, fs := range perCycle {
		out = append(out, fs...)
	}
	return out
}

// VerifyCycle validates one cycle given as its nodes in traversal order.
func VerifyCycle(g *callgraph.GenericGraph, cycle []callgraph.GenericNode) []Finding {
	choices := make([][]callgraph.GenericEdge, len(cycle))
	for i, from := range cycle {
		to := cycle[(i+1)%len(cycle)]
		choices[i] = g.Edges(from, to)
		if len(choices[i]) == 0 {
			// not a cycle of g
			return nil
		}
	}

	var out []Finding
	for combo := range Combinations(choices) {
		res := resolution.CombineDetailed(reversedResolutions(combo)...)
		if res.OK {
			continue
		}
		path := slices.Clone(combo)
		for _, e := range path {
			out = append(out, Finding{
				Code:       diag.MonoInvalidCyclicResolution,
				Callable:   e.From.Callable,
				Kind:       e.From.Kind,
				Range:      e.Range,
				Cycle:      cycle,
				Path:       path,
				Violations: res.Violations,
			})
		}
	}
	return out
}

// reversedResolutions lists the resolution maps of path last edge first.
func reversedResolutions(path []callgraph.GenericEdge) []resolution.Map {
	maps := make([]resolution.Map, len(path))
	for i, e := range path {
		maps[len(path)-1-i] = e.Resolutions
	}
	return maps
}
