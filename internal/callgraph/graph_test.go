package callgraph

import (
	"errors"
	"testing"

	"specgraph/internal/names"
	"specgraph/internal/resolution"
	"specgraph/internal/source"
	"specgraph/internal/types"
)

var (
	fNode = G(names.MustParse("Demo.F"))
	gNode = G(names.MustParse("Demo.G"))
	hNode = G(names.MustParse("Demo.H"))
	fA    = names.P(fNode.Callable, "A")
	fB    = names.P(fNode.Callable, "B")
	gT    = names.P(gNode.Callable, "T")
)

func span(start uint32) source.Span {
	return source.Span{File: 0, Start: start, End: start + 1}
}

func TestAddCallDeduplicatesStructurallyEqualEdges(t *testing.T) {
	g := NewGenericGraph()

	first := make(resolution.Map)
	first.Set(fA, types.Int)
	first.Set(fB, types.Bool)
	second := make(resolution.Map)
	second.Set(fB, types.Bool.WithRange(source.Span{File: 3, Start: 10, End: 14}))
	second.Set(fA, types.Int)

	if !g.AddCall(gNode, fNode, first, span(5)) {
		t.Fatalf("first insert reported as duplicate")
	}
	if g.AddCall(gNode, fNode, second, span(5)) {
		t.Fatalf("reordered map must be deduplicated")
	}
	if edges := g.Edges(gNode, fNode); len(edges) != 1 {
		t.Fatalf("expected one edge, got %d", len(edges))
	}
	if g.EdgeCount() != 1 {
		t.Fatalf("EdgeCount = %d", g.EdgeCount())
	}

	// same map, different call site: a distinct edge
	g.AddCall(gNode, fNode, first, span(9))
	if edges := g.Edges(gNode, fNode); len(edges) != 2 {
		t.Fatalf("expected two edges, got %d", len(edges))
	}
}

func TestCalleeIsAlwaysEnumerable(t *testing.T) {
	g := NewGenericGraph()
	g.AddCall(fNode, gNode, nil, span(1))
	g.AddCall(gNode, hNode, nil, span(2))

	nodes := g.Nodes()
	if len(nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %v", nodes)
	}
	// callee is inserted before its caller
	if nodes[0] != gNode || nodes[1] != fNode || nodes[2] != hNode {
		t.Fatalf("unexpected insertion order %v", nodes)
	}
	if !g.ContainsNode(hNode) {
		t.Fatalf("leaf callee missing")
	}
	deps := g.DirectDependencies(hNode)
	if deps == nil || len(deps) != 0 {
		t.Fatalf("leaf must have an empty, non-nil dependency list")
	}
}

func TestDirectDependenciesOfUnknownNode(t *testing.T) {
	g := NewGenericGraph()
	unknown := G(names.MustParse("Demo.Nope"))
	if deps := g.DirectDependencies(unknown); deps == nil || len(deps) != 0 {
		t.Fatalf("unknown node must yield an empty list, got %v", deps)
	}
	if g.ContainsNode(unknown) {
		t.Fatalf("ContainsNode must distinguish absent nodes")
	}
}

func TestAddNodeIdempotent(t *testing.T) {
	g := NewGenericGraph()
	g.AddNode(fNode)
	g.AddNode(fNode)
	adj := GenericNode{Callable: fNode.Callable, Kind: names.Adjoint}
	g.AddNode(adj)
	if g.Len() != 2 {
		t.Fatalf("Len = %d, want 2", g.Len())
	}
}

func TestMisusePanics(t *testing.T) {
	expectMisuse := func(name string, fn func()) {
		t.Helper()
		defer func() {
			r := recover()
			err, ok := r.(error)
			if !ok || !errors.Is(err, ErrMisuse) {
				t.Errorf("%s: expected ErrMisuse panic, got %v", name, r)
			}
		}()
		fn()
	}
	g := NewGenericGraph()
	expectMisuse("invalid callee", func() { g.AddCall(fNode, GenericNode{}, nil, span(0)) })
	expectMisuse("invalid node", func() { g.AddNode(GenericNode{}) })
	expectMisuse("mismatched edge", func() {
		g.AddDependency(fNode, gNode, NewGenericEdge(fNode, hNode, nil, span(0)))
	})
}

func TestConcreteAllDependencies(t *testing.T) {
	g := NewConcreteGraph()
	main := NewConcreteNode(names.MustParse("Demo.Main"), names.Body, nil)
	fInt := NewConcreteNode(fNode.Callable, names.Body, resolution.Of(resolution.Pair{Param: fA, Type: types.Int}))
	gInt := NewConcreteNode(gNode.Callable, names.Body, resolution.Of(resolution.Pair{Param: gT, Type: types.Int}))
	leaf := NewConcreteNode(hNode.Callable, names.Body, nil)

	g.AddCall(main, fInt, span(1))
	g.AddCall(main, fInt, span(2))
	g.AddCall(fInt, gInt, span(10))
	g.AddCall(gInt, fInt, span(20)) // cycle
	g.AddCall(gInt, leaf, span(30))

	deps := g.AllDependencies(main)
	if len(deps) != 3 {
		t.Fatalf("expected 3 reachable nodes, got %d", len(deps))
	}
	byID := map[string][]ConcreteEdge{}
	for _, d := range deps {
		byID[d.To.ID()] = d.Edges
	}
	for _, id := range []string{fInt.ID(), gInt.ID(), leaf.ID()} {
		edges := byID[id]
		if len(edges) != 2 {
			t.Fatalf("%s: expected one spliced edge per first hop, got %d", id, len(edges))
		}
		for _, e := range edges {
			if e.From.ID() != main.ID() || e.To.ID() != id {
				t.Fatalf("%s: splice endpoints wrong: %s -> %s", id, e.From, e.To)
			}
			if e.Range != span(1) && e.Range != span(2) {
				t.Fatalf("%s: splice must keep the first hop range, got %v", id, e.Range)
			}
		}
	}
}

func TestConcreteNodeIdentityIgnoresOrder(t *testing.T) {
	a := make(resolution.Map)
	a.Set(fA, types.Int)
	a.Set(fB, types.Bool)
	b := make(resolution.Map)
	b.Set(fB, types.Bool)
	b.Set(fA, types.Int)
	n1 := NewConcreteNode(fNode.Callable, names.Body, a)
	n2 := NewConcreteNode(fNode.Callable, names.Body, b)
	if n1.ID() != n2.ID() {
		t.Fatalf("IDs differ: %s vs %s", n1.ID(), n2.ID())
	}
	g := NewConcreteGraph()
	g.AddNode(n1)
	if !g.ContainsNode(n2) {
		t.Fatalf("equal concrete nodes must be found")
	}
}

func TestNodeIdentityIsUnambiguous(t *testing.T) {
	tests := []struct {
		name string
		a, b Node
	}{
		{
			name: "namespace split",
			a:    G(names.Q("A.B", "C")),
			b:    G(names.Q("A", "B.C")),
		},
		{
			name: "primitive vs user type of the same name",
			a:    NewConcreteNode(fNode.Callable, names.Body, resolution.Of(resolution.Pair{Param: fA, Type: types.Int})),
			b:    NewConcreteNode(fNode.Callable, names.Body, resolution.Of(resolution.Pair{Param: fA, Type: types.UserDefined(names.Q("", "Int"))})),
		},
		{
			name: "type parameter owner split",
			a:    NewConcreteNode(fNode.Callable, names.Body, resolution.Of(resolution.Pair{Param: names.P(names.Q("X.Y", "Z"), "T"), Type: types.Int})),
			b:    NewConcreteNode(fNode.Callable, names.Body, resolution.Of(resolution.Pair{Param: names.P(names.Q("X", "Y.Z"), "T"), Type: types.Int})),
		},
	}
	for _, tt := range tests {
		if tt.a.ID() == tt.b.ID() {
			t.Errorf("%s: %s and %s share ID %q", tt.name, tt.a, tt.b, tt.a.ID())
		}
	}

	g := NewConcreteGraph()
	prim := tests[1].a.(ConcreteNode)
	user := tests[1].b.(ConcreteNode)
	g.AddNode(prim)
	if g.ContainsNode(user) {
		t.Fatalf("%s must not be found as %s", user, prim)
	}
}

func TestNodeStringIsDisplayForm(t *testing.T) {
	n := NewConcreteNode(fNode.Callable, names.Adjoint, resolution.Of(resolution.Pair{Param: fA, Type: types.Int}))
	if got, want := n.String(), "Demo.F/adjoint{'Demo.F.A: Int}"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	if got := fNode.String(); got != "Demo.F" {
		t.Fatalf("String() = %q", got)
	}
}
