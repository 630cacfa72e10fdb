package resolution

import (
	"testing"

	"specgraph/internal/names"
	"specgraph/internal/source"
	"specgraph/internal/types"
)

var (
	fName = names.MustParse("Demo.F")
	gName = names.MustParse("Demo.G")
	fA    = names.P(fName, "A")
	fB    = names.P(fName, "B")
	gT    = names.P(gName, "T")
)

func ref(k names.TypeParameterKey) types.ResolvedType { return types.TypeParam(k) }

func TestCombineEmpty(t *testing.T) {
	m, ok := Combine()
	if !ok || len(m) != 0 {
		t.Fatalf("Combine() = %v, %v; want empty, true", m, ok)
	}
}

func TestCombineSingleIsIdentity(t *testing.T) {
	in := Of(
		Pair{fA, ref(gT)},
		Pair{gT, types.Int},
		Pair{fB, types.ArrayOf(ref(fA))},
	)
	got, ok := Combine(in)
	if !ok {
		t.Fatalf("conflict-free map rejected")
	}
	if !got.Equal(in) {
		t.Fatalf("Combine([m]) = %s, want %s", got, in)
	}
}

func TestCombineConflict(t *testing.T) {
	res := CombineDetailed(Of(Pair{fA, types.Int}), Of(Pair{fA, types.Bool}))
	if res.OK {
		t.Fatalf("conflicting bindings accepted")
	}
	if len(res.Violations) != 1 || res.Violations[0].Kind != Conflict || res.Violations[0].Step != 1 {
		t.Fatalf("unexpected violations: %+v", res.Violations)
	}
	if !res.Map[fA].Equal(types.Int) {
		t.Fatalf("partial result should keep the first binding, got %s", res.Map[fA])
	}
}

func TestCombineSameValueIsNotConflict(t *testing.T) {
	if _, ok := Combine(Of(Pair{fA, types.Int}), Of(Pair{fA, types.Int})); !ok {
		t.Fatalf("identical bindings must combine")
	}
}

func TestCombineConstrictive(t *testing.T) {
	res := CombineDetailed(Of(Pair{fA, ref(fB)}))
	if res.OK {
		t.Fatalf("A -> B of the same callable must be rejected")
	}
	if res.Violations[0].Kind != Constrictive || res.Violations[0].Param != fA {
		t.Fatalf("unexpected violation %+v", res.Violations[0])
	}
}

func TestCombineSelfResolutionIsSafe(t *testing.T) {
	self := Of(Pair{fA, ref(fA)})
	got, ok := Combine(self, self, self)
	if !ok {
		t.Fatalf("self resolution rejected")
	}
	if !got.Equal(self) {
		t.Fatalf("got %s", got)
	}
	if _, ok := Combine(self, Of(Pair{fA, types.Int})); !ok {
		t.Fatalf("self binding followed by concrete binding must combine")
	}
}

func TestCombineChainsThroughReferences(t *testing.T) {
	// F passes 'A to G, G binds its own 'T to Int further out.
	got, ok := Combine(Of(Pair{fA, ref(gT)}), Of(Pair{gT, types.Int}))
	if !ok {
		t.Fatalf("chain rejected")
	}
	if !got[fA].Equal(types.Int) || !got[gT].Equal(types.Int) {
		t.Fatalf("chain not resolved: %s", got)
	}
}

func TestCombineDetectsConstrictiveThroughChain(t *testing.T) {
	// F.A -> G.T, then G.T -> F.B: F.A ends up bound to F.B.
	res := CombineDetailed(Of(Pair{fA, ref(gT)}), Of(Pair{gT, ref(fB)}))
	if res.OK {
		t.Fatalf("constrictive chain accepted: %s", res.Map)
	}
	if len(res.Violations) != 1 || res.Violations[0].Param != fA {
		t.Fatalf("unexpected violations %+v", res.Violations)
	}
}

func TestCombineReportsAllViolations(t *testing.T) {
	res := CombineDetailed(
		Of(Pair{fA, ref(fB)}, Pair{gT, types.Int}),
		Of(Pair{gT, types.Bool}),
	)
	if res.OK || len(res.Violations) != 2 {
		t.Fatalf("expected two violations, got %+v", res.Violations)
	}
}

func TestCombineForTarget(t *testing.T) {
	got, ok := CombineForTarget(gName, Of(Pair{fA, ref(gT)}), Of(Pair{gT, types.Double}))
	if !ok {
		t.Fatalf("rejected")
	}
	if len(got) != 1 || !got[gT].Equal(types.Double) {
		t.Fatalf("CombineForTarget = %s", got)
	}
}

func TestMapEqualityIgnoresOrderAndPositions(t *testing.T) {
	a := make(Map)
	a.Set(fA, types.Int.WithRange(source.Span{File: 2, Start: 1, End: 4}))
	a.Set(fB, types.Bool)
	b := make(Map)
	b.Set(fB, types.Bool)
	b.Set(fA, types.Int)
	if !a.Equal(b) || a.Key() != b.Key() {
		t.Fatalf("maps differ: %s vs %s", a.Key(), b.Key())
	}
	if a.String() != "{'Demo.F.A: Int, 'Demo.F.B: Bool}" {
		t.Fatalf("String() = %s", a.String())
	}
}

func TestMapApply(t *testing.T) {
	m := Of(Pair{gT, types.ArrayOf(ref(fA))})
	got := m.Apply(Of(Pair{fA, types.Int}))
	if !got[gT].Equal(types.ArrayOf(types.Int)) {
		t.Fatalf("Apply = %s", got)
	}
	if m.IsConcrete() || !got.IsConcrete() {
		t.Fatalf("IsConcrete mismatch")
	}
}
