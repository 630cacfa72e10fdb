package diag

import (
	"testing"

	"specgraph/internal/source"
)

func sp(start, end uint32) source.Span {
	return source.Span{File: 0, Start: start, End: end}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := uint32(0); i < 3; i++ {
		b.Add(NewError(MonoInvalidCyclicResolution, sp(i, i+1), "x"))
	}
	if b.Len() != 2 || b.Dropped() != 1 {
		t.Fatalf("len=%d dropped=%d", b.Len(), b.Dropped())
	}
	if !b.HasErrors() {
		t.Fatalf("expected errors")
	}
}

func TestNewBagClampsLimit(t *testing.T) {
	if got := NewBag(1 << 20).Cap(); got != ^uint16(0) {
		t.Fatalf("cap = %d", got)
	}
	if got := NewBag(-1).Cap(); got != 0 {
		t.Fatalf("cap = %d", got)
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevWarning, MonoUnresolvedParameter, sp(5, 6), "w"))
	b.Add(NewError(MonoInvalidCyclicResolution, sp(1, 2), "F"))
	b.Add(NewError(MonoInvalidCyclicResolution, sp(1, 2), "F"))
	b.Add(NewError(MonoConflictingResolution, sp(5, 6), "c"))
	b.Sort()
	b.Dedup()

	items := b.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items after dedup, got %d", len(items))
	}
	if items[0].Primary.Start != 1 {
		t.Fatalf("first item should start at 1, got %v", items[0].Primary)
	}
	if items[1].Severity != SevError || items[2].Severity != SevWarning {
		t.Fatalf("errors must sort before warnings at the same span")
	}
	if b.Count(MonoInvalidCyclicResolution) != 1 {
		t.Fatalf("count = %d", b.Count(MonoInvalidCyclicResolution))
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	for range 3 {
		ReportError(r, MonoInvalidCyclicResolution, sp(0, 1), "F").
			WithNote(sp(3, 4), "note").
			Emit()
	}
	ReportError(r, MonoInvalidCyclicResolution, sp(0, 1), "G").Emit()
	if bag.Len() != 2 {
		t.Fatalf("expected 2 unique diagnostics, got %d", bag.Len())
	}
	if r.Suppressed() != 2 {
		t.Fatalf("suppressed = %d", r.Suppressed())
	}
	if len(bag.Items()[0].Notes) != 1 {
		t.Fatalf("notes lost")
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		MonoInvalidCyclicResolution: "MON9001",
		FctSyntax:                   "FCT4002",
		UnknownCode:                 "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d: got %s want %s", code, got, want)
		}
	}
	if MonoInvalidCyclicResolution.Title() != "Invalid cyclic type parameter resolution" {
		t.Errorf("title = %q", MonoInvalidCyclicResolution.Title())
	}
}
