package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{File: 1, Start: 10, End: 20}, Span{File: 1, Start: 30, End: 40}, Span{File: 1, Start: 10, End: 40}},
		{"nested", Span{File: 1, Start: 10, End: 40}, Span{File: 1, Start: 15, End: 20}, Span{File: 1, Start: 10, End: 40}},
		{"other file", Span{File: 1, Start: 10, End: 20}, Span{File: 2, Start: 0, End: 50}, Span{File: 1, Start: 10, End: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Errorf("Cover() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSpanCompare(t *testing.T) {
	tests := []struct {
		a, b Span
		want int
	}{
		{Span{File: 0, Start: 1, End: 2}, Span{File: 1, Start: 0, End: 0}, -1},
		{Span{File: 1, Start: 5, End: 6}, Span{File: 1, Start: 4, End: 9}, 1},
		{Span{File: 1, Start: 5, End: 6}, Span{File: 1, Start: 5, End: 7}, -1},
		{Span{File: 1, Start: 5, End: 6}, Span{File: 1, Start: 5, End: 6}, 0},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSpanLenAndEmpty(t *testing.T) {
	s := Span{File: 3, Start: 7, End: 7}
	if !s.Empty() || s.Len() != 0 {
		t.Fatalf("expected empty span, got %v", s)
	}
	if !NoSpan.IsZero() || s.IsZero() {
		t.Fatalf("IsZero mismatch")
	}
	if got := (Span{Start: 2, End: 9}).Len(); got != 7 {
		t.Fatalf("Len() = %d, want 7", got)
	}
}
