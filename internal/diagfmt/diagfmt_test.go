package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"specgraph/internal/diag"
	"specgraph/internal/source"
)

func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.Add("demo.qs", []byte("F(x) G(y)\nH(z)\n"), 0)
	bag := diag.NewBag(10)
	d := diag.NewError(diag.MonoInvalidCyclicResolution, source.Span{File: id, Start: 5, End: 9}, "bad cycle").
		WithNote(source.Span{File: id, Start: 10, End: 14}, "cycle continues here")
	bag.Add(d)
	return bag, fs
}

func TestPrettyPlain(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	want := strings.Join([]string{
		"demo.qs:1:6: ERROR MON9001: bad cycle",
		" 1 | F(x) G(y)",
		"   |      ^~~~",
		"  note: demo.qs:2:1: cycle continues here",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyHidesNotes(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if strings.Contains(buf.String(), "note:") {
		t.Fatalf("notes rendered without ShowNotes:\n%s", buf.String())
	}
}

func TestPrettyContextAndWidth(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{Context: 1, Width: 5}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "MON9001: bad …") {
		t.Fatalf("message not truncated:\n%s", out)
	}
	if !strings.Contains(out, " 2 | H(z)") {
		t.Fatalf("context line missing:\n%s", out)
	}
}

func TestPrettyColor(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{Color: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected ANSI escapes in %q", buf.String())
	}
}

func TestPrettyUnknownFile(t *testing.T) {
	fs := source.NewFileSet()
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.MonoUnknownEntry, source.Span{File: 7}, "no such entry"))
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if got, want := buf.String(), "<unknown>:1:1: ERROR MON9005: no such entry\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestUnderlineUsesDisplayWidth(t *testing.T) {
	line := "日本 x"
	got := underline(line, source.LineCol{Line: 1, Col: 8}, source.LineCol{Line: 1, Col: 9})
	if want := "     ^"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	got = underline("abc", source.LineCol{Line: 1, Col: 2}, source.LineCol{Line: 3, Col: 1})
	if want := " ^~"; got != want {
		t.Fatalf("multi-line span: got %q, want %q", got, want)
	}
}

func TestShort(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	if err := Short(&buf, bag, fs, false); err != nil {
		t.Fatalf("Short: %v", err)
	}
	if got, want := buf.String(), "error MON9001 demo.qs:1:6 bad cycle\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	buf.Reset()
	if err := Short(&buf, diag.NewBag(1), fs, true); err != nil {
		t.Fatalf("Short: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("empty bag produced %q", buf.String())
	}
}

func TestJSON(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("unexpected count: %+v", out)
	}
	d := out.Diagnostics[0]
	if d.Code != "MON9001" || d.Severity != "ERROR" || d.Message != "bad cycle" {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}
	if d.Location.File != "demo.qs" || d.Location.StartLine != 1 || d.Location.StartCol != 6 {
		t.Fatalf("unexpected location: %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Location.StartLine != 2 {
		t.Fatalf("unexpected notes: %+v", d.Notes)
	}
}

func TestJSONMax(t *testing.T) {
	bag, fs := sampleBag(t)
	bag.Add(diag.NewError(diag.MonoUnknownEntry, source.Span{}, "second"))
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if out.Count != 1 {
		t.Fatalf("Max not applied: %+v", out)
	}
	if out.Diagnostics[0].Notes != nil {
		t.Fatalf("notes included without IncludeNotes")
	}
}

func TestTable(t *testing.T) {
	rows := CycleRows([][]string{{"Demo.F", "Demo.G"}, {"Demo.Ω"}, nil})
	var buf bytes.Buffer
	if err := Table(&buf, []string{"#", "LEN", "CYCLE"}, rows); err != nil {
		t.Fatalf("Table: %v", err)
	}
	want := strings.Join([]string{
		"#  LEN  CYCLE",
		"1  2    Demo.F -> Demo.G -> Demo.F",
		"2  1    Demo.Ω -> Demo.Ω",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestParsePathMode(t *testing.T) {
	tests := []struct {
		in   string
		want PathMode
		ok   bool
	}{
		{"", PathModeAuto, true},
		{"relative", PathModeRelative, true},
		{"basename", PathModeBasename, true},
		{"absolute", PathModeAbsolute, true},
		{"weird", PathModeAuto, false},
	}
	for _, tt := range tests {
		got, ok := ParsePathMode(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParsePathMode(%q) = %v, %v", tt.in, got, ok)
		}
	}
}
