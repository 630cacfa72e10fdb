package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("demo.qs", []byte("hello world"), 0)
	id2 := fs.Add("demo.qs", []byte("hello universe"), 0)
	if id1 != 0 || id2 != 1 {
		t.Fatalf("unexpected ids: %d %d", id1, id2)
	}
	latest, ok := fs.GetLatest("demo.qs")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v want %d", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "hello world" {
		t.Fatalf("first version lost: %q", got)
	}
}

func TestFileSetEnsure(t *testing.T) {
	fs := NewFileSet()
	a := fs.Ensure("src/./main.qs")
	b := fs.Ensure("src/main.qs")
	if a != b {
		t.Fatalf("Ensure returned different ids for the same path: %d %d", a, b)
	}
	if fs.Get(a).Flags&FileVirtual == 0 {
		t.Fatalf("Ensure should register a virtual file")
	}
	if fs.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", fs.Len())
	}
	if fs.Get(FileID(42)) != nil {
		t.Fatalf("unknown id must yield nil")
	}
}

func TestFileSetResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.qs", []byte("ab\ncd\n\nef"))
	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}},
		{3, LineCol{2, 1}},
		{4, LineCol{2, 2}},
		{7, LineCol{4, 1}},
		{8, LineCol{4, 2}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("offset %d: got %+v want %+v", tt.off, start, tt.want)
		}
	}
	if got := fs.Get(id).GetLine(2); got != "cd" {
		t.Errorf("GetLine(2) = %q", got)
	}
	if got := fs.Get(id).GetLine(3); got != "" {
		t.Errorf("GetLine(3) = %q", got)
	}
	if got := fs.Get(id).GetLine(9); got != "" {
		t.Errorf("GetLine(9) = %q", got)
	}
}

func TestFileSetLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.qs")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFa\r\nb"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "a\nb" {
		t.Fatalf("content not normalized: %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags not recorded: %b", f.Flags)
	}
	if got := f.FormatPath("relative", dir); got != "crlf.qs" {
		t.Fatalf("FormatPath(relative) = %q", got)
	}
}
