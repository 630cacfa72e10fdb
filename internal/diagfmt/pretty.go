package diagfmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"specgraph/internal/diag"
	"specgraph/internal/source"
)

type palette struct {
	err, warn, info, note *color.Color
	code, path, gutter    *color.Color
	marker                *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgBlue, color.Bold),
		note:   color.New(color.FgCyan),
		code:   color.New(color.Bold),
		path:   color.New(color.Faint),
		gutter: color.New(color.FgBlue),
		marker: color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.path, p.gutter, p.marker} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty writes diagnostics in a human-readable form:
//
//	demo.qs:1:21: ERROR MON9001: invalid cyclic ...
//	   1 | F(x) G(y)
//	     |      ^~~~
//	  note: demo.qs:1:41: ...
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	bw := bufio.NewWriter(w)
	for i, d := range bag.Items() {
		if i > 0 {
			bw.WriteByte('\n')
		}
		writeDiagnostic(bw, &d, fs, opts, pal)
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(bw, "\n... %d more diagnostics not shown\n", n)
	}
	return bw.Flush()
}

func writeDiagnostic(w *bufio.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	f := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	msg := d.Message
	if opts.Width > 0 {
		msg = runewidth.Truncate(msg, int(opts.Width), "…")
	}
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		pal.path.Sprintf("%s:%d:%d", formatPath(f, fs, opts.PathMode), start.Line, start.Col),
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		pal.code.Sprint(d.Code.ID()),
		msg,
	)

	if f != nil && len(f.Content) > 0 {
		writeSnippet(w, f, start, end, opts.Context, pal)
	}

	if !opts.ShowNotes {
		return
	}
	for _, note := range d.Notes {
		nf := fs.Get(note.Span.File)
		pos, _ := fs.Resolve(note.Span)
		fmt.Fprintf(w, "  %s %s: %s\n",
			pal.note.Sprint("note:"),
			pal.path.Sprintf("%s:%d:%d", formatPath(nf, fs, opts.PathMode), pos.Line, pos.Col),
			note.Msg,
		)
	}
}

func writeSnippet(w *bufio.Writer, f *source.File, start, end source.LineCol, context int8, pal palette) {
	first := start.Line
	if context > 0 {
		first = max(1, start.Line-min(start.Line, uint32(context)))
	}
	last := start.Line
	if context > 0 {
		last = start.Line + uint32(context)
	}
	width := len(strconv.FormatUint(uint64(last), 10))

	for n := first; n <= last; n++ {
		text := strings.TrimRight(f.GetLine(n), "\r\n")
		if text == "" && n != start.Line {
			continue
		}
		fmt.Fprintf(w, " %s %s\n", pal.gutter.Sprintf("%*d |", width, n), text)
		if n == start.Line {
			fmt.Fprintf(w, " %s %s\n", pal.gutter.Sprintf("%*s |", width, ""), pal.marker.Sprint(underline(text, start, end)))
		}
	}
}

// underline builds "   ^~~" below the span's part of line. Columns are
// byte offsets; the padding uses display width.
func underline(line string, start, end source.LineCol) string {
	from := min(int(start.Col)-1, len(line))
	to := len(line)
	if end.Line == start.Line {
		to = min(max(int(end.Col)-1, from), len(line))
	}
	pad := runewidth.StringWidth(line[:from])
	span := max(1, runewidth.StringWidth(line[from:to]))
	return strings.Repeat(" ", pad) + "^" + strings.Repeat("~", span-1)
}
