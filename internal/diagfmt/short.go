package diagfmt

import (
	"io"

	"specgraph/internal/diag"
	"specgraph/internal/source"
)

// Short writes one line per diagnostic, sorted by location:
// "<severity> <CODE> <path>:<line>:<col> <message>".
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) error {
	out := diag.FormatGoldenDiagnostics(bag.Items(), fs, includeNotes)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}
