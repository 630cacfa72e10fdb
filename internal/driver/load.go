package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"specgraph/internal/diag"
	"specgraph/internal/facts"
	"specgraph/internal/source"
	"specgraph/internal/trace"
)

type loadedDocument struct {
	path string
	data []byte
	docs []*facts.Document
	err  error // decode error; reported as a diagnostic
}

// ExpandPaths replaces directories by the fact files directly inside them,
// sorted by name.
func ExpandPaths(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			name := filepath.Join(p, e.Name())
			if !e.IsDir() && facts.DetectFormat(name) != facts.FormatUnknown {
				out = append(out, name)
			}
		}
	}
	return out, nil
}

// LoadDocuments reads and decodes paths concurrently. Unreadable files
// abort the load; malformed documents become FctSyntax diagnostics and are
// skipped. Documents are returned in path order and every file is
// registered in fs.
func LoadDocuments(ctx context.Context, fs *source.FileSet, r diag.Reporter, paths []string, jobs int) ([]*facts.Document, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]loadedDocument, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			_, sp := trace.Start(gctx, trace.ScopeUnit, "facts:"+filepath.Base(path))
			defer sp.End("")

			// #nosec G304 -- paths come from the command line
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			docs, err := facts.Decode(path, data)
			results[i] = loadedDocument{path: path, data: data, docs: docs, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var docs []*facts.Document
	for _, res := range results {
		id := fs.Add(res.path, res.data, 0)
		if res.err != nil {
			code := diag.FctSyntax
			if errors.Is(res.err, facts.ErrSnapshotVersion) {
				code = diag.FctSnapshotVersion
			}
			diag.ReportError(r, code, source.Span{File: id}, res.err.Error()).Emit()
			continue
		}
		docs = append(docs, res.docs...)
	}
	return docs, nil
}
