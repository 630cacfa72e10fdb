package facts

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"fortio.org/safecast"

	"specgraph/internal/callgraph"
	"specgraph/internal/diag"
	"specgraph/internal/names"
	"specgraph/internal/resolution"
	"specgraph/internal/source"
	"specgraph/internal/types"
)

// Program is the generic call graph assembled from fact documents.
type Program struct {
	Graph *callgraph.GenericGraph
	// Entries are the declared entry callables in declaration order.
	Entries []callgraph.GenericNode
	// Params lists the declared type parameters of each callable.
	Params map[names.QualifiedName][]names.TypeParameterKey
}

// IsGeneric reports whether callable declares type parameters.
func (p *Program) IsGeneric(callable names.QualifiedName) bool {
	return len(p.Params[callable]) > 0
}

// BuildOptions tunes Build.
type BuildOptions struct {
	// LoadSources reads the files named by call ranges so diagnostics can
	// show lines and columns; missing files stay virtual.
	LoadSources bool
}

type builder struct {
	fs   *source.FileSet
	opts BuildOptions
	prog *Program
	errs []error
}

// Build declares every callable of docs, then records every call, so calls
// may refer to callables declared in another document. Invalid facts are
// skipped and reported together in the returned error (see Errors); the
// program holds everything that was valid.
func Build(fs *source.FileSet, opts BuildOptions, docs ...*Document) (*Program, error) {
	b := &builder{
		fs:   fs,
		opts: opts,
		prog: &Program{
			Graph:  callgraph.NewGenericGraph(),
			Params: make(map[names.QualifiedName][]names.TypeParameterKey),
		},
	}
	for _, doc := range docs {
		b.declare(doc)
	}
	for _, doc := range docs {
		for i := range doc.Calls {
			b.call(doc, i)
		}
	}
	return b.prog, errors.Join(b.errs...)
}

func (b *builder) fail(doc *Document, section string, index int, code diag.Code, sp source.Span, format string, args ...any) {
	b.errs = append(b.errs, &FactError{
		Path:    doc.Path,
		Section: section,
		Index:   index,
		Code:    code,
		Span:    sp,
		Msg:     fmt.Sprintf(format, args...),
	})
}

// docSpan points at the fact document itself.
func (b *builder) docSpan(doc *Document) source.Span {
	return source.Span{File: b.fs.Ensure(doc.Path)}
}

func (b *builder) declare(doc *Document) {
	for i, c := range doc.Callables {
		sp := b.docSpan(doc)
		q, err := names.ParseQualifiedName(c.Name)
		if err != nil {
			b.fail(doc, "callable", i, diag.FctInvalidName, sp, "%v", err)
			continue
		}
		if _, dup := b.prog.Params[q]; dup {
			b.fail(doc, "callable", i, diag.FctDuplicateCallable, sp, "callable %s declared twice", q)
			continue
		}
		params := make([]names.TypeParameterKey, 0, len(c.TypeParams))
		seen := make(map[string]bool, len(c.TypeParams))
		ok := true
		for _, p := range c.TypeParams {
			key, err := names.ParseTypeParameter(q.String() + "." + p)
			if err != nil || seen[key.Name] {
				b.fail(doc, "callable", i, diag.FctInvalidName, sp, "invalid or repeated type parameter %q of %s", p, q)
				ok = false
				break
			}
			seen[key.Name] = true
			params = append(params, key)
		}
		if !ok {
			continue
		}
		b.prog.Params[q] = params
		node := callgraph.G(q)
		b.prog.Graph.AddNode(node)
		if c.Entry {
			b.prog.Entries = append(b.prog.Entries, node)
		}
	}
}

func (b *builder) node(doc *Document, index int, sp source.Span, role, name, kind string) (callgraph.GenericNode, bool) {
	q, err := names.ParseQualifiedName(name)
	if err != nil {
		b.fail(doc, "call", index, diag.FctInvalidName, sp, "%s: %v", role, err)
		return callgraph.GenericNode{}, false
	}
	if _, ok := b.prog.Params[q]; !ok {
		b.fail(doc, "call", index, diag.FctUnknownCallable, sp, "%s %s is not declared", role, q)
		return callgraph.GenericNode{}, false
	}
	k, err := names.ParseSpecKind(kind)
	if err != nil {
		b.fail(doc, "call", index, diag.FctInvalidName, sp, "%s: %v", role, err)
		return callgraph.GenericNode{}, false
	}
	return callgraph.GenericNode{Callable: q, Kind: k}, true
}

func (b *builder) call(doc *Document, index int) {
	c := doc.Calls[index]
	sp, err := b.span(doc, c.Range)
	if err != nil {
		b.fail(doc, "call", index, diag.FctBadRange, b.docSpan(doc), "%v", err)
		return
	}
	caller, ok := b.node(doc, index, sp, "caller", c.Caller, c.CallerKind)
	if !ok {
		return
	}
	callee, ok := b.node(doc, index, sp, "callee", c.Callee, c.CalleeKind)
	if !ok {
		return
	}

	res := make(resolution.Map, len(c.Resolutions))
	for _, k := range slices.Sorted(maps.Keys(c.Resolutions)) {
		v := c.Resolutions[k]
		key, err := names.ParseTypeParameter(k)
		if err != nil {
			b.fail(doc, "call", index, diag.FctInvalidName, sp, "%v", err)
			return
		}
		if key.Owner != callee.Callable {
			b.fail(doc, "call", index, diag.FctInvalidName, sp, "%s is not a type parameter of %s", key, callee.Callable)
			return
		}
		t, err := types.Parse(v)
		if err != nil {
			b.fail(doc, "call", index, diag.FctInvalidType, sp, "%s: %v", key, err)
			return
		}
		res.Set(key, t)
	}
	for _, p := range b.prog.Params[callee.Callable] {
		if _, bound := res[p]; !bound {
			b.fail(doc, "call", index, diag.FctInvalidType, sp, "call to %s does not bind %s", callee.Callable, p)
			return
		}
	}
	for _, key := range res.Keys() {
		if !declared(b.prog.Params[callee.Callable], key) {
			b.fail(doc, "call", index, diag.FctInvalidName, sp, "%s does not declare %s", callee.Callable, key)
			return
		}
	}

	b.prog.Graph.AddCall(caller, callee, res, sp)
}

func declared(params []names.TypeParameterKey, key names.TypeParameterKey) bool {
	for _, p := range params {
		if p == key {
			return true
		}
	}
	return false
}

// span converts a fact range. Relative files are taken relative to the
// fact document's directory.
func (b *builder) span(doc *Document, r Range) (source.Span, error) {
	start, err := safecast.Conv[uint32](r.Start)
	if err != nil {
		return source.NoSpan, fmt.Errorf("range start %d: %w", r.Start, err)
	}
	end, err := safecast.Conv[uint32](r.End)
	if err != nil {
		return source.NoSpan, fmt.Errorf("range end %d: %w", r.End, err)
	}
	if end < start {
		return source.NoSpan, fmt.Errorf("range end %d before start %d", end, start)
	}
	if r.File == "" {
		return source.Span{File: b.fs.Ensure(doc.Path), Start: start, End: end}, nil
	}
	path := r.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(doc.Path), path)
	}
	return source.Span{File: b.file(path), Start: start, End: end}, nil
}

func (b *builder) file(path string) source.FileID {
	if id, ok := b.fs.GetLatest(path); ok {
		return id
	}
	if b.opts.LoadSources {
		if _, err := os.Stat(path); err == nil {
			if id, err := b.fs.Load(path); err == nil {
				return id
			}
		}
	}
	return b.fs.Ensure(path)
}
