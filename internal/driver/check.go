package driver

import (
	"context"
	"fmt"

	"specgraph/internal/callgraph"
	"specgraph/internal/cycles"
	"specgraph/internal/diag"
	"specgraph/internal/facts"
	"specgraph/internal/names"
	"specgraph/internal/observ"
	"specgraph/internal/source"
	"specgraph/internal/trace"
	"specgraph/internal/verify"
)

// CheckOptions configures Check.
type CheckOptions struct {
	Jobs           int
	MaxDiagnostics int
	// MaxDepth bounds instantiation chains; 0 keeps the default.
	MaxDepth int
	// Entries overrides the entry callables declared in the facts.
	Entries []string
	// Instantiate derives the concrete graph from the entries.
	Instantiate   bool
	LoadSources   bool
	EnableTimings bool
	Observer      PhaseObserver
}

// CheckResult is everything Check computed. Program is nil when no
// document could be loaded.
type CheckResult struct {
	FileSet   *source.FileSet
	Documents []*facts.Document
	Program   *facts.Program
	Cycles    [][]callgraph.GenericNode
	Findings  []verify.Finding
	Concrete  *callgraph.ConcreteGraph
	Issues    []callgraph.InstantiationIssue
	Bag       *diag.Bag
	Timer     *observ.Timer
}

// Check loads fact documents, builds the generic call graph, validates every
// cycle and, when asked, instantiates from the entries. Findings are
// diagnostics in the result's Bag; the error is reserved for I/O failures
// and cancellation.
func Check(ctx context.Context, paths []string, opts CheckOptions) (*CheckResult, error) {
	ctx, root := trace.Start(ctx, trace.ScopeDriver, "check")
	defer root.End("")

	res := &CheckResult{
		FileSet: source.NewFileSet(),
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	if opts.EnableTimings {
		res.Timer = observ.NewTimer()
	}
	ph := phases{timer: res.Timer, observer: opts.Observer}
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag})

	load := ph.begin(ctx, "load")
	docs, err := LoadDocuments(load.ctx, res.FileSet, reporter, paths, opts.Jobs)
	load.end(fmt.Sprintf("documents=%d", len(docs)))
	if err != nil {
		return nil, err
	}
	res.Documents = docs

	build := ph.begin(ctx, "build")
	prog, err := facts.Build(res.FileSet, facts.BuildOptions{LoadSources: opts.LoadSources}, docs...)
	for _, fe := range facts.Errors(err) {
		diag.ReportError(reporter, fe.Code, fe.Span, fe.Error()).Emit()
	}
	res.Program = prog
	build.end(fmt.Sprintf("nodes=%d edges=%d", prog.Graph.Len(), prog.Graph.EdgeCount()))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cyc := ph.begin(ctx, "cycles")
	res.Cycles = cycles.Find[callgraph.GenericNode](prog.Graph)
	cyc.end(fmt.Sprintf("cycles=%d", len(res.Cycles)))

	ver := ph.begin(ctx, "verify")
	res.Findings = verify.VerifyCycles(prog.Graph, res.Cycles, verify.Options{Jobs: opts.Jobs})
	verify.Report(reporter, res.Findings)
	ver.end(fmt.Sprintf("findings=%d", len(res.Findings)))

	if opts.Instantiate {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		inst := ph.begin(ctx, "instantiate")
		entries := resolveEntries(reporter, prog, opts.Entries)
		cg, issues, err := callgraph.Instantiate(prog.Graph, entries, callgraph.Options{MaxDepth: opts.MaxDepth})
		if err != nil {
			inst.end("failed")
			return nil, err
		}
		res.Concrete, res.Issues = cg, issues
		reportIssues(reporter, issues)
		inst.end(fmt.Sprintf("specializations=%d issues=%d", cg.Len(), len(issues)))
	}

	res.Bag.Sort()
	root.WithExtra("diagnostics", fmt.Sprint(res.Bag.Len()))
	return res, nil
}

// resolveEntries picks the entries to instantiate from. Unknown and generic
// entries are reported and skipped.
func resolveEntries(r diag.Reporter, prog *facts.Program, override []string) []callgraph.GenericNode {
	if len(override) == 0 {
		override = make([]string, len(prog.Entries))
		for i, e := range prog.Entries {
			override[i] = e.Callable.String()
		}
	}
	var out []callgraph.GenericNode
	for _, name := range override {
		q, err := names.ParseQualifiedName(name)
		if err != nil {
			diag.ReportError(r, diag.MonoUnknownEntry, source.NoSpan, err.Error()).Emit()
			continue
		}
		node := callgraph.G(q)
		switch {
		case !prog.Graph.ContainsNode(node):
			diag.ReportError(r, diag.MonoUnknownEntry, source.NoSpan, fmt.Sprintf("entry %s is not in the call graph", q)).Emit()
		case prog.IsGeneric(q):
			diag.ReportError(r, diag.MonoGenericEntry, source.NoSpan, fmt.Sprintf("entry %s declares type parameters", q)).Emit()
		default:
			out = append(out, node)
		}
	}
	return out
}

func reportIssues(r diag.Reporter, issues []callgraph.InstantiationIssue) {
	for _, is := range issues {
		var (
			code diag.Code
			msg  string
		)
		switch is.Kind {
		case callgraph.IssueInvalidResolution:
			code = diag.MonoConflictingResolution
			msg = fmt.Sprintf("cannot instantiate %s from %s: resolutions do not combine", is.Edge.To, is.Caller)
		case callgraph.IssueUnresolved:
			code = diag.MonoUnresolvedParameter
			msg = fmt.Sprintf("call from %s leaves %s generic: %s", is.Caller, is.Edge.To, is.Binding)
		case callgraph.IssueDepthExceeded:
			code = diag.MonoDepthExceeded
			msg = fmt.Sprintf("instantiating %s from %s exceeds the depth limit", is.Edge.To, is.Caller)
		default:
			continue
		}
		b := diag.ReportError(r, code, is.Edge.Range, msg)
		for _, v := range is.Violations {
			b.WithNote(is.Edge.Range, v.String())
		}
		b.Emit()
	}
}
