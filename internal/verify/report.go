package verify

import (
	"fmt"
	"strings"

	"specgraph/internal/callgraph"
	"specgraph/internal/diag"
)

// Report emits one error per finding. Each violation of the failing
// combination becomes a note at the finding's range, and the other edges
// of the combination are listed as notes at their own ranges.
func Report(r diag.Reporter, findings []Finding) {
	for _, f := range findings {
		blamed := callgraph.GenericNode{Callable: f.Callable, Kind: f.Kind}
		b := diag.ReportError(r, f.Code, f.Range, message(blamed, f.Cycle))
		for _, v := range f.Violations {
			b.WithNote(f.Range, v.String())
		}
		for _, e := range f.Path {
			if e.Range == f.Range && e.From == blamed {
				continue
			}
			b.WithNote(e.Range, fmt.Sprintf("cycle continues with %s -> %s", e.From, e.To))
		}
		b.Emit()
	}
}

func message(blamed callgraph.GenericNode, cycle []callgraph.GenericNode) string {
	return fmt.Sprintf("invalid cyclic type parameter resolution in %s (cycle %s)", blamed, cycleText(cycle))
}

func cycleText(cycle []callgraph.GenericNode) string {
	if len(cycle) == 0 {
		return ""
	}
	parts := make([]string, 0, len(cycle)+1)
	for _, n := range cycle {
		parts = append(parts, n.String())
	}
	parts = append(parts, cycle[0].String())
	return strings.Join(parts, " -> ")
}
