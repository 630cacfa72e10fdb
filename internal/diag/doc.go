// Package diag defines the diagnostic records produced while loading call
// facts and checking generic resolutions.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error.
//   - Code: compact numeric identifier with a stable string form (codes.go).
//   - Message: short human oriented text naming the blamed callable.
//   - Primary: the call-site span the finding is pinned to.
//   - Notes: secondary spans, one per resolution violation or related edge.
//
// # Emitting
//
// Producers talk to a Reporter, never to storage. BagReporter collects into
// a Bag (limit, sorting, dedup); DedupReporter drops repeats before they
// reach the next reporter. ReportBuilder chains notes before Emit.
//
// Rendering lives in internal/diagfmt; FormatGoldenDiagnostics here is the
// stable one-line form used by tests.
package diag
