// Package trace records span and point events from the checking pipeline.
//
// A Tracer travels in the context (WithTracer / FromContext). Begin opens
// a span at a Scope; the tracer's Level decides which scopes are emitted:
//
//	phase   driver and pipeline phases (load, build, cycles, verify, instantiate)
//	detail  plus per-document and per-cycle units
//	debug   everything
//
// With tracing off the Nop tracer is used and Begin allocates nothing
// beyond an empty Span.
package trace
