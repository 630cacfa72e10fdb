// Package facts reads call facts, the (caller, callee, resolutions, range)
// records a tree walker emits, from TOML, YAML and msgpack snapshot
// documents, and builds the generic call graph from them.
package facts

import (
	"errors"
	"fmt"

	"specgraph/internal/diag"
	"specgraph/internal/source"
)

var (
	// ErrInvalidFact is wrapped by every validation failure.
	ErrInvalidFact = errors.New("invalid fact")
	// ErrUnknownFormat is returned for files whose extension is not a
	// known fact format.
	ErrUnknownFormat = errors.New("unknown fact format")
	// ErrSnapshotVersion is returned for snapshots of another schema.
	ErrSnapshotVersion = errors.New("unsupported snapshot schema")
)

// Document is one fact file.
type Document struct {
	Path      string     `toml:"-" yaml:"-" msgpack:"path"`
	Callables []Callable `toml:"callable" yaml:"callable" msgpack:"callables"`
	Calls     []Call     `toml:"call" yaml:"call" msgpack:"calls"`
}

// Callable declares a callable and its type parameters. Entry marks the
// roots instantiation starts from.
type Callable struct {
	Name       string   `toml:"name" yaml:"name" msgpack:"name"`
	TypeParams []string `toml:"type_params" yaml:"type_params" msgpack:"type_params"`
	Entry      bool     `toml:"entry" yaml:"entry" msgpack:"entry"`
}

// Call is one reference from Caller to Callee. Resolutions maps the
// callee's type parameters ("'NS.Callee.T") to type expressions in terms
// of the caller.
type Call struct {
	Caller      string            `toml:"caller" yaml:"caller" msgpack:"caller"`
	CallerKind  string            `toml:"caller_kind" yaml:"caller_kind" msgpack:"caller_kind"`
	Callee      string            `toml:"callee" yaml:"callee" msgpack:"callee"`
	CalleeKind  string            `toml:"callee_kind" yaml:"callee_kind" msgpack:"callee_kind"`
	Range       Range             `toml:"range" yaml:"range" msgpack:"range"`
	Resolutions map[string]string `toml:"resolutions" yaml:"resolutions" msgpack:"resolutions"`
}

// Range is a byte range in a source file. An empty File points into the
// fact document itself.
type Range struct {
	File  string `toml:"file" yaml:"file" msgpack:"file"`
	Start int64  `toml:"start" yaml:"start" msgpack:"start"`
	End   int64  `toml:"end" yaml:"end" msgpack:"end"`
}

// FactError is one rejected callable or call.
type FactError struct {
	Path    string
	Section string // "callable" or "call"
	Index   int
	Code    diag.Code
	Span    source.Span
	Msg     string
}

func (e *FactError) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Msg)
	}
	return fmt.Sprintf("%s: %s #%d: %s", e.Path, e.Section, e.Index+1, e.Msg)
}

func (e *FactError) Unwrap() error { return ErrInvalidFact }

// Errors flattens an error returned by Build into its FactErrors.
func Errors(err error) []*FactError {
	if err == nil {
		return nil
	}
	var out []*FactError
	var walk func(error)
	walk = func(err error) {
		if fe, ok := err.(*FactError); ok {
			out = append(out, fe)
			return
		}
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, e := range joined.Unwrap() {
				walk(e)
			}
		}
	}
	walk(err)
	return out
}
