// Package pass runs ordered transformation passes over a lowered
// compute graph. A pipeline executes its passes strictly in registration
// order; each pass reports whether it changed the graph, and the first
// pass error aborts the remaining pipeline while leaving the graph in
// its last reached state for diagnostics.
package pass

import (
	"errors"
	"fmt"

	"github.com/arc-ml/arc/internal/ir"
	"github.com/arc-ml/arc/internal/source"
)

// Result reports what a successful pass run did to the graph.
type Result int

// Pass results.
const (
	NoChange Result = iota
	Changed
)

// String returns a human-readable name for the result.
func (r Result) String() string {
	switch r {
	case NoChange:
		return "NoChange"
	case Changed:
		return "GraphChanged"
	default:
		return "Unknown"
	}
}

// Pass is one named transformation unit. Run receives mutable access to
// both the original source graph, for passes that still need raw-format
// metadata, and the compute graph. A non-nil error is the third state of
// the tri-state result and aborts the pipeline.
type Pass interface {
	Name() string
	Run(src *source.Graph, cg *ir.Graph) (Result, error)
}

// LogEntry records one pass execution for the caller.
type LogEntry struct {
	Pass   string
	Result string
}

// ErrPassFailed is the sentinel wrapped by every Error.
var ErrPassFailed = errors.New("pass failed")

// Error reports a failing pass along with its name.
type Error struct {
	Pass string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("pass %q: %v", e.Pass, e.Err)
}

// Unwrap exposes both the sentinel and the pass's own error.
func (e *Error) Unwrap() []error { return []error{ErrPassFailed, e.Err} }

// funcPass adapts a function to the Pass interface.
type funcPass struct {
	name string
	run  func(src *source.Graph, cg *ir.Graph) (Result, error)
}

// New wraps a function as a named pass.
func New(name string, run func(src *source.Graph, cg *ir.Graph) (Result, error)) Pass {
	return &funcPass{name: name, run: run}
}

func (p *funcPass) Name() string { return p.name }

func (p *funcPass) Run(src *source.Graph, cg *ir.Graph) (Result, error) {
	return p.run(src, cg)
}
