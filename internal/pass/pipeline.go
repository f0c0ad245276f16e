package pass

import (
	"log/slog"

	"github.com/arc-ml/arc/internal/ir"
	"github.com/arc-ml/arc/internal/source"
)

// Pipeline is a named, ordered sequence of passes. Ordering is the
// pipeline author's responsibility; the pipeline never reorders or
// resolves dependencies.
type Pipeline struct {
	name   string
	passes []Pass
	logger *slog.Logger
}

// NewPipeline creates an empty pipeline. A nil logger discards output.
func NewPipeline(name string, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{name: name, logger: logger}
}

// Name returns the pipeline name.
func (p *Pipeline) Name() string { return p.name }

// Add appends passes in execution order.
func (p *Pipeline) Add(passes ...Pass) *Pipeline {
	p.passes = append(p.passes, passes...)
	return p
}

// Len returns the number of registered passes.
func (p *Pipeline) Len() int { return len(p.passes) }

// Run executes every pass in order and returns the pass-by-pass log.
// The first pass error aborts the remaining passes; the log still covers
// every pass that ran, including the failing one.
func (p *Pipeline) Run(src *source.Graph, cg *ir.Graph) ([]LogEntry, error) {
	log := make([]LogEntry, 0, len(p.passes))
	for _, ps := range p.passes {
		result, err := ps.Run(src, cg)
		if err != nil {
			log = append(log, LogEntry{Pass: ps.Name(), Result: "Error"})
			p.logger.Error("pass failed", "pipeline", p.name, "pass", ps.Name(), "error", err)
			return log, &Error{Pass: ps.Name(), Err: err}
		}
		log = append(log, LogEntry{Pass: ps.Name(), Result: result.String()})
		p.logger.Debug("pass complete", "pipeline", p.name, "pass", ps.Name(), "result", result.String())
	}
	return log, nil
}

// FixedPoint wraps a pass so it re-runs until it reports NoChange or the
// iteration limit is hit. The wrapper reports Changed if any iteration
// changed the graph.
func FixedPoint(inner Pass, maxIters int) Pass {
	return New(inner.Name(), func(src *source.Graph, cg *ir.Graph) (Result, error) {
		overall := NoChange
		for i := 0; i < maxIters; i++ {
			result, err := inner.Run(src, cg)
			if err != nil {
				return overall, err
			}
			if result == NoChange {
				return overall, nil
			}
			overall = Changed
		}
		return overall, nil
	})
}
