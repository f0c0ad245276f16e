package pass

import (
	"github.com/arc-ml/arc/internal/ir"
	"github.com/arc-ml/arc/internal/source"
)

// visitorPass walks every compute-graph node and dispatches through
// Node.Accept, letting the node's concrete kind pick the visitor method.
// This is how backend-specific mutation plugs into a backend-agnostic
// pass.
type visitorPass struct {
	name    string
	visitor ir.Visitor
}

// NewVisitorPass wraps a visitor as a pass. A visitor error becomes the
// pass error; otherwise the pass reports Changed, since visitors exist
// to mutate nodes.
func NewVisitorPass(name string, v ir.Visitor) Pass {
	return &visitorPass{name: name, visitor: v}
}

func (p *visitorPass) Name() string { return p.name }

func (p *visitorPass) Run(_ *source.Graph, cg *ir.Graph) (Result, error) {
	for _, node := range cg.Nodes() {
		if err := node.Accept(p.visitor); err != nil {
			return NoChange, err
		}
	}
	return Changed, nil
}
