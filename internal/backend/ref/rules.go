package ref

import (
	"github.com/arc-ml/arc/internal/ir"
	"github.com/arc-ml/arc/internal/lower"
	"github.com/arc-ml/arc/internal/source"
)

// convRule claims "Conv" at CustomMatch so it is preferred over the
// standard conv rule, then builds the same node with the backend's
// layout stamped on.
type convRule struct {
	std lower.Rule
}

func newConvRule() lower.Rule {
	return convRule{std: lower.NewConvRule()}
}

func (r convRule) IsMe(n *source.Node) lower.MatchLevel {
	if n.OpType == "Conv" {
		return lower.CustomMatch
	}
	return lower.NotMe
}

func (r convRule) Activate(g *ir.Graph, n *source.Node) (*ir.Node, error) {
	node, err := r.std.Activate(g, n)
	if err != nil {
		return nil, err
	}
	node.SetAttr("layout", ir.StringAttr(Layout))
	return node, nil
}
