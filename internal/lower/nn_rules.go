package lower

import (
	"github.com/arc-ml/arc/internal/ir"
	"github.com/arc-ml/arc/internal/source"
)

// nnRules returns the neural-network layer rules.
func nnRules() []Rule {
	return []Rule{
		NewConvRule(),
		NewMaxPoolRule(),
	}
}

// NewConvRule lowers "Conv" nodes.
func NewConvRule() Rule { return convRule{stdRule{"Conv", ir.KindConv}} }

// NewMaxPoolRule lowers "MaxPool" nodes.
func NewMaxPoolRule() Rule { return poolRule{stdRule{"MaxPool", ir.KindMaxPool}} }

// convRule extends the standard lowering by stamping defaults for the
// spatial attributes later passes rely on.
type convRule struct {
	stdRule
}

func (r convRule) Activate(g *ir.Graph, n *source.Node) (*ir.Node, error) {
	node, err := r.stdRule.Activate(g, n)
	if err != nil {
		return nil, err
	}
	stampSpatialDefaults(node)
	if _, ok := node.Attr("group"); !ok {
		node.SetAttr("group", ir.IntAttr(1))
	}
	return node, nil
}

type poolRule struct {
	stdRule
}

func (r poolRule) Activate(g *ir.Graph, n *source.Node) (*ir.Node, error) {
	node, err := r.stdRule.Activate(g, n)
	if err != nil {
		return nil, err
	}
	stampSpatialDefaults(node)
	return node, nil
}

// stampSpatialDefaults fills in strides, pads and dilations when the
// source model leaves them implicit. The spatial rank comes from
// kernel_shape when declared, else from the input rank minus batch and
// channel dims.
func stampSpatialDefaults(node *ir.Node) {
	rank := len(node.IntsAttr("kernel_shape"))
	if rank == 0 {
		if in := node.Input(0); in.Shape() != nil {
			rank = in.Shape().Rank() - 2
		}
	}
	if rank <= 0 {
		return
	}
	if _, ok := node.Attr("strides"); !ok {
		node.SetAttr("strides", ir.IntsAttr(ones(rank)))
	}
	if _, ok := node.Attr("dilations"); !ok {
		node.SetAttr("dilations", ir.IntsAttr(ones(rank)))
	}
	if _, ok := node.Attr("pads"); !ok {
		node.SetAttr("pads", ir.IntsAttr(make([]int64, 2*rank)))
	}
}

func ones(n int) []int64 {
	s := make([]int64, n)
	for i := range s {
		s[i] = 1
	}
	return s
}
