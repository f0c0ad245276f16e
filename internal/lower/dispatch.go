package lower

import (
	"fmt"
	"log/slog"

	"github.com/arc-ml/arc/internal/ir"
	"github.com/arc-ml/arc/internal/source"
)

// Lowering drives the translation of one source graph into a compute
// graph. The registry it carries is read-only during dispatch, so a
// single Lowering may be reused across sequentially compiled units and
// shared read-only across parallel ones.
type Lowering struct {
	reg    *Registry
	logger *slog.Logger
}

// NewLowering creates a dispatcher over the given registry. A nil logger
// discards debug output.
func NewLowering(reg *Registry, logger *slog.Logger) *Lowering {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Lowering{reg: reg, logger: logger}
}

// Run lowers the whole source graph. The first unmatched or malformed
// node fails the compiled unit; no partial graph is returned.
func (l *Lowering) Run(src *source.Graph) (*ir.Graph, error) {
	g := ir.NewGraph(src.Name)

	// Declare graph inputs so every node's inputs resolve to values.
	for _, in := range src.Inputs {
		typ, err := ElemToDataType(in.ElemType)
		if err != nil {
			return nil, fmt.Errorf("graph input %q: %w", in.Name, err)
		}
		v, err := g.AddValue(in.Name, typ, DimsToShape(in.Dims))
		if err != nil {
			return nil, err
		}
		g.MarkInput(v)
	}

	// Initializers become constant-producing nodes.
	for i := range src.Initializers {
		if err := l.lowerInitializer(g, &src.Initializers[i]); err != nil {
			return nil, err
		}
	}

	// Lower every node in source order.
	for i := range src.Nodes {
		n := &src.Nodes[i]
		rule, level := l.reg.Match(n)
		if level == NotMe {
			return nil, &UnsupportedOperatorError{OpType: n.OpType, NodeName: n.Name, Index: i}
		}
		node, err := rule.Activate(g, n)
		if err != nil {
			return nil, &MalformedOperatorError{OpType: n.OpType, NodeName: n.Name, Index: i, Err: err}
		}
		l.logger.Debug("lowered node",
			"op", n.OpType, "index", i, "match", level.String(), "node", node.String())
	}

	for _, out := range src.Outputs {
		v := g.GetValue(out.Name)
		if v == nil {
			return nil, fmt.Errorf("graph output %q is never produced", out.Name)
		}
		g.MarkOutput(v)
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	l.logger.Debug("lowering complete", "graph", g.Name(), "nodes", g.NumNodes(), "values", g.NumValues())
	return g, nil
}

func (l *Lowering) lowerInitializer(g *ir.Graph, t *source.Tensor) error {
	tensor, err := TensorFromSource(t)
	if err != nil {
		return err
	}
	v, err := g.AddValue(t.Name, tensor.Type, tensor.Shape)
	if err != nil {
		return err
	}
	node, err := g.AddNode(ir.KindInitializer, t.Name, nil, []*ir.Value{v})
	if err != nil {
		return err
	}
	node.SetAttr("value", ir.TensorAttr(tensor))
	return nil
}
