package pass

import (
	"encoding/binary"
	"fmt"

	"github.com/arc-ml/arc/internal/ir"
	"github.com/arc-ml/arc/internal/source"
)

// ShapeInference propagates shapes through the compute graph in node
// order. Shapes unknown at lowering time are refined where the operator
// semantics allow; already-known shapes are never overwritten. Run under
// FixedPoint it converges because every iteration only turns unknown
// dimensions into known ones.
type ShapeInference struct{}

// NewShapeInference returns the shape-inference pass.
func NewShapeInference() *ShapeInference { return &ShapeInference{} }

// Name implements Pass.
func (*ShapeInference) Name() string { return "shape-inference" }

// Run implements Pass.
func (p *ShapeInference) Run(_ *source.Graph, cg *ir.Graph) (Result, error) {
	if err := cg.Validate(); err != nil {
		return NoChange, err
	}

	producers := make(map[string]*ir.Node)
	for _, n := range cg.Nodes() {
		for _, out := range n.Outputs() {
			producers[out.Name()] = n
		}
	}

	result := NoChange
	for _, n := range cg.Nodes() {
		inferred, err := inferShape(n, producers)
		if err != nil {
			return result, fmt.Errorf("node %s: %w", n, err)
		}
		if inferred == nil {
			continue
		}
		out := n.Output(0)
		if refineShape(out, inferred) {
			result = Changed
		}
	}
	return result, nil
}

// refineShape installs the inferred shape if it is strictly more precise
// than what the value already carries.
func refineShape(v *ir.Value, inferred ir.Shape) bool {
	current := v.Shape()
	if current != nil && current.Known() {
		return false
	}
	if current.Equal(inferred) {
		return false
	}
	if current != nil && len(current) == len(inferred) {
		// Keep dimensions that were already known.
		merged := inferred.Clone()
		for i, d := range current {
			if d != ir.DimUnknown {
				merged[i] = d
			}
		}
		inferred = merged
		if current.Equal(inferred) {
			return false
		}
	}
	v.SetShape(inferred)
	return true
}

// inferShape computes the first output's shape, or nil when the operator
// gives nothing to propagate yet.
func inferShape(n *ir.Node, producers map[string]*ir.Node) (ir.Shape, error) {
	switch n.Kind() {
	case ir.KindAdd, ir.KindSub, ir.KindMul, ir.KindDiv:
		a, b := n.Input(0).Shape(), n.Input(1).Shape()
		if a == nil || b == nil {
			return nil, nil
		}
		return ir.BroadcastShapes(a, b)

	case ir.KindAbs, ir.KindRelu, ir.KindSigmoid, ir.KindHardSigmoid,
		ir.KindSoftmax, ir.KindSoftplus:
		return n.Input(0).Shape().Clone(), nil

	case ir.KindMatMul:
		return inferMatMul(n.Input(0).Shape(), n.Input(1).Shape())

	case ir.KindGemm:
		return inferGemm(n)

	case ir.KindTranspose:
		return inferTranspose(n)

	case ir.KindConcat:
		return inferConcat(n)

	case ir.KindReshape:
		return inferReshape(n, producers)

	case ir.KindConv:
		return inferConv(n)

	case ir.KindMaxPool:
		return inferPool(n)

	default:
		return nil, nil
	}
}

func inferMatMul(a, b ir.Shape) (ir.Shape, error) {
	if a == nil || b == nil {
		return nil, nil
	}
	if a.Rank() < 2 || b.Rank() < 2 {
		return nil, fmt.Errorf("matmul requires rank >= 2, got %v x %v", a, b)
	}
	m, ka := a[a.Rank()-2], a[a.Rank()-1]
	kb, nn := b[b.Rank()-2], b[b.Rank()-1]
	if ka != ir.DimUnknown && kb != ir.DimUnknown && ka != kb {
		return nil, fmt.Errorf("matmul inner dimensions disagree: %v x %v", a, b)
	}
	batch, err := ir.BroadcastShapes(a[:a.Rank()-2], b[:b.Rank()-2])
	if err != nil {
		return nil, err
	}
	return append(batch, m, nn), nil
}

func inferGemm(n *ir.Node) (ir.Shape, error) {
	a, b := n.Input(0).Shape(), n.Input(1).Shape()
	if a == nil || b == nil {
		return nil, nil
	}
	if a.Rank() != 2 || b.Rank() != 2 {
		return nil, fmt.Errorf("gemm requires rank-2 inputs, got %v x %v", a, b)
	}
	m, k := a[0], a[1]
	if n.IntAttr("transA", 0) != 0 {
		m, k = k, m
	}
	kb, nn := b[0], b[1]
	if n.IntAttr("transB", 0) != 0 {
		kb, nn = nn, kb
	}
	if k != ir.DimUnknown && kb != ir.DimUnknown && k != kb {
		return nil, fmt.Errorf("gemm inner dimensions disagree: %v x %v", a, b)
	}
	return ir.Shape{m, nn}, nil
}

func inferTranspose(n *ir.Node) (ir.Shape, error) {
	in := n.Input(0).Shape()
	if in == nil {
		return nil, nil
	}
	perm := n.IntsAttr("perm")
	if perm == nil {
		// Default permutation reverses the dimensions.
		out := make(ir.Shape, in.Rank())
		for i := range in {
			out[i] = in[in.Rank()-1-i]
		}
		return out, nil
	}
	if len(perm) != in.Rank() {
		return nil, fmt.Errorf("perm rank %d does not match input rank %d", len(perm), in.Rank())
	}
	out := make(ir.Shape, in.Rank())
	for i, p := range perm {
		if p < 0 || int(p) >= in.Rank() {
			return nil, fmt.Errorf("perm index %d out of range for rank %d", p, in.Rank())
		}
		out[i] = in[p]
	}
	return out, nil
}

func inferConcat(n *ir.Node) (ir.Shape, error) {
	first := n.Input(0).Shape()
	if first == nil {
		return nil, nil
	}
	axis := int(n.IntAttr("axis", 0))
	if axis < 0 {
		axis += first.Rank()
	}
	if axis < 0 || axis >= first.Rank() {
		return nil, fmt.Errorf("concat axis %d out of range for rank %d", axis, first.Rank())
	}
	out := first.Clone()
	total := first[axis]
	for _, in := range n.Inputs()[1:] {
		s := in.Shape()
		if s == nil || s.Rank() != first.Rank() {
			return nil, nil
		}
		if total == ir.DimUnknown || s[axis] == ir.DimUnknown {
			total = ir.DimUnknown
		} else {
			total += s[axis]
		}
	}
	out[axis] = total
	return out, nil
}

func inferReshape(n *ir.Node, producers map[string]*ir.Node) (ir.Shape, error) {
	target, ok := constantInts(n.Input(1), producers)
	if !ok {
		return nil, nil
	}
	in := n.Input(0).Shape()
	out := make(ir.Shape, len(target))
	inferAt := -1
	known := int64(1)
	for i, d := range target {
		switch {
		case d == -1:
			if inferAt != -1 {
				return nil, fmt.Errorf("reshape target has multiple -1 dims")
			}
			inferAt = i
			out[i] = ir.DimUnknown
		case d == 0:
			if in == nil || i >= in.Rank() {
				return nil, fmt.Errorf("reshape dim 0 at index %d has no input dim to copy", i)
			}
			out[i] = in[i]
		default:
			out[i] = d
		}
		if out[i] != ir.DimUnknown {
			known *= out[i]
		}
	}
	if inferAt != -1 && in != nil && in.Known() && known > 0 {
		total := in.NumElements()
		if total%known != 0 {
			return nil, fmt.Errorf("reshape cannot infer dim: %d elements not divisible by %d", total, known)
		}
		out[inferAt] = total / known
	}
	return out, nil
}

// constantInts reads an int64 vector from a value produced by an
// initializer node, the common encoding of reshape targets.
func constantInts(v *ir.Value, producers map[string]*ir.Node) ([]int64, bool) {
	producer, ok := producers[v.Name()]
	if !ok || producer.Kind() != ir.KindInitializer {
		return nil, false
	}
	attr, ok := producer.Attr("value")
	if !ok {
		return nil, false
	}
	t := attr.Tensor()
	if t.Type != ir.Int64 || len(t.Raw)%8 != 0 {
		return nil, false
	}
	out := make([]int64, len(t.Raw)/8)
	for i := range out {
		out[i] = int64(binary.LittleEndian.Uint64(t.Raw[i*8:]))
	}
	return out, true
}

func inferConv(n *ir.Node) (ir.Shape, error) {
	in := n.Input(0).Shape()
	weight := n.Input(1).Shape()
	if in == nil || weight == nil || in.Rank() < 3 {
		return nil, nil
	}
	out, err := spatialOut(n, in)
	if err != nil || out == nil {
		return nil, err
	}
	out[1] = weight[0] // output channels
	return out, nil
}

func inferPool(n *ir.Node) (ir.Shape, error) {
	in := n.Input(0).Shape()
	if in == nil || in.Rank() < 3 {
		return nil, nil
	}
	return spatialOut(n, in)
}

// spatialOut computes the (N, C, spatial...) output shape of a windowed
// op from kernel_shape, strides, pads and dilations.
func spatialOut(n *ir.Node, in ir.Shape) (ir.Shape, error) {
	kernel := n.IntsAttr("kernel_shape")
	if kernel == nil && len(n.Inputs()) > 1 {
		// Conv may leave kernel_shape implicit in the weight tensor.
		if w := n.Input(1); w.Shape() != nil && w.Shape().Rank() == in.Rank() {
			kernel = w.Shape()[2:]
		}
	}
	rank := len(kernel)
	if rank == 0 || in.Rank() != rank+2 {
		return nil, nil
	}
	strides := n.IntsAttr("strides")
	dilations := n.IntsAttr("dilations")
	pads := n.IntsAttr("pads")

	out := make(ir.Shape, in.Rank())
	out[0], out[1] = in[0], in[1]
	for i := 0; i < rank; i++ {
		stride, dilation := int64(1), int64(1)
		if i < len(strides) {
			stride = strides[i]
		}
		if i < len(dilations) {
			dilation = dilations[i]
		}
		if stride <= 0 {
			return nil, fmt.Errorf("stride %d at spatial dim %d must be positive", stride, i)
		}
		if dilation <= 0 {
			return nil, fmt.Errorf("dilation %d at spatial dim %d must be positive", dilation, i)
		}
		if in[i+2] == ir.DimUnknown {
			out[i+2] = ir.DimUnknown
			continue
		}
		padBegin, padEnd := int64(0), int64(0)
		if len(pads) == 2*rank {
			padBegin, padEnd = pads[i], pads[i+rank]
		}
		window := dilation*(kernel[i]-1) + 1
		out[i+2] = (in[i+2]+padBegin+padEnd-window)/stride + 1
	}
	return out, nil
}
