package lower

import (
	"fmt"

	"github.com/arc-ml/arc/internal/ir"
	"github.com/arc-ml/arc/internal/source"
)

// StandardRules returns the backend-independent rule set, one rule per
// supported operator symbol.
func StandardRules() []Rule {
	var rules []Rule
	rules = append(rules, mathRules()...)
	rules = append(rules, activationRules()...)
	rules = append(rules, shapeRules()...)
	rules = append(rules, nnRules()...)
	return rules
}

// stdRule is the shared implementation behind the standard rules: match
// on the operator symbol at StandardMatch, validate arity and value
// names, then build the IR node and wire it to graph values.
type stdRule struct {
	symbol string
	kind   ir.Kind
}

// IsMe claims nodes whose operator symbol matches, at standard priority.
func (r stdRule) IsMe(n *source.Node) MatchLevel {
	if n.OpType == r.symbol {
		return StandardMatch
	}
	return NotMe
}

// Activate validates the node and builds its IR counterpart. All checks
// run before the graph is touched, so a failed activation leaves the
// graph's node and value counts unchanged.
func (r stdRule) Activate(g *ir.Graph, n *source.Node) (*ir.Node, error) {
	return activate(g, n, r.kind)
}

func activate(g *ir.Graph, n *source.Node, kind ir.Kind) (*ir.Node, error) {
	src := n.Graph()
	spec, ok := kind.Arity()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ir.ErrUnknownKind, kind)
	}

	// Check input/output counts.
	if len(n.Inputs) < spec.MinIn || (spec.MaxIn != -1 && len(n.Inputs) > spec.MaxIn) {
		return nil, &ir.ArityError{Kind: kind, Port: "input", Got: len(n.Inputs), Min: spec.MinIn, Max: spec.MaxIn}
	}
	if len(n.Outputs) < spec.MinOut || (spec.MaxOut != -1 && len(n.Outputs) > spec.MaxOut) {
		return nil, &ir.ArityError{Kind: kind, Port: "output", Got: len(n.Outputs), Min: spec.MinOut, Max: spec.MaxOut}
	}

	// Check input/output names resolve uniquely in the source scope.
	for _, name := range n.Inputs {
		if !src.HasUniqueName(name) {
			return nil, fmt.Errorf("input %q does not resolve to a unique value", name)
		}
	}
	for _, name := range n.Outputs {
		if !src.HasUniqueName(name) {
			return nil, fmt.Errorf("output %q does not resolve to a unique value", name)
		}
	}

	// Inputs must already hold values in the graph.
	inputs := make([]*ir.Value, len(n.Inputs))
	for i, name := range n.Inputs {
		v := g.GetValue(name)
		if v == nil {
			return nil, fmt.Errorf("input %q has no value in the compute graph", name)
		}
		inputs[i] = v
	}

	// Resolve output types before mutating anything, so a type clash
	// surfaces while the graph is still untouched.
	outTypes := make([]ir.DataType, len(n.Outputs))
	outShapes := make([]ir.Shape, len(n.Outputs))
	for i, name := range n.Outputs {
		typ, shape := outputSignature(src, name, inputs)
		if existing := g.GetValue(name); existing != nil && existing.Type() != typ {
			return nil, &ir.DuplicateValueError{Name: name, Existing: existing.Type(), Requested: typ}
		}
		outTypes[i], outShapes[i] = typ, shape
	}

	// Convert attributes up front for the same reason.
	attrs := make([]*ir.Attribute, len(n.Attributes))
	for i := range n.Attributes {
		a, err := convertAttr(&n.Attributes[i])
		if err != nil {
			return nil, err
		}
		attrs[i] = a
	}

	// All checks passed; build.
	outputs := make([]*ir.Value, len(n.Outputs))
	for i, name := range n.Outputs {
		v, err := g.AddValue(name, outTypes[i], outShapes[i])
		if err != nil {
			return nil, err
		}
		outputs[i] = v
	}
	node, err := g.AddNode(kind, n.Name, inputs, outputs)
	if err != nil {
		return nil, err
	}
	for i := range n.Attributes {
		node.SetAttr(n.Attributes[i].Name, attrs[i])
	}
	return node, nil
}

// outputSignature decides an output value's element type and shape: the
// declared value info when present, otherwise the first input's type with
// an unknown shape.
func outputSignature(src *source.Graph, name string, inputs []*ir.Value) (ir.DataType, ir.Shape) {
	if info, ok := src.Info(name); ok && info.ElemType != source.ElemUndefined {
		if typ, err := ElemToDataType(info.ElemType); err == nil {
			return typ, DimsToShape(info.Dims)
		}
	}
	if len(inputs) > 0 {
		return inputs[0].Type(), nil
	}
	return ir.Float32, nil
}

// ElemToDataType maps an interchange-format element type code to an IR
// data type.
func ElemToDataType(elem int32) (ir.DataType, error) {
	switch elem {
	case source.ElemFloat:
		return ir.Float32, nil
	case source.ElemDouble:
		return ir.Float64, nil
	case source.ElemFloat16:
		return ir.Float16, nil
	case source.ElemInt8:
		return ir.Int8, nil
	case source.ElemInt32:
		return ir.Int32, nil
	case source.ElemInt64:
		return ir.Int64, nil
	case source.ElemUint8:
		return ir.Uint8, nil
	case source.ElemBool:
		return ir.Bool, nil
	default:
		return ir.Invalid, fmt.Errorf("unsupported element type code %d", elem)
	}
}

// DimsToShape converts declared dims to an IR shape. Negative or absent
// extents become unknown dimensions; nil dims mean a fully unknown shape.
func DimsToShape(dims []int64) ir.Shape {
	if dims == nil {
		return nil
	}
	shape := make(ir.Shape, len(dims))
	for i, d := range dims {
		if d < 0 {
			shape[i] = ir.DimUnknown
		} else {
			shape[i] = d
		}
	}
	return shape
}

// TensorFromSource converts a source constant tensor to its IR form.
func TensorFromSource(t *source.Tensor) (*ir.Tensor, error) {
	typ, err := ElemToDataType(t.ElemType)
	if err != nil {
		return nil, fmt.Errorf("tensor %q: %w", t.Name, err)
	}
	out := &ir.Tensor{Name: t.Name, Type: typ, Shape: DimsToShape(t.Dims)}
	if t.Raw != nil {
		out.Raw = make([]byte, len(t.Raw))
		copy(out.Raw, t.Raw)
	}
	return out, nil
}

func convertAttr(a *source.Attribute) (*ir.Attribute, error) {
	switch a.Type {
	case source.AttrFloat:
		return ir.FloatAttr(a.F), nil
	case source.AttrInt:
		return ir.IntAttr(a.I), nil
	case source.AttrString:
		return ir.StringAttr(a.S), nil
	case source.AttrTensor:
		t, err := TensorFromSource(a.T)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", a.Name, err)
		}
		return ir.TensorAttr(t), nil
	case source.AttrFloats:
		return ir.FloatsAttr(a.Floats), nil
	case source.AttrInts:
		return ir.IntsAttr(a.Ints), nil
	case source.AttrStrings:
		return ir.StringsAttr(a.Strings), nil
	case source.AttrTensors:
		ts := make([]*ir.Tensor, len(a.Tensors))
		for i, st := range a.Tensors {
			t, err := TensorFromSource(st)
			if err != nil {
				return nil, fmt.Errorf("attribute %q: %w", a.Name, err)
			}
			ts[i] = t
		}
		return ir.TensorsAttr(ts), nil
	case source.AttrGraph, source.AttrGraphs:
		return nil, fmt.Errorf("attribute %q: sub-graph attributes are not supported by the standard rule set", a.Name)
	default:
		return nil, fmt.Errorf("attribute %q: unknown attribute type code %d", a.Name, a.Type)
	}
}
