package onnx

import (
	"encoding/binary"
	"math"

	"github.com/arc-ml/arc/internal/source"
)

// LoadFile parses an ONNX file and converts its graph to the
// source-graph view.
func LoadFile(path string) (*source.Graph, error) {
	model, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return ToSource(model.Graph), nil
}

// Load parses ONNX bytes and converts the graph to the source-graph view.
func Load(data []byte) (*source.Graph, error) {
	model, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return ToSource(model.Graph), nil
}

// ToSource converts a decoded graph to the view lowering consumes.
func ToSource(g *GraphProto) *source.Graph {
	b := source.NewGraphBuilder(g.Name)
	for _, vi := range g.Inputs {
		b.Input(vi.Name, vi.ElemType, vi.Dims...)
	}
	for _, vi := range g.Outputs {
		b.Output(vi.Name, vi.ElemType, vi.Dims...)
	}
	for _, vi := range g.ValueInfos {
		b.ValueInfo(vi.Name, vi.ElemType, vi.Dims...)
	}
	for i := range g.Initializers {
		b.Initializer(convertTensor(&g.Initializers[i]))
	}
	for i := range g.Nodes {
		n := &g.Nodes[i]
		attrs := make([]source.Attribute, len(n.Attributes))
		for j := range n.Attributes {
			attrs[j] = convertAttribute(&n.Attributes[j])
		}
		b.NamedNode(n.Name, n.OpType, n.Inputs, n.Outputs, attrs...)
	}
	return b.Build()
}

// convertTensor flattens legacy typed payloads into raw bytes so
// downstream code deals with one encoding.
func convertTensor(t *TensorProto) source.Tensor {
	out := source.Tensor{
		Name:     t.Name,
		ElemType: t.DataType,
		Dims:     t.Dims,
		Raw:      t.RawData,
	}
	if out.Raw == nil && len(t.FloatData) > 0 {
		out.Raw = make([]byte, 4*len(t.FloatData))
		for i, f := range t.FloatData {
			binary.LittleEndian.PutUint32(out.Raw[i*4:], math.Float32bits(f))
		}
	}
	if out.Raw == nil && len(t.Int64Data) > 0 {
		out.Raw = make([]byte, 8*len(t.Int64Data))
		for i, v := range t.Int64Data {
			binary.LittleEndian.PutUint64(out.Raw[i*8:], uint64(v))
		}
	}
	return out
}

func convertAttribute(a *AttributeProto) source.Attribute {
	out := source.Attribute{
		Name: a.Name,
		Type: a.Type,
		F:    float64(a.F),
		I:    a.I,
		S:    string(a.S),
	}
	if a.T != nil {
		t := convertTensor(a.T)
		out.T = &t
	}
	if a.G != nil {
		out.G = ToSource(a.G)
	}
	if len(a.Floats) > 0 {
		out.Floats = make([]float64, len(a.Floats))
		for i, f := range a.Floats {
			out.Floats[i] = float64(f)
		}
	}
	out.Ints = a.Ints
	if len(a.Strings) > 0 {
		out.Strings = make([]string, len(a.Strings))
		for i, s := range a.Strings {
			out.Strings[i] = string(s)
		}
	}
	if len(a.Tensors) > 0 {
		out.Tensors = make([]*source.Tensor, len(a.Tensors))
		for i := range a.Tensors {
			t := convertTensor(&a.Tensors[i])
			out.Tensors[i] = &t
		}
	}
	if len(a.Graphs) > 0 {
		out.Graphs = make([]*source.Graph, len(a.Graphs))
		for i := range a.Graphs {
			out.Graphs[i] = ToSource(&a.Graphs[i])
		}
	}
	return out
}
