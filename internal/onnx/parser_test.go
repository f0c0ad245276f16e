package onnx

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestParseSimpleAdd(t *testing.T) {
	model, err := Parse(buildAddModel())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if model.IRVersion != 7 {
		t.Errorf("Expected IR version 7, got %d", model.IRVersion)
	}
	if model.ProducerName != "arc-test" {
		t.Errorf("Expected producer 'arc-test', got %q", model.ProducerName)
	}
	if model.Graph == nil {
		t.Fatal("Graph is nil")
	}
	if model.Graph.Name != "simple_add" {
		t.Errorf("Expected graph name 'simple_add', got %q", model.Graph.Name)
	}

	if len(model.Graph.Nodes) != 1 {
		t.Fatalf("Expected 1 node, got %d", len(model.Graph.Nodes))
	}
	node := model.Graph.Nodes[0]
	if node.OpType != "Add" {
		t.Errorf("Expected OpType 'Add', got %q", node.OpType)
	}
	if len(node.Inputs) != 2 || node.Inputs[0] != "X" || node.Inputs[1] != "Y" {
		t.Errorf("Unexpected inputs: %v", node.Inputs)
	}
	if len(node.Outputs) != 1 || node.Outputs[0] != "Z" {
		t.Errorf("Unexpected outputs: %v", node.Outputs)
	}
}

func TestParseValueInfo(t *testing.T) {
	model, err := Parse(buildAddModel())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(model.Graph.Inputs) != 2 {
		t.Fatalf("Expected 2 inputs, got %d", len(model.Graph.Inputs))
	}
	in := model.Graph.Inputs[0]
	if in.Name != "X" {
		t.Errorf("Expected input name 'X', got %q", in.Name)
	}
	if in.ElemType != 1 {
		t.Errorf("Expected elem type 1 (float), got %d", in.ElemType)
	}
	// The first dim is symbolic ("batch") and must come back as -1.
	if len(in.Dims) != 2 || in.Dims[0] != -1 || in.Dims[1] != 784 {
		t.Errorf("Expected dims [-1 784], got %v", in.Dims)
	}

	if len(model.Graph.Outputs) != 1 || model.Graph.Outputs[0].Name != "Z" {
		t.Errorf("Unexpected outputs: %+v", model.Graph.Outputs)
	}
}

func TestParseOpset(t *testing.T) {
	model, err := Parse(buildAddModel())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(model.OpsetImport) != 1 {
		t.Fatalf("Expected 1 opset import, got %d", len(model.OpsetImport))
	}
	if model.OpsetImport[0].Version != 13 {
		t.Errorf("Expected opset version 13, got %d", model.OpsetImport[0].Version)
	}
}

func TestParseInitializer(t *testing.T) {
	model, err := Parse(buildMatMulModel())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(model.Graph.Initializers) != 1 {
		t.Fatalf("Expected 1 initializer, got %d", len(model.Graph.Initializers))
	}
	init := model.Graph.Initializers[0]
	if init.Name != "W" {
		t.Errorf("Expected initializer name 'W', got %q", init.Name)
	}
	if init.DataType != 1 {
		t.Errorf("Expected data type 1 (float), got %d", init.DataType)
	}
	if len(init.Dims) != 2 || init.Dims[0] != 4 || init.Dims[1] != 4 {
		t.Errorf("Expected dims [4 4], got %v", init.Dims)
	}
	if len(init.RawData) != 4*4*4 {
		t.Errorf("Expected 64 raw bytes, got %d", len(init.RawData))
	}
}

func TestParseAttributes(t *testing.T) {
	model, err := Parse(buildConvModel())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(model.Graph.Nodes) != 1 {
		t.Fatalf("Expected 1 node, got %d", len(model.Graph.Nodes))
	}
	node := model.Graph.Nodes[0]
	if node.Name != "conv0" {
		t.Errorf("Expected node name 'conv0', got %q", node.Name)
	}

	attrs := map[string]*AttributeProto{}
	for i := range node.Attributes {
		attrs[node.Attributes[i].Name] = &node.Attributes[i]
	}

	ks := attrs["kernel_shape"]
	if ks == nil {
		t.Fatal("kernel_shape attribute not found")
	}
	if ks.Type != 7 {
		t.Errorf("Expected INTS type code 7, got %d", ks.Type)
	}
	if len(ks.Ints) != 2 || ks.Ints[0] != 3 || ks.Ints[1] != 3 {
		t.Errorf("Expected kernel_shape [3 3], got %v", ks.Ints)
	}

	alpha := attrs["alpha"]
	if alpha == nil {
		t.Fatal("alpha attribute not found")
	}
	if alpha.F != 0.5 {
		t.Errorf("Expected alpha 0.5, got %v", alpha.F)
	}

	pad := attrs["auto_pad"]
	if pad == nil {
		t.Fatal("auto_pad attribute not found")
	}
	if string(pad.S) != "VALID" {
		t.Errorf("Expected auto_pad 'VALID', got %q", pad.S)
	}
}

func TestParseAttributeTypeInference(t *testing.T) {
	// Legacy writers omit the type field; the parser infers it from the
	// populated payload.
	b := &protoBuilder{}
	b.msg(7, func(g *protoBuilder) { // graph
		g.msg(1, func(n *protoBuilder) { // node
			n.str(4, "Relu")
			n.msg(5, func(a *protoBuilder) { // attribute
				a.str(1, "consumed_inputs")
				a.packedInts(8, 0)
			})
		})
	})

	model, err := Parse(b.data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	attr := model.Graph.Nodes[0].Attributes[0]
	if attr.Type != 7 {
		t.Errorf("Expected inferred INTS type 7, got %d", attr.Type)
	}
}

func TestParseSubGraphAttribute(t *testing.T) {
	b := &protoBuilder{}
	b.msg(7, func(g *protoBuilder) {
		g.str(2, "outer")
		g.msg(1, func(n *protoBuilder) {
			n.str(4, "If")
			n.msg(5, func(a *protoBuilder) {
				a.str(1, "then_branch")
				a.int(20, 5) // GRAPH
				a.msg(6, func(sub *protoBuilder) {
					sub.str(2, "inner")
				})
			})
		})
	})

	model, err := Parse(b.data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	attr := model.Graph.Nodes[0].Attributes[0]
	if attr.G == nil {
		t.Fatal("sub-graph attribute not decoded")
	}
	if attr.G.Name != "inner" {
		t.Errorf("Expected inner graph name 'inner', got %q", attr.G.Name)
	}
}

func TestParseLegacyFloatData(t *testing.T) {
	b := &protoBuilder{}
	b.msg(7, func(g *protoBuilder) {
		g.msg(5, func(tb *protoBuilder) { // initializer
			tb.int(1, 3) // dims, non-packed
			tb.int(2, 1) // data_type float
			tb.packedFloats(4, 1, 2, 3)
			tb.str(8, "bias")
		})
	})

	model, err := Parse(b.data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	init := model.Graph.Initializers[0]
	if len(init.FloatData) != 3 || init.FloatData[2] != 3 {
		t.Errorf("Expected float_data [1 2 3], got %v", init.FloatData)
	}
	if init.RawData != nil {
		t.Errorf("Expected no raw data, got %d bytes", len(init.RawData))
	}
}

func TestParseSkipsUnknownFields(t *testing.T) {
	b := &protoBuilder{}
	b.int(1, 7)                       // ir_version
	b.str(4, "unused domain field")   // model domain, skipped
	b.int(99, 42)                     // unknown varint field
	b.bytes(98, []byte{1, 2, 3})      // unknown bytes field
	b.msg(7, func(g *protoBuilder) {} /* empty graph */)

	model, err := Parse(b.data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if model.IRVersion != 7 {
		t.Errorf("Expected IR version 7, got %d", model.IRVersion)
	}
}

func TestParseMissingGraph(t *testing.T) {
	b := &protoBuilder{}
	b.int(1, 7)
	if _, err := Parse(b.data); err == nil {
		t.Error("Expected error for model without graph")
	}
}

func TestParseTruncated(t *testing.T) {
	data := buildAddModel()
	if _, err := Parse(data[:len(data)/2]); err == nil {
		t.Error("Expected error for truncated model")
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.onnx")
	if err := os.WriteFile(path, buildAddModel(), 0o600); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	model, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if len(model.Graph.Nodes) != 1 {
		t.Errorf("Expected 1 node, got %d", len(model.Graph.Nodes))
	}

	if _, err := ParseFile(filepath.Join(t.TempDir(), "absent.onnx")); err == nil {
		t.Error("Expected error for missing file")
	}
}

// buildAddModel encodes a minimal model: Z = X + Y.
func buildAddModel() []byte {
	b := &protoBuilder{}
	b.int(1, 7) // ir_version
	b.str(2, "arc-test")
	b.msg(8, func(op *protoBuilder) { // opset_import
		op.str(1, "")
		op.int(2, 13)
	})
	b.msg(7, func(g *protoBuilder) {
		g.str(2, "simple_add")
		g.msg(1, func(n *protoBuilder) {
			n.str(1, "X")
			n.str(1, "Y")
			n.str(2, "Z")
			n.str(4, "Add")
		})
		g.msg(11, valueInfo("X", 1, -1, 784))
		g.msg(11, valueInfo("Y", 1, -1, 784))
		g.msg(12, valueInfo("Z", 1, -1, 784))
	})
	return b.data
}

// buildMatMulModel encodes Y = MatMul(X, W) with W as an initializer.
func buildMatMulModel() []byte {
	b := &protoBuilder{}
	b.int(1, 7)
	b.msg(7, func(g *protoBuilder) {
		g.str(2, "matmul")
		g.msg(1, func(n *protoBuilder) {
			n.str(1, "X")
			n.str(1, "W")
			n.str(2, "Y")
			n.str(4, "MatMul")
		})
		g.msg(5, func(tb *protoBuilder) {
			tb.int(1, 4)
			tb.int(1, 4)
			tb.int(2, 1)
			tb.str(8, "W")
			tb.bytes(9, make([]byte, 64))
		})
		g.msg(11, valueInfo("X", 1, -1, 4))
		g.msg(12, valueInfo("Y", 1, -1, 4))
	})
	return b.data
}

// buildConvModel encodes a Conv node carrying typed attributes.
func buildConvModel() []byte {
	b := &protoBuilder{}
	b.int(1, 7)
	b.msg(7, func(g *protoBuilder) {
		g.str(2, "conv")
		g.msg(1, func(n *protoBuilder) {
			n.str(1, "X")
			n.str(1, "W")
			n.str(2, "Y")
			n.str(3, "conv0")
			n.str(4, "Conv")
			n.msg(5, func(a *protoBuilder) {
				a.str(1, "kernel_shape")
				a.int(20, 7) // INTS
				a.packedInts(8, 3, 3)
			})
			n.msg(5, func(a *protoBuilder) {
				a.str(1, "alpha")
				a.int(20, 1) // FLOAT
				a.float(2, 0.5)
			})
			n.msg(5, func(a *protoBuilder) {
				a.str(1, "auto_pad")
				a.int(20, 3) // STRING
				a.str(4, "VALID")
			})
		})
	})
	return b.data
}

func valueInfo(name string, elemType int64, dims ...int64) func(*protoBuilder) {
	return func(vi *protoBuilder) {
		vi.str(1, name)
		vi.msg(2, func(tp *protoBuilder) {
			tp.msg(1, func(tt *protoBuilder) {
				tt.int(1, elemType)
				tt.msg(2, func(sh *protoBuilder) {
					for _, d := range dims {
						sh.msg(1, func(dim *protoBuilder) {
							if d >= 0 {
								dim.int(1, d)
							} else {
								dim.str(2, "batch")
							}
						})
					}
				})
			})
		})
	}
}

// protoBuilder assembles protobuf wire bytes for test fixtures.
type protoBuilder struct {
	data []byte
}

func (b *protoBuilder) tag(fieldNum, wireType int) {
	b.varint(int64(fieldNum<<3 | wireType))
}

func (b *protoBuilder) varint(v int64) {
	u := uint64(v)
	for u >= 0x80 {
		b.data = append(b.data, byte(u)|0x80)
		u >>= 7
	}
	b.data = append(b.data, byte(u))
}

// int writes a varint field.
func (b *protoBuilder) int(fieldNum int, v int64) {
	b.tag(fieldNum, wireVarint)
	b.varint(v)
}

// float writes a fixed32 float field.
func (b *protoBuilder) float(fieldNum int, v float32) {
	b.tag(fieldNum, wire32Bit)
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
	b.data = append(b.data, buf[:]...)
}

// bytes writes a length-delimited field.
func (b *protoBuilder) bytes(fieldNum int, data []byte) {
	b.tag(fieldNum, wireBytes)
	b.varint(int64(len(data)))
	b.data = append(b.data, data...)
}

func (b *protoBuilder) str(fieldNum int, s string) {
	b.bytes(fieldNum, []byte(s))
}

// msg writes an embedded message built by fn.
func (b *protoBuilder) msg(fieldNum int, fn func(*protoBuilder)) {
	sub := &protoBuilder{}
	fn(sub)
	b.bytes(fieldNum, sub.data)
}

// packedInts writes a packed repeated int64 field.
func (b *protoBuilder) packedInts(fieldNum int, vals ...int64) {
	sub := &protoBuilder{}
	for _, v := range vals {
		sub.varint(v)
	}
	b.bytes(fieldNum, sub.data)
}

// packedFloats writes a packed repeated float field.
func (b *protoBuilder) packedFloats(fieldNum int, vals ...float32) {
	sub := &protoBuilder{}
	for _, v := range vals {
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
		sub.data = append(sub.data, buf[:]...)
	}
	b.bytes(fieldNum, sub.data)
}
