package onnx

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/arc-ml/arc/internal/source"
)

func TestLoadProducesSourceGraph(t *testing.T) {
	g, err := Load(buildAddModel())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if g.Name != "simple_add" {
		t.Errorf("Expected graph name 'simple_add', got %q", g.Name)
	}
	if len(g.Nodes) != 1 {
		t.Fatalf("Expected 1 node, got %d", len(g.Nodes))
	}
	node := &g.Nodes[0]
	if node.OpType != "Add" {
		t.Errorf("Expected OpType 'Add', got %q", node.OpType)
	}
	if node.Graph() != g {
		t.Error("Node not linked back to its graph")
	}

	// Names declared once resolve uniquely through the scope index.
	for _, name := range []string{"X", "Y", "Z"} {
		if !g.HasUniqueName(name) {
			t.Errorf("%q should resolve to a unique value", name)
		}
	}
	info, ok := g.Info("X")
	if !ok {
		t.Fatal("No value info for X")
	}
	if info.ElemType != source.ElemFloat {
		t.Errorf("Expected float elem type, got %d", info.ElemType)
	}
	if len(info.Dims) != 2 || info.Dims[0] != -1 || info.Dims[1] != 784 {
		t.Errorf("Expected dims [-1 784], got %v", info.Dims)
	}
}

func TestLoadInitializer(t *testing.T) {
	g, err := Load(buildMatMulModel())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	w, ok := g.Initializer("W")
	if !ok {
		t.Fatal("Initializer W not found")
	}
	if w.ElemType != source.ElemFloat {
		t.Errorf("Expected float elem type, got %d", w.ElemType)
	}
	if len(w.Raw) != 64 {
		t.Errorf("Expected 64 raw bytes, got %d", len(w.Raw))
	}
}

func TestConvertLegacyFloatData(t *testing.T) {
	tp := &TensorProto{
		Name:      "bias",
		DataType:  1,
		Dims:      []int64{3},
		FloatData: []float32{1, 2.5, -3},
	}
	out := convertTensor(tp)
	if len(out.Raw) != 12 {
		t.Fatalf("Expected 12 raw bytes, got %d", len(out.Raw))
	}
	got := math.Float32frombits(binary.LittleEndian.Uint32(out.Raw[4:]))
	if got != 2.5 {
		t.Errorf("Expected element 2.5, got %v", got)
	}
}

func TestConvertLegacyInt64Data(t *testing.T) {
	tp := &TensorProto{
		Name:      "shape",
		DataType:  7,
		Dims:      []int64{2},
		Int64Data: []int64{6, -1},
	}
	out := convertTensor(tp)
	if len(out.Raw) != 16 {
		t.Fatalf("Expected 16 raw bytes, got %d", len(out.Raw))
	}
	if v := int64(binary.LittleEndian.Uint64(out.Raw[8:])); v != -1 {
		t.Errorf("Expected element -1, got %d", v)
	}
}

func TestConvertAttributePromotesFloats(t *testing.T) {
	a := &AttributeProto{
		Name:   "scales",
		Type:   6,
		Floats: []float32{0.5, 0.25},
	}
	out := convertAttribute(a)
	if out.Type != source.AttrFloats {
		t.Errorf("Expected FLOATS type, got %d", out.Type)
	}
	if len(out.Floats) != 2 || out.Floats[0] != 0.5 {
		t.Errorf("Expected [0.5 0.25], got %v", out.Floats)
	}
}

func TestConvertAttributeSubGraph(t *testing.T) {
	a := &AttributeProto{
		Name: "body",
		Type: 5,
		G:    &GraphProto{Name: "inner"},
	}
	out := convertAttribute(a)
	if out.G == nil {
		t.Fatal("Sub-graph not converted")
	}
	if out.G.Name != "inner" {
		t.Errorf("Expected inner graph name 'inner', got %q", out.G.Name)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.onnx")
	if err := os.WriteFile(path, buildAddModel(), 0o600); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	g, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(g.Nodes) != 1 {
		t.Errorf("Expected 1 node, got %d", len(g.Nodes))
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.onnx")); err == nil {
		t.Error("Expected error for missing file")
	}
}
