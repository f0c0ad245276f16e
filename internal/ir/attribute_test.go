package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributeKinds(t *testing.T) {
	tests := []struct {
		name string
		attr *Attribute
		kind AttrKind
	}{
		{"float", FloatAttr(1.5), AttrFloat},
		{"int", IntAttr(42), AttrInt},
		{"string", StringAttr("nchw"), AttrString},
		{"tensor", TensorAttr(&Tensor{Name: "w", Type: Float32}), AttrTensor},
		{"graph", GraphAttr(NewGraph("sub")), AttrGraph},
		{"floats", FloatsAttr([]float64{1, 2}), AttrFloats},
		{"ints", IntsAttr([]int64{3, 3}), AttrInts},
		{"strings", StringsAttr([]string{"a", "b"}), AttrStrings},
		{"tensors", TensorsAttr([]*Tensor{{Name: "t"}}), AttrTensors},
		{"graphs", GraphsAttr([]*Graph{NewGraph("g")}), AttrGraphs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.attr.Kind())
		})
	}
}

func TestAttributePayloadReplace(t *testing.T) {
	a := FloatAttr(1.0)
	a.SetFloat(2.5)
	assert.Equal(t, 2.5, a.Float())
	assert.Equal(t, AttrFloat, a.Kind())

	ints := IntsAttr([]int64{1})
	ints.SetInts([]int64{2, 3})
	assert.Equal(t, []int64{2, 3}, ints.Ints())
}

func TestAttributeKindMismatchPanics(t *testing.T) {
	a := IntAttr(7)
	require.Panics(t, func() { a.Float() })
	require.Panics(t, func() { a.SetStr("x") })
	require.Panics(t, func() { FloatsAttr(nil).Ints() })
}

func TestAttributeCloneIsDeep(t *testing.T) {
	tensor := &Tensor{Name: "w", Type: Float32, Shape: Shape{2}, Raw: []byte{1, 2, 3, 4}}
	a := TensorAttr(tensor)

	// The constructor already copies.
	tensor.Raw[0] = 9
	assert.Equal(t, byte(1), a.Tensor().Raw[0])

	clone := a.Clone()
	a.Tensor().Raw[0] = 7
	assert.Equal(t, byte(1), clone.Tensor().Raw[0])
}

func TestGraphAttributeEmbedsByValue(t *testing.T) {
	sub := NewGraph("sub")
	v, err := sub.AddValue("x", Float32, Shape{1})
	require.NoError(t, err)
	_, err = sub.AddNode(KindAbs, "", []*Value{v}, []*Value{v})
	require.NoError(t, err)

	a := GraphAttr(sub)

	// Mutating the original graph must not reach the embedded copy.
	w, err := sub.AddValue("y", Float32, Shape{1})
	require.NoError(t, err)
	_, err = sub.AddNode(KindRelu, "", []*Value{w}, []*Value{w})
	require.NoError(t, err)

	assert.Equal(t, 1, a.Graph().NumNodes())
	assert.Equal(t, 1, a.Graph().NumValues())
}
