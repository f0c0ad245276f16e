// Package onnx reads ONNX model files into the source-graph view that
// lowering consumes. The protobuf wire decoding is hand-written; only
// the messages the compiler needs are decoded, everything else is
// skipped by wire type.
package onnx

// ModelProto is the decoded top-level ONNX model.
type ModelProto struct {
	IRVersion       int64
	ProducerName    string
	ProducerVersion string
	ModelVersion    int64
	OpsetImport     []OperatorSetID
	Graph           *GraphProto
}

// GraphProto is the decoded computation graph.
type GraphProto struct {
	Name         string
	Nodes        []NodeProto
	Inputs       []ValueInfoProto
	Outputs      []ValueInfoProto
	ValueInfos   []ValueInfoProto
	Initializers []TensorProto
}

// NodeProto is one decoded operation.
type NodeProto struct {
	Name       string
	OpType     string
	Domain     string
	Inputs     []string
	Outputs    []string
	Attributes []AttributeProto
}

// TensorProto is a decoded constant tensor.
type TensorProto struct {
	Name      string
	DataType  int32
	Dims      []int64
	RawData   []byte
	FloatData []float32 // legacy encoding
	Int64Data []int64   // legacy encoding
}

// ValueInfoProto declares a value's type and shape.
type ValueInfoProto struct {
	Name     string
	ElemType int32
	Dims     []int64 // -1 for symbolic dimensions
}

// AttributeProto is one decoded node attribute.
type AttributeProto struct {
	Name    string
	Type    int32
	F       float32
	I       int64
	S       []byte
	T       *TensorProto
	G       *GraphProto
	Floats  []float32
	Ints    []int64
	Strings [][]byte
	Tensors []TensorProto
	Graphs  []GraphProto
}

// OperatorSetID identifies an opset version.
type OperatorSetID struct {
	Domain  string
	Version int64
}
