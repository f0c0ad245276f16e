// Package source models the read-only view of an interchange-format
// graph that lowering consumes: nodes with a symbolic operator kind,
// ordered named input/output references, and typed attributes.
//
// The view is deliberately flat and parser-agnostic. The ONNX parser in
// internal/onnx produces it from model files; tests and embedders build
// it directly with GraphBuilder.
package source

// Element type codes (same numbering as ONNX TensorProto.DataType).
const (
	ElemUndefined int32 = 0
	ElemFloat     int32 = 1  // float32
	ElemUint8     int32 = 2  // uint8
	ElemInt8      int32 = 3  // int8
	ElemInt32     int32 = 6  // int32
	ElemInt64     int32 = 7  // int64
	ElemBool      int32 = 9  // bool
	ElemFloat16   int32 = 10 // float16
	ElemDouble    int32 = 11 // float64
)

// Attribute type codes (same numbering as ONNX AttributeProto.Type).
const (
	AttrUndefined int32 = 0
	AttrFloat     int32 = 1
	AttrInt       int32 = 2
	AttrString    int32 = 3
	AttrTensor    int32 = 4
	AttrGraph     int32 = 5
	AttrFloats    int32 = 6
	AttrInts      int32 = 7
	AttrStrings   int32 = 8
	AttrTensors   int32 = 9
	AttrGraphs    int32 = 10
)

// Attribute is a declared attribute on a source node.
type Attribute struct {
	Name    string
	Type    int32
	F       float64
	I       int64
	S       string
	T       *Tensor
	G       *Graph
	Floats  []float64
	Ints    []int64
	Strings []string
	Tensors []*Tensor
	Graphs  []*Graph
}

// Tensor is a constant tensor declared in the source model
// (an initializer or a tensor attribute payload).
type Tensor struct {
	Name     string
	ElemType int32
	Dims     []int64
	Raw      []byte
}

// ValueInfo declares the element type and shape of a named value.
// A dimension of -1 means the extent is symbolic or absent.
type ValueInfo struct {
	Name     string
	ElemType int32
	Dims     []int64
}

// Node is one operation in the source graph.
type Node struct {
	Name       string      // Node name (optional)
	OpType     string      // Operator symbol (e.g. "Conv", "MatMul", "Relu")
	Inputs     []string    // Input value names
	Outputs    []string    // Output value names
	Attributes []Attribute // Declared attributes

	graph *Graph
}

// Graph returns the graph the node belongs to. Nil until the graph is
// indexed by GraphBuilder.Build.
func (n *Node) Graph() *Graph { return n.graph }

// Attr returns the named attribute, if declared.
func (n *Node) Attr(name string) (*Attribute, bool) {
	for i := range n.Attributes {
		if n.Attributes[i].Name == name {
			return &n.Attributes[i], true
		}
	}
	return nil, false
}

// Graph is a read-only source graph. Lowering iterates Nodes in order
// and resolves value names through the graph's scope.
type Graph struct {
	Name         string
	Nodes        []Node
	Inputs       []ValueInfo
	Outputs      []ValueInfo
	ValueInfos   []ValueInfo
	Initializers []Tensor

	producers map[string]int
	infoIndex map[string]*ValueInfo
}

// index builds the name scope. Called once after construction; the graph
// is read-only afterwards.
//
// Producers (graph inputs, initializers, node outputs) are counted
// separately from type annotations: Inputs, Outputs and ValueInfos only
// supply type/shape information and never make a name ambiguous.
func (g *Graph) index() {
	g.producers = make(map[string]int)
	g.infoIndex = make(map[string]*ValueInfo)

	addInfo := func(infos []ValueInfo) {
		for i := range infos {
			info := &infos[i]
			if _, ok := g.infoIndex[info.Name]; !ok {
				g.infoIndex[info.Name] = info
			}
		}
	}
	addInfo(g.Inputs)
	addInfo(g.ValueInfos)
	addInfo(g.Outputs)

	inputs := make(map[string]bool, len(g.Inputs))
	for i := range g.Inputs {
		inputs[g.Inputs[i].Name] = true
		g.producers[g.Inputs[i].Name]++
	}
	// An initializer that re-states a graph input supplies its default
	// value, not a second producer.
	for i := range g.Initializers {
		t := &g.Initializers[i]
		if !inputs[t.Name] {
			g.producers[t.Name]++
		}
		if _, declared := g.infoIndex[t.Name]; !declared {
			g.infoIndex[t.Name] = &ValueInfo{Name: t.Name, ElemType: t.ElemType, Dims: t.Dims}
		}
	}
	for i := range g.Nodes {
		g.Nodes[i].graph = g
		for _, out := range g.Nodes[i].Outputs {
			g.producers[out]++
			if _, ok := g.infoIndex[out]; !ok {
				g.infoIndex[out] = &ValueInfo{Name: out, ElemType: ElemUndefined}
			}
		}
	}
}

// HasUniqueName reports whether name is non-empty and has exactly one
// producer in the graph's scope.
func (g *Graph) HasUniqueName(name string) bool {
	return name != "" && g.producers[name] == 1
}

// Info resolves the declared type/shape of a value, if any.
func (g *Graph) Info(name string) (*ValueInfo, bool) {
	info, ok := g.infoIndex[name]
	return info, ok
}

// Initializer returns the constant tensor with the given name, if present.
func (g *Graph) Initializer(name string) (*Tensor, bool) {
	for i := range g.Initializers {
		if g.Initializers[i].Name == name {
			return &g.Initializers[i], true
		}
	}
	return nil, false
}
