package source

// GraphBuilder assembles a source graph in memory. Parsers and tests use
// it so the scope index is built exactly once, by Build.
type GraphBuilder struct {
	g Graph
}

// NewGraphBuilder returns a builder for a graph with the given name.
func NewGraphBuilder(name string) *GraphBuilder {
	return &GraphBuilder{g: Graph{Name: name}}
}

// Input declares a graph input.
func (b *GraphBuilder) Input(name string, elemType int32, dims ...int64) *GraphBuilder {
	b.g.Inputs = append(b.g.Inputs, ValueInfo{Name: name, ElemType: elemType, Dims: dims})
	return b
}

// Output declares a graph output.
func (b *GraphBuilder) Output(name string, elemType int32, dims ...int64) *GraphBuilder {
	b.g.Outputs = append(b.g.Outputs, ValueInfo{Name: name, ElemType: elemType, Dims: dims})
	return b
}

// ValueInfo declares type/shape information for an intermediate value.
func (b *GraphBuilder) ValueInfo(name string, elemType int32, dims ...int64) *GraphBuilder {
	b.g.ValueInfos = append(b.g.ValueInfos, ValueInfo{Name: name, ElemType: elemType, Dims: dims})
	return b
}

// Initializer declares a constant tensor.
func (b *GraphBuilder) Initializer(t Tensor) *GraphBuilder {
	b.g.Initializers = append(b.g.Initializers, t)
	return b
}

// Node appends an operation node.
func (b *GraphBuilder) Node(opType string, inputs, outputs []string, attrs ...Attribute) *GraphBuilder {
	b.g.Nodes = append(b.g.Nodes, Node{
		OpType:     opType,
		Inputs:     inputs,
		Outputs:    outputs,
		Attributes: attrs,
	})
	return b
}

// NamedNode appends an operation node with an explicit node name.
func (b *GraphBuilder) NamedNode(name, opType string, inputs, outputs []string, attrs ...Attribute) *GraphBuilder {
	b.g.Nodes = append(b.g.Nodes, Node{
		Name:       name,
		OpType:     opType,
		Inputs:     inputs,
		Outputs:    outputs,
		Attributes: attrs,
	})
	return b
}

// Build indexes the name scope and returns the finished graph.
// The builder must not be reused afterwards.
func (b *GraphBuilder) Build() *Graph {
	g := b.g
	g.index()
	return &g
}
