package ir

import (
	"fmt"
	"strings"
)

// Graph is the aggregate root of one compiled unit. It owns every node
// and every value; nodes are kept in insertion order and values are
// resolved through a name table.
//
// A Graph is not safe for concurrent mutation. Units compiled in parallel
// must each own an independent Graph.
type Graph struct {
	name string

	nodes  []*Node
	values map[string]*Value

	inputs  []*Value
	outputs []*Value
}

// NewGraph returns an empty graph for one compiled unit.
func NewGraph(name string) *Graph {
	return &Graph{
		name:   name,
		values: make(map[string]*Value),
	}
}

// Name returns the graph name from the source model.
func (g *Graph) Name() string { return g.name }

// AddValue resolves or creates a value by name. If a value with the name
// already exists with the same element type, the existing value is
// returned (its shape is refined when it was previously unknown).
// A name claimed with a different element type is a DuplicateValueError.
func (g *Graph) AddValue(name string, typ DataType, shape Shape) (*Value, error) {
	if existing, ok := g.values[name]; ok {
		if existing.typ != typ {
			return nil, &DuplicateValueError{Name: name, Existing: existing.typ, Requested: typ}
		}
		if existing.shape == nil && shape != nil {
			existing.shape = shape.Clone()
		}
		return existing, nil
	}
	v := &Value{name: name, typ: typ, shape: shape.Clone()}
	g.values[name] = v
	return v, nil
}

// GetValue looks up a value by name. Returns nil if absent.
func (g *Graph) GetValue(name string) *Value {
	return g.values[name]
}

// HasValue reports whether a value with the name exists.
func (g *Graph) HasValue(name string) bool {
	_, ok := g.values[name]
	return ok
}

// AddNode validates arity and value ownership, then appends a new node to
// the graph. Either a fully valid node is inserted or the graph is left
// untouched.
func (g *Graph) AddNode(kind Kind, name string, inputs, outputs []*Value) (*Node, error) {
	spec, ok := arities[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}
	if !spec.checkInputs(len(inputs)) {
		return nil, &ArityError{Kind: kind, Port: "input", Got: len(inputs), Min: spec.minIn, Max: spec.maxIn}
	}
	if !spec.checkOutputs(len(outputs)) {
		return nil, &ArityError{Kind: kind, Port: "output", Got: len(outputs), Min: spec.minOut, Max: spec.maxOut}
	}
	for _, v := range append(append([]*Value{}, inputs...), outputs...) {
		if v == nil || g.values[v.name] != v {
			return nil, fmt.Errorf("%w: %s node", ErrForeignValue, kind)
		}
	}

	n := &Node{
		kind:    kind,
		name:    name,
		inputs:  cloneSlice(inputs),
		outputs: cloneSlice(outputs),
	}
	g.nodes = append(g.nodes, n)
	return n, nil
}

// Nodes returns the node sequence in insertion order. The returned slice
// is the graph's own; callers must not append to it.
func (g *Graph) Nodes() []*Node { return g.nodes }

// NumNodes returns the number of nodes in the graph.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// NumValues returns the number of values in the name table.
func (g *Graph) NumValues() int { return len(g.values) }

// MarkInput records a value as a graph-level input.
func (g *Graph) MarkInput(v *Value) { g.inputs = append(g.inputs, v) }

// MarkOutput records a value as a graph-level output.
func (g *Graph) MarkOutput(v *Value) { g.outputs = append(g.outputs, v) }

// Inputs returns the graph-level input values in declaration order.
func (g *Graph) Inputs() []*Value { return g.inputs }

// Outputs returns the graph-level output values in declaration order.
func (g *Graph) Outputs() []*Value { return g.outputs }

// Validate checks topological consistency: every node input must be
// produced by an earlier node or be a graph input. Passes that assume a
// well-ordered graph call this first.
func (g *Graph) Validate() error {
	produced := make(map[string]bool, len(g.values))
	for _, v := range g.inputs {
		produced[v.name] = true
	}
	for _, n := range g.nodes {
		for _, in := range n.inputs {
			if !produced[in.name] {
				return fmt.Errorf("graph %q: node %s reads %q before it is produced",
					g.name, n.Kind(), in.Name())
			}
		}
		for _, out := range n.outputs {
			produced[out.name] = true
		}
	}
	return nil
}

// Clone returns a deep copy of the graph. Used by sub-graph attributes,
// which embed a graph by value.
func (g *Graph) Clone() *Graph {
	if g == nil {
		return nil
	}
	clone := NewGraph(g.name)
	for name, v := range g.values {
		clone.values[name] = &Value{name: v.name, typ: v.typ, shape: v.shape.Clone()}
	}
	remap := func(vs []*Value) []*Value {
		out := make([]*Value, len(vs))
		for i, v := range vs {
			out[i] = clone.values[v.name]
		}
		return out
	}
	for _, n := range g.nodes {
		cn := &Node{
			kind:      n.kind,
			name:      n.name,
			inputs:    remap(n.inputs),
			outputs:   remap(n.outputs),
			attrOrder: cloneSlice(n.attrOrder),
		}
		if n.attrs != nil {
			cn.attrs = make(map[string]*Attribute, len(n.attrs))
			for name, a := range n.attrs {
				cn.attrs[name] = a.Clone()
			}
		}
		clone.nodes = append(clone.nodes, cn)
	}
	clone.inputs = remap(g.inputs)
	clone.outputs = remap(g.outputs)
	return clone
}

// Dump renders a deterministic textual form of the graph, one node per
// line in insertion order with attributes in attachment order.
func (g *Graph) Dump() string {
	var b strings.Builder
	fmt.Fprintf(&b, "graph %q\n", g.name)
	for _, v := range g.inputs {
		fmt.Fprintf(&b, "  input  %s\n", v)
	}
	for _, n := range g.nodes {
		fmt.Fprintf(&b, "  %s", n)
		for _, name := range n.attrOrder {
			fmt.Fprintf(&b, " {%s=%s}", name, n.attrs[name].kind)
		}
		b.WriteByte('\n')
	}
	for _, v := range g.outputs {
		fmt.Fprintf(&b, "  output %s\n", v)
	}
	return b.String()
}
