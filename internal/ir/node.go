package ir

import (
	"fmt"
	"strings"
)

// Kind identifies the operation a node performs.
type Kind int

// Node kinds covered by the standard lowering set.
const (
	KindInvalid Kind = iota
	KindAbs
	KindAdd
	KindSub
	KindMul
	KindDiv
	KindMatMul
	KindGemm
	KindRelu
	KindSigmoid
	KindHardSigmoid
	KindSoftmax
	KindSoftplus
	KindReshape
	KindTranspose
	KindConcat
	KindConv
	KindMaxPool
	KindInitializer
)

// String returns the operator symbol for the kind.
func (k Kind) String() string {
	switch k {
	case KindAbs:
		return "Abs"
	case KindAdd:
		return "Add"
	case KindSub:
		return "Sub"
	case KindMul:
		return "Mul"
	case KindDiv:
		return "Div"
	case KindMatMul:
		return "MatMul"
	case KindGemm:
		return "Gemm"
	case KindRelu:
		return "Relu"
	case KindSigmoid:
		return "Sigmoid"
	case KindHardSigmoid:
		return "HardSigmoid"
	case KindSoftmax:
		return "Softmax"
	case KindSoftplus:
		return "Softplus"
	case KindReshape:
		return "Reshape"
	case KindTranspose:
		return "Transpose"
	case KindConcat:
		return "Concat"
	case KindConv:
		return "Conv"
	case KindMaxPool:
		return "MaxPool"
	case KindInitializer:
		return "Initializer"
	default:
		return "Invalid"
	}
}

// aritySpec fixes the input/output counts a kind accepts.
// maxIn == -1 means unbounded (variadic).
type aritySpec struct {
	minIn, maxIn   int
	minOut, maxOut int
}

var arities = map[Kind]aritySpec{
	KindAbs:         {1, 1, 1, 1},
	KindAdd:         {2, 2, 1, 1},
	KindSub:         {2, 2, 1, 1},
	KindMul:         {2, 2, 1, 1},
	KindDiv:         {2, 2, 1, 1},
	KindMatMul:      {2, 2, 1, 1},
	KindGemm:        {2, 3, 1, 1},
	KindRelu:        {1, 1, 1, 1},
	KindSigmoid:     {1, 1, 1, 1},
	KindHardSigmoid: {1, 1, 1, 1},
	KindSoftmax:     {1, 1, 1, 1},
	KindSoftplus:    {1, 1, 1, 1},
	KindReshape:     {2, 2, 1, 1},
	KindTranspose:   {1, 1, 1, 1},
	KindConcat:      {1, -1, 1, 1},
	KindConv:        {2, 3, 1, 1},
	KindMaxPool:     {1, 1, 1, 2},
	KindInitializer: {0, 0, 1, 1},
}

// Arity returns the fixed input/output counts for the kind.
// ok is false for unknown kinds.
func (k Kind) Arity() (spec struct{ MinIn, MaxIn, MinOut, MaxOut int }, ok bool) {
	a, ok := arities[k]
	if !ok {
		return spec, false
	}
	spec.MinIn, spec.MaxIn, spec.MinOut, spec.MaxOut = a.minIn, a.maxIn, a.minOut, a.maxOut
	return spec, true
}

func (a aritySpec) checkInputs(n int) bool {
	return n >= a.minIn && (a.maxIn == -1 || n <= a.maxIn)
}

func (a aritySpec) checkOutputs(n int) bool {
	return n >= a.minOut && (a.maxOut == -1 || n <= a.maxOut)
}

// Node represents one operation in a Graph. Nodes are created through
// Graph.AddNode only; a node that fails arity validation is never inserted.
type Node struct {
	kind    Kind
	name    string
	inputs  []*Value
	outputs []*Value

	attrs     map[string]*Attribute
	attrOrder []string
}

// Kind returns the node's operation kind.
func (n *Node) Kind() Kind { return n.kind }

// Name returns the optional node name from the source model.
func (n *Node) Name() string { return n.name }

// Inputs returns the ordered input values.
func (n *Node) Inputs() []*Value { return n.inputs }

// Outputs returns the ordered output values.
func (n *Node) Outputs() []*Value { return n.outputs }

// Input returns the i-th input value.
func (n *Node) Input(i int) *Value { return n.inputs[i] }

// Output returns the i-th output value.
func (n *Node) Output(i int) *Value { return n.outputs[i] }

// Attr returns the named attribute, if present.
func (n *Node) Attr(name string) (*Attribute, bool) {
	a, ok := n.attrs[name]
	return a, ok
}

// SetAttr attaches an attribute to the node, replacing any attribute that
// already uses the name. The node takes ownership of the attribute.
func (n *Node) SetAttr(name string, a *Attribute) {
	if n.attrs == nil {
		n.attrs = make(map[string]*Attribute)
	}
	if _, exists := n.attrs[name]; !exists {
		n.attrOrder = append(n.attrOrder, name)
	}
	n.attrs[name] = a
}

// AttrNames returns attribute names in the order they were attached.
func (n *Node) AttrNames() []string { return n.attrOrder }

// NumAttrs returns the number of attached attributes.
func (n *Node) NumAttrs() int { return len(n.attrs) }

// IntAttr returns the named scalar integer attribute or a default.
func (n *Node) IntAttr(name string, def int64) int64 {
	if a, ok := n.attrs[name]; ok {
		return a.Int()
	}
	return def
}

// FloatAttr returns the named scalar float attribute or a default.
func (n *Node) FloatAttr(name string, def float64) float64 {
	if a, ok := n.attrs[name]; ok {
		return a.Float()
	}
	return def
}

// IntsAttr returns the named integer sequence attribute or nil.
func (n *Node) IntsAttr(name string) []int64 {
	if a, ok := n.attrs[name]; ok {
		return a.Ints()
	}
	return nil
}

// StrAttr returns the named scalar string attribute or a default.
func (n *Node) StrAttr(name, def string) string {
	if a, ok := n.attrs[name]; ok {
		return a.Str()
	}
	return def
}

// Accept dispatches to the visitor method matching the node's kind.
// This is the extension point backend passes use for per-operator mutation.
func (n *Node) Accept(v Visitor) error {
	switch n.kind {
	case KindAbs:
		return v.VisitAbs(n)
	case KindAdd:
		return v.VisitAdd(n)
	case KindSub:
		return v.VisitSub(n)
	case KindMul:
		return v.VisitMul(n)
	case KindDiv:
		return v.VisitDiv(n)
	case KindMatMul:
		return v.VisitMatMul(n)
	case KindGemm:
		return v.VisitGemm(n)
	case KindRelu:
		return v.VisitRelu(n)
	case KindSigmoid:
		return v.VisitSigmoid(n)
	case KindHardSigmoid:
		return v.VisitHardSigmoid(n)
	case KindSoftmax:
		return v.VisitSoftmax(n)
	case KindSoftplus:
		return v.VisitSoftplus(n)
	case KindReshape:
		return v.VisitReshape(n)
	case KindTranspose:
		return v.VisitTranspose(n)
	case KindConcat:
		return v.VisitConcat(n)
	case KindConv:
		return v.VisitConv(n)
	case KindMaxPool:
		return v.VisitMaxPool(n)
	case KindInitializer:
		return v.VisitInitializer(n)
	default:
		return fmt.Errorf("ir: accept on invalid node kind %d", n.kind)
	}
}

// String renders the node as "Kind(in...) -> (out...)".
func (n *Node) String() string {
	var b strings.Builder
	b.WriteString(n.kind.String())
	b.WriteByte('(')
	for i, in := range n.inputs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(in.Name())
	}
	b.WriteString(") -> (")
	for i, out := range n.outputs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(out.Name())
	}
	b.WriteByte(')')
	return b.String()
}
