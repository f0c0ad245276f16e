package ir

import "fmt"

// AttrKind discriminates the ten attribute payload shapes.
type AttrKind int

// Attribute kinds: scalar and slice variants over five payload types.
const (
	AttrFloat AttrKind = iota
	AttrInt
	AttrString
	AttrTensor
	AttrGraph
	AttrFloats
	AttrInts
	AttrStrings
	AttrTensors
	AttrGraphs
)

// String returns a human-readable name for the attribute kind.
func (k AttrKind) String() string {
	switch k {
	case AttrFloat:
		return "float"
	case AttrInt:
		return "int"
	case AttrString:
		return "string"
	case AttrTensor:
		return "tensor"
	case AttrGraph:
		return "graph"
	case AttrFloats:
		return "floats"
	case AttrInts:
		return "ints"
	case AttrStrings:
		return "strings"
	case AttrTensors:
		return "tensors"
	case AttrGraphs:
		return "graphs"
	default:
		return "unknown"
	}
}

// Attribute is a tagged union over the ten attribute kinds. The kind is
// fixed at construction; only the payload may be replaced. Reading a
// payload through the wrong accessor is a programming error and panics.
type Attribute struct {
	kind AttrKind

	f  float64
	i  int64
	s  string
	t  *Tensor
	g  *Graph
	fs []float64
	is []int64
	ss []string
	ts []*Tensor
	gs []*Graph
}

// FloatAttr returns a scalar float attribute.
func FloatAttr(v float64) *Attribute { return &Attribute{kind: AttrFloat, f: v} }

// IntAttr returns a scalar integer attribute.
func IntAttr(v int64) *Attribute { return &Attribute{kind: AttrInt, i: v} }

// StringAttr returns a scalar string attribute.
func StringAttr(v string) *Attribute { return &Attribute{kind: AttrString, s: v} }

// TensorAttr returns a scalar tensor attribute. The tensor is copied.
func TensorAttr(v *Tensor) *Attribute { return &Attribute{kind: AttrTensor, t: v.Clone()} }

// GraphAttr returns a scalar sub-graph attribute. The graph is copied.
func GraphAttr(v *Graph) *Attribute { return &Attribute{kind: AttrGraph, g: v.Clone()} }

// FloatsAttr returns a float sequence attribute.
func FloatsAttr(v []float64) *Attribute { return &Attribute{kind: AttrFloats, fs: cloneSlice(v)} }

// IntsAttr returns an integer sequence attribute.
func IntsAttr(v []int64) *Attribute { return &Attribute{kind: AttrInts, is: cloneSlice(v)} }

// StringsAttr returns a string sequence attribute.
func StringsAttr(v []string) *Attribute { return &Attribute{kind: AttrStrings, ss: cloneSlice(v)} }

// TensorsAttr returns a tensor sequence attribute. Tensors are copied.
func TensorsAttr(v []*Tensor) *Attribute {
	ts := make([]*Tensor, len(v))
	for i, t := range v {
		ts[i] = t.Clone()
	}
	return &Attribute{kind: AttrTensors, ts: ts}
}

// GraphsAttr returns a sub-graph sequence attribute. Graphs are copied.
func GraphsAttr(v []*Graph) *Attribute {
	gs := make([]*Graph, len(v))
	for i, g := range v {
		gs[i] = g.Clone()
	}
	return &Attribute{kind: AttrGraphs, gs: gs}
}

// Kind returns the attribute's fixed kind.
func (a *Attribute) Kind() AttrKind { return a.kind }

func (a *Attribute) mustBe(k AttrKind) {
	if a.kind != k {
		panic(fmt.Sprintf("ir: attribute is %s, read as %s", a.kind, k))
	}
}

// Float returns the scalar float payload. Panics on kind mismatch.
func (a *Attribute) Float() float64 { a.mustBe(AttrFloat); return a.f }

// Int returns the scalar integer payload. Panics on kind mismatch.
func (a *Attribute) Int() int64 { a.mustBe(AttrInt); return a.i }

// Str returns the scalar string payload. Panics on kind mismatch.
func (a *Attribute) Str() string { a.mustBe(AttrString); return a.s }

// Tensor returns the scalar tensor payload. Panics on kind mismatch.
func (a *Attribute) Tensor() *Tensor { a.mustBe(AttrTensor); return a.t }

// Graph returns the sub-graph payload. Panics on kind mismatch.
func (a *Attribute) Graph() *Graph { a.mustBe(AttrGraph); return a.g }

// Floats returns the float sequence payload. Panics on kind mismatch.
func (a *Attribute) Floats() []float64 { a.mustBe(AttrFloats); return a.fs }

// Ints returns the integer sequence payload. Panics on kind mismatch.
func (a *Attribute) Ints() []int64 { a.mustBe(AttrInts); return a.is }

// Strings returns the string sequence payload. Panics on kind mismatch.
func (a *Attribute) Strings() []string { a.mustBe(AttrStrings); return a.ss }

// Tensors returns the tensor sequence payload. Panics on kind mismatch.
func (a *Attribute) Tensors() []*Tensor { a.mustBe(AttrTensors); return a.ts }

// Graphs returns the sub-graph sequence payload. Panics on kind mismatch.
func (a *Attribute) Graphs() []*Graph { a.mustBe(AttrGraphs); return a.gs }

// SetFloat replaces the scalar float payload. Panics on kind mismatch.
func (a *Attribute) SetFloat(v float64) { a.mustBe(AttrFloat); a.f = v }

// SetInt replaces the scalar integer payload. Panics on kind mismatch.
func (a *Attribute) SetInt(v int64) { a.mustBe(AttrInt); a.i = v }

// SetStr replaces the scalar string payload. Panics on kind mismatch.
func (a *Attribute) SetStr(v string) { a.mustBe(AttrString); a.s = v }

// SetFloats replaces the float sequence payload. Panics on kind mismatch.
func (a *Attribute) SetFloats(v []float64) { a.mustBe(AttrFloats); a.fs = cloneSlice(v) }

// SetInts replaces the integer sequence payload. Panics on kind mismatch.
func (a *Attribute) SetInts(v []int64) { a.mustBe(AttrInts); a.is = cloneSlice(v) }

// Clone returns a deep copy of the attribute.
func (a *Attribute) Clone() *Attribute {
	clone := &Attribute{kind: a.kind, f: a.f, i: a.i, s: a.s}
	switch a.kind {
	case AttrTensor:
		clone.t = a.t.Clone()
	case AttrGraph:
		clone.g = a.g.Clone()
	case AttrFloats:
		clone.fs = cloneSlice(a.fs)
	case AttrInts:
		clone.is = cloneSlice(a.is)
	case AttrStrings:
		clone.ss = cloneSlice(a.ss)
	case AttrTensors:
		clone.ts = make([]*Tensor, len(a.ts))
		for i, t := range a.ts {
			clone.ts[i] = t.Clone()
		}
	case AttrGraphs:
		clone.gs = make([]*Graph, len(a.gs))
		for i, g := range a.gs {
			clone.gs[i] = g.Clone()
		}
	}
	return clone
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	clone := make([]T, len(s))
	copy(clone, s)
	return clone
}
