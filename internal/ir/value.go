package ir

// Value is a named data-flow edge between nodes. Values are owned by the
// Graph that created them and are shared between the producing node and
// every consumer; nodes hold non-owning references.
type Value struct {
	name  string
	typ   DataType
	shape Shape
}

// Name returns the value's graph-unique name.
func (v *Value) Name() string { return v.name }

// Type returns the element type.
func (v *Value) Type() DataType { return v.typ }

// Shape returns the value's shape, possibly with unknown dimensions.
func (v *Value) Shape() Shape { return v.shape }

// SetShape replaces the value's shape. Shape inference uses this to
// refine shapes that were unknown at lowering time.
func (v *Value) SetShape(s Shape) { v.shape = s.Clone() }

// String renders the value as "name:type[dims]".
func (v *Value) String() string {
	return v.name + ":" + v.typ.String() + v.shape.String()
}
