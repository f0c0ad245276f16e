package ir

// Tensor is a constant tensor literal: weights lowered from the source
// model's initializers, or the payload of a tensor attribute. It carries
// raw little-endian bytes; interpreting them is the code generator's job.
type Tensor struct {
	Name  string
	Type  DataType
	Shape Shape
	Raw   []byte
}

// Clone returns a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	if t == nil {
		return nil
	}
	clone := &Tensor{
		Name:  t.Name,
		Type:  t.Type,
		Shape: t.Shape.Clone(),
	}
	if t.Raw != nil {
		clone.Raw = make([]byte, len(t.Raw))
		copy(clone.Raw, t.Raw)
	}
	return clone
}
