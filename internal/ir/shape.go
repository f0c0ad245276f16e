package ir

import (
	"fmt"
	"strings"
)

// DimUnknown marks a dimension whose extent is not known at lowering time.
const DimUnknown int64 = -1

// Shape represents the dimensions of a value. Individual dimensions may be
// DimUnknown until shape inference resolves them.
type Shape []int64

// Rank returns the number of dimensions.
func (s Shape) Rank() int { return len(s) }

// NumElements returns the total number of elements, or -1 if any
// dimension is unknown.
func (s Shape) NumElements() int64 {
	n := int64(1)
	for _, dim := range s {
		if dim == DimUnknown {
			return -1
		}
		n *= dim
	}
	return n
}

// Known reports whether every dimension has a concrete extent.
func (s Shape) Known() bool {
	for _, dim := range s {
		if dim == DimUnknown {
			return false
		}
	}
	return true
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// String renders the shape as e.g. "[1 3 224 224]" with "?" for unknown dims.
func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, dim := range s {
		if dim == DimUnknown {
			parts[i] = "?"
		} else {
			parts[i] = fmt.Sprintf("%d", dim)
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// BroadcastShapes implements NumPy-style broadcasting rules.
//
// Shapes are compared element-wise from right to left; dimensions are
// compatible if they are equal or one of them is 1, and missing dimensions
// are treated as 1. Unknown dimensions broadcast to unknown.
func BroadcastShapes(a, b Shape) (Shape, error) {
	maxLen := max(len(a), len(b))
	result := make(Shape, maxLen)

	for i := 0; i < maxLen; i++ {
		aDim := int64(1)
		if idx := len(a) - 1 - i; idx >= 0 {
			aDim = a[idx]
		}
		bDim := int64(1)
		if idx := len(b) - 1 - i; idx >= 0 {
			bDim = b[idx]
		}

		switch {
		case aDim == DimUnknown || bDim == DimUnknown:
			result[maxLen-1-i] = DimUnknown
		case aDim == bDim:
			result[maxLen-1-i] = aDim
		case aDim == 1:
			result[maxLen-1-i] = bDim
		case bDim == 1:
			result[maxLen-1-i] = aDim
		default:
			return nil, fmt.Errorf("shapes not compatible for broadcasting: %v vs %v (dimension %d: %d vs %d)",
				a, b, maxLen-1-i, aDim, bDim)
		}
	}

	return result, nil
}
