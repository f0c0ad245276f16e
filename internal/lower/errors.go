package lower

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrUnsupportedOperator = errors.New("unsupported operator")
	ErrMalformedOperator   = errors.New("malformed operator")
)

// UnsupportedOperatorError reports a source node no registered rule claims.
type UnsupportedOperatorError struct {
	OpType   string // Operator symbol of the offending node
	NodeName string // Source node name, may be empty
	Index    int    // Position in the source graph's node sequence
}

// Error implements the error interface.
func (e *UnsupportedOperatorError) Error() string {
	if e.NodeName != "" {
		return fmt.Sprintf("unsupported operator %s (node %q, #%d)", e.OpType, e.NodeName, e.Index)
	}
	return fmt.Sprintf("unsupported operator %s (node #%d)", e.OpType, e.Index)
}

// Unwrap allows errors.Is(err, ErrUnsupportedOperator).
func (e *UnsupportedOperatorError) Unwrap() error { return ErrUnsupportedOperator }

// MalformedOperatorError reports a source node a rule claimed but could
// not build: arity or name validation failed.
type MalformedOperatorError struct {
	OpType   string
	NodeName string
	Index    int
	Err      error
}

// Error implements the error interface.
func (e *MalformedOperatorError) Error() string {
	if e.NodeName != "" {
		return fmt.Sprintf("malformed operator %s (node %q, #%d): %v", e.OpType, e.NodeName, e.Index, e.Err)
	}
	return fmt.Sprintf("malformed operator %s (node #%d): %v", e.OpType, e.Index, e.Err)
}

// Unwrap exposes both the sentinel and the underlying validation error.
func (e *MalformedOperatorError) Unwrap() []error {
	return []error{ErrMalformedOperator, e.Err}
}
