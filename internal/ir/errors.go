package ir

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrDuplicateValue = errors.New("duplicate value name")
	ErrArityMismatch  = errors.New("operator arity mismatch")
	ErrForeignValue   = errors.New("value not owned by graph")
	ErrUnknownKind    = errors.New("unknown operator kind")
)

// DuplicateValueError reports a value name claimed twice with
// incompatible element types.
type DuplicateValueError struct {
	Name      string
	Existing  DataType
	Requested DataType
}

// Error implements the error interface.
func (e *DuplicateValueError) Error() string {
	return fmt.Sprintf("duplicate value name: %q already declared as %s, requested as %s",
		e.Name, e.Existing, e.Requested)
}

// Unwrap allows errors.Is(err, ErrDuplicateValue).
func (e *DuplicateValueError) Unwrap() error { return ErrDuplicateValue }

// ArityError reports an input or output count a kind does not accept.
type ArityError struct {
	Kind    Kind
	Port    string // "input" or "output"
	Got     int
	Min     int
	Max     int // -1 for unbounded
}

// Error implements the error interface.
func (e *ArityError) Error() string {
	if e.Max == -1 {
		return fmt.Sprintf("%s: requires at least %d %ss, got %d", e.Kind, e.Min, e.Port, e.Got)
	}
	if e.Min == e.Max {
		return fmt.Sprintf("%s: requires exactly %d %ss, got %d", e.Kind, e.Min, e.Port, e.Got)
	}
	return fmt.Sprintf("%s: %s count %d outside [%d, %d]", e.Kind, e.Port, e.Got, e.Min, e.Max)
}

// Unwrap allows errors.Is(err, ErrArityMismatch).
func (e *ArityError) Unwrap() error { return ErrArityMismatch }
