// Package ir defines the backend-agnostic intermediate representation
// produced by lowering an interchange-format model.
//
// A Graph owns every Node and Value of one compiled unit. Nodes reference
// Values by pointer but never own them; a Value is shared between its
// producer and all of its consumers and is resolved through the graph's
// name table. Attributes are a closed tagged union over ten kinds
// (scalar and slice variants of float, int, string, tensor and graph).
//
// Key components:
//   - Graph: aggregate root with node list and value table
//   - Node: one operation with fixed per-kind input/output arity
//   - Value: a named, typed, shaped data-flow edge
//   - Attribute: typed payload attached to a node
//   - Visitor: per-kind double dispatch used by backend passes
package ir
