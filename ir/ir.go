// Copyright 2026 Arc Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ir is the public API for the backend-agnostic intermediate
// representation: the compute graph produced by lowering and mutated by
// passes.
package ir

import (
	"github.com/arc-ml/arc/internal/ir"
)

// Type aliases for the public API.

// Graph owns the nodes and values of one compiled unit.
type Graph = ir.Graph

// Node is one operation in a Graph.
type Node = ir.Node

// Value is a named data-flow edge.
type Value = ir.Value

// Tensor is a constant tensor literal.
type Tensor = ir.Tensor

// Attribute is a typed payload attached to a node.
type Attribute = ir.Attribute

// AttrKind discriminates attribute payload shapes.
type AttrKind = ir.AttrKind

// Kind identifies a node's operation.
type Kind = ir.Kind

// DataType is a value's element type.
type DataType = ir.DataType

// Shape is a value's dimension list.
type Shape = ir.Shape

// Visitor dispatches per node kind; see BaseVisitor.
type Visitor = ir.Visitor

// BaseVisitor is a no-op Visitor to embed in backend visitors.
type BaseVisitor = ir.BaseVisitor

// NewGraph creates an empty graph.
var NewGraph = ir.NewGraph

// Data type constants.
const (
	Float32 = ir.Float32
	Float64 = ir.Float64
	Float16 = ir.Float16
	Int8    = ir.Int8
	Int32   = ir.Int32
	Int64   = ir.Int64
	Uint8   = ir.Uint8
	Bool    = ir.Bool
)

// DimUnknown marks an unresolved dimension extent.
const DimUnknown = ir.DimUnknown

// Node kinds.
const (
	KindAbs         = ir.KindAbs
	KindAdd         = ir.KindAdd
	KindSub         = ir.KindSub
	KindMul         = ir.KindMul
	KindDiv         = ir.KindDiv
	KindMatMul      = ir.KindMatMul
	KindGemm        = ir.KindGemm
	KindRelu        = ir.KindRelu
	KindSigmoid     = ir.KindSigmoid
	KindHardSigmoid = ir.KindHardSigmoid
	KindSoftmax     = ir.KindSoftmax
	KindSoftplus    = ir.KindSoftplus
	KindReshape     = ir.KindReshape
	KindTranspose   = ir.KindTranspose
	KindConcat      = ir.KindConcat
	KindConv        = ir.KindConv
	KindMaxPool     = ir.KindMaxPool
	KindInitializer = ir.KindInitializer
)

// Attribute constructors.
var (
	FloatAttr   = ir.FloatAttr
	IntAttr     = ir.IntAttr
	StringAttr  = ir.StringAttr
	TensorAttr  = ir.TensorAttr
	GraphAttr   = ir.GraphAttr
	FloatsAttr  = ir.FloatsAttr
	IntsAttr    = ir.IntsAttr
	StringsAttr = ir.StringsAttr
	TensorsAttr = ir.TensorsAttr
	GraphsAttr  = ir.GraphsAttr
)

// Errors.
var (
	ErrDuplicateValue = ir.ErrDuplicateValue
	ErrArityMismatch  = ir.ErrArityMismatch
)
