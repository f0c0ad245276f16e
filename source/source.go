// Copyright 2026 Arc Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package source is the public API for the read-only interchange-format
// graph view that lowering consumes. Embedders either load it from an
// ONNX file through the compile package or assemble it with GraphBuilder.
package source

import (
	"github.com/arc-ml/arc/internal/source"
)

// Type aliases for the public API.

// Graph is a read-only source graph.
type Graph = source.Graph

// GraphBuilder assembles a source graph in memory.
type GraphBuilder = source.GraphBuilder

// Node is one operation in the source graph.
type Node = source.Node

// Attribute is a declared attribute on a source node.
type Attribute = source.Attribute

// Tensor is a constant tensor declared in the source model.
type Tensor = source.Tensor

// ValueInfo declares a value's element type and shape.
type ValueInfo = source.ValueInfo

// NewGraphBuilder creates a builder for a graph with the given name.
var NewGraphBuilder = source.NewGraphBuilder

// Element type codes.
const (
	ElemFloat   = source.ElemFloat
	ElemDouble  = source.ElemDouble
	ElemFloat16 = source.ElemFloat16
	ElemInt8    = source.ElemInt8
	ElemInt32   = source.ElemInt32
	ElemInt64   = source.ElemInt64
	ElemUint8   = source.ElemUint8
	ElemBool    = source.ElemBool
)

// Attribute type codes.
const (
	AttrFloat   = source.AttrFloat
	AttrInt     = source.AttrInt
	AttrString  = source.AttrString
	AttrTensor  = source.AttrTensor
	AttrGraph   = source.AttrGraph
	AttrFloats  = source.AttrFloats
	AttrInts    = source.AttrInts
	AttrStrings = source.AttrStrings
	AttrTensors = source.AttrTensors
	AttrGraphs  = source.AttrGraphs
)
