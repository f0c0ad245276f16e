// Copyright 2026 Arc Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package onnx is the public API for ONNX model import. It parses model
// files with a hand-written protobuf reader and converts the graph into
// the source-graph view that lowering consumes.
//
// Example:
//
//	src, err := onnx.LoadFile("model.onnx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := compile.Graph(src, compile.Options{})
package onnx

import (
	"github.com/arc-ml/arc/internal/onnx"
)

// Type aliases for the public API.

// ModelProto is the decoded top-level ONNX model.
type ModelProto = onnx.ModelProto

// GraphProto is the decoded computation graph.
type GraphProto = onnx.GraphProto

// NodeProto is one decoded operation.
type NodeProto = onnx.NodeProto

// TensorProto is a decoded constant tensor.
type TensorProto = onnx.TensorProto

// ValueInfoProto declares a value's type and shape.
type ValueInfoProto = onnx.ValueInfoProto

// AttributeProto is one decoded node attribute.
type AttributeProto = onnx.AttributeProto

// Entry points.
var (
	// Parse decodes an ONNX model from bytes.
	Parse = onnx.Parse
	// ParseFile decodes an ONNX model from a file.
	ParseFile = onnx.ParseFile
	// Load parses ONNX bytes and converts the graph to the source view.
	Load = onnx.Load
	// LoadFile parses an ONNX file and converts the graph to the source view.
	LoadFile = onnx.LoadFile
	// ToSource converts a decoded graph to the source view.
	ToSource = onnx.ToSource
)
