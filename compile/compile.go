// Copyright 2026 Arc Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package compile is the front door of the compiler: it parses an ONNX
// model into the source-graph view, lowers it into the IR, and runs the
// pass pipeline over the result.
//
// Example:
//
//	backend := compile.RefBackend(nil)
//	result, err := compile.File("model.onnx", compile.Options{Backend: backend})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, entry := range result.PassLog {
//	    fmt.Printf("%s: %s\n", entry.Pass, entry.Result)
//	}
package compile

import (
	"log/slog"

	"github.com/arc-ml/arc/internal/backend/ref"
	"github.com/arc-ml/arc/internal/ir"
	"github.com/arc-ml/arc/internal/lower"
	"github.com/arc-ml/arc/internal/onnx"
	"github.com/arc-ml/arc/internal/pass"
	"github.com/arc-ml/arc/internal/source"
	"github.com/arc-ml/arc/internal/stats"
)

// Backend contributes lowering rules and passes for one target.
// Backend rules are registered ahead of the standard set, so they win
// ties and may claim higher match levels.
type Backend interface {
	Name() string
	Rules() []lower.Rule
	Passes() []pass.Pass
}

// Options configures one compilation.
type Options struct {
	// Backend selects the target. Nil compiles backend-agnostic IR with
	// shape inference only.
	Backend Backend

	// Rules are extra lowering rules, registered after the backend's
	// rules and before the standard set.
	Rules []lower.Rule

	// Passes are appended after the backend pipeline.
	Passes []pass.Pass

	// Logger receives structured debug output. Nil discards.
	Logger *slog.Logger
}

// Result is a successful (or diagnostically inspectable) compilation.
type Result struct {
	Graph   *ir.Graph
	PassLog []pass.LogEntry
}

// shapeInferenceIters bounds the default fixed-point shape inference.
const shapeInferenceIters = 10

// RefBackend returns the reference backend. The calibration store may
// be nil.
func RefBackend(calib *stats.Statistics) Backend {
	return ref.New(calib, nil)
}

// File compiles an ONNX model file.
func File(path string, opts Options) (*Result, error) {
	src, err := onnx.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Graph(src, opts)
}

// Bytes compiles an ONNX model from memory.
func Bytes(data []byte, opts Options) (*Result, error) {
	src, err := onnx.Load(data)
	if err != nil {
		return nil, err
	}
	return Graph(src, opts)
}

// Graph compiles an already-built source graph.
//
// Lowering failure returns a nil result: no partial IR escapes. A pass
// failure returns the error together with the graph as it stood after
// the last successful pass, for diagnostics only.
func Graph(src *source.Graph, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	reg := lower.NewRegistry()
	if opts.Backend != nil {
		reg.Register(opts.Backend.Rules()...)
	}
	reg.Register(opts.Rules...)
	reg.Register(lower.StandardRules()...)

	cg, err := lower.NewLowering(reg, logger).Run(src)
	if err != nil {
		return nil, err
	}

	pipelineName := "default"
	if opts.Backend != nil {
		pipelineName = opts.Backend.Name()
	}
	pipeline := pass.NewPipeline(pipelineName, logger)
	if opts.Backend != nil {
		pipeline.Add(opts.Backend.Passes()...)
	} else {
		pipeline.Add(pass.FixedPoint(pass.NewShapeInference(), shapeInferenceIters))
	}
	pipeline.Add(opts.Passes...)

	log, err := pipeline.Run(src, cg)
	return &Result{Graph: cg, PassLog: log}, err
}
