// Copyright 2026 Arc Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package pass is the public API for the pass framework: named
// transformation units, ordered pipelines, and the visitor adapter that
// opens passes to backend-specific mutation.
package pass

import (
	"github.com/arc-ml/arc/internal/pass"
)

// Type aliases for the public API.

// Pass is one named transformation unit.
type Pass = pass.Pass

// Result reports what a pass run did to the graph.
type Result = pass.Result

// Pipeline is a named, ordered sequence of passes.
type Pipeline = pass.Pipeline

// LogEntry records one pass execution.
type LogEntry = pass.LogEntry

// Error reports a failing pass with its name.
type Error = pass.Error

// ShapeInference propagates shapes through the compute graph.
type ShapeInference = pass.ShapeInference

// Pass results.
const (
	NoChange = pass.NoChange
	Changed  = pass.Changed
)

// Constructors.
var (
	New               = pass.New
	NewPipeline       = pass.NewPipeline
	NewVisitorPass    = pass.NewVisitorPass
	NewShapeInference = pass.NewShapeInference
	FixedPoint        = pass.FixedPoint
)

// ErrPassFailed is the sentinel every pass Error wraps.
var ErrPassFailed = pass.ErrPassFailed
