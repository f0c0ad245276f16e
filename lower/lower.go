// Copyright 2026 Arc Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package lower is the public API for operator lowering: the rule
// contract, the rule registry, and the dispatcher that translates a
// source graph into IR.
package lower

import (
	"github.com/arc-ml/arc/internal/lower"
)

// Type aliases for the public API.

// Rule lowers one source operator kind; see the internal contract.
type Rule = lower.Rule

// MatchLevel is the ordered signal IsMe returns.
type MatchLevel = lower.MatchLevel

// Registry holds lowering rules in registration order.
type Registry = lower.Registry

// Lowering drives the translation of one source graph.
type Lowering = lower.Lowering

// UnsupportedOperatorError reports a node no rule claims.
type UnsupportedOperatorError = lower.UnsupportedOperatorError

// MalformedOperatorError reports a node a rule could not build.
type MalformedOperatorError = lower.MalformedOperatorError

// Match levels.
const (
	NotMe         = lower.NotMe
	StandardMatch = lower.StandardMatch
	CustomMatch   = lower.CustomMatch
)

// Constructors.
var (
	NewRegistry         = lower.NewRegistry
	NewStandardRegistry = lower.NewStandardRegistry
	NewLowering         = lower.NewLowering
	StandardRules       = lower.StandardRules
)

// Errors.
var (
	ErrUnsupportedOperator = lower.ErrUnsupportedOperator
	ErrMalformedOperator   = lower.ErrMalformedOperator
)
