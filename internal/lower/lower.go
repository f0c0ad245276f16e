// Package lower translates a source graph into the backend-agnostic IR.
//
// One Rule exists per source operator symbol. A rule answers IsMe with a
// match level so backend rule sets can claim a more specific match than
// the standard rule for the same symbol, and Activate builds the IR node
// once the dispatcher has selected it. The Lowering dispatcher drives the
// whole translation and fails the compiled unit on the first node no rule
// claims or no rule can build.
package lower

import (
	"github.com/arc-ml/arc/internal/ir"
	"github.com/arc-ml/arc/internal/source"
)

// MatchLevel is the ordered signal a rule returns from IsMe. Higher
// levels win; ties go to the first-registered rule.
type MatchLevel int

// Match levels, weakest first.
const (
	NotMe MatchLevel = iota
	StandardMatch
	CustomMatch
)

// String returns a human-readable name for the match level.
func (m MatchLevel) String() string {
	switch m {
	case NotMe:
		return "NotMe"
	case StandardMatch:
		return "StandardMatch"
	case CustomMatch:
		return "CustomMatch"
	default:
		return "Unknown"
	}
}

// Rule lowers one source operator kind into IR.
//
// IsMe must be a cheap, side-effect-free predicate and must answer NotMe
// for node kinds the rule does not own. Activate is only called for a
// node on which IsMe answered better than NotMe; it must either add a
// fully valid node to the graph or return an error leaving the graph
// untouched.
type Rule interface {
	IsMe(n *source.Node) MatchLevel
	Activate(g *ir.Graph, n *source.Node) (*ir.Node, error)
}
