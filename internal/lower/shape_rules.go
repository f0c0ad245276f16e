package lower

import "github.com/arc-ml/arc/internal/ir"

// shapeRules returns the tensor shape-manipulation rules.
func shapeRules() []Rule {
	return []Rule{
		NewReshapeRule(),
		NewTransposeRule(),
		NewConcatRule(),
	}
}

// NewReshapeRule lowers "Reshape" nodes.
func NewReshapeRule() Rule { return stdRule{"Reshape", ir.KindReshape} }

// NewTransposeRule lowers "Transpose" nodes.
func NewTransposeRule() Rule { return stdRule{"Transpose", ir.KindTranspose} }

// NewConcatRule lowers "Concat" nodes.
func NewConcatRule() Rule { return stdRule{"Concat", ir.KindConcat} }
