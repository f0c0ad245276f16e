package lower

import "github.com/arc-ml/arc/internal/ir"

// mathRules returns the element-wise and matrix math rules.
func mathRules() []Rule {
	return []Rule{
		NewAbsRule(),
		NewAddRule(),
		NewSubRule(),
		NewMulRule(),
		NewDivRule(),
		NewMatMulRule(),
		NewGemmRule(),
	}
}

// NewAbsRule lowers "Abs" nodes.
func NewAbsRule() Rule { return stdRule{"Abs", ir.KindAbs} }

// NewAddRule lowers "Add" nodes.
func NewAddRule() Rule { return stdRule{"Add", ir.KindAdd} }

// NewSubRule lowers "Sub" nodes.
func NewSubRule() Rule { return stdRule{"Sub", ir.KindSub} }

// NewMulRule lowers "Mul" nodes.
func NewMulRule() Rule { return stdRule{"Mul", ir.KindMul} }

// NewDivRule lowers "Div" nodes.
func NewDivRule() Rule { return stdRule{"Div", ir.KindDiv} }

// NewMatMulRule lowers "MatMul" nodes.
func NewMatMulRule() Rule { return stdRule{"MatMul", ir.KindMatMul} }

// NewGemmRule lowers "Gemm" nodes.
func NewGemmRule() Rule { return stdRule{"Gemm", ir.KindGemm} }
