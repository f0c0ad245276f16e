package lower

import "github.com/arc-ml/arc/internal/ir"

// activationRules returns the activation-function rules.
func activationRules() []Rule {
	return []Rule{
		NewReluRule(),
		NewSigmoidRule(),
		NewHardSigmoidRule(),
		NewSoftmaxRule(),
		NewSoftplusRule(),
	}
}

// NewReluRule lowers "Relu" nodes.
func NewReluRule() Rule { return stdRule{"Relu", ir.KindRelu} }

// NewSigmoidRule lowers "Sigmoid" nodes.
func NewSigmoidRule() Rule { return stdRule{"Sigmoid", ir.KindSigmoid} }

// NewHardSigmoidRule lowers "HardSigmoid" nodes.
func NewHardSigmoidRule() Rule { return stdRule{"HardSigmoid", ir.KindHardSigmoid} }

// NewSoftmaxRule lowers "Softmax" nodes.
func NewSoftmaxRule() Rule { return stdRule{"Softmax", ir.KindSoftmax} }

// NewSoftplusRule lowers "Softplus" nodes.
func NewSoftplusRule() Rule { return stdRule{"Softplus", ir.KindSoftplus} }
