package ir

// Visitor receives one callback per concrete node kind. Backend passes
// implement it to apply per-operator mutation without the pass branching
// on kinds itself; nodes route through Accept.
//
// Embed BaseVisitor to implement only the kinds a backend cares about.
type Visitor interface {
	VisitAbs(*Node) error
	VisitAdd(*Node) error
	VisitSub(*Node) error
	VisitMul(*Node) error
	VisitDiv(*Node) error
	VisitMatMul(*Node) error
	VisitGemm(*Node) error
	VisitRelu(*Node) error
	VisitSigmoid(*Node) error
	VisitHardSigmoid(*Node) error
	VisitSoftmax(*Node) error
	VisitSoftplus(*Node) error
	VisitReshape(*Node) error
	VisitTranspose(*Node) error
	VisitConcat(*Node) error
	VisitConv(*Node) error
	VisitMaxPool(*Node) error
	VisitInitializer(*Node) error
}

// BaseVisitor implements Visitor with no-ops for every kind.
type BaseVisitor struct{}

func (BaseVisitor) VisitAbs(*Node) error         { return nil }
func (BaseVisitor) VisitAdd(*Node) error         { return nil }
func (BaseVisitor) VisitSub(*Node) error         { return nil }
func (BaseVisitor) VisitMul(*Node) error         { return nil }
func (BaseVisitor) VisitDiv(*Node) error         { return nil }
func (BaseVisitor) VisitMatMul(*Node) error      { return nil }
func (BaseVisitor) VisitGemm(*Node) error        { return nil }
func (BaseVisitor) VisitRelu(*Node) error        { return nil }
func (BaseVisitor) VisitSigmoid(*Node) error     { return nil }
func (BaseVisitor) VisitHardSigmoid(*Node) error { return nil }
func (BaseVisitor) VisitSoftmax(*Node) error     { return nil }
func (BaseVisitor) VisitSoftplus(*Node) error    { return nil }
func (BaseVisitor) VisitReshape(*Node) error     { return nil }
func (BaseVisitor) VisitTranspose(*Node) error   { return nil }
func (BaseVisitor) VisitConcat(*Node) error      { return nil }
func (BaseVisitor) VisitConv(*Node) error        { return nil }
func (BaseVisitor) VisitMaxPool(*Node) error     { return nil }
func (BaseVisitor) VisitInitializer(*Node) error { return nil }
