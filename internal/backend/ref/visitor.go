package ref

import (
	"fmt"

	"github.com/arc-ml/arc/internal/ir"
)

// calibGroup is the top-level group holding per-value calibration
// entries: calibration.<output value name>.{scale, zero_point}.
const calibGroup = "calibration"

// calibVisitor stamps quantization attributes onto the node kinds the
// backend quantizes. It runs under the "update-calibration" visitor
// pass; a quantized kind with no calibration entry is a legalization
// failure and aborts the pipeline.
type calibVisitor struct {
	ir.BaseVisitor
	backend *Backend
}

func newCalibVisitor(b *Backend) *calibVisitor {
	return &calibVisitor{backend: b}
}

func (v *calibVisitor) VisitConv(n *ir.Node) error    { return v.stamp(n, true) }
func (v *calibVisitor) VisitGemm(n *ir.Node) error    { return v.stamp(n, true) }
func (v *calibVisitor) VisitMatMul(n *ir.Node) error  { return v.stamp(n, true) }
func (v *calibVisitor) VisitMaxPool(n *ir.Node) error { return v.stamp(n, false) }
func (v *calibVisitor) VisitRelu(n *ir.Node) error    { return v.stamp(n, false) }

// stamp reads the calibration entry keyed by the node's first output and
// attaches quant_scale and quant_zero. Optional kinds pass through when
// the table has no entry; required kinds fail.
func (v *calibVisitor) stamp(n *ir.Node, required bool) error {
	name := n.Output(0).Name()
	entry := v.backend.calib.Group(calibGroup).Group(name)
	if !entry.HasEntry("scale") {
		if required {
			return fmt.Errorf("no calibration entry for %s output %q", n.Kind(), name)
		}
		return nil
	}
	n.SetAttr("quant_scale", ir.FloatAttr(entry.ReadFloat("scale", 1)))
	n.SetAttr("quant_zero", ir.IntAttr(int64(entry.ReadInt("zero_point", 0))))
	v.backend.logger.Debug("calibrated node", "node", n.String(), "value", name)
	return nil
}
