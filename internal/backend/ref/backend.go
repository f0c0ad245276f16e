// Package ref is the reference backend: it layers a backend-specific
// lowering rule over the standard set and contributes the passes that
// specialize a lowered graph for it, including quantization-table
// stamping driven by a calibration store.
package ref

import (
	"log/slog"

	"github.com/arc-ml/arc/internal/lower"
	"github.com/arc-ml/arc/internal/pass"
	"github.com/arc-ml/arc/internal/stats"
)

// Layout is the tensor layout the reference backend computes in.
const Layout = "NCHW"

// shapeInferenceIters bounds the fixed-point re-run of shape inference.
const shapeInferenceIters = 10

// Backend bundles the reference backend's rule set and pass pipeline.
// The calibration store is optional; without one the quantization pass
// is omitted.
type Backend struct {
	calib  *stats.Statistics
	logger *slog.Logger
}

// New creates the reference backend. Both arguments may be nil.
func New(calib *stats.Statistics, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Backend{calib: calib, logger: logger}
}

// Name returns the backend name.
func (b *Backend) Name() string { return "ref" }

// Rules returns the backend rules. They are meant to be registered
// before or alongside the standard set; they claim their operators at
// CustomMatch and therefore win over the standard rules.
func (b *Backend) Rules() []lower.Rule {
	return []lower.Rule{newConvRule()}
}

// Passes returns the backend pipeline in execution order.
func (b *Backend) Passes() []pass.Pass {
	passes := []pass.Pass{
		pass.FixedPoint(pass.NewShapeInference(), shapeInferenceIters),
	}
	if b.calib != nil {
		passes = append(passes, pass.NewVisitorPass("update-calibration", newCalibVisitor(b)))
	}
	return passes
}
