package curve

import (
	"fmt"
	"math"
	"sort"

	"github.com/tyrelab/slipcurve/internal/logging"
	"github.com/tyrelab/slipcurve/internal/lut"
)

// Curve is a synthesized four-region slip curve with its falloff rate
// already solved. Immutable; methods are safe for concurrent use.
type Curve struct {
	cfg         Config
	falloffRate float64
	maxResidual float64
}

// New validates cfg, solves the falloff decay rate against the retention
// checkpoints, and returns the analytic curve. trace may be nil.
func New(cfg Config, trace *logging.TraceLogger) (*Curve, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rate, residual, err := solveFalloffRate(cfg, trace)
	if err != nil {
		return nil, err
	}
	return &Curve{cfg: cfg, falloffRate: rate, maxResidual: residual}, nil
}

// Config returns the configuration the curve was built from.
func (c *Curve) Config() Config { return c.cfg }

// FalloffRate returns the solved exponential decay rate.
func (c *Curve) FalloffRate() float64 { return c.falloffRate }

// MaxResidual returns the worst checkpoint miss of the solved falloff.
func (c *Curve) MaxResidual() float64 { return c.maxResidual }

// At evaluates the analytic curve at angleDeg (>= 0). Angles past
// MaxAngle continue the falloff shape.
func (c *Curve) At(angleDeg float64) float64 {
	cfg := c.cfg
	switch {
	case angleDeg <= cfg.LinearEnd:
		// Linear region: slope fixed by the peak angle so the line meets
		// the transition blend exactly.
		return angleDeg / cfg.PeakAngle
	case angleDeg < cfg.PeakAngle:
		// Smoothstep blend from the linear end value up to 1.0, removing
		// the derivative discontinuity of the default model's peak.
		start := cfg.LinearEnd / cfg.PeakAngle
		t := (angleDeg - cfg.LinearEnd) / (cfg.PeakAngle - cfg.LinearEnd)
		s := t * t * (3 - 2*t)
		return start + (1-start)*s
	case angleDeg <= cfg.PlateauEnd:
		// Shallow quadratic dip keeps the plateau analyzable while staying
		// within PlateauTolerance of 1.0.
		t := (angleDeg - cfg.PeakAngle) / (cfg.PlateauEnd - cfg.PeakAngle)
		return 1 - cfg.PlateauDip*t*t
	default:
		return c.cfg.falloffAt(angleDeg, c.falloffRate)
	}
}

// Table samples the curve into a lookup table: every Resolution step from
// zero plus the exact region boundaries, then verifies that the engine's
// linear-interpolation reconstruction stays within MidpointErrorBound at
// every inter-row midpoint.
func (c *Curve) Table() (*lut.Table, error) {
	angles := c.sampleAngles()
	points := make([]lut.Point, len(angles))
	for i, a := range angles {
		points[i] = lut.Point{SlipAngleDeg: a, ForceRatio: c.At(a)}
	}
	table, err := lut.NewTable(points)
	if err != nil {
		return nil, err
	}
	if err := c.verifyReconstruction(points); err != nil {
		return nil, err
	}
	return table, nil
}

// sampleAngles returns the sorted, deduplicated sample grid.
func (c *Curve) sampleAngles() []float64 {
	cfg := c.cfg
	n := int(math.Floor(cfg.MaxAngle/cfg.Resolution + 1e-9))
	angles := make([]float64, 0, n+5)
	for i := 0; i <= n; i++ {
		angles = append(angles, float64(i)*cfg.Resolution)
	}
	angles = append(angles, cfg.LinearEnd, cfg.PeakAngle, cfg.PlateauEnd, cfg.MaxAngle)
	sort.Float64s(angles)

	const eps = 1e-9
	out := angles[:1]
	for _, a := range angles[1:] {
		if a-out[len(out)-1] > eps {
			out = append(out, a)
		}
	}
	return out
}

// verifyReconstruction checks the analytic curve against the midpoint of
// every adjacent row pair.
func (c *Curve) verifyReconstruction(points []lut.Point) error {
	worst, worstAt := 0.0, 0.0
	for i := 1; i < len(points); i++ {
		mid := (points[i-1].SlipAngleDeg + points[i].SlipAngleDeg) / 2
		interp := (points[i-1].ForceRatio + points[i].ForceRatio) / 2
		if diff := math.Abs(c.At(mid) - interp); diff > worst {
			worst, worstAt = diff, mid
		}
	}
	if worst > c.cfg.MidpointErrorBound {
		return &ConfigurationError{
			Reason: fmt.Sprintf("sampled table misses the analytic curve by %.6f at %.3f°; lower the resolution or raise midpoint_error_bound", worst, worstAt),
		}
	}
	return nil
}
