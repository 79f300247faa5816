package curve

import (
	"math"

	"github.com/tyrelab/slipcurve/internal/logging"
)

// Rate search domain. Anything past rateMax decays essentially instantly
// at table scale, so a fit outside this range means the checkpoints are
// unsatisfiable anyway.
const (
	rateMin        = 0.05
	rateMax        = 30.0
	rateCoarseStep = 0.05
	rateFineStep   = 0.0005
)

// falloffAt evaluates the falloff shape for decay rate k: the evaluator's
// exponential form re-anchored so it equals the plateau-end value at
// PlateauEnd and asymptotes to RetentionFloor.
func (c Config) falloffAt(angleDeg, k float64) float64 {
	pe := 1 - c.PlateauDip
	excess := angleDeg - c.PlateauEnd
	return c.RetentionFloor + (pe-c.RetentionFloor)*math.Exp(-k*excess/c.PlateauEnd)
}

// maxResidual returns the worst absolute checkpoint miss for rate k.
func (c Config) maxResidual(k float64) float64 {
	worst := 0.0
	for _, cp := range c.Checkpoints {
		if r := math.Abs(c.falloffAt(cp.AngleDeg, k) - cp.ForceRatio); r > worst {
			worst = r
		}
	}
	return worst
}

// solveFalloffRate finds the decay rate minimizing the worst checkpoint
// residual: a coarse scan over the full range, then a fine scan around the
// coarse winner. Both passes are deterministic. Returns a
// ConfigurationError carrying the best fit when even it misses a
// checkpoint by more than CheckpointTolerance.
func solveFalloffRate(c Config, trace *logging.TraceLogger) (rate, residual float64, err error) {
	bestRate, bestRes := rateMin, math.Inf(1)
	for k := rateMin; k <= rateMax; k += rateCoarseStep {
		if r := c.maxResidual(k); r < bestRes {
			bestRate, bestRes = k, r
		}
	}
	trace.Log(map[string]any{
		"event": "falloff_solve_coarse", "rate": bestRate, "residual": bestRes,
	})

	lo := math.Max(rateMin, bestRate-rateCoarseStep)
	hi := math.Min(rateMax, bestRate+rateCoarseStep)
	for k := lo; k <= hi; k += rateFineStep {
		if r := c.maxResidual(k); r < bestRes {
			bestRate, bestRes = k, r
		}
	}
	trace.Log(map[string]any{
		"event": "falloff_solve_fine", "rate": bestRate, "residual": bestRes,
		"tolerance": c.CheckpointTolerance,
	})

	if bestRes > c.CheckpointTolerance {
		return 0, 0, &ConfigurationError{
			Reason:      "no falloff rate satisfies all retention checkpoints",
			BestFitRate: bestRate,
			MaxResidual: bestRes,
		}
	}
	return bestRate, bestRes, nil
}
