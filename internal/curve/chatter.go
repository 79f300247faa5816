package curve

import (
	"fmt"
	"math"

	"github.com/tyrelab/slipcurve/internal/lut"
)

// ChatterConfig shapes the experimental post-breakaway chatter overlay:
// deterministic multi-frequency oscillation that ramps in past StartAngle,
// simulating the juddering of a sliding tyre.
type ChatterConfig struct {
	// StartAngle is where chatter begins, degrees.
	StartAngle float64 `yaml:"start_angle"`

	// Intensity is the maximum oscillation amplitude as a fraction of the
	// base force, in (0, 1).
	Intensity float64 `yaml:"intensity"`

	// Frequency scales the oscillation frequencies.
	Frequency float64 `yaml:"frequency"`
}

// DefaultChatterConfig returns the "moderate chatter" variant from the
// research notes.
func DefaultChatterConfig() ChatterConfig {
	return ChatterConfig{StartAngle: 10.0, Intensity: 0.15, Frequency: 2.0}
}

// Validate checks the overlay constants against the curve configuration.
func (cc ChatterConfig) Validate(c Config) error {
	if cc.StartAngle <= c.PlateauEnd || cc.StartAngle >= c.MaxAngle {
		return &ConfigurationError{Reason: fmt.Sprintf("chatter start_angle %g must lie in (plateau_end %g, max_angle %g)", cc.StartAngle, c.PlateauEnd, c.MaxAngle)}
	}
	if cc.Intensity <= 0 || cc.Intensity >= 1 {
		return &ConfigurationError{Reason: fmt.Sprintf("chatter intensity must be in (0, 1), got %g", cc.Intensity)}
	}
	if cc.Frequency <= 0 {
		return &ConfigurationError{Reason: fmt.Sprintf("chatter frequency must be > 0, got %g", cc.Frequency)}
	}
	return nil
}

// ApplyChatter overlays chatter onto a sampled table and returns a new
// table. The overlay is a pure function of the angle, so regenerating with
// the same inputs reproduces the same rows. Results are clamped to
// [0.1 * base, 1.0]; rows at or below StartAngle pass through untouched.
// The output is intentionally non-monotonic past StartAngle.
func ApplyChatter(table *lut.Table, c Config, cc ChatterConfig) (*lut.Table, error) {
	if err := cc.Validate(c); err != nil {
		return nil, err
	}
	points := table.Points()
	for i, p := range points {
		if p.SlipAngleDeg < cc.StartAngle {
			continue
		}
		progress := math.Min((p.SlipAngleDeg-cc.StartAngle)/(c.MaxAngle-cc.StartAngle), 1)
		points[i].ForceRatio = chatterValue(p.SlipAngleDeg, p.ForceRatio, cc, progress)
	}
	return lut.NewTable(points)
}

// chatterValue combines three frequency components plus a slow drift term,
// matching the shape tuned in the research notes.
func chatterValue(angle, base float64, cc ChatterConfig, progress float64) float64 {
	high := math.Sin(angle*cc.Frequency*8) * 0.6
	med := math.Sin(angle*cc.Frequency*3) * 0.3 * math.Cos(angle*0.7)
	low := math.Sin(angle*cc.Frequency) * 0.1 * math.Sin(angle*1.3)
	noise := (high + med + low) * cc.Intensity * progress

	drift := (math.Sin(angle*13.7)*0.1 + math.Cos(angle*7.3)*0.05) * progress

	v := base * (1 + noise + drift)
	v = math.Max(v, base*0.1)
	return math.Min(v, 1.0)
}
