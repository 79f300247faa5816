// Package curve synthesizes replacement slip-curve tables with a grip
// plateau, correcting the sharp single-peak shape of the engine's default
// brush model. The curve has four regions:
//
//	linear     [0, LinearEnd]          rising toward the peak slope
//	transition (LinearEnd, PeakAngle)  smoothstep blend up to 1.0
//	plateau    [PeakAngle, PlateauEnd] shallow quadratic dip near 1.0
//	falloff    (PlateauEnd, MaxAngle]  exponential decay toward RetentionFloor
//
// The falloff decay rate is not configured directly: it is solved so the
// curve passes through the configured retention checkpoints.
package curve

import "fmt"

// Checkpoint pins the falloff region to a research-derived retention value:
// the curve must pass within the checkpoint tolerance of ForceRatio at
// AngleDeg.
type Checkpoint struct {
	AngleDeg   float64 `yaml:"angle"`
	ForceRatio float64 `yaml:"ratio"`
}

// Config holds the synthesizer's region boundaries and shape constants.
// Defaults come from the tyre research notes; pass a Config explicitly
// rather than mutating shared state so multiple variants can be generated
// concurrently.
type Config struct {
	// LinearEnd is where pure elastic deformation stops, degrees.
	LinearEnd float64 `yaml:"linear_end"`

	// PeakAngle is where the plateau begins and the ratio reaches 1.0.
	PeakAngle float64 `yaml:"peak_angle"`

	// PlateauEnd closes the near-constant grip region.
	PlateauEnd float64 `yaml:"plateau_end"`

	// MaxAngle is the table's domain end, at least 15 degrees.
	MaxAngle float64 `yaml:"max_angle"`

	// PlateauDip is the fractional force drop across the plateau. The
	// plateau ends at 1 - PlateauDip, which must stay within
	// PlateauTolerance of 1.0.
	PlateauDip float64 `yaml:"plateau_dip"`

	// PlateauTolerance bounds |ratio - 1| over the plateau region.
	PlateauTolerance float64 `yaml:"plateau_tolerance"`

	// RetentionFloor is the asymptotic force ratio of the falloff region.
	RetentionFloor float64 `yaml:"retention_floor"`

	// Checkpoints the falloff decay rate is solved against.
	Checkpoints []Checkpoint `yaml:"checkpoints"`

	// CheckpointTolerance is the maximum acceptable residual at any
	// checkpoint after solving.
	CheckpointTolerance float64 `yaml:"checkpoint_tolerance"`

	// Resolution is the sampling step in degrees.
	Resolution float64 `yaml:"resolution"`

	// MidpointErrorBound caps the error of the engine's piecewise-linear
	// reconstruction, checked at the midpoint of every adjacent row pair.
	MidpointErrorBound float64 `yaml:"midpoint_error_bound"`
}

// DefaultConfig returns the research defaults: plateau from 5.5° to 8°,
// ~2% decline across it, and 83/71/61% retention at 10/12/15°.
func DefaultConfig() Config {
	return Config{
		LinearEnd:        2.0,
		PeakAngle:        5.5,
		PlateauEnd:       8.0,
		MaxAngle:         20.0,
		PlateauDip:       0.02,
		PlateauTolerance: 0.05,
		RetentionFloor:   0.55,
		Checkpoints: []Checkpoint{
			{AngleDeg: 10, ForceRatio: 0.83},
			{AngleDeg: 12, ForceRatio: 0.71},
			{AngleDeg: 15, ForceRatio: 0.61},
		},
		CheckpointTolerance: 0.02,
		Resolution:          0.1,
		MidpointErrorBound:  0.001,
	}
}

// ConfigurationError reports an invalid synthesizer configuration or an
// unsatisfiable checkpoint set. For solver failures BestFitRate and
// MaxResidual carry the closest parametrization found.
type ConfigurationError struct {
	Reason      string
	BestFitRate float64
	MaxResidual float64
}

func (e *ConfigurationError) Error() string {
	if e.BestFitRate != 0 {
		return fmt.Sprintf("%s (best fit rate %.4f, largest residual %.4f)", e.Reason, e.BestFitRate, e.MaxResidual)
	}
	return e.Reason
}

// Validate checks region ordering and shape-constant ranges.
func (c Config) Validate() error {
	switch {
	case c.LinearEnd <= 0:
		return &ConfigurationError{Reason: fmt.Sprintf("linear_end must be > 0, got %g", c.LinearEnd)}
	case c.PeakAngle <= c.LinearEnd:
		return &ConfigurationError{Reason: fmt.Sprintf("peak_angle %g must exceed linear_end %g", c.PeakAngle, c.LinearEnd)}
	case c.PlateauEnd <= c.PeakAngle:
		return &ConfigurationError{Reason: fmt.Sprintf("plateau_end %g must exceed peak_angle %g", c.PlateauEnd, c.PeakAngle)}
	case c.MaxAngle <= c.PlateauEnd:
		return &ConfigurationError{Reason: fmt.Sprintf("max_angle %g must exceed plateau_end %g", c.MaxAngle, c.PlateauEnd)}
	case c.MaxAngle < 15:
		return &ConfigurationError{Reason: fmt.Sprintf("max_angle must cover at least 15 degrees, got %g", c.MaxAngle)}
	case c.PlateauTolerance <= 0 || c.PlateauTolerance >= 1:
		return &ConfigurationError{Reason: fmt.Sprintf("plateau_tolerance must be in (0, 1), got %g", c.PlateauTolerance)}
	case c.PlateauDip < 0 || c.PlateauDip > c.PlateauTolerance:
		return &ConfigurationError{Reason: fmt.Sprintf("plateau_dip %g must be in [0, plateau_tolerance %g]", c.PlateauDip, c.PlateauTolerance)}
	case c.RetentionFloor < 0 || c.RetentionFloor >= 1-c.PlateauDip:
		return &ConfigurationError{Reason: fmt.Sprintf("retention_floor %g must be in [0, plateau end value %g)", c.RetentionFloor, 1-c.PlateauDip)}
	case len(c.Checkpoints) == 0:
		return &ConfigurationError{Reason: "at least one retention checkpoint is required"}
	case c.CheckpointTolerance <= 0:
		return &ConfigurationError{Reason: fmt.Sprintf("checkpoint_tolerance must be > 0, got %g", c.CheckpointTolerance)}
	case c.Resolution <= 0:
		return &ConfigurationError{Reason: fmt.Sprintf("resolution must be > 0, got %g", c.Resolution)}
	case c.MidpointErrorBound <= 0:
		return &ConfigurationError{Reason: fmt.Sprintf("midpoint_error_bound must be > 0, got %g", c.MidpointErrorBound)}
	}

	plateauEndValue := 1 - c.PlateauDip
	for i, cp := range c.Checkpoints {
		if cp.AngleDeg <= c.PlateauEnd || cp.AngleDeg > c.MaxAngle {
			return &ConfigurationError{Reason: fmt.Sprintf("checkpoint %d at %g° must lie in (plateau_end %g, max_angle %g]", i, cp.AngleDeg, c.PlateauEnd, c.MaxAngle)}
		}
		if cp.ForceRatio <= c.RetentionFloor || cp.ForceRatio >= plateauEndValue {
			return &ConfigurationError{Reason: fmt.Sprintf("checkpoint %d ratio %g must lie between retention_floor %g and plateau end value %g", i, cp.ForceRatio, c.RetentionFloor, plateauEndValue)}
		}
		if i > 0 && cp.AngleDeg <= c.Checkpoints[i-1].AngleDeg {
			return &ConfigurationError{Reason: fmt.Sprintf("checkpoint angles must be ascending: %g after %g", cp.AngleDeg, c.Checkpoints[i-1].AngleDeg)}
		}
	}
	return nil
}
