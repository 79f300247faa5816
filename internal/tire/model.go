package tire

import "math"

// Evaluate returns the normalized lateral force ratio at slipAngleDeg.
//
// Up to the friction limit the force rises linearly and reaches exactly 1.0
// at the limit. Past it, the ratio decays exponentially toward FalloffLevel:
//
//	falloffLevel + (1 - falloffLevel) * exp(-falloffSpeed * excess / frictionLimitAngle)
//
// The curve is continuous at the breakpoint but its first derivative is not:
// the engine's model has a sharp single peak, not a plateau.
func Evaluate(slipAngleDeg float64, p ForceParameters) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if slipAngleDeg < 0 {
		return 0, &DomainError{Field: "slip_angle", Value: slipAngleDeg, Rule: ">= 0"}
	}
	if slipAngleDeg <= p.FrictionLimitAngle {
		return slipAngleDeg / p.FrictionLimitAngle, nil
	}
	excess := slipAngleDeg - p.FrictionLimitAngle
	decay := math.Exp(-p.FalloffSpeed * excess / p.FrictionLimitAngle)
	return p.FalloffLevel + (1-p.FalloffLevel)*decay, nil
}

// LateralForce returns the absolute lateral force coefficient at
// slipAngleDeg under loadN newtons of vertical load: the normalized ratio
// scaled by DyRef and the load-sensitivity factor.
func LateralForce(slipAngleDeg, loadN float64, p ForceParameters) (float64, error) {
	ratio, err := Evaluate(slipAngleDeg, p)
	if err != nil {
		return 0, err
	}
	scale, err := LoadScale(loadN, p)
	if err != nil {
		return 0, err
	}
	return ratio * p.DyRef * scale, nil
}

// LoadScale returns the grip scaling factor (loadN / FZ0) ^ LSExp.
// A negative base with a fractional exponent is undefined, so loadN and FZ0
// must both be positive.
func LoadScale(loadN float64, p ForceParameters) (float64, error) {
	if loadN <= 0 {
		return 0, &DomainError{Field: "load", Value: loadN, Rule: "> 0"}
	}
	if p.FZ0 <= 0 {
		return 0, &DomainError{Field: KeyFZ0, Value: p.FZ0, Rule: "> 0"}
	}
	return math.Pow(loadN/p.FZ0, p.LSExp), nil
}
