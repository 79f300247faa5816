// Package tire implements the lateral-force model of the consuming
// simulation engine: a brush-model slip curve with a sharp single peak,
// plus the engine's sub-linear load sensitivity scaling.
//
// All functions are pure and safe for concurrent use. Angles are in
// degrees, loads in newtons.
package tire

import (
	"fmt"
	"sort"
	"strings"
)

// Parameter keys as they appear in the engine's tyre configuration.
const (
	KeyFrictionLimitAngle = "FRICTION_LIMIT_ANGLE"
	KeyFalloffLevel       = "FALLOFF_LEVEL"
	KeyFalloffSpeed       = "FALLOFF_SPEED"
	KeyDyRef              = "DY_REF"
	KeyFZ0                = "FZ0"
	KeyLSExp              = "LS_EXP"
)

// ForceParameters holds the engine's tyre-model tuning constants.
// Values are read-only for the duration of an evaluation or generation
// run; construct via FromMap or a struct literal followed by Validate.
type ForceParameters struct {
	// FrictionLimitAngle is the slip angle of peak lateral force, degrees.
	FrictionLimitAngle float64

	// FalloffLevel is the fraction of peak force retained asymptotically
	// past the peak, in [0, 1].
	FalloffLevel float64

	// FalloffSpeed is the post-peak exponential decay rate, > 0.
	FalloffSpeed float64

	// DyRef is the lateral grip coefficient at the reference load.
	DyRef float64

	// FZ0 is the reference load in newtons. This is a tyre-calibration
	// constant, not a vehicle corner weight.
	FZ0 float64

	// LSExp is the load-sensitivity exponent, typically 0.75-0.85.
	LSExp float64
}

// DomainError reports a numeric input outside a formula's domain.
type DomainError struct {
	Field string
	Value float64
	Rule  string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s = %g violates %s", e.Field, e.Value, e.Rule)
}

// MissingParameterError lists every required key absent from a parameter
// mapping, not just the first.
type MissingParameterError struct {
	Keys []string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing required parameters: %s", strings.Join(e.Keys, ", "))
}

// requiredKeys in reporting order.
var requiredKeys = []string{
	KeyFrictionLimitAngle,
	KeyFalloffLevel,
	KeyFalloffSpeed,
	KeyDyRef,
	KeyFZ0,
	KeyLSExp,
}

// FromMap builds ForceParameters from a key/value mapping such as a parsed
// engine configuration section. Returns MissingParameterError naming all
// absent keys, or DomainError for the first invariant violation.
func FromMap(values map[string]float64) (ForceParameters, error) {
	var missing []string
	for _, k := range requiredKeys {
		if _, ok := values[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return ForceParameters{}, &MissingParameterError{Keys: missing}
	}

	p := ForceParameters{
		FrictionLimitAngle: values[KeyFrictionLimitAngle],
		FalloffLevel:       values[KeyFalloffLevel],
		FalloffSpeed:       values[KeyFalloffSpeed],
		DyRef:              values[KeyDyRef],
		FZ0:                values[KeyFZ0],
		LSExp:              values[KeyLSExp],
	}
	if err := p.Validate(); err != nil {
		return ForceParameters{}, err
	}
	return p, nil
}

// Validate checks the model invariants.
func (p ForceParameters) Validate() error {
	if p.FrictionLimitAngle <= 0 {
		return &DomainError{Field: KeyFrictionLimitAngle, Value: p.FrictionLimitAngle, Rule: "> 0"}
	}
	if p.FalloffLevel < 0 || p.FalloffLevel > 1 {
		return &DomainError{Field: KeyFalloffLevel, Value: p.FalloffLevel, Rule: "0 <= value <= 1"}
	}
	if p.FalloffSpeed <= 0 {
		return &DomainError{Field: KeyFalloffSpeed, Value: p.FalloffSpeed, Rule: "> 0"}
	}
	if p.FZ0 <= 0 {
		return &DomainError{Field: KeyFZ0, Value: p.FZ0, Rule: "> 0"}
	}
	return nil
}
