package tire

import (
	"errors"
	"math"
	"testing"
)

// gt86Params are the reference tyre constants from the research notes.
func gt86Params() ForceParameters {
	return ForceParameters{
		FrictionLimitAngle: 8.5,
		FalloffLevel:       0.6,
		FalloffSpeed:       8,
		DyRef:              1.26,
		FZ0:                2494,
		LSExp:              0.8119,
	}
}

func TestEvaluatePeakNormalization(t *testing.T) {
	tests := []struct {
		name string
		p    ForceParameters
	}{
		{"reference", gt86Params()},
		{"low peak angle", ForceParameters{FrictionLimitAngle: 4, FalloffLevel: 0.3, FalloffSpeed: 2, DyRef: 1, FZ0: 3000, LSExp: 0.8}},
		{"full retention", ForceParameters{FrictionLimitAngle: 6, FalloffLevel: 1, FalloffSpeed: 5, DyRef: 1.1, FZ0: 2000, LSExp: 0.78}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.p.FrictionLimitAngle, tt.p)
			if err != nil {
				t.Fatalf("Evaluate returned error: %v", err)
			}
			if got != 1.0 {
				t.Errorf("Evaluate(peak) = %g, want exactly 1.0", got)
			}
		})
	}
}

func TestEvaluateKnownValues(t *testing.T) {
	p := gt86Params()
	tests := []struct {
		angle float64
		want  float64
		tol   float64
	}{
		{0, 0, 0},
		{4.25, 0.5, 1e-12},
		{8.5, 1.0, 0},
		{10, 0.699, 0.005},
	}
	for _, tt := range tests {
		got, err := Evaluate(tt.angle, p)
		if err != nil {
			t.Fatalf("Evaluate(%g) error: %v", tt.angle, err)
		}
		if math.Abs(got-tt.want) > tt.tol {
			t.Errorf("Evaluate(%g) = %g, want %g ± %g", tt.angle, got, tt.want, tt.tol)
		}
	}
}

func TestEvaluateMonotonicity(t *testing.T) {
	p := gt86Params()
	prev := -1.0
	// Rising flank: strictly increasing up to the friction limit.
	for a := 0.0; a <= p.FrictionLimitAngle; a += 0.25 {
		got, err := Evaluate(a, p)
		if err != nil {
			t.Fatalf("Evaluate(%g) error: %v", a, err)
		}
		if got <= prev {
			t.Fatalf("rising flank not increasing at %g°: %g <= %g", a, got, prev)
		}
		prev = got
	}
	// Falling flank: strictly decreasing, never below FalloffLevel.
	for a := p.FrictionLimitAngle + 0.25; a <= 40; a += 0.25 {
		got, err := Evaluate(a, p)
		if err != nil {
			t.Fatalf("Evaluate(%g) error: %v", a, err)
		}
		if got >= prev {
			t.Fatalf("falling flank not decreasing at %g°: %g >= %g", a, got, prev)
		}
		if got < p.FalloffLevel {
			t.Fatalf("Evaluate(%g) = %g fell below falloff level %g", a, got, p.FalloffLevel)
		}
		prev = got
	}
	// Asymptote.
	far, err := Evaluate(500, p)
	if err != nil {
		t.Fatalf("Evaluate(500) error: %v", err)
	}
	if math.Abs(far-p.FalloffLevel) > 1e-9 {
		t.Errorf("Evaluate(500) = %g, want asymptote %g", far, p.FalloffLevel)
	}
}

func TestEvaluateRejectsNegativeAngle(t *testing.T) {
	_, err := Evaluate(-1, gt86Params())
	var derr *DomainError
	if !errors.As(err, &derr) {
		t.Fatalf("Evaluate(-1) error = %v, want DomainError", err)
	}
	if derr.Field != "slip_angle" {
		t.Errorf("DomainError.Field = %q, want slip_angle", derr.Field)
	}
}

func TestLoadScale(t *testing.T) {
	p := gt86Params()

	t.Run("reference load identity", func(t *testing.T) {
		got, err := LoadScale(p.FZ0, p)
		if err != nil {
			t.Fatalf("LoadScale error: %v", err)
		}
		if got != 1.0 {
			t.Errorf("LoadScale(FZ0) = %g, want 1.0", got)
		}
	})

	t.Run("sub-linear scaling at 3000N", func(t *testing.T) {
		got, err := LoadScale(3000, p)
		if err != nil {
			t.Fatalf("LoadScale error: %v", err)
		}
		if math.Abs(got-1.162) > 0.005 {
			t.Errorf("LoadScale(3000) = %g, want 1.162 ± 0.005", got)
		}
	})

	t.Run("non-positive load", func(t *testing.T) {
		for _, load := range []float64{0, -500} {
			_, err := LoadScale(load, p)
			var derr *DomainError
			if !errors.As(err, &derr) {
				t.Errorf("LoadScale(%g) error = %v, want DomainError", load, err)
			}
		}
	})
}

func TestLateralForce(t *testing.T) {
	p := gt86Params()
	got, err := LateralForce(p.FrictionLimitAngle, p.FZ0, p)
	if err != nil {
		t.Fatalf("LateralForce error: %v", err)
	}
	if math.Abs(got-p.DyRef) > 1e-12 {
		t.Errorf("LateralForce(peak, FZ0) = %g, want DyRef %g", got, p.DyRef)
	}
}

func TestFromMap(t *testing.T) {
	full := map[string]float64{
		KeyFrictionLimitAngle: 8.5,
		KeyFalloffLevel:       0.6,
		KeyFalloffSpeed:       8,
		KeyDyRef:              1.26,
		KeyFZ0:                2494,
		KeyLSExp:              0.8119,
	}

	t.Run("complete mapping", func(t *testing.T) {
		p, err := FromMap(full)
		if err != nil {
			t.Fatalf("FromMap error: %v", err)
		}
		if p != gt86Params() {
			t.Errorf("FromMap = %+v, want %+v", p, gt86Params())
		}
	})

	t.Run("missing falloff speed", func(t *testing.T) {
		m := map[string]float64{}
		for k, v := range full {
			m[k] = v
		}
		delete(m, KeyFalloffSpeed)
		_, err := FromMap(m)
		var merr *MissingParameterError
		if !errors.As(err, &merr) {
			t.Fatalf("FromMap error = %v, want MissingParameterError", err)
		}
		if len(merr.Keys) != 1 || merr.Keys[0] != KeyFalloffSpeed {
			t.Errorf("missing keys = %v, want [%s]", merr.Keys, KeyFalloffSpeed)
		}
	})

	t.Run("reports all missing keys", func(t *testing.T) {
		_, err := FromMap(map[string]float64{KeyDyRef: 1.26})
		var merr *MissingParameterError
		if !errors.As(err, &merr) {
			t.Fatalf("FromMap error = %v, want MissingParameterError", err)
		}
		if len(merr.Keys) != 5 {
			t.Errorf("missing keys = %v, want all 5 absent keys", merr.Keys)
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		m := map[string]float64{}
		for k, v := range full {
			m[k] = v
		}
		m[KeyFalloffLevel] = 1.5
		_, err := FromMap(m)
		var derr *DomainError
		if !errors.As(err, &derr) {
			t.Fatalf("FromMap error = %v, want DomainError", err)
		}
		if derr.Field != KeyFalloffLevel {
			t.Errorf("DomainError.Field = %q, want %s", derr.Field, KeyFalloffLevel)
		}
	})
}
