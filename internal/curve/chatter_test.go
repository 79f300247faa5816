package curve

import (
	"errors"
	"testing"
)

func TestApplyChatter(t *testing.T) {
	c := defaultCurve(t)
	base, err := c.Table()
	if err != nil {
		t.Fatalf("Table error: %v", err)
	}
	cc := DefaultChatterConfig()

	out, err := ApplyChatter(base, c.Config(), cc)
	if err != nil {
		t.Fatalf("ApplyChatter error: %v", err)
	}
	if out.Len() != base.Len() {
		t.Fatalf("chatter changed row count: %d != %d", out.Len(), base.Len())
	}

	basePts, outPts := base.Points(), out.Points()
	changed := 0
	for i := range basePts {
		bp, op := basePts[i], outPts[i]
		if op.SlipAngleDeg != bp.SlipAngleDeg {
			t.Fatalf("row %d: angle changed %g -> %g", i, bp.SlipAngleDeg, op.SlipAngleDeg)
		}
		if bp.SlipAngleDeg < cc.StartAngle {
			if op.ForceRatio != bp.ForceRatio {
				t.Errorf("row at %g° below start angle was modified", bp.SlipAngleDeg)
			}
			continue
		}
		if op.ForceRatio != bp.ForceRatio {
			changed++
		}
		if op.ForceRatio < bp.ForceRatio*0.1 || op.ForceRatio > 1.0 {
			t.Errorf("row at %g°: ratio %g outside [10%% of base, 1.0]", op.SlipAngleDeg, op.ForceRatio)
		}
	}
	if changed == 0 {
		t.Error("chatter modified no rows past the start angle")
	}

	// The overlay is a pure function of the inputs.
	again, err := ApplyChatter(base, c.Config(), cc)
	if err != nil {
		t.Fatalf("second ApplyChatter error: %v", err)
	}
	for i, p := range again.Points() {
		if p != outPts[i] {
			t.Fatalf("chatter not deterministic at row %d: %+v != %+v", i, p, outPts[i])
		}
	}
}

func TestChatterConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name string
		cc   ChatterConfig
	}{
		{"start inside plateau", ChatterConfig{StartAngle: 7, Intensity: 0.15, Frequency: 2}},
		{"start past max angle", ChatterConfig{StartAngle: 25, Intensity: 0.15, Frequency: 2}},
		{"zero intensity", ChatterConfig{StartAngle: 10, Intensity: 0, Frequency: 2}},
		{"intensity of one", ChatterConfig{StartAngle: 10, Intensity: 1, Frequency: 2}},
		{"zero frequency", ChatterConfig{StartAngle: 10, Intensity: 0.15, Frequency: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cc.Validate(cfg)
			var cerr *ConfigurationError
			if !errors.As(err, &cerr) {
				t.Errorf("Validate error = %v, want ConfigurationError", err)
			}
		})
	}

	if err := DefaultChatterConfig().Validate(cfg); err != nil {
		t.Errorf("default chatter config should validate, got %v", err)
	}
}
