package curve

import (
	"github.com/tyrelab/slipcurve/internal/tire"
)

// Divergence summarizes how far the synthesized curve sits from the
// engine's default brush-model baseline over the table domain.
type Divergence struct {
	MaxDelta      float64
	MaxDeltaAngle float64
	MeanDelta     float64
	Samples       int
}

// CompareBaseline samples both the synthesized curve and the default
// evaluator across the curve's domain and reports their divergence. This
// is the regression check run before shipping a replacement table.
func (c *Curve) CompareBaseline(p tire.ForceParameters) (Divergence, error) {
	if err := p.Validate(); err != nil {
		return Divergence{}, err
	}
	var d Divergence
	sum := 0.0
	for _, a := range c.sampleAngles() {
		baseline, err := tire.Evaluate(a, p)
		if err != nil {
			return Divergence{}, err
		}
		delta := c.At(a) - baseline
		if delta < 0 {
			delta = -delta
		}
		if delta > d.MaxDelta {
			d.MaxDelta, d.MaxDeltaAngle = delta, a
		}
		sum += delta
		d.Samples++
	}
	d.MeanDelta = sum / float64(d.Samples)
	return d, nil
}
