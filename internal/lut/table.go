// Package lut defines the slip-curve lookup table exchanged with the
// consuming simulation engine, its text codec, and atomic file output.
//
// The engine reconstructs the curve by linear interpolation between rows,
// so a table is only valid when angles are strictly ascending.
package lut

import "fmt"

// Point is one table row: a slip angle in degrees and the lateral force
// normalized to peak force.
type Point struct {
	SlipAngleDeg float64
	ForceRatio   float64
}

// Table is an ordered slip-curve lookup table. Construct via NewTable so
// the ordering invariant holds; treat as immutable afterwards.
type Table struct {
	points []Point
}

// FormatError reports malformed table text or an invariant violation,
// with the offending line number (1-based, 0 when not line-specific).
type FormatError struct {
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return e.Reason
}

// NewTable validates and wraps a point slice: at least two points, slip
// angles strictly ascending (which also forbids duplicates).
func NewTable(points []Point) (*Table, error) {
	if len(points) < 2 {
		return nil, &FormatError{Reason: fmt.Sprintf("table needs at least 2 points, got %d", len(points))}
	}
	for i := 1; i < len(points); i++ {
		if points[i].SlipAngleDeg <= points[i-1].SlipAngleDeg {
			return nil, &FormatError{
				Reason: fmt.Sprintf("slip angles must be strictly ascending: %g after %g (row %d)",
					points[i].SlipAngleDeg, points[i-1].SlipAngleDeg, i+1),
			}
		}
	}
	cp := make([]Point, len(points))
	copy(cp, points)
	return &Table{points: cp}, nil
}

// Points returns a copy of the rows in ascending angle order.
func (t *Table) Points() []Point {
	cp := make([]Point, len(t.points))
	copy(cp, t.points)
	return cp
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.points) }

// MaxAngle returns the last row's slip angle.
func (t *Table) MaxAngle() float64 { return t.points[len(t.points)-1].SlipAngleDeg }

// Lookup reconstructs the force ratio at angleDeg exactly as the consuming
// engine does: linear interpolation between the bracketing rows, clamped to
// the end rows outside the table's domain.
func (t *Table) Lookup(angleDeg float64) float64 {
	pts := t.points
	if angleDeg <= pts[0].SlipAngleDeg {
		return pts[0].ForceRatio
	}
	if angleDeg >= pts[len(pts)-1].SlipAngleDeg {
		return pts[len(pts)-1].ForceRatio
	}
	// Binary search for the first row past angleDeg.
	lo, hi := 0, len(pts)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if pts[mid].SlipAngleDeg <= angleDeg {
			lo = mid
		} else {
			hi = mid
		}
	}
	a, b := pts[lo], pts[hi]
	frac := (angleDeg - a.SlipAngleDeg) / (b.SlipAngleDeg - a.SlipAngleDeg)
	return a.ForceRatio + frac*(b.ForceRatio-a.ForceRatio)
}
