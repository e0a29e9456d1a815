package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// LineEnd is how a field line stopped.
type LineEnd uint8

const (
	LineHitCharge LineEnd = iota // positive line ran into a charged tile
	LineLeftGrid                 // stepped outside the grid
	LineStepCap                  // ran out of steps
	LineStalled                  // zero field, no direction to follow
)

func (e LineEnd) String() string {
	switch e {
	case LineHitCharge:
		return "charge"
	case LineLeftGrid:
		return "boundary"
	case LineStepCap:
		return "step_cap"
	case LineStalled:
		return "stalled"
	}
	return "unknown"
}

// angleBuckets quantizes field direction: a point is kept only when
// round(atan2 * angleBuckets) changes.
const angleBuckets = 10

// FieldLine is a polyline in charge-grid coordinates traced from a border.
type FieldLine struct {
	Seed   Border
	Points []r2.Vec
	End    LineEnd
}

// TraceLines traces one field line from every border. Lines seeded by a
// positive charge follow the field, lines seeded by a negative charge go
// against it. A negative line that reaches a charge is dropped.
func (g *ChargeGrid) TraceLines() []FieldLine {
	borders := g.Borders()
	lines := make([]FieldLine, 0, len(borders))
	for _, b := range borders {
		if line, ok := g.traceLine(b); ok {
			lines = append(lines, line)
		}
	}
	return lines
}

func (g *ChargeGrid) traceLine(b Border) (FieldLine, bool) {
	sign := 1.0
	if b.Charge < 0 {
		sign = -1.0
	}
	step := sign / float64(g.field.Ratio)

	x, y := b.X, b.Y
	pos := tileCenter(x, y)
	line := FieldLine{Seed: b, End: LineLeftGrid}

	var lastBucket float64
	haveBucket := false

	for n := 0; ; n++ {
		if !g.InBounds(x, y) {
			line.End = LineLeftGrid
			break
		}
		if n >= g.MaxLineSteps {
			line.End = LineStepCap
			break
		}
		if g.tiles[y*g.W+x] != 0 {
			if sign < 0 {
				return FieldLine{}, false
			}
			line.End = LineHitCharge
			break
		}

		force := g.field.Sample(pos).Force

		bucket := math.Round(math.Atan2(force.Y, force.X) * angleBuckets)
		if !haveBucket || bucket != lastBucket {
			line.Points = append(line.Points, pos)
			lastBucket = bucket
			haveBucket = true
		}

		norm := r2.Norm(force)
		if norm == 0 {
			line.End = LineStalled
			break
		}
		pos = r2.Add(pos, r2.Scale(step/norm, force))
		x = int(math.Floor(pos.X))
		y = int(math.Floor(pos.Y))
	}

	// Straight runs only record their first point; close them off.
	line.Points = append(line.Points, pos)
	return line, true
}
