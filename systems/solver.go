package systems

import "gonum.org/v1/gonum/spatial/r2"

// Solve folds the change log into the field grid and clears the log.
// Each change removes the field of the charge the tile used to hold and adds
// the field of the charge it holds now, so the cost is
// O(subcells × changes) rather than a full recompute.
func (g *ChargeGrid) Solve() {
	if len(g.changes) == 0 {
		return
	}

	type pending struct {
		old, cur int8
		center   r2.Vec
	}
	// A tile edited several times since the last solve is folded once: the
	// field still holds the charge from its first entry, and the current
	// charge replaces it.
	work := make([]pending, 0, len(g.changes))
	seen := make(map[int]struct{}, len(g.changes))
	for _, c := range g.changes {
		i := c.Y*g.W + c.X
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		cur := g.tiles[i]
		if cur == c.Old {
			continue
		}
		work = append(work, pending{
			old:    c.Old,
			cur:    cur,
			center: tileCenter(c.X, c.Y),
		})
	}

	if len(work) == 0 {
		g.changes = g.changes[:0]
		return
	}

	f := g.field
	for sy := 0; sy < f.H; sy++ {
		for sx := 0; sx < f.W; sx++ {
			s := &f.Samples[sy*f.W+sx]
			p := f.Center(sx, sy)

			for _, w := range work {
				delta := r2.Sub(p, w.center)
				if w.old != 0 {
					force, pot := Contribution(w.old, delta)
					s.Force = r2.Sub(s.Force, force)
					s.Potential -= pot
				}
				if w.cur != 0 {
					force, pot := Contribution(w.cur, delta)
					s.Force = r2.Add(s.Force, force)
					s.Potential += pot
				}
			}
		}
	}

	g.changes = g.changes[:0]
}

// Contribution returns the field and potential of a point charge q seen at
// displacement delta: q/|d|² along d, and q/|d|. A sample on the charge
// itself gets no self-field.
func Contribution(q int8, delta r2.Vec) (r2.Vec, float64) {
	d2 := r2.Norm2(delta)
	if d2 == 0 {
		return r2.Vec{}, 0
	}
	d := r2.Norm(delta)
	qf := float64(q)
	return r2.Scale(qf/(d2*d), delta), qf / d
}

// tileCenter returns the charge-grid position of the center of tile (x, y).
func tileCenter(x, y int) r2.Vec {
	return r2.Vec{X: float64(x) + 0.5, Y: float64(y) + 0.5}
}
