package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func distFrom(c Cell, p r2.Vec) float64 {
	return r2.Norm(r2.Sub(p, tileCenter(c.X, c.Y)))
}

func TestTraceLinesEmptyGrid(t *testing.T) {
	g := NewChargeGrid(8, 8, 2)
	g.Solve()

	if lines := g.TraceLines(); len(lines) != 0 {
		t.Errorf("expected no lines without charges, got %d", len(lines))
	}
}

func TestTraceLinesIsolatedPositive(t *testing.T) {
	g := NewChargeGrid(8, 8, 2)
	charge := Cell{4, 4}
	g.UpdateTile(100, charge.X, charge.Y)
	g.Solve()

	lines := g.TraceLines()
	if len(lines) != 8 {
		t.Fatalf("expected one line per neighbor (8), got %d", len(lines))
	}

	for _, line := range lines {
		if len(line.Points) < 2 {
			t.Errorf("line from (%d,%d): expected at least 2 points, got %d", line.Seed.X, line.Seed.Y, len(line.Points))
			continue
		}
		if line.End != LineLeftGrid {
			t.Errorf("line from (%d,%d): expected to leave the grid, ended by %s", line.Seed.X, line.Seed.Y, line.End)
		}

		// Starts on the seed tile next to the charge
		first := line.Points[0]
		if first != tileCenter(line.Seed.X, line.Seed.Y) {
			t.Errorf("expected line to start at seed center, got %v", first)
		}
		if d := distFrom(charge, first); d > 1.5 {
			t.Errorf("expected first point adjacent to the charge, got distance %f", d)
		}

		// Moves steadily away
		for i := 1; i < len(line.Points); i++ {
			prev := distFrom(charge, line.Points[i-1])
			cur := distFrom(charge, line.Points[i])
			if cur < prev-1e-12 {
				t.Errorf("line from (%d,%d): point %d moved closer (%f -> %f)",
					line.Seed.X, line.Seed.Y, i, prev, cur)
			}
		}

		last := line.Points[len(line.Points)-1]
		if g.InBounds(int(math.Floor(last.X)), int(math.Floor(last.Y))) {
			t.Errorf("expected final point outside the grid, got %v", last)
		}
	}
}

func TestTraceLinesStraightRunKeepsEndpoints(t *testing.T) {
	g := NewChargeGrid(8, 8, 2)
	g.UpdateTile(100, 4, 4)
	g.Solve()

	for _, line := range g.TraceLines() {
		if line.Seed.X != 5 || line.Seed.Y != 4 {
			continue
		}
		// Along the axis the field direction never changes
		if len(line.Points) != 2 {
			t.Fatalf("expected 2 points on a straight run, got %d: %v", len(line.Points), line.Points)
		}
		end := line.Points[1]
		if end.Y != 4.5 || end.X < 8 {
			t.Errorf("expected end beyond the right edge on y=4.5, got %v", end)
		}
		return
	}
	t.Error("expected a line seeded at (5,4)")
}

func TestTraceLinesIsolatedNegativeNeverHitsCharge(t *testing.T) {
	g := NewChargeGrid(8, 8, 2)
	charge := Cell{3, 3}
	g.UpdateTile(-100, charge.X, charge.Y)
	g.Solve()

	lines := g.TraceLines()
	for _, line := range lines {
		if line.Seed.Charge >= 0 {
			t.Errorf("expected only negative seeds, got %d", line.Seed.Charge)
		}
		if line.End == LineHitCharge {
			t.Errorf("negative line from (%d,%d) reported a charge hit", line.Seed.X, line.Seed.Y)
		}
		// Against the inward field means away from the charge
		for i := 1; i < len(line.Points); i++ {
			if distFrom(charge, line.Points[i]) < distFrom(charge, line.Points[i-1])-1e-12 {
				t.Errorf("negative line from (%d,%d) moved toward its charge", line.Seed.X, line.Seed.Y)
				break
			}
		}
	}
}

func TestTraceLinesDipole(t *testing.T) {
	g := NewChargeGrid(10, 9, 2)
	g.UpdateTile(100, 2, 4)
	g.UpdateTile(-100, 7, 4)
	g.Solve()

	lines := g.TraceLines()

	var negBorders, negLines int
	for _, b := range g.Borders() {
		if b.Charge < 0 {
			negBorders++
		}
	}

	var axisPositive, axisNegative bool
	for _, line := range lines {
		if line.Seed.Charge < 0 {
			negLines++
			if line.End == LineHitCharge {
				t.Errorf("negative line from (%d,%d) ended on a charge", line.Seed.X, line.Seed.Y)
			}
		}
		if line.Seed == (Border{Charge: 100, X: 3, Y: 4}) {
			axisPositive = true
			if line.End != LineHitCharge {
				t.Errorf("expected axis line to end on the negative charge, ended by %s", line.End)
			}
			last := line.Points[len(line.Points)-1]
			if int(last.X) != 7 || int(last.Y) != 4 {
				t.Errorf("expected axis line to stop inside tile (7,4), got %v", last)
			}
		}
		if line.Seed == (Border{Charge: -100, X: 6, Y: 4}) {
			axisNegative = true
		}
	}

	if !axisPositive {
		t.Error("expected a positive line along the axis")
	}
	// Walking against the field from (6,4) leads into the positive charge
	if axisNegative {
		t.Error("expected the negative axis line to be discarded")
	}
	if negLines >= negBorders {
		t.Errorf("expected some negative lines discarded, got %d of %d", negLines, negBorders)
	}
}

func TestTraceLinesStepCap(t *testing.T) {
	g := NewChargeGrid(64, 64, 2)
	g.UpdateTile(100, 32, 32)
	g.Solve()
	g.MaxLineSteps = 5

	lines := g.TraceLines()
	if len(lines) == 0 {
		t.Fatal("expected lines")
	}
	for _, line := range lines {
		if line.End != LineStepCap {
			t.Errorf("expected step cap, ended by %s", line.End)
		}
		if len(line.Points) > g.MaxLineSteps+1 {
			t.Errorf("expected at most %d points, got %d", g.MaxLineSteps+1, len(line.Points))
		}
	}
}

func TestTraceLinesStallOnZeroField(t *testing.T) {
	g := NewChargeGrid(6, 6, 1)
	g.UpdateTile(50, 2, 2)
	// Not solved: the field is still zero everywhere

	lines := g.TraceLines()
	if len(lines) != 8 {
		t.Fatalf("expected 8 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if line.End != LineStalled {
			t.Errorf("expected stalled line, ended by %s", line.End)
		}
		seed := tileCenter(line.Seed.X, line.Seed.Y)
		for _, p := range line.Points {
			if p != seed {
				t.Errorf("expected stalled line to stay at %v, got %v", seed, p)
			}
		}
	}
}

func TestLineEndString(t *testing.T) {
	tests := map[LineEnd]string{
		LineHitCharge: "charge",
		LineLeftGrid:  "boundary",
		LineStepCap:   "step_cap",
		LineStalled:   "stalled",
		LineEnd(99):   "unknown",
	}
	for e, want := range tests {
		if got := e.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}

func BenchmarkTraceLines(b *testing.B) {
	g := NewChargeGrid(64, 64, 2)
	g.UpdateTile(100, 20, 32)
	g.UpdateTile(-100, 44, 32)
	g.UpdateTile(60, 32, 12)
	g.Solve()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.TraceLines()
	}
}
