package systems

import (
	"math"

	perlin "github.com/aquilax/go-perlin"
)

// PlacedCharge is a charge at a tile, as listed in a scene.
type PlacedCharge struct {
	X, Y   int
	Charge int8
}

// NoiseScene fills a grid with blobs of charge from 2D Perlin noise. Tiles
// with noise above Threshold get Charge, below -Threshold get its negation.
type NoiseScene struct {
	Seed      int64
	Scale     float64 // noise frequency per tile
	Threshold float64
	Charge    int8
	Alpha     float64 // perlin weight of each octave
	Beta      float64 // perlin harmonic scaling
	Octaves   int32
}

// PlaceCharges writes charges onto the grid, skipping anything out of bounds.
// Returns the number of tiles that changed.
func PlaceCharges(g *ChargeGrid, charges []PlacedCharge) int {
	changed := 0
	for _, c := range charges {
		if !g.InBounds(c.X, c.Y) {
			continue
		}
		if g.UpdateTile(c.Charge, c.X, c.Y) {
			changed++
		}
	}
	return changed
}

// Populate writes the noise scene onto the grid and returns the number of
// tiles that changed.
func (s NoiseScene) Populate(g *ChargeGrid) int {
	if s.Charge == 0 || s.Scale <= 0 {
		return 0
	}
	octaves := s.Octaves
	if octaves < 1 {
		octaves = 1
	}
	p := perlin.NewPerlin(s.Alpha, s.Beta, octaves, s.Seed)

	changed := 0
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			n := p.Noise2D(float64(x)*s.Scale, float64(y)*s.Scale)
			var q int8
			switch {
			case n > s.Threshold:
				q = s.Charge
			case n < -s.Threshold:
				q = NegateCharge(s.Charge)
			default:
				continue
			}
			if g.UpdateTile(q, x, y) {
				changed++
			}
		}
	}
	return changed
}

// NegateCharge flips the sign of a charge. -128 has no positive counterpart
// in an int8 and maps to 127.
func NegateCharge(q int8) int8 {
	if q == math.MinInt8 {
		return math.MaxInt8
	}
	return -q
}
