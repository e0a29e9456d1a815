package systems

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Sample is the cached field at one subcell.
type Sample struct {
	Force     r2.Vec
	Potential float64
}

// FieldGrid caches the superposed field of all charges on a grid Ratio times
// finer than the charge grid. W and H are in subcells.
type FieldGrid struct {
	W, H  int
	Ratio int

	Samples []Sample
}

func newFieldGrid(tilesW, tilesH, ratio int) *FieldGrid {
	w := tilesW * ratio
	h := tilesH * ratio
	return &FieldGrid{
		W:       w,
		H:       h,
		Ratio:   ratio,
		Samples: make([]Sample, w*h),
	}
}

// GridSize returns the field grid dimensions in subcells.
func (f *FieldGrid) GridSize() (int, int) {
	return f.W, f.H
}

// At returns the sample of subcell (sx, sy).
func (f *FieldGrid) At(sx, sy int) Sample {
	if sx < 0 || sx >= f.W || sy < 0 || sy >= f.H {
		panic(fmt.Sprintf("systems: subcell (%d, %d) outside %dx%d field", sx, sy, f.W, f.H))
	}
	return f.Samples[sy*f.W+sx]
}

// Sample returns the cached sample under a position given in charge-grid
// coordinates. Panics when the position lies outside the grid.
func (f *FieldGrid) Sample(p r2.Vec) Sample {
	sx, sy := f.subcell(p)
	return f.At(sx, sy)
}

// subcell converts a charge-grid position to subcell indices.
func (f *FieldGrid) subcell(p r2.Vec) (int, int) {
	r := float64(f.Ratio)
	sx := int(math.Floor(p.X * r))
	sy := int(math.Floor(p.Y * r))
	// p.X*r can round up to W for p.X just below the grid edge
	if sx == f.W && p.X < float64(f.W/f.Ratio) {
		sx = f.W - 1
	}
	if sy == f.H && p.Y < float64(f.H/f.Ratio) {
		sy = f.H - 1
	}
	return sx, sy
}

// Center returns the charge-grid position of subcell (sx, sy).
func (f *FieldGrid) Center(sx, sy int) r2.Vec {
	r := float64(f.Ratio)
	return r2.Vec{X: (float64(sx) + 0.5) / r, Y: (float64(sy) + 0.5) / r}
}
