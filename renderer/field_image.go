// Package renderer turns simulation state into pixels without touching the
// window: one RGBA pixel per tile, ready to upload as a texture.
package renderer

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/estatic/systems"
)

// FieldImage is a tile-resolution pixel buffer. Row 0 is the top of the
// grid, so rows run opposite to grid y.
type FieldImage struct {
	W, H int
	Pix  []color.RGBA
}

// NewFieldImage allocates a w×h buffer.
func NewFieldImage(w, h int) *FieldImage {
	return &FieldImage{W: w, H: h, Pix: make([]color.RGBA, w*h)}
}

// Update recolors every tile from the grid, reallocating when the grid size
// changed. The field is read as cached; solve first.
func (img *FieldImage) Update(g *systems.ChargeGrid, sets DrawSets) {
	w, h := g.GridSize()
	if w != img.W || h != img.H {
		img.W, img.H = w, h
		img.Pix = make([]color.RGBA, w*h)
	}

	field := g.Field()
	tiles := g.Tiles()
	for row := 0; row < h; row++ {
		y := h - 1 - row
		for x := 0; x < w; x++ {
			s := field.At(centerSubcell(x, field.Ratio), centerSubcell(y, field.Ratio))
			img.Pix[row*w+x] = TileColor(tiles[y*w+x], s, sets)
		}
	}
}

// centerSubcell returns the subcell index centered on tile coordinate t.
func centerSubcell(t, ratio int) int {
	return t*ratio + ratio/2
}

// TileColor composes the layers enabled in sets for one tile: field
// magnitude at the bottom, potential over it, charge on top.
func TileColor(charge int8, s systems.Sample, sets DrawSets) color.RGBA {
	tile := chargeColor(charge)

	switch {
	case sets.Has(DrawField):
		px := fieldColor(s)
		if sets.Has(DrawPotential) {
			px = Blend(px, potentialColor(s.Potential))
		}
		return Blend(px, tile)
	case sets.Has(DrawPotential):
		return Blend(potentialColor(s.Potential), tile)
	default:
		return tile
	}
}

// chargeColor is red for positive, blue for negative, clear when neutral.
func chargeColor(charge int8) color.RGBA {
	q := int(charge)
	if q < 0 {
		q = -q
	}
	i := clampByte(float64(q * 2))
	switch {
	case charge > 0:
		return color.RGBA{R: i, A: 255}
	case charge < 0:
		return color.RGBA{B: i, A: 255}
	}
	return color.RGBA{}
}

// potentialColor fades from white toward red (positive) or blue (negative)
// as |potential| approaches 255. Half transparent.
func potentialColor(potential float64) color.RGBA {
	abs := potential
	if abs < 0 {
		abs = -abs
	}
	i := clampByte(255 - abs)
	if potential > 0 {
		return color.RGBA{R: 255, G: i, B: i, A: 127}
	}
	return color.RGBA{R: i, G: i, B: 255, A: 127}
}

// fieldColor darkens with field strength.
func fieldColor(s systems.Sample) color.RGBA {
	i := clampByte(255 - r2.Norm(s.Force))
	return color.RGBA{R: i, G: i, B: i, A: 255}
}

// Blend composites src over dst. Both hold straight (non-premultiplied)
// alpha, as raylib textures do.
func Blend(dst, src color.RGBA) color.RGBA {
	if src.A == 0 {
		return dst
	}
	if src.A == 255 {
		return src
	}
	sa := float64(src.A) / 255
	da := float64(dst.A) / 255
	oa := sa + da*(1-sa)
	mix := func(s, d uint8) uint8 {
		return clampByte((float64(s)*sa + float64(d)*da*(1-sa)) / oa)
	}
	return color.RGBA{
		R: mix(src.R, dst.R),
		G: mix(src.G, dst.G),
		B: mix(src.B, dst.B),
		A: clampByte(oa * 255),
	}
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
