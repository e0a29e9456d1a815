package renderer

import "strings"

// DrawSets selects which layers the viewer draws.
type DrawSets uint8

const (
	DrawPotential DrawSets = 1 << iota
	DrawField
	DrawFieldLines
)

// DrawAll enables every layer.
const DrawAll = DrawPotential | DrawField | DrawFieldLines

// Has reports whether every flag in f is set.
func (d DrawSets) Has(f DrawSets) bool {
	return d&f == f
}

// Toggle flips the flags in f.
func (d *DrawSets) Toggle(f DrawSets) {
	*d ^= f
}

func (d DrawSets) String() string {
	var parts []string
	if d.Has(DrawPotential) {
		parts = append(parts, "potential")
	}
	if d.Has(DrawField) {
		parts = append(parts, "field")
	}
	if d.Has(DrawFieldLines) {
		parts = append(parts, "lines")
	}
	if len(parts) == 0 {
		return "tiles"
	}
	return strings.Join(parts, "+")
}
