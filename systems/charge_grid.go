package systems

import "fmt"

// DefaultMaxLineSteps caps the integration steps of a single field line.
const DefaultMaxLineSteps = 2000

// Cell is a charge-grid coordinate.
type Cell struct {
	X, Y int
}

// TileChange records a tile whose charge differs from what the field grid
// currently accounts for. Old is the charge the field was built with.
type TileChange struct {
	Old  int8
	X, Y int
}

// ChargeGrid owns the integer charges of the simulation, the log of pending
// changes and the cached field grid derived from them.
type ChargeGrid struct {
	W, H int

	// Charges, row-major (y*W + x). 0 is neutral.
	tiles []int8

	// Pending changes since the last Solve, in edit order.
	changes []TileChange

	field *FieldGrid

	// MaxLineSteps bounds TraceLines integration per line.
	MaxLineSteps int
}

// NewChargeGrid creates an empty w×h grid with a zeroed field grid of ratio
// 2*resolution-1. Callers validate the arguments with ValidateGridSize.
func NewChargeGrid(w, h, resolution int) *ChargeGrid {
	return &ChargeGrid{
		W:            w,
		H:            h,
		tiles:        make([]int8, w*h),
		field:        newFieldGrid(w, h, ratioFor(resolution)),
		MaxLineSteps: DefaultMaxLineSteps,
	}
}

// ratioFor maps a resolution to an odd subdivision count so one subcell is
// centered on each tile.
func ratioFor(resolution int) int {
	return 2*resolution - 1
}

// GridSize returns the grid dimensions.
func (g *ChargeGrid) GridSize() (int, int) {
	return g.W, g.H
}

// InBounds reports whether (x, y) is a tile of the grid.
func (g *ChargeGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

func (g *ChargeGrid) index(x, y int) int {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("systems: tile (%d, %d) outside %dx%d grid", x, y, g.W, g.H))
	}
	return y*g.W + x
}

// Charge returns the charge at (x, y). Panics when out of bounds.
func (g *ChargeGrid) Charge(x, y int) int8 {
	return g.tiles[g.index(x, y)]
}

// Tiles returns the row-major charge array for read access.
// The slice is owned by the grid and must not be modified.
func (g *ChargeGrid) Tiles() []int8 {
	return g.tiles
}

// UpdateTile sets the charge at (x, y). It returns false, and does nothing,
// when the tile already holds that charge. Panics when out of bounds.
func (g *ChargeGrid) UpdateTile(charge int8, x, y int) bool {
	i := g.index(x, y)
	old := g.tiles[i]
	if old == charge {
		return false
	}
	g.changes = append(g.changes, TileChange{Old: old, X: x, Y: y})
	g.tiles[i] = charge
	return true
}

// PendingChanges returns a copy of the change log.
func (g *ChargeGrid) PendingChanges() []TileChange {
	out := make([]TileChange, len(g.changes))
	copy(out, g.changes)
	return out
}

// Dirty reports whether the field grid is behind the charges.
func (g *ChargeGrid) Dirty() bool {
	return len(g.changes) > 0
}

// Field returns the cached field grid.
func (g *ChargeGrid) Field() *FieldGrid {
	return g.field
}

// Resolution returns the resolution the field grid was built with.
func (g *ChargeGrid) Resolution() int {
	return (g.field.Ratio + 1) / 2
}

// SetResolution replaces the field grid with a zeroed one at the new
// resolution and re-seeds the change log so the next Solve rebuilds it.
func (g *ChargeGrid) SetResolution(resolution int) {
	g.field = newFieldGrid(g.W, g.H, ratioFor(resolution))
	g.reseed()
}

// reseed replaces the change log with an entry for every charged cell, as if
// each one had just been placed on an empty field.
func (g *ChargeGrid) reseed() {
	cells := g.ChargedCells()
	g.changes = make([]TileChange, len(cells))
	for i, c := range cells {
		g.changes[i] = TileChange{Old: 0, X: c.X, Y: c.Y}
	}
}

// ChargedCells returns every cell with a nonzero charge, x-major then y.
// Borders relies on this order.
func (g *ChargeGrid) ChargedCells() []Cell {
	var cells []Cell
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			if g.tiles[y*g.W+x] != 0 {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

// Resize returns a new w×h grid at the given resolution holding every charge
// of g that still fits. The new grid starts with a pending change per charge.
func (g *ChargeGrid) Resize(w, h, resolution int) *ChargeGrid {
	ng := NewChargeGrid(w, h, resolution)
	ng.MaxLineSteps = g.MaxLineSteps
	for _, c := range g.ChargedCells() {
		if ng.InBounds(c.X, c.Y) {
			ng.UpdateTile(g.Charge(c.X, c.Y), c.X, c.Y)
		}
	}
	return ng
}
