package systems

// Border is an uncharged tile next to a charged one. Charge is the charge of
// the charged neighbor, and selects the direction a field line is traced in.
type Border struct {
	Charge int8
	X, Y   int
}

// mooreOffsets lists the 8-connected neighborhood.
var mooreOffsets = [8][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// Borders returns, in first-seen order, every (charge, neutral neighbor) pair
// around the charged cells. The same tile appears once per distinct
// neighboring charge value.
func (g *ChargeGrid) Borders() []Border {
	var borders []Border
	seen := make(map[Border]struct{})

	for _, c := range g.ChargedCells() {
		charge := g.tiles[c.Y*g.W+c.X]
		for _, d := range mooreOffsets {
			nx, ny := c.X+d[0], c.Y+d[1]
			if !g.InBounds(nx, ny) || g.tiles[ny*g.W+nx] != 0 {
				continue
			}
			b := Border{Charge: charge, X: nx, Y: ny}
			if _, ok := seen[b]; ok {
				continue
			}
			seen[b] = struct{}{}
			borders = append(borders, b)
		}
	}
	return borders
}
