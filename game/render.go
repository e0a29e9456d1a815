package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/estatic/renderer"
	"github.com/pthm-cable/estatic/systems"
)

var (
	positiveLineColor = rl.Color{R: 120, G: 20, B: 20, A: 255}
	negativeLineColor = rl.Color{R: 20, G: 40, B: 120, A: 255}
)

// Draw renders the frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.drawField()
	if g.draw.Has(renderer.DrawFieldLines) {
		g.drawLines()
	}
	g.drawHUD()
	g.drawPanel()

	rl.EndDrawing()
}

// drawField stretches the one-pixel-per-tile texture over the grid.
func (g *Game) drawField() {
	w, h := g.grid.GridSize()
	// Texture row 0 is the top edge of the grid
	left, top := g.camera.WorldToScreen(0, float32(h))

	srcRect := rl.Rectangle{X: 0, Y: 0, Width: float32(w), Height: float32(h)}
	dstRect := rl.Rectangle{
		X:      left,
		Y:      top,
		Width:  float32(w) * g.camera.Scale,
		Height: float32(h) * g.camera.Scale,
	}
	rl.DrawTexturePro(g.texture, srcRect, dstRect, rl.Vector2{}, 0, rl.White)
	rl.DrawRectangleLinesEx(dstRect, 1, rl.DarkGray)
}

// drawLines draws every field line as a polyline in screen space.
func (g *Game) drawLines() {
	for i := range g.lines {
		line := &g.lines[i]
		if len(line.Points) < 2 {
			continue
		}
		color := positiveLineColor
		if line.Seed.Charge < 0 {
			color = negativeLineColor
		}

		prev := g.toScreen(line.Points[0].X, line.Points[0].Y)
		for _, p := range line.Points[1:] {
			cur := g.toScreen(p.X, p.Y)
			if g.camera.SegmentVisible(prev.X, prev.Y, cur.X, cur.Y) {
				rl.DrawLineV(prev, cur, color)
			}
			prev = cur
		}
	}
}

func (g *Game) toScreen(x, y float64) rl.Vector2 {
	sx, sy := g.camera.WorldToScreen(float32(x), float32(y))
	return rl.Vector2{X: sx, Y: sy}
}

// drawHUD draws the status text.
func (g *Game) drawHUD() {
	w, h := g.grid.GridSize()
	s := g.stats

	rl.DrawText(fmt.Sprintf("Grid: %dx%d  Resolution: %d  FPS: %d", w, h, g.grid.Resolution(), rl.GetFPS()), 10, 10, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Charges: %d (+%d / -%d)  Lines: %d  Points: %d", s.Charged, s.Positive, s.Negative, s.Lines, s.Points), 10, 35, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Edit charge: %d [C]  Draw: %s [P/F/L]", g.editCharge, g.draw.String()), 10, 60, 20, rl.White)

	mouse := rl.GetMousePosition()
	if tx, ty, ok := g.tileAt(mouse.X, mouse.Y); ok {
		g.drawHoverInfo(tx, ty)
	}
}

// drawHoverInfo shows the tile under the cursor and its cached field sample.
func (g *Game) drawHoverInfo(x, y int) {
	s := sampleAt(g.grid, x, y)
	text := fmt.Sprintf("(%d, %d) q=%d  F=(%.2f, %.2f)  V=%.2f",
		x, y, g.grid.Charge(x, y), s.Force.X, s.Force.Y, s.Potential)
	rl.DrawText(text, 10, int32(g.screenHeight)-30, 18, rl.LightGray)
}

// sampleAt is the centered field sample of a tile.
func sampleAt(grid *systems.ChargeGrid, x, y int) systems.Sample {
	field := grid.Field()
	r := field.Ratio
	return field.At(x*r+r/2, y*r+r/2)
}
