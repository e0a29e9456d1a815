package game

import (
	"context"
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/estatic/renderer"
	"github.com/pthm-cable/estatic/systems"
	"github.com/pthm-cable/estatic/telemetry"
)

// zoomStep is the scale change per mouse wheel notch, in pixels per tile.
const zoomStep = 1

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	// Edit charge sign
	if rl.IsKeyPressed(rl.KeyC) {
		g.editCharge = systems.NegateCharge(g.editCharge)
		slog.Debug("edit charge flipped", "charge", g.editCharge)
	}

	// Layer toggles
	if rl.IsKeyPressed(rl.KeyP) {
		g.toggleDraw(renderer.DrawPotential)
	}
	if rl.IsKeyPressed(rl.KeyF) {
		g.toggleDraw(renderer.DrawField)
	}
	if rl.IsKeyPressed(rl.KeyL) {
		// Lines are an overlay, the texture does not change
		g.draw.Toggle(renderer.DrawFieldLines)
		slog.Debug("draw settings", "draw", g.draw.String())
	}

	g.handleCameraInput()
	g.handleEditInput()
}

func (g *Game) toggleDraw(layer renderer.DrawSets) {
	g.draw.Toggle(layer)
	g.stale = true
	slog.Debug("draw settings", "draw", g.draw.String())
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.camera.Resize(w, h)
}

// handleCameraInput processes centering, pan and zoom.
func (g *Game) handleCameraInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.camera.Center()
	}

	// Shift + right drag pans; plain right button clears tiles
	if shiftDown() && rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		g.camera.Pan(d.X, d.Y)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(wheel * zoomStep)
	}
}

func shiftDown() bool {
	return rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
}

// handleEditInput paints the edit charge with the left button and clears
// with the right. Held buttons paint continuously.
func (g *Game) handleEditInput() {
	left := rl.IsMouseButtonDown(rl.MouseButtonLeft)
	right := rl.IsMouseButtonDown(rl.MouseButtonRight) && !shiftDown()
	if !left && !right {
		return
	}

	mouse := rl.GetMousePosition()
	if g.panel.contains(mouse.X, mouse.Y, g.screenWidth) {
		return
	}

	x, y, ok := g.tileAt(mouse.X, mouse.Y)
	if !ok {
		return
	}

	charge := g.editCharge
	if right {
		charge = 0
	}
	if g.grid.UpdateTile(charge, x, y) {
		slog.Log(context.Background(), telemetry.LevelTrace, "tile edited", "x", x, "y", y, "charge", charge)
	}
}

// tileAt returns the grid tile under a screen point.
func (g *Game) tileAt(sx, sy float32) (int, int, bool) {
	wx, wy := g.camera.ScreenToWorld(sx, sy)
	x := int(math.Floor(float64(wx)))
	y := int(math.Floor(float64(wy)))
	if !g.grid.InBounds(x, y) {
		return 0, 0, false
	}
	return x, y, true
}
