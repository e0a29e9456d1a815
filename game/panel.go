package game

import (
	"fmt"
	"log/slog"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/estatic/systems"
)

// Resize panel layout and slider limits.
const (
	panelWidth     = 260
	panelHeight    = 250
	panelMargin    = 10
	panelMaxDim    = 1000
	panelMaxRes    = 8
	sliderRowSpace = 48
)

// resizePanel holds the slider values until Apply is pressed.
type resizePanel struct {
	width, height, resolution float32
	err                       string
}

func (p *resizePanel) reset(w, h, resolution int) {
	p.width = float32(w)
	p.height = float32(h)
	p.resolution = float32(resolution)
	p.err = ""
}

// values returns the slider positions rounded to whole numbers.
func (p *resizePanel) values() (w, h, resolution int) {
	round := func(v float32) int { return int(math.Round(float64(v))) }
	return round(p.width), round(p.height), round(p.resolution)
}

// bounds returns the panel rectangle for a screen width.
func (p *resizePanel) bounds(screenW float32) rl.Rectangle {
	return rl.Rectangle{
		X:      screenW - panelWidth - panelMargin,
		Y:      panelMargin,
		Width:  panelWidth,
		Height: panelHeight,
	}
}

// contains reports whether a screen point is over the panel.
func (p *resizePanel) contains(x, y, screenW float32) bool {
	return rl.CheckCollisionPointRec(rl.Vector2{X: x, Y: y}, p.bounds(screenW))
}

// drawPanel draws the resize panel and applies it when requested.
func (g *Game) drawPanel() {
	p := &g.panel
	r := p.bounds(g.screenWidth)

	rl.DrawRectangleRec(r, rl.Color{R: 0, G: 0, B: 0, A: 180})
	rl.DrawRectangleLinesEx(r, 1, rl.Gray)

	x := r.X + 10
	y := r.Y + 8
	sliderW := float32(panelWidth - 80)

	rl.DrawText("Grid", int32(x), int32(y), 18, rl.White)
	y += 28

	w, h, res := p.values()
	slider := func(label string, value *float32, shown int, lo, hi float32) {
		rl.DrawText(label, int32(x), int32(y), 14, rl.LightGray)
		*value = gui.SliderBar(
			rl.Rectangle{X: x, Y: y + 16, Width: sliderW, Height: 18},
			"", "",
			*value, lo, hi,
		)
		rl.DrawText(fmt.Sprintf("%d", shown), int32(x+sliderW+10), int32(y+17), 16, rl.White)
		y += sliderRowSpace
	}
	slider("Width", &p.width, w, 1, panelMaxDim)
	slider("Height", &p.height, h, 1, panelMaxDim)
	slider("Resolution", &p.resolution, res, 1, panelMaxRes)

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 110, Height: 28}, "Apply") {
		w, h, res = p.values()
		if err := g.applyGridSize(w, h, res); err != nil {
			p.err = err.Error()
			slog.Warn("grid change rejected", "width", w, "height", h, "resolution", res, "error", err)
		} else {
			p.err = ""
		}
	}
	if gui.Button(rl.Rectangle{X: x + 120, Y: y, Width: 110, Height: 28}, "Revert") {
		cw, ch := g.grid.GridSize()
		p.reset(cw, ch, g.grid.Resolution())
	}
	y += 36

	subcells := systems.SubcellCount(w, h, res)
	rl.DrawText(fmt.Sprintf("%d subcells", subcells), int32(x), int32(y), 14, rl.LightGray)
	if p.err != "" {
		rl.DrawText(p.err, int32(x), int32(y+18), 10, rl.Red)
	}
}

// applyGridSize validates and applies new grid settings. Dimension changes
// build a new grid carrying the charges over; a resolution-only change
// rebuilds the field of the current grid.
func (g *Game) applyGridSize(w, h, resolution int) error {
	if err := systems.ValidateGridSize(w, h, resolution, g.cfg.Grid.MaxSubcells); err != nil {
		return err
	}

	cw, ch := g.grid.GridSize()
	switch {
	case w != cw || h != ch:
		grid := g.grid.Resize(w, h, resolution)
		g.setGrid(grid)
		slog.Info("grid resized",
			"from", fmt.Sprintf("%dx%d", cw, ch),
			"to", fmt.Sprintf("%dx%d", w, h),
			"resolution", resolution,
			"charges", len(grid.ChargedCells()),
		)
	case resolution != g.grid.Resolution():
		from := g.grid.Resolution()
		g.grid.SetResolution(resolution)
		g.stale = true
		slog.Info("resolution changed", "from", from, "to", resolution)
	}
	return nil
}
