// Noise scene preview tool - tune the perlin charge scene with sliders.
//
// Usage: go run ./cmd/scenepreview -config config.yaml
package main

import (
	"flag"
	"fmt"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/estatic/config"
	"github.com/pthm-cable/estatic/renderer"
	"github.com/pthm-cable/estatic/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	maxPreview   = 256 // Largest grid edge previewed
)

// sceneParams holds the slider state.
type sceneParams struct {
	Scale     float32
	Threshold float32
	Charge    float32
	Alpha     float32
	Beta      float32
	Octaves   float32
	Seed      float32
}

func paramsFromConfig(n config.NoiseConfig) sceneParams {
	return sceneParams{
		Scale:     float32(n.Scale),
		Threshold: float32(n.Threshold),
		Charge:    float32(n.Charge),
		Alpha:     float32(n.Alpha),
		Beta:      float32(n.Beta),
		Octaves:   float32(n.Octaves),
		Seed:      float32(n.Seed),
	}
}

func (p sceneParams) scene() systems.NoiseScene {
	return systems.NoiseScene{
		Seed:      int64(p.Seed),
		Scale:     float64(p.Scale),
		Threshold: float64(p.Threshold),
		Charge:    int8(p.Charge),
		Alpha:     float64(p.Alpha),
		Beta:      float64(p.Beta),
		Octaves:   int32(p.Octaves),
	}
}

func (p sceneParams) yaml() string {
	s := p.scene()
	return fmt.Sprintf(`scene:
  noise:
    enabled: true
    seed: %d
    scale: %.3f
    threshold: %.2f
    charge: %d
    alpha: %.2f
    beta: %.2f
    octaves: %d`,
		s.Seed, s.Scale, s.Threshold, s.Charge, s.Alpha, s.Beta, s.Octaves)
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	w := min(cfg.Grid.Width, maxPreview)
	h := min(cfg.Grid.Height, maxPreview)

	rl.InitWindow(windowWidth, windowHeight, "Noise Scene Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	defaults := paramsFromConfig(cfg.Scene.Noise)
	params := defaults

	img := rl.GenImageColor(w, h, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(texture, rl.FilterPoint)
	defer rl.UnloadTexture(texture)

	pixels := renderer.NewFieldImage(w, h)
	var grid *systems.ChargeGrid
	var placed int
	showField := false
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			grid = systems.NewChargeGrid(w, h, 1)
			placed = params.scene().Populate(grid)
			sets := renderer.DrawSets(0)
			if showField {
				grid.Solve()
				sets = renderer.DrawPotential | renderer.DrawField
			}
			pixels.Update(grid, sets)
			rl.UpdateTexture(texture, pixels.Pix)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(w), Height: float32(h)},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Grid: %dx%d  Charged tiles: %d (%.1f%%)", w, h, placed, 100*float64(placed)/float64(w*h)), 15, statsY, 16, rl.DarkGray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Noise Scene Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		slider := func(label, format string, value *float32, lo, hi float32) {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				*value, lo, hi,
			)
			rl.DrawText(fmt.Sprintf(format, *value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if v != *value {
				*value = v
				needsRegen = true
			}
			panelY += 30
		}
		slider("Scale (noise frequency per tile)", "%.3f", &params.Scale, 0.005, 0.5)
		slider("Threshold (|noise| that becomes charge)", "%.2f", &params.Threshold, 0, 1)
		slider("Charge", "%.0f", &params.Charge, 1, 127)
		slider("Alpha (octave weight)", "%.2f", &params.Alpha, 1, 4)
		slider("Beta (harmonic scaling)", "%.2f", &params.Beta, 1, 4)
		slider("Octaves", "%.0f", &params.Octaves, 1, 8)
		slider("Seed", "%.0f", &params.Seed, 0, 99999)

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(showField, "Hide Field", "Show Field")) {
			showField = !showField
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = float32(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		panelY += 40
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			needsRegen = true
		}
		panelY += 45

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		yaml := params.yaml()
		rl.DrawText(yaml, int32(panelX), int32(panelY), 14, rl.Gray)

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
