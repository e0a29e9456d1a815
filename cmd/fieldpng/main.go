// Field render tool - solves the configured scene and writes it to a PNG for
// inspection, field lines included.
//
// Usage: go run ./cmd/fieldpng -config config.yaml -out field.png -scale 4
package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/estatic/config"
	"github.com/pthm-cable/estatic/game"
	"github.com/pthm-cable/estatic/renderer"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "field.png", "Output PNG path")
	scale := flag.Int("scale", 4, "Output pixels per tile")
	lines := flag.Bool("lines", true, "Draw field lines")
	flag.Parse()

	if err := run(*configPath, *outPath, max(*scale, 1), *lines); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, outPath string, scale int, lines bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	grid, err := game.NewGridFromConfig(cfg)
	if err != nil {
		return err
	}
	grid.Solve()

	w, h := grid.GridSize()
	pixels := renderer.NewFieldImage(w, h)
	pixels.Update(grid, renderer.DrawPotential|renderer.DrawField)

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, c := range pixels.Pix {
		rgba.SetRGBA(i%w, i/w, c)
	}

	img := rl.NewImageFromImage(rgba)
	defer rl.UnloadImage(img)
	s := int32(scale)
	rl.ImageResizeNN(img, int32(w)*s, int32(h)*s)

	traced := 0
	if lines {
		fieldLines := grid.TraceLines()
		traced = len(fieldLines)
		for _, line := range fieldLines {
			for i := 1; i < len(line.Points); i++ {
				a, b := line.Points[i-1], line.Points[i]
				rl.ImageDrawLineV(img,
					rl.Vector2{X: float32(a.X) * float32(s), Y: float32(float64(h)-a.Y) * float32(s)},
					rl.Vector2{X: float32(b.X) * float32(s), Y: float32(float64(h)-b.Y) * float32(s)},
					rl.Black,
				)
			}
		}
	}

	if !rl.ExportImage(*img, outPath) {
		return fmt.Errorf("failed to write %s", outPath)
	}
	fmt.Printf("Wrote %s (%dx%d tiles, %d charges, %d lines)\n", outPath, w, h, len(grid.ChargedCells()), traced)
	return nil
}
