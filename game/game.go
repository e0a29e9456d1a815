// Package game runs the interactive viewer: a raylib window showing the
// charge grid, its field and field lines, with mouse editing and a resize
// panel.
package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/estatic/camera"
	"github.com/pthm-cable/estatic/config"
	"github.com/pthm-cable/estatic/renderer"
	"github.com/pthm-cable/estatic/systems"
	"github.com/pthm-cable/estatic/telemetry"
)

// Options configures a viewer session.
type Options struct {
	OutputDir string // Perf CSV and config snapshot (empty = off)
}

// Game holds the viewer state around one charge grid.
type Game struct {
	cfg  *config.Config
	grid *systems.ChargeGrid

	camera *camera.Camera
	draw   renderer.DrawSets

	image   *renderer.FieldImage
	texture rl.Texture2D
	lines   []systems.FieldLine
	stats   telemetry.FieldStats

	// Texture is behind the draw settings (the field may still be current)
	stale bool

	editCharge int8
	panel      resizePanel

	perf        *telemetry.PerfCollector
	output      *telemetry.OutputManager
	lastPerfLog float64

	loggedRecomputes int

	screenWidth, screenHeight float32
}

// NewGame creates the viewer. Must be called after rl.InitWindow.
func NewGame(cfg *config.Config, grid *systems.ChargeGrid, opts Options) (*Game, error) {
	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, err
	}

	w, h := grid.GridSize()
	screenW := float32(rl.GetScreenWidth())
	screenH := float32(rl.GetScreenHeight())

	cam := camera.New(screenW, screenH, float32(w), float32(h), cfg.View.Scale)
	cam.MinScale = cfg.View.MinScale
	cam.MaxScale = cfg.View.MaxScale

	g := &Game{
		cfg:          cfg,
		camera:       cam,
		draw:         drawSetsFromConfig(cfg.View.Draw),
		editCharge:   cfg.View.EditCharge,
		perf:         telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		output:       output,
		screenWidth:  screenW,
		screenHeight: screenH,
	}
	g.setGrid(grid)

	slog.Info("viewer started",
		"draw", g.draw.String(),
		"edit_charge", g.editCharge,
		"scale", cam.Scale,
	)
	return g, nil
}

func drawSetsFromConfig(d config.DrawConfig) renderer.DrawSets {
	var sets renderer.DrawSets
	if d.Potential {
		sets |= renderer.DrawPotential
	}
	if d.Field {
		sets |= renderer.DrawField
	}
	if d.FieldLines {
		sets |= renderer.DrawFieldLines
	}
	return sets
}

// setGrid swaps in a grid and reallocates the texture to its size.
func (g *Game) setGrid(grid *systems.ChargeGrid) {
	g.grid = grid
	w, h := grid.GridSize()

	if g.texture.ID != 0 {
		rl.UnloadTexture(g.texture)
	}
	img := rl.GenImageColor(w, h, rl.Blank)
	g.texture = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(g.texture, rl.FilterPoint)

	g.image = renderer.NewFieldImage(w, h)
	g.lines = nil
	g.stats = telemetry.ComputeFieldStats(grid, 0, nil)
	g.camera.SetWorld(float32(w), float32(h))
	g.panel.reset(w, h, grid.Resolution())
	g.stale = true
}

// Update handles input and recomputes the field when something changed.
func (g *Game) Update() {
	g.perf.RecordFrame()
	g.handleInput()
	g.recompute()
	g.logPerf()
}

// recompute runs solve, trace and texture rebuild only when the grid has
// pending changes, and just the texture when draw settings changed.
func (g *Game) recompute() {
	if !g.grid.Dirty() && !g.stale {
		return
	}

	g.perf.Begin()
	if g.grid.Dirty() {
		g.lines = solveAndTrace(g.grid, g.perf)
		g.stats = telemetry.ComputeFieldStats(g.grid, len(g.grid.Borders()), g.lines)
	}
	g.perf.StartPhase(telemetry.PhaseTexture)
	g.image.Update(g.grid, g.draw)
	rl.UpdateTexture(g.texture, g.image.Pix)
	g.perf.End()

	g.stale = false
}

// solveAndTrace brings the field up to date and traces every field line,
// timing each phase.
func solveAndTrace(grid *systems.ChargeGrid, perf *telemetry.PerfCollector) []systems.FieldLine {
	perf.StartPhase(telemetry.PhaseSolve)
	grid.Solve()
	perf.StartPhase(telemetry.PhaseTrace)
	return grid.TraceLines()
}

// Unload releases GPU resources and closes output files.
func (g *Game) Unload() {
	if g.texture.ID != 0 {
		rl.UnloadTexture(g.texture)
	}
	if err := g.output.WritePerf(g.perf.Stats()); err != nil {
		slog.Warn("final perf write failed", "error", err)
	}
	if err := g.output.Close(); err != nil {
		slog.Warn("closing output failed", "error", err)
	}
}
