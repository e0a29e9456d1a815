package game

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pthm-cable/estatic/config"
	"github.com/pthm-cable/estatic/renderer"
	"github.com/pthm-cable/estatic/systems"
	"github.com/pthm-cable/estatic/telemetry"
)

// Export solves and traces the grid without a window and writes charges,
// field samples, field lines, stats, perf and the config into outputDir.
func Export(cfg *config.Config, grid *systems.ChargeGrid, outputDir string) (stats telemetry.FieldStats, err error) {
	if outputDir == "" {
		return telemetry.FieldStats{}, errors.New("export: output directory required")
	}
	output, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return telemetry.FieldStats{}, err
	}
	defer func() {
		if cerr := output.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("export close: %w", cerr)
		}
	}()

	perf := telemetry.NewPerfCollector(1)
	perf.Begin()
	lines := solveAndTrace(grid, perf)
	// Timed for parity with the viewer; the pixels are not written
	perf.StartPhase(telemetry.PhaseTexture)
	w, h := grid.GridSize()
	renderer.NewFieldImage(w, h).Update(grid, drawSetsFromConfig(cfg.View.Draw))
	perf.End()

	stats = telemetry.ComputeFieldStats(grid, len(grid.Borders()), lines)

	writes := []struct {
		name string
		fn   func() error
	}{
		{"config", func() error { return output.WriteConfig(cfg) }},
		{"charges", func() error { return output.WriteCharges(grid) }},
		{"field", func() error { return output.WriteField(grid) }},
		{"lines", func() error { return output.WriteLines(lines) }},
		{"stats", func() error { return output.WriteStats(stats) }},
		{"perf", func() error { return output.WritePerf(perf.Stats()) }},
	}
	for _, wr := range writes {
		if err := wr.fn(); err != nil {
			return stats, fmt.Errorf("export %s: %w", wr.name, err)
		}
	}

	slog.Info("export written", "dir", output.Dir(), "field", stats, "perf", perf.Stats())
	return stats, nil
}
