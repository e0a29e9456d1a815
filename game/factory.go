package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/estatic/config"
	"github.com/pthm-cable/estatic/systems"
)

// NewGridFromConfig builds the starting charge grid: an empty grid of the
// configured size, the explicit scene charges, then the noise scene if
// enabled. The returned grid has every charge pending.
func NewGridFromConfig(cfg *config.Config) (*systems.ChargeGrid, error) {
	gc := cfg.Grid
	if err := systems.ValidateGridSize(gc.Width, gc.Height, gc.Resolution, gc.MaxSubcells); err != nil {
		return nil, fmt.Errorf("building grid: %w", err)
	}

	grid := systems.NewChargeGrid(gc.Width, gc.Height, gc.Resolution)
	grid.MaxLineSteps = cfg.Tracer.MaxSteps

	placed := systems.PlaceCharges(grid, cfg.ScenePlacements())

	var noisy int
	if scene, ok := cfg.NoiseScene(); ok {
		noisy = scene.Populate(grid)
	}

	slog.Info("grid built",
		"width", gc.Width,
		"height", gc.Height,
		"resolution", gc.Resolution,
		"ratio", cfg.Derived.Ratio,
		"subcells", cfg.Derived.Subcells,
		"placed", placed,
		"noise", noisy,
	)
	return grid, nil
}
