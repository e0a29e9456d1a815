package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/estatic/systems"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected defaults to load, got %v", err)
	}

	if cfg.Grid.Width != 200 || cfg.Grid.Height != 200 {
		t.Errorf("expected 200x200 grid, got %dx%d", cfg.Grid.Width, cfg.Grid.Height)
	}
	if cfg.Tracer.MaxSteps != systems.DefaultMaxLineSteps {
		t.Errorf("expected max_steps %d, got %d", systems.DefaultMaxLineSteps, cfg.Tracer.MaxSteps)
	}
	if cfg.View.EditCharge != 127 {
		t.Errorf("expected edit charge 127, got %d", cfg.View.EditCharge)
	}
	if cfg.Derived.Ratio != 1 {
		t.Errorf("expected ratio 1, got %d", cfg.Derived.Ratio)
	}
	if cfg.Derived.Subcells != 40000 {
		t.Errorf("expected 40000 subcells, got %d", cfg.Derived.Subcells)
	}
	if _, ok := cfg.NoiseScene(); ok {
		t.Error("expected noise scene disabled by default")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
grid:
  width: 32
  resolution: 3
scene:
  charges:
    - {x: 4, y: 5, charge: -90}
  noise:
    enabled: true
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected config to load, got %v", err)
	}

	// Overridden
	if cfg.Grid.Width != 32 || cfg.Grid.Resolution != 3 {
		t.Errorf("expected width 32 resolution 3, got %d / %d", cfg.Grid.Width, cfg.Grid.Resolution)
	}
	// Kept from defaults
	if cfg.Grid.Height != 200 {
		t.Errorf("expected default height 200, got %d", cfg.Grid.Height)
	}
	if cfg.Derived.Ratio != 5 {
		t.Errorf("expected ratio 5, got %d", cfg.Derived.Ratio)
	}

	placements := cfg.ScenePlacements()
	if len(placements) != 1 || placements[0] != (systems.PlacedCharge{X: 4, Y: 5, Charge: -90}) {
		t.Errorf("expected one placement at (4,5) of -90, got %+v", placements)
	}

	scene, ok := cfg.NoiseScene()
	if !ok {
		t.Fatal("expected noise scene enabled")
	}
	if scene.Charge != 60 || scene.Octaves != 3 {
		t.Errorf("expected default noise charge/octaves, got %d / %d", scene.Charge, scene.Octaves)
	}
}

func TestLoadRejectsZeroResolution(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("grid:\n  resolution: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, systems.ErrInvalidResolution) {
		t.Errorf("expected ErrInvalidResolution, got %v", err)
	}
}

func TestLoadRejectsOversizedGrid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("grid:\n  width: 2000\n  height: 2000\n  resolution: 4\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, systems.ErrGridTooLarge) {
		t.Errorf("expected ErrGridTooLarge, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Grid.Width = 48
	cfg.Scene.Charges = []ChargeConfig{{X: 1, Y: 2, Charge: 3}}

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("expected write to succeed, got %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("expected written config to load, got %v", err)
	}
	if loaded.Grid.Width != 48 {
		t.Errorf("expected width 48, got %d", loaded.Grid.Width)
	}
	if len(loaded.Scene.Charges) != 1 || loaded.Scene.Charges[0].Charge != 3 {
		t.Errorf("expected scene charge to survive, got %+v", loaded.Scene.Charges)
	}
}

func TestCfgAfterInit(t *testing.T) {
	MustInit("")
	if Cfg().Screen.TargetFPS != 60 {
		t.Errorf("expected 60 fps, got %d", Cfg().Screen.TargetFPS)
	}
}
