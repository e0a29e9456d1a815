// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/estatic/systems"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Grid      GridConfig      `yaml:"grid"`
	Tracer    TracerConfig    `yaml:"tracer"`
	View      ViewConfig      `yaml:"view"`
	Scene     SceneConfig     `yaml:"scene"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GridConfig holds charge grid dimensions and field resolution.
type GridConfig struct {
	Width       int   `yaml:"width"`
	Height      int   `yaml:"height"`
	Resolution  int   `yaml:"resolution"`   // Field subdivisions per tile edge = 2*resolution-1
	MaxSubcells int64 `yaml:"max_subcells"` // Refuse grids whose field needs more samples (0 = no limit)
}

// TracerConfig holds field line tracing parameters.
type TracerConfig struct {
	MaxSteps int `yaml:"max_steps"`
}

// ViewConfig holds viewer defaults.
type ViewConfig struct {
	Scale      float32    `yaml:"scale"`       // Screen pixels per tile
	MinScale   float32    `yaml:"min_scale"`
	MaxScale   float32    `yaml:"max_scale"`
	EditCharge int8       `yaml:"edit_charge"` // Charge painted with the left mouse button
	Draw       DrawConfig `yaml:"draw"`
}

// DrawConfig holds the initial draw toggles.
type DrawConfig struct {
	Potential  bool `yaml:"potential"`
	Field      bool `yaml:"field"`
	FieldLines bool `yaml:"field_lines"`
}

// SceneConfig holds the charges placed at startup.
type SceneConfig struct {
	Charges []ChargeConfig `yaml:"charges"`
	Noise   NoiseConfig    `yaml:"noise"`
}

// ChargeConfig is one explicitly placed charge.
type ChargeConfig struct {
	X      int  `yaml:"x"`
	Y      int  `yaml:"y"`
	Charge int8 `yaml:"charge"`
}

// NoiseConfig holds perlin scene generation parameters.
type NoiseConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Seed      int64   `yaml:"seed"`
	Scale     float64 `yaml:"scale"`     // Noise frequency per tile
	Threshold float64 `yaml:"threshold"` // |noise| above this becomes a charge
	Charge    int8    `yaml:"charge"`
	Alpha     float64 `yaml:"alpha"`
	Beta      float64 `yaml:"beta"`
	Octaves   int32   `yaml:"octaves"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow  int     `yaml:"perf_window"`  // Recomputes averaged in perf stats
	LogInterval float64 `yaml:"log_interval"` // Seconds between perf log lines (0 = off)
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Ratio    int   // Grid.Resolution*2 - 1
	Subcells int64 // Field samples for the configured grid
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks values the simulation cannot start with.
func (c *Config) Validate() error {
	if err := systems.ValidateGridSize(c.Grid.Width, c.Grid.Height, c.Grid.Resolution, c.Grid.MaxSubcells); err != nil {
		return fmt.Errorf("grid: %w", err)
	}
	if c.Tracer.MaxSteps < 1 {
		return fmt.Errorf("tracer: max_steps must be positive, got %d", c.Tracer.MaxSteps)
	}
	if c.View.MinScale <= 0 || c.View.MaxScale < c.View.MinScale {
		return fmt.Errorf("view: invalid scale range [%g, %g]", c.View.MinScale, c.View.MaxScale)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Ratio = 2*c.Grid.Resolution - 1
	c.Derived.Subcells = systems.SubcellCount(c.Grid.Width, c.Grid.Height, c.Grid.Resolution)
}

// ScenePlacements converts the explicit scene charges for systems.PlaceCharges.
func (c *Config) ScenePlacements() []systems.PlacedCharge {
	out := make([]systems.PlacedCharge, len(c.Scene.Charges))
	for i, ch := range c.Scene.Charges {
		out[i] = systems.PlacedCharge{X: ch.X, Y: ch.Y, Charge: ch.Charge}
	}
	return out
}

// NoiseScene returns the perlin scene, or false when it is disabled.
func (c *Config) NoiseScene() (systems.NoiseScene, bool) {
	n := c.Scene.Noise
	if !n.Enabled {
		return systems.NoiseScene{}, false
	}
	return systems.NoiseScene{
		Seed:      n.Seed,
		Scale:     n.Scale,
		Threshold: n.Threshold,
		Charge:    n.Charge,
		Alpha:     n.Alpha,
		Beta:      n.Beta,
		Octaves:   n.Octaves,
	}, true
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
